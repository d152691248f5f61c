package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/app/utils/ptr"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
)

const DefaultSessionTTL = 24 * time.Hour

type Profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// SessionRecord is the server-side session created by a successful login.
type SessionRecord struct {
	ID                   string     `json:"id"`
	AccessToken          string     `json:"access_token"`
	RefreshToken         *string    `json:"refresh_token,omitempty"`
	Profile              Profile    `json:"profile"`
	AccessTokenExpiresAt *time.Time `json:"access_token_expires_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	ExpiresAt            time.Time  `json:"expires_at"`
}

// Session is the value observed by the Bridge for this record.
func (r *SessionRecord) Session() *Session {
	if r == nil {
		return nil
	}
	return &Session{
		AccessToken:  ptr.ToString(r.AccessToken),
		RefreshToken: ptr.CloneString(r.RefreshToken),
	}
}

type SessionRepository interface {
	Save(ctx context.Context, record *SessionRecord, ttl time.Duration) error
	// Find returns ErrSessionNotFound for missing or expired sessions.
	Find(ctx context.Context, id string) (*SessionRecord, error)
	Delete(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error
}

type LoginClient interface {
	Login(ctx context.Context, request dummyjson.LoginRequest) (*dummyjson.LoginResponse, error)
}

type AuthService struct {
	client     LoginClient
	sessions   SessionRepository
	sessionTTL time.Duration
}

func NewAuthService(client LoginClient, sessions SessionRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		client:     client,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login exchanges the credentials with the remote API and stores a new
// session. Rejected credentials and responses without an access token
// return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*SessionRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.client.Login(ctx, dummyjson.LoginRequest{Username: username, Password: password})
	if err != nil {
		var apiErr *dummyjson.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential exchange failed: %w", err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	record := &SessionRecord{
		ID:          uuid.NewString(),
		AccessToken: resp.AccessToken,
		Profile: Profile{
			ID:    resp.ID,
			Name:  strings.TrimSpace(resp.FirstName + " " + resp.LastName),
			Email: resp.Email,
			Image: resp.Image,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if resp.RefreshToken != "" {
		record.RefreshToken = ptr.ToString(resp.RefreshToken)
	}
	if exp, ok := TokenExpiry(resp.AccessToken); ok {
		record.AccessTokenExpiresAt = exp
	}

	if err := s.sessions.Save(ctx, record, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.GetLogger().WithFields(logrus.Fields{
		"session_id": record.ID,
		"user_id":    record.Profile.ID,
	}).Info("session created")
	return record, nil
}

func (s *AuthService) Find(ctx context.Context, sessionID string) (*SessionRecord, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	return s.sessions.Find(ctx, sessionID)
}

// HealthCheck reports whether the session store is reachable.
func (s *AuthService) HealthCheck(ctx context.Context) error {
	return s.sessions.HealthCheck(ctx)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	logger.GetLogger().WithField("session_id", sessionID).Info("session deleted")
	return nil
}
