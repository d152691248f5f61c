package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieKey = "catalog_admin_session"

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaim is carried by the signed session cookie. It only points at the
// stored SessionRecord; the remote tokens never leave the server.
type SessionClaim struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func CreateSessionToken(secret []byte, sessionID string, expiresAt time.Time) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("session signing secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, SessionClaim{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(secret)
}

func ParseSessionToken(secret []byte, tokenString string) (*SessionClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaim{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSessionToken
	}
	claims, ok := token.Claims.(*SessionClaim)
	if !ok || claims.SessionID == "" {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}

// TokenExpiry reads the exp claim of a remote access token without verifying
// its signature. The gateway does not hold the remote signing key.
func TokenExpiry(accessToken string) (*time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, false
	}
	t := exp.Time
	return &t, true
}
