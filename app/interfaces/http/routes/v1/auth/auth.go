package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/interfaces/http/middleware"
	"menlo.ai/catalog-admin/app/interfaces/http/responses"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config/environment_variables"
)

type AuthRoute struct {
	authService *auth.AuthService
	registry    *workspace.Registry
}

func NewAuthRoute(authService *auth.AuthService, registry *workspace.Registry) *AuthRoute {
	return &AuthRoute{
		authService,
		registry,
	}
}

func (authRoute *AuthRoute) RegisterRouter(router gin.IRouter) {
	authRouter := router.Group("/auth")
	authRouter.POST("/login", authRoute.Login)
	authRouter.POST("/logout", authRoute.Logout)
	authRouter.GET("/session", middleware.RequireSession(), authRoute.GetSession)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

const SessionResponseObject = "session"

type LoginResponse struct {
	Object        string       `json:"object"`
	Authenticated bool         `json:"authenticated"`
	Redirect      string       `json:"redirect,omitempty"`
	Profile       auth.Profile `json:"profile"`
	ExpiresAt     time.Time    `json:"expires_at"`
}

type SessionResponse struct {
	Object               string       `json:"object"`
	Authenticated        bool         `json:"authenticated"`
	HasAccessToken       bool         `json:"has_access_token"`
	HasRefreshToken      bool         `json:"has_refresh_token"`
	Profile              auth.Profile `json:"profile"`
	AccessTokenExpiresAt *time.Time   `json:"access_token_expires_at,omitempty"`
	ExpiresAt            time.Time    `json:"expires_at"`
}

// Login exchanges credentials for a remote session, stores it and hands the
// browser a signed cookie pointing at it.
func (authRoute *AuthRoute) Login(reqCtx *gin.Context) {
	var request LoginRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "3a6f8e2c-8d0c-11f0-a2b4-77e0c1d94f10",
			Error: "invalid credentials payload",
		})
		return
	}

	ctx := reqCtx.Request.Context()
	record, err := authRoute.authService.Login(ctx, request.Username, request.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "3a6f9118-8d0c-11f0-8f3e-0b9d5a7c2e61",
				Error: auth.ErrInvalidCredentials.Error(),
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
			Code:          "3a6f92a8-8d0c-11f0-b1c7-5f4e3d2a1b09",
			Error:         err.Error(),
			ErrorInstance: err,
		})
		return
	}

	token, err := auth.CreateSessionToken(environment_variables.Current().JWT_SECRET, record.ID, record.ExpiresAt)
	if err != nil {
		_ = authRoute.authService.Logout(ctx, record.ID)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:          "3a6f9424-8d0c-11f0-9e58-c3a1f0b7d8e2",
			Error:         err.Error(),
			ErrorInstance: err,
		})
		return
	}

	// A browser logging in again drops its previous session.
	if previous, ok := middleware.GetSessionRecord(reqCtx); ok && previous.ID != record.ID {
		authRoute.endSession(reqCtx, previous.ID)
	}

	ws := authRoute.registry.GetOrCreate(record.ID)
	ws.Observe(record.Session())
	redirect, _ := ws.TakeRedirect()

	http.SetCookie(reqCtx.Writer, responses.NewCookieWithSecurity(
		auth.SessionCookieKey,
		token,
		record.ExpiresAt,
	))
	reqCtx.JSON(http.StatusOK, LoginResponse{
		Object:        SessionResponseObject,
		Authenticated: ws.Auth.IsAuthenticated(),
		Redirect:      redirect,
		Profile:       record.Profile,
		ExpiresAt:     record.ExpiresAt,
	})
}

func (authRoute *AuthRoute) Logout(reqCtx *gin.Context) {
	if record, ok := middleware.GetSessionRecord(reqCtx); ok {
		authRoute.endSession(reqCtx, record.ID)
	}
	http.SetCookie(reqCtx.Writer, responses.ExpiredCookie(auth.SessionCookieKey))
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[bool]{
		Status: responses.ResponseCodeOk,
		Result: true,
	})
}

func (authRoute *AuthRoute) GetSession(reqCtx *gin.Context) {
	record, _ := middleware.GetSessionRecord(reqCtx)
	ws, _ := middleware.GetWorkspace(reqCtx)
	state := ws.Auth.State()
	reqCtx.JSON(http.StatusOK, SessionResponse{
		Object:               SessionResponseObject,
		Authenticated:        state.IsAuthenticated,
		HasAccessToken:       state.AccessToken != nil,
		HasRefreshToken:      state.RefreshToken != nil,
		Profile:              record.Profile,
		AccessTokenExpiresAt: record.AccessTokenExpiresAt,
		ExpiresAt:            record.ExpiresAt,
	})
}

func (authRoute *AuthRoute) endSession(reqCtx *gin.Context, sessionID string) {
	authRoute.registry.Remove(sessionID)
	if err := authRoute.authService.Logout(reqCtx.Request.Context(), sessionID); err != nil {
		logger.GetLogger().WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("failed to delete session")
	}
}
