package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/interfaces/http/requests"
	"menlo.ai/catalog-admin/app/interfaces/http/responses"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config/environment_variables"
)

const (
	ContextSessionRecord = "context_session_record"
	ContextWorkspace     = "context_workspace"
)

// SessionMiddleware resolves the session cookie into its stored record and
// workspace. Each request is one observation of the external session, so the
// workspace bridge is synced before the handler runs.
func SessionMiddleware(authService *auth.AuthService, registry *workspace.Registry) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		token, ok := requests.GetCookie(reqCtx, auth.SessionCookieKey)
		if !ok {
			reqCtx.Next()
			return
		}
		claim, err := auth.ParseSessionToken(environment_variables.Current().JWT_SECRET, token)
		if err != nil {
			reqCtx.Next()
			return
		}

		record, err := authService.Find(reqCtx.Request.Context(), claim.SessionID)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) {
				logger.GetLogger().WithFields(logrus.Fields{
					"session_id": claim.SessionID,
					"error":      err.Error(),
				}).Warn("session lookup failed")
			} else {
				registry.Remove(claim.SessionID)
			}
			reqCtx.Next()
			return
		}

		ws := registry.GetOrCreate(record.ID)
		ws.Observe(record.Session())
		reqCtx.Set(ContextSessionRecord, record)
		reqCtx.Set(ContextWorkspace, ws)
		reqCtx.Next()
	}
}

// RequireSession rejects requests that SessionMiddleware did not resolve.
func RequireSession() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		if _, ok := GetWorkspace(reqCtx); !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "6f3c1a52-8d0b-11f0-9d61-3b2f8e1c7a40",
				Error: "authentication required",
			})
			return
		}
		reqCtx.Next()
	}
}

func GetWorkspace(reqCtx *gin.Context) (*workspace.Workspace, bool) {
	value, ok := reqCtx.Get(ContextWorkspace)
	if !ok {
		return nil, false
	}
	ws, ok := value.(*workspace.Workspace)
	return ws, ok
}

func GetSessionRecord(reqCtx *gin.Context) (*auth.SessionRecord, bool) {
	value, ok := reqCtx.Get(ContextSessionRecord)
	if !ok {
		return nil, false
	}
	record, ok := value.(*auth.SessionRecord)
	return record, ok
}
