package landing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/interfaces/http/middleware"
)

const LoginPath = "/"

// LandingRoute serves the login landing and the guarded dashboard entry.
type LandingRoute struct{}

func NewLandingRoute() *LandingRoute {
	return &LandingRoute{}
}

func (route *LandingRoute) RegisterRouter(router gin.IRouter) {
	router.GET(LoginPath, route.GetLanding)
	router.GET(workspace.DashboardPath, route.GetDashboard)
}

type LandingResponse struct {
	Authenticated bool `json:"authenticated"`
}

type DashboardResponse struct {
	Authenticated bool         `json:"authenticated"`
	Profile       auth.Profile `json:"profile"`
	Products      int          `json:"cached_product_pages"`
	Users         int          `json:"cached_user_pages"`
}

// GetLanding sends an authenticated session on to the dashboard, consuming
// any navigation the login flow left pending.
func (route *LandingRoute) GetLanding(reqCtx *gin.Context) {
	ws, ok := middleware.GetWorkspace(reqCtx)
	if !ok || !ws.Auth.IsAuthenticated() {
		reqCtx.JSON(http.StatusOK, LandingResponse{Authenticated: false})
		return
	}
	target, ok := ws.TakeRedirect()
	if !ok {
		target = workspace.DashboardPath
	}
	reqCtx.Redirect(http.StatusFound, target)
}

func (route *LandingRoute) GetDashboard(reqCtx *gin.Context) {
	ws, ok := middleware.GetWorkspace(reqCtx)
	record, hasRecord := middleware.GetSessionRecord(reqCtx)
	if !ok || !hasRecord {
		reqCtx.Redirect(http.StatusFound, LoginPath)
		return
	}
	ws.TakeRedirect()
	reqCtx.JSON(http.StatusOK, DashboardResponse{
		Authenticated: ws.Auth.IsAuthenticated(),
		Profile:       record.Profile,
		Products:      ws.Products.CacheLen(),
		Users:         ws.Users.CacheLen(),
	})
}
