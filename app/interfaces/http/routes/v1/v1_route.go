package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/auth"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/products"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/users"
	"menlo.ai/catalog-admin/config"
	"menlo.ai/catalog-admin/config/environment_variables"
)

type V1Route struct {
	authRoute     *auth.AuthRoute
	productsRoute *products.ProductsRoute
	usersRoute    *users.UsersRoute
}

func NewV1Route(
	authRoute *auth.AuthRoute,
	productsRoute *products.ProductsRoute,
	usersRoute *users.UsersRoute,
) *V1Route {
	return &V1Route{
		authRoute,
		productsRoute,
		usersRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.authRoute.RegisterRouter(v1Router)
	v1Route.productsRoute.RegisterRouter(v1Router)
	v1Route.usersRoute.RegisterRouter(v1Router)
}

func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": environment_variables.ReloadedAt(),
	})
}
