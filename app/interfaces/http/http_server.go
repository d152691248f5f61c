package http

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/interfaces/http/middleware"
	"menlo.ai/catalog-admin/app/interfaces/http/responses"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/landing"
	v1 "menlo.ai/catalog-admin/app/interfaces/http/routes/v1"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config/environment_variables"
)

const defaultPort = 8080

type HttpServer struct {
	engine       *gin.Engine
	v1Route      *v1.V1Route
	landingRoute *landing.LandingRoute
}

func NewHttpServer(
	v1Route *v1.V1Route,
	landingRoute *landing.LandingRoute,
	authService *auth.AuthService,
	registry *workspace.Registry,
) *HttpServer {
	if os.Getenv("local_dev") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HttpServer{
		gin.New(),
		v1Route,
		landingRoute,
	}
	server.engine.Use(middleware.CORS())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.SessionMiddleware(authService, registry))
	server.engine.GET("/healthcheck", func(c *gin.Context) {
		if err := authService.HealthCheck(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "0d9a6c3e-8d0d-11f0-b3f1-6e2a9c4d7b18",
				Error: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, "ok")
	})
	root := server.engine.Group("/")
	server.landingRoute.RegisterRouter(root)
	server.v1Route.RegisterRouter(root)
	return &server
}

func (httpServer *HttpServer) Handler() *gin.Engine {
	return httpServer.engine
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.HTTP_PORT
	if port <= 0 {
		port = defaultPort
	}
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
