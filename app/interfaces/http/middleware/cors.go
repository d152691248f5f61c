package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"menlo.ai/catalog-admin/config"
	"menlo.ai/catalog-admin/config/environment_variables"
)

func isAllowedOrigin(host string) bool {
	for _, allowedHost := range environment_variables.Current().ALLOWED_CORS_HOSTS {
		// wildcard
		if strings.HasPrefix(allowedHost, "*") {
			suffix := strings.TrimPrefix(allowedHost, "*")
			if strings.HasSuffix(host, suffix) {
				return true
			}
		}
		if allowedHost == host {
			return true
		}
	}
	return false
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Header.Get("Origin")
		if host != "" && (isAllowedOrigin(host) || config.IsDev()) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", host)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With, X-Request-Id")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-Id")
			c.Writer.Header().Set("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
