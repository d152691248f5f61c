package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/utils/contextkeys"
)

const redacted = "[redacted]"

// Request bodies on these paths carry credentials.
var sensitiveBodyPaths = map[string]struct{}{
	"/v1/auth/login": {},
}

var sensitiveHeaders = []string{"Cookie", "Authorization"}

type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w BodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b) // capture response
	return w.ResponseWriter.Write(b)
}

func loggableHeaders(header http.Header) http.Header {
	cloned := header.Clone()
	for _, name := range sensitiveHeaders {
		if cloned.Get(name) != "" {
			cloned.Set(name, redacted)
		}
	}
	return cloned
}

func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.Request.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, contextkeys.RequestId{}, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		var reqBody []byte
		if c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			// Restore body so Gin can read it again
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		var blw = &BodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		duration := time.Since(start)
		path := c.Request.URL.Path
		requestBody := string(reqBody)
		responseBody := blw.body.String()
		if _, ok := sensitiveBodyPaths[path]; ok {
			requestBody = redacted
			responseBody = redacted
		}
		if !strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") {
			responseBody = ""
		}
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"host":       c.Request.Host,
			"path":       path,
			"query":      c.Request.URL.RawQuery,
			"headers":    loggableHeaders(c.Request.Header),
			"req_body":   requestBody,
			"resp_body":  responseBody,
			"latency":    duration.String(),
			"client_ip":  c.ClientIP(),
		}).Info("")
	}
}
