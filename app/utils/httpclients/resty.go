package httpclients

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/utils/contextkeys"
	"menlo.ai/catalog-admin/app/utils/logger"
	"resty.dev/v3"
)

const DefaultTimeout = 15 * time.Second

func NewClient(clientName string, baseURL string) *resty.Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(DefaultTimeout)
	client.SetHeader("Accept", "application/json")
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		ctx := context.WithValue(r.Context(), contextkeys.HttpClientStartsAt{}, time.Now())
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		requestID := r.Request.Context().Value(contextkeys.RequestId{})
		startTime, _ := r.Request.Context().Value(contextkeys.HttpClientStartsAt{}).(time.Time)
		fields := logrus.Fields{
			"request_id": requestID,
			"client":     clientName,
			"status":     r.StatusCode(),
			"latency":    time.Since(startTime).String(),
		}
		if raw := r.Request.RawRequest; raw != nil {
			fields["method"] = raw.Method
			fields["path"] = raw.URL.Path
			fields["query"] = raw.URL.RawQuery
		}
		entry := logger.GetLogger().WithFields(fields)
		if r.IsError() {
			entry.Warn("upstream request failed")
		} else {
			entry.Info("upstream request")
		}
		return nil
	})
	return client
}
