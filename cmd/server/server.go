package main

import (
	"context"
	nethttp "net/http"
	_ "net/http/pprof"

	_ "github.com/grafana/pyroscope-go/godeltaprof/http/pprof"

	"github.com/mileusna/crontab"
	"menlo.ai/catalog-admin/app/domain/cron"
	apphttp "menlo.ai/catalog-admin/app/interfaces/http"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config/environment_variables"
)

type Application struct {
	HttpServer  *apphttp.HttpServer
	CronService *cron.CronService
}

func (application *Application) Start() {
	cronTab := crontab.New()
	background := context.Background()
	if err := application.CronService.Start(background, cronTab); err != nil {
		logger.GetLogger().Errorf("cron service failed to start: %v", err)
	}

	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	logger.GetLogger()
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	// Expose pprof endpoints for profiling (for Grafana Alloy/Pyroscope Go pull mode)
	go func() {
		if err := nethttp.ListenAndServe("0.0.0.0:6060", nil); err != nil {
			logger.GetLogger().Errorf("pprof server failed: %v", err)
		}
	}()

	if len(environment_variables.EnvironmentVariables.JWT_SECRET) == 0 {
		logger.GetLogger().Fatal("JWT_SECRET must be set to sign session cookies")
	}

	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	application.Start()
}
