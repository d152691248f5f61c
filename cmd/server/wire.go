//go:build wireinject

package main

import (
	"github.com/google/wire"
	"menlo.ai/catalog-admin/app/domain"
	"menlo.ai/catalog-admin/app/infrastructure"
	"menlo.ai/catalog-admin/app/interfaces/http"
	"menlo.ai/catalog-admin/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
