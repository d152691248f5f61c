package domain

import (
	"github.com/google/wire"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/cron"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
	"menlo.ai/catalog-admin/config/environment_variables"
)

func ProvideAuthService(client auth.LoginClient, sessions auth.SessionRepository) *auth.AuthService {
	return auth.NewAuthService(client, sessions, environment_variables.EnvironmentVariables.SESSION_TTL)
}

var ServiceProvider = wire.NewSet(
	wire.Bind(new(auth.LoginClient), new(*dummyjson.Client)),
	wire.Bind(new(workspace.CatalogClient), new(*dummyjson.Client)),
	ProvideAuthService,
	workspace.NewRegistry,
	cron.NewCronService,
)
