package infrastructure

import (
	"github.com/google/wire"
	"menlo.ai/catalog-admin/app/infrastructure/cache"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
	"menlo.ai/catalog-admin/config/environment_variables"
)

func NewCatalogClient() *dummyjson.Client {
	return dummyjson.NewClient(environment_variables.EnvironmentVariables.CATALOG_API_URL)
}

var InfrastructureProvider = wire.NewSet(
	NewCatalogClient,
	cache.NewSessionRepository,
)
