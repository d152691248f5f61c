package routes

import (
	"github.com/google/wire"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/landing"
	v1 "menlo.ai/catalog-admin/app/interfaces/http/routes/v1"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/auth"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/products"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	products.NewProductsRoute,
	users.NewUsersRoute,
	landing.NewLandingRoute,
	v1.NewV1Route,
)
