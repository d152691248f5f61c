package products

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/common"
	"menlo.ai/catalog-admin/app/domain/product"
	"menlo.ai/catalog-admin/app/domain/query"
	"menlo.ai/catalog-admin/app/interfaces/http/middleware"
	"menlo.ai/catalog-admin/app/interfaces/http/requests"
	"menlo.ai/catalog-admin/app/interfaces/http/responses"
	"menlo.ai/catalog-admin/app/utils/functional"
	"menlo.ai/catalog-admin/app/utils/logger"
)

type ProductsRoute struct{}

func NewProductsRoute() *ProductsRoute {
	return &ProductsRoute{}
}

func (route *ProductsRoute) RegisterRouter(router gin.IRouter) {
	productsRouter := router.Group("/products", middleware.RequireSession())
	productsRouter.GET("", route.ListProducts)
	productsRouter.GET("/:product_id", route.GetProduct)
}

type ProductResponse struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	Thumbnail   string          `json:"thumbnail"`
	Images      []string        `json:"images"`
}

func toProductResponse(p product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Rating:      p.Rating,
		Thumbnail:   p.Thumbnail,
		Images:      p.Gallery(),
	}
}

// ListProducts runs the cached fetch for the requested page and returns the
// visible state of the session's product store. A failed fetch is reported
// through the state's error while the previous items stay visible.
func (route *ProductsRoute) ListProducts(reqCtx *gin.Context) {
	ws, _ := middleware.GetWorkspace(reqCtx)
	params, err := query.GetParamsFromQuery(reqCtx)
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8b1e4d70-8d0c-11f0-95a3-2f6c0e9b7d14",
			Error: err.Error(),
		})
		return
	}

	if err := ws.Products.Fetch(context.WithoutCancel(reqCtx.Request.Context()), *params); err != nil {
		logger.GetLogger().WithFields(logrus.Fields{
			"session_id": ws.ID,
			"error":      err.Error(),
		}).Warn("product fetch failed")
	}

	state := ws.Products.State()
	reqCtx.JSON(http.StatusOK, responses.ListResponse[ProductResponse]{
		Status:     responses.ResponseCodeOk,
		Items:      functional.Map(state.Items, toProductResponse),
		Total:      state.Total,
		Skip:       params.Skip,
		Limit:      params.Limit,
		TotalPages: query.TotalPages(state.Total, params.Limit),
		Loading:    state.Loading,
		Error:      state.Error,
	})
}

func (route *ProductsRoute) GetProduct(reqCtx *gin.Context) {
	ws, _ := middleware.GetWorkspace(reqCtx)
	id, err := requests.GetIntParam(reqCtx, "product_id")
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8b1e4f3c-8d0c-11f0-a7d9-4e1b8c3f6a25",
			Error: err.Error(),
		})
		return
	}

	p, err := ws.Products.GetByID(reqCtx.Request.Context(), id)
	if err != nil {
		responses.AbortWithError(reqCtx, responses.RemoteStatus(err), common.NewError(err, "8b1e50b8-8d0c-11f0-bc42-91d7a6e2f036"))
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[ProductResponse]{
		Status: responses.ResponseCodeOk,
		Result: toProductResponse(*p),
	})
}
