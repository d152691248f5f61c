package product

import (
	"context"

	"github.com/shopspring/decimal"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
)

const (
	ResourceKind    = "products"
	FallbackMessage = "Failed to load products"
)

type Product struct {
	ID          int
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Rating      float64
	Thumbnail   string
	Images      []string
}

// ProductClient is the subset of the catalog API used for products.
type ProductClient interface {
	ListProducts(ctx context.Context, limit, skip int) (*dummyjson.ProductList, error)
	SearchProducts(ctx context.Context, q string, limit, skip int) (*dummyjson.ProductList, error)
	ListProductsByCategory(ctx context.Context, category string, limit, skip int) (*dummyjson.ProductList, error)
	GetProduct(ctx context.Context, id int) (*dummyjson.Product, error)
}

func fromRemote(p dummyjson.Product) Product {
	return Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Rating:      p.Rating,
		Thumbnail:   p.Thumbnail,
		Images:      p.Images,
	}
}

// Gallery returns the images to show for a product, falling back to the thumbnail.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Thumbnail == "" {
		return []string{}
	}
	return []string{p.Thumbnail}
}
