package product

import (
	"context"

	"menlo.ai/catalog-admin/app/domain/query"
	"menlo.ai/catalog-admin/app/domain/resource"
	"menlo.ai/catalog-admin/app/utils/functional"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
)

type ProductService struct {
	client ProductClient
	store  *resource.Store[Product]
}

func NewService(client ProductClient) *ProductService {
	s := &ProductService{client: client}
	s.store = resource.NewStore(ResourceKind, FallbackMessage, s.fetchPage)
	return s
}

// Fetch makes the listing selected by params visible, from cache when possible.
func (s *ProductService) Fetch(ctx context.Context, params query.Params) error {
	return s.store.Fetch(ctx, params)
}

func (s *ProductService) State() resource.State[Product] {
	return s.store.State()
}

func (s *ProductService) Subscribe(fn func(resource.State[Product])) func() {
	return s.store.Subscribe(fn)
}

func (s *ProductService) CacheLen() int {
	return s.store.CacheLen()
}

// GetByID loads a single product. Details are never cached.
func (s *ProductService) GetByID(ctx context.Context, id int) (*Product, error) {
	remote, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p := fromRemote(*remote)
	return &p, nil
}

// Search wins over the category filter; the two are never combined.
func (s *ProductService) fetchPage(ctx context.Context, params query.Params) (*resource.Page[Product], error) {
	var (
		list *dummyjson.ProductList
		err  error
	)
	if params.Q != "" {
		list, err = s.client.SearchProducts(ctx, params.Q, params.Limit, params.Skip)
	} else if category, ok := params.CategoryFilter(); ok {
		list, err = s.client.ListProductsByCategory(ctx, category, params.Limit, params.Skip)
	} else {
		list, err = s.client.ListProducts(ctx, params.Limit, params.Skip)
	}
	if err != nil {
		return nil, err
	}
	return &resource.Page[Product]{
		Items: functional.Map(list.Products, fromRemote),
		Total: list.Total,
	}, nil
}
