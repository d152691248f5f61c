package user

import (
	"context"

	"menlo.ai/catalog-admin/app/domain/query"
	"menlo.ai/catalog-admin/app/domain/resource"
	"menlo.ai/catalog-admin/app/utils/functional"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
)

type UserService struct {
	client UserClient
	store  *resource.Store[User]
}

func NewService(client UserClient) *UserService {
	s := &UserService{client: client}
	s.store = resource.NewStore(ResourceKind, FallbackMessage, s.fetchPage)
	return s
}

// Fetch makes the listing selected by params visible. Users have no
// categories, so any category in params is ignored and does not split the cache.
func (s *UserService) Fetch(ctx context.Context, params query.Params) error {
	params.Category = nil
	return s.store.Fetch(ctx, params)
}

func (s *UserService) State() resource.State[User] {
	return s.store.State()
}

func (s *UserService) Subscribe(fn func(resource.State[User])) func() {
	return s.store.Subscribe(fn)
}

func (s *UserService) CacheLen() int {
	return s.store.CacheLen()
}

func (s *UserService) GetByID(ctx context.Context, id int) (*User, error) {
	remote, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u := fromRemote(*remote)
	return &u, nil
}

func (s *UserService) fetchPage(ctx context.Context, params query.Params) (*resource.Page[User], error) {
	var (
		list *dummyjson.UserList
		err  error
	)
	if params.Q != "" {
		list, err = s.client.SearchUsers(ctx, params.Q, params.Limit, params.Skip)
	} else {
		list, err = s.client.ListUsers(ctx, params.Limit, params.Skip)
	}
	if err != nil {
		return nil, err
	}
	return &resource.Page[User]{
		Items: functional.Map(list.Users, fromRemote),
		Total: list.Total,
	}, nil
}
