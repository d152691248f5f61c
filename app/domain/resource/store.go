package resource

import (
	"context"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/query"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/app/utils/ptr"
)

// State is the visible snapshot of a resource listing.
type State[T any] struct {
	Items   []T
	Total   int
	Loading bool
	Error   *string
}

func (s State[T]) clone() State[T] {
	return State[T]{
		Items:   slices.Clone(s.Items),
		Total:   s.Total,
		Loading: s.Loading,
		Error:   ptr.CloneString(s.Error),
	}
}

// FetchFunc loads one page from the remote API.
type FetchFunc[T any] func(ctx context.Context, params query.Params) (*Page[T], error)

// Store holds the visible state of one resource and a read-through cache in
// front of its FetchFunc.
//
// Loading is shared by every in-flight fetch, and a slower fetch that settles
// after a newer one overwrites the visible items. Nothing is cancelled or
// deduplicated.
type Store[T any] struct {
	kind     string
	fallback string
	fetch    FetchFunc[T]
	cache    *Cache[T]

	// notifyMu serializes update so subscribers see snapshots in write order.
	notifyMu    sync.Mutex
	mu          sync.Mutex
	state       State[T]
	subscribers map[int]func(State[T])
	nextSubID   int
}

func NewStore[T any](kind string, fallback string, fetch FetchFunc[T]) *Store[T] {
	return &Store[T]{
		kind:        kind,
		fallback:    fallback,
		fetch:       fetch,
		cache:       NewCache[T](),
		state:       State[T]{Items: []T{}},
		subscribers: make(map[int]func(State[T])),
	}
}

// State returns a copy of the current visible state.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store[T]) CacheLen() int {
	return s.cache.Len()
}

// Subscribe registers fn to receive every state change. Callbacks run
// synchronously after the change has been applied, one change at a time and in
// the order the changes were made. A callback must not modify the store.
func (s *Store[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Fetch makes the page selected by params visible. A cached page is shown
// immediately. Otherwise the page is loaded, cached and shown; on failure the
// error is recorded in the state, the previous items stay visible and the
// error is returned.
func (s *Store[T]) Fetch(ctx context.Context, params query.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	key := query.BuildKey(s.kind, params)
	log := logger.GetLogger().WithFields(logrus.Fields{
		"kind": s.kind,
		"key":  key,
	})

	if cached, ok := s.cache.Get(key); ok {
		log.Debug("resource cache hit")
		s.update(func(state *State[T]) {
			state.Items = cached.Items
			state.Total = cached.Total
		})
		return nil
	}

	log.Debug("resource cache miss")
	s.update(func(state *State[T]) {
		state.Loading = true
		state.Error = nil
	})

	page, err := s.fetch(ctx, params)
	if err != nil {
		message := err.Error()
		if message == "" {
			message = s.fallback
		}
		log.WithError(err).Warn("resource fetch failed")
		s.update(func(state *State[T]) {
			state.Error = ptr.ToString(message)
			state.Loading = false
		})
		return err
	}
	if page == nil {
		page = &Page[T]{}
	}

	if !s.cache.Put(key, *page) {
		log.Debug("resource cache entry already written")
	}
	visible := page.clone()
	s.update(func(state *State[T]) {
		state.Items = visible.Items
		state.Total = visible.Total
		state.Loading = false
	})
	log.WithField("total", page.Total).Debug("resource fetch settled")
	return nil
}

func (s *Store[T]) update(mutate func(state *State[T])) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state.clone()
	subscribers := make([]func(State[T]), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}
