package resource

import (
	"slices"
	"sync"
)

// Page is one page of a resource listing as returned by the remote API.
type Page[T any] struct {
	Items []T
	Total int
}

func (p Page[T]) clone() Page[T] {
	items := slices.Clone(p.Items)
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: p.Total}
}

// Cache memoizes pages by query key for the lifetime of its store. Entries are
// written once and never replaced or evicted.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]Page[T]
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]Page[T]),
	}
}

func (c *Cache[T]) Get(key string) (Page[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return Page[T]{}, false
	}
	return entry.clone(), true
}

// Put stores page under key unless the key is already present. It reports
// whether the entry was written.
func (c *Cache[T]) Put(key string, page Page[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false
	}
	c.entries[key] = page.clone()
	return true
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
