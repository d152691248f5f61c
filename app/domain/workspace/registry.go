package workspace

import (
	"sync"

	"menlo.ai/catalog-admin/app/domain/product"
	"menlo.ai/catalog-admin/app/domain/user"
	"menlo.ai/catalog-admin/app/utils/logger"
)

// CatalogClient serves both resource stores.
type CatalogClient interface {
	product.ProductClient
	user.UserClient
}

// Registry keeps one Workspace per session ID until logout.
type Registry struct {
	client CatalogClient

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewRegistry(client CatalogClient) *Registry {
	return &Registry{
		client:     client,
		workspaces: make(map[string]*Workspace),
	}
}

func (r *Registry) GetOrCreate(sessionID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.workspaces[sessionID]; ok {
		return ws
	}
	ws := newWorkspace(sessionID, r.client, r.client)
	r.workspaces[sessionID] = ws
	logger.GetLogger().WithField("session_id", sessionID).Debug("workspace created")
	return ws
}

func (r *Registry) Get(sessionID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[sessionID]
	return ws, ok
}

// Remove clears the workspace's auth state and forgets it along with its caches.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	ws, ok := r.workspaces[sessionID]
	delete(r.workspaces, sessionID)
	r.mu.Unlock()
	if ok {
		ws.close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Sweep removes every workspace whose session is no longer live and returns
// how many were removed.
func (r *Registry) Sweep(live func(sessionID string) bool) int {
	r.mu.Lock()
	ids := make([]string, 0, len(r.workspaces))
	for id := range r.workspaces {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if live(id) {
			continue
		}
		r.Remove(id)
		removed++
	}
	return removed
}
