package workspace

import (
	"sync"

	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/product"
	"menlo.ai/catalog-admin/app/domain/resource"
	"menlo.ai/catalog-admin/app/domain/user"
	"menlo.ai/catalog-admin/app/utils/logger"
)

// DashboardPath is where the login flow navigates once the session authenticates.
const DashboardPath = "/dashboard"

// Workspace is the state of one browser session: its resource stores with
// their caches and its auth state.
type Workspace struct {
	ID       string
	Products *product.ProductService
	Users    *user.UserService
	Auth     *auth.StateHolder
	Bridge   *auth.Bridge
	Flow     *auth.LoginFlow

	mu          sync.Mutex
	redirect    string
	unsubscribe []func()
}

func newWorkspace(id string, productClient product.ProductClient, userClient user.UserClient) *Workspace {
	holder := auth.NewStateHolder()
	ws := &Workspace{
		ID:       id,
		Products: product.NewService(productClient),
		Users:    user.NewService(userClient),
		Auth:     holder,
		Bridge:   auth.NewBridge(holder),
	}
	ws.Flow = auth.NewLoginFlow(holder, ws.navigate)
	ws.unsubscribe = []func(){
		ws.Products.Subscribe(logSettled[product.Product](id, product.ResourceKind)),
		ws.Users.Subscribe(logSettled[user.User](id, user.ResourceKind)),
	}
	return ws
}

// logSettled logs every snapshot that ends a fetch.
func logSettled[T any](sessionID string, kind string) func(resource.State[T]) {
	return func(state resource.State[T]) {
		if state.Loading {
			return
		}
		log := logger.GetLogger().WithFields(logrus.Fields{
			"session_id": sessionID,
			"kind":       kind,
			"items":      len(state.Items),
			"total":      state.Total,
		})
		if state.Error != nil {
			log.WithField("error", *state.Error).Debug("workspace resource settled with error")
			return
		}
		log.Debug("workspace resource settled")
	}
}

// Observe runs the bridge for one observation of the external session. The
// login flow, if it fires, has recorded its redirect by the time Observe returns.
func (w *Workspace) Observe(session *auth.Session) {
	w.Bridge.Sync(session)
}

// TakeRedirect returns the pending navigation target once.
func (w *Workspace) TakeRedirect() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.redirect == "" {
		return "", false
	}
	target := w.redirect
	w.redirect = ""
	return target, true
}

func (w *Workspace) navigate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.redirect = DashboardPath
}

func (w *Workspace) close() {
	w.Auth.Clear()
	w.Flow.Close()
	for _, unsubscribe := range w.unsubscribe {
		unsubscribe()
	}
}
