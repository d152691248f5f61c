package auth

import (
	"sync"

	"menlo.ai/catalog-admin/app/utils/ptr"
)

// Session is the externally owned session value observed by the Bridge.
type Session struct {
	AccessToken  *string `json:"access_token,omitempty"`
	RefreshToken *string `json:"refresh_token,omitempty"`
}

// State is the local copy of the session tokens. IsAuthenticated is true
// exactly when AccessToken is set.
type State struct {
	AccessToken     *string
	RefreshToken    *string
	IsAuthenticated bool
}

func (s State) equal(other State) bool {
	return ptr.EqualString(s.AccessToken, other.AccessToken) &&
		ptr.EqualString(s.RefreshToken, other.RefreshToken) &&
		s.IsAuthenticated == other.IsAuthenticated
}

func (s State) clone() State {
	return State{
		AccessToken:     ptr.CloneString(s.AccessToken),
		RefreshToken:    ptr.CloneString(s.RefreshToken),
		IsAuthenticated: s.IsAuthenticated,
	}
}

// StateHolder owns the auth State of one session. It is written by the Bridge
// and by logout, and read by the LoginFlow and request handlers.
type StateHolder struct {
	// notifyMu serializes set so subscribers see changes in write order.
	notifyMu    sync.Mutex
	mu          sync.Mutex
	state       State
	subscribers map[int]func(prev, next State)
	nextSubID   int
}

func NewStateHolder() *StateHolder {
	return &StateHolder{
		subscribers: make(map[int]func(prev, next State)),
	}
}

func (h *StateHolder) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.clone()
}

func (h *StateHolder) IsAuthenticated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.IsAuthenticated
}

// SetTokens stores the tokens. An empty access token is treated as absent.
func (h *StateHolder) SetTokens(accessToken string, refreshToken *string) {
	if accessToken == "" {
		h.set(State{RefreshToken: ptr.CloneString(refreshToken)})
		return
	}
	h.set(State{
		AccessToken:     ptr.ToString(accessToken),
		RefreshToken:    ptr.CloneString(refreshToken),
		IsAuthenticated: true,
	})
}

// Clear drops both tokens. It is the logout path.
func (h *StateHolder) Clear() {
	h.set(State{})
}

// Subscribe registers fn to be called after every change, in the goroutine
// that made it. Changes are delivered one at a time in the order they were
// made, so fn must not write to the holder.
func (h *StateHolder) Subscribe(fn func(prev, next State)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSubID
	h.nextSubID++
	h.subscribers[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
}

func (h *StateHolder) set(next State) {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	h.mu.Lock()
	prev := h.state
	if prev.equal(next) {
		h.mu.Unlock()
		return
	}
	h.state = next
	subscribers := make([]func(prev, next State), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		subscribers = append(subscribers, fn)
	}
	h.mu.Unlock()

	for _, fn := range subscribers {
		fn(prev.clone(), next.clone())
	}
}
