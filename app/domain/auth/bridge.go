package auth

import (
	"sync"

	"menlo.ai/catalog-admin/app/utils/logger"
)

// Bridge copies tokens from the external session into a StateHolder. It never
// clears the holder.
type Bridge struct {
	holder *StateHolder
}

func NewBridge(holder *StateHolder) *Bridge {
	return &Bridge{holder: holder}
}

// Sync may be called on every observation of the session; repeated calls with
// the same tokens leave the holder unchanged.
func (b *Bridge) Sync(session *Session) {
	if session == nil || session.AccessToken == nil || *session.AccessToken == "" {
		return
	}
	b.holder.SetTokens(*session.AccessToken, session.RefreshToken)
}

type FlowState int

const (
	FlowUnauthenticated FlowState = iota
	FlowAuthenticated
)

func (s FlowState) String() string {
	switch s {
	case FlowAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// LoginFlow fires navigate once each time the holder flips from
// unauthenticated to authenticated.
type LoginFlow struct {
	mu          sync.Mutex
	state       FlowState
	navigate    func()
	unsubscribe func()
}

func NewLoginFlow(holder *StateHolder, navigate func()) *LoginFlow {
	flow := &LoginFlow{navigate: navigate}
	if holder.IsAuthenticated() {
		flow.state = FlowAuthenticated
	}
	flow.unsubscribe = holder.Subscribe(flow.onChange)
	return flow
}

func (f *LoginFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *LoginFlow) Close() {
	f.unsubscribe()
}

func (f *LoginFlow) onChange(prev, next State) {
	f.mu.Lock()
	fire := false
	switch {
	case f.state == FlowUnauthenticated && !prev.IsAuthenticated && next.IsAuthenticated:
		f.state = FlowAuthenticated
		fire = true
	case f.state == FlowAuthenticated && !next.IsAuthenticated:
		f.state = FlowUnauthenticated
	}
	f.mu.Unlock()

	if fire {
		logger.GetLogger().Debug("login flow authenticated")
		f.navigate()
	}
}
