// Package session holds the in-memory view of the current authentication
// state, layered over the persistent token store. One Manager exists per
// process, constructed by the composition root and passed to consumers; there
// is no hidden singleton.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/logitrans/navigo-go/auth"
	"github.com/logitrans/navigo-go/token"
)

// State is the observable session snapshot. Loading is true only between
// construction and the first derivation.
type State struct {
	User            *token.Claims
	IsAuthenticated bool
	Loading         bool
}

// Listener receives the new state after every change. Notifications are
// delivered synchronously on the mutating call.
type Listener func(State)

// Manager derives the session state from the auth service and fans changes
// out to subscribers. It does not synchronize across processes: two processes
// sharing a store file can observe stale state until they next re-derive.
type Manager struct {
	authService *auth.Service

	lock      sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
	disposed  bool
}

// NewManager creates a Manager and synchronously derives the initial state,
// so Loading is already false by the time the constructor returns.
func NewManager(authService *auth.Service) (*Manager, error) {
	if authService == nil {
		return nil, errors.New("[NewManager] auth service is required")
	}

	m := &Manager{
		authService: authService,
		state:       State{Loading: true},
		listeners:   make(map[int]Listener),
	}
	m.CheckAuthStatus()
	return m, nil
}

// Current returns the latest session snapshot.
func (m *Manager) Current() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

// Subscribe registers a listener and returns its unsubscribe function.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.lock.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.lock.Unlock()

	return func() {
		m.lock.Lock()
		delete(m.listeners, id)
		m.lock.Unlock()
	}
}

// CheckAuthStatus re-derives the session from the auth service.
func (m *Manager) CheckAuthStatus() State {
	authenticated := m.authService.IsAuthenticated()
	user := m.authService.CurrentUser()

	return m.setState(State{
		User:            user,
		IsAuthenticated: authenticated,
		Loading:         false,
	})
}

// Login calls through to the auth service and re-derives on success.
func (m *Manager) Login(ctx context.Context, creds auth.Credentials) auth.LoginResult {
	result := m.authService.Login(ctx, creds)
	if result.Success {
		m.CheckAuthStatus()
	}
	return result
}

// Logout ends the session. The state is reset even when the backend call
// failed, mirroring the store-always-clears contract of the auth service.
func (m *Manager) Logout(ctx context.Context) auth.Result {
	result := m.authService.Logout(ctx)
	m.setState(State{User: nil, IsAuthenticated: false, Loading: false})
	return result
}

// Dispose drops all listeners. Further notifications are suppressed; the
// manager itself remains readable.
func (m *Manager) Dispose() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.listeners = make(map[int]Listener)
	m.disposed = true
}

func (m *Manager) setState(next State) State {
	m.lock.Lock()
	m.state = next
	listeners := make([]Listener, 0, len(m.listeners))
	if !m.disposed {
		for _, fn := range m.listeners {
			listeners = append(listeners, fn)
		}
	}
	m.lock.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}
