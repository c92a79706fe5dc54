package errhandler

import "sync"

// Manager owns the single active error-handler slot. The active handler
// is an explicit field here rather than ambient process state, so tests
// and embedded kernels each get their own sink.
type Manager struct {
	mu     sync.RWMutex
	active *Handler
}

// NewManager creates a manager with no active handler.
func NewManager() *Manager {
	return &Manager{}
}

// Activate installs the handler as the active error sink and disables
// the previously active one. Exactly one handler is registered after
// Activate returns.
func (m *Manager) Activate(h *Handler) {
	if h == nil {
		return
	}

	m.mu.Lock()
	previous := m.active
	m.active = h
	m.mu.Unlock()

	h.register()
	if previous != nil && previous != h {
		previous.Disable()
	}
}

// Active returns the currently registered handler, or nil before any
// activation.
func (m *Manager) Active() *Handler {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}
