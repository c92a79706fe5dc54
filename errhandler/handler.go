package errhandler

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// Handler wraps one renderer and a debug flag. A handler moves between
// the states constructed, registered and unregistered; registration
// happens through a Manager, which keeps at most one handler active.
type Handler struct {
	mu         sync.RWMutex
	renderer   Renderer
	debug      bool
	registered bool
}

// New creates a handler in the constructed state.
func New(renderer Renderer, debug bool) *Handler {
	if renderer == nil {
		renderer = NewFallbackRenderer()
	}
	return &Handler{
		renderer: renderer,
		debug:    debug,
	}
}

// Handle renders the error through the wrapped renderer.
func (h *Handler) Handle(c *gin.Context, err error) {
	h.mu.RLock()
	renderer, debug := h.renderer, h.debug
	h.mu.RUnlock()
	renderer.Render(c, err, debug)
}

// Registered reports whether this handler is the active error sink.
func (h *Handler) Registered() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.registered
}

// Debug reports the handler's debug flag.
func (h *Handler) Debug() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.debug
}

// Disable removes the handler from the registered state. Disabling an
// already-unregistered handler is a no-op.
func (h *Handler) Disable() {
	h.mu.Lock()
	h.registered = false
	h.mu.Unlock()
}

func (h *Handler) register() {
	h.mu.Lock()
	h.registered = true
	h.mu.Unlock()
}
