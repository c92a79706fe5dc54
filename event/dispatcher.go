package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hearthstack/hearth/logging"
	"github.com/hearthstack/hearth/monitoring"
)

// Handler reacts to a dispatched event.
type Handler func(ctx context.Context, e Event) error

// Dispatcher accepts an event and delivers it to interested handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// Bus is the default synchronous dispatcher: handlers run in subscription
// order on the dispatching goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewBus creates a bus logging through the given logger.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// WithMetrics attaches a metrics collector; dispatches are counted per
// event name.
func (b *Bus) WithMetrics(m *monitoring.Metrics) *Bus {
	b.metrics = m
	return b
}

// Subscribe registers a handler for an event name.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], h)
	b.mu.Unlock()
}

// Dispatch delivers the event to every handler subscribed to its name.
// The first handler error stops delivery and is returned.
func (b *Bus) Dispatch(ctx context.Context, e Event) error {
	b.mu.RLock()
	handlers := b.handlers[e.Name]
	b.mu.RUnlock()

	b.logger.Debug("Dispatching event",
		zap.String("event", e.Name),
		zap.String("id", e.ID.String()),
		zap.Int("handlers", len(handlers)),
	)
	if b.metrics != nil {
		b.metrics.RecordEvent(e.Name)
	}

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			b.logger.Error("Event handler failed",
				zap.String("event", e.Name),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}
