// Package event provides the kernel's lifecycle events and the bus they
// are dispatched on.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle event names produced by the factory.
const (
	KernelBooted     = "kernel.booted"
	BeforeKernelRun  = "kernel.run.before"
	KernelTerminated = "kernel.terminated"
)

// Event is a named occurrence with an identity and a timestamp.
type Event struct {
	ID         uuid.UUID
	Name       string
	OccurredAt time.Time
}

// Factory produces the kernel lifecycle events.
type Factory struct{}

// NewFactory creates an event factory.
func NewFactory() *Factory {
	return &Factory{}
}

// KernelBooted returns the event dispatched once boot completes.
func (f *Factory) KernelBooted() Event {
	return f.make(KernelBooted)
}

// BeforeKernelRun returns the event dispatched before the runner starts.
func (f *Factory) BeforeKernelRun() Event {
	return f.make(BeforeKernelRun)
}

// KernelTerminated returns the event dispatched after the runner returns.
func (f *Factory) KernelTerminated() Event {
	return f.make(KernelTerminated)
}

func (f *Factory) make(name string) Event {
	return Event{
		ID:         uuid.New(),
		Name:       name,
		OccurredAt: time.Now(),
	}
}
