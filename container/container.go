package container

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrCompiled is returned when a definition or parameter is written
	// after the container has been compiled.
	ErrCompiled = errors.New("container is compiled")

	// ErrNotFound is returned when no definition exists for an identifier.
	ErrNotFound = errors.New("service not found")
)

// Factory builds a service instance against the container it is
// registered in.
type Factory func(c *Container) (any, error)

// Container is the dependency registry: parameter values plus service
// definitions, resolved lazily by identifier. Compile is a one-way
// transition after which definitions and parameters are frozen.
type Container struct {
	mu          sync.RWMutex
	parameters  map[string]any
	definitions map[string]Factory
	resolved    map[string]any
	compiled    bool
}

// New creates an empty, open container.
func New() *Container {
	return &Container{
		parameters:  make(map[string]any),
		definitions: make(map[string]Factory),
		resolved:    make(map[string]any),
	}
}

// Set registers or overrides a service definition.
func (c *Container) Set(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for %q cannot be nil", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compiled {
		return fmt.Errorf("set %q: %w", id, ErrCompiled)
	}
	c.definitions[id] = factory
	// An override supersedes any instance built from the old definition.
	delete(c.resolved, id)
	return nil
}

// SetParameter registers or overrides a parameter value.
func (c *Container) SetParameter(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compiled {
		return fmt.Errorf("set parameter %q: %w", name, ErrCompiled)
	}
	c.parameters[name] = value
	return nil
}

// Parameter returns a parameter value by name.
func (c *Container) Parameter(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.parameters[name]
	return val, ok
}

// Has reports whether a definition exists for the identifier.
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.definitions[id]
	return ok
}

// Get resolves a service by identifier. Instances are memoized as
// singletons; overriding a definition before compilation discards the
// instance built from the old one, so services resolved eagerly during
// boot reflect a reserve configuration that later overrides replace.
func (c *Container) Get(id string) (any, error) {
	c.mu.RLock()
	if instance, ok := c.resolved[id]; ok {
		c.mu.RUnlock()
		return instance, nil
	}
	factory, ok := c.definitions[id]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	instance, err := factory(c)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", id, err)
	}

	c.mu.Lock()
	// Another caller may have resolved concurrently; keep the first.
	if cached, ok := c.resolved[id]; ok {
		instance = cached
	} else {
		c.resolved[id] = instance
	}
	c.mu.Unlock()

	return instance, nil
}

// Compile freezes all definitions and parameters. Idempotent.
func (c *Container) Compile() {
	c.mu.Lock()
	c.compiled = true
	c.mu.Unlock()
}

// Compiled reports whether the container has been compiled.
func (c *Container) Compiled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.compiled
}

// IDs returns the identifiers of all registered definitions.
func (c *Container) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.definitions))
	for id := range c.definitions {
		ids = append(ids, id)
	}
	return ids
}
