package appconfig

import "sync"

// Context is the application runtime context produced during boot:
// running mode, base path, debug flag and locale.
type Context struct {
	mu          sync.RWMutex
	environment string
	basePath    string
	debug       bool
	locale      string
}

// NewContext creates an application context.
func NewContext(environment, basePath string, debug bool) *Context {
	return &Context{
		environment: environment,
		basePath:    basePath,
		debug:       debug,
	}
}

// Environment returns the running mode ("prod", "dev", ...).
func (c *Context) Environment() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.environment
}

// BasePath returns the application root directory.
func (c *Context) BasePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.basePath
}

// Debug reports whether debug mode is enabled.
func (c *Context) Debug() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.debug
}

// Locale returns the configured locale, empty when unset.
func (c *Context) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// SetLocale propagates a locale from the application configuration.
func (c *Context) SetLocale(locale string) {
	c.mu.Lock()
	c.locale = locale
	c.mu.Unlock()
}
