package kernel

import "github.com/hearthstack/hearth/container"

// Extension is a pluggable unit contributing service definitions and
// post-compile setup. Each extension is invoked exactly twice per boot:
// Configure before the container compiles, Boot after.
type Extension interface {
	// Configure may add or override service definitions and parameters.
	Configure(c *container.Container, cfg *Config) error

	// Boot performs runtime setup that needs resolved services.
	Boot(c *container.Container, cfg *Config) error
}
