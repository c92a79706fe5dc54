package kernel

import "path/filepath"

// Default file sets used when the hosting application configures none.
var (
	defaultDotEnvFiles = []string{".env", ".env.dev", ".env.local"}
	defaultConfigFiles = []string{"config/app.yaml"}
)

// Config is the kernel configuration: base path, extension list, dotenv
// file names and config file names. Built fluently by the hosting
// application before kernel creation and never mutated afterwards.
type Config struct {
	basePath    string
	extensions  []Extension
	dotEnvFiles []string
	configFiles []string
}

// NewConfig creates a kernel configuration rooted at basePath.
func NewConfig(basePath string) *Config {
	return &Config{
		basePath:    basePath,
		dotEnvFiles: append([]string(nil), defaultDotEnvFiles...),
		configFiles: append([]string(nil), defaultConfigFiles...),
	}
}

// WithExtension appends one extension. Registration order is
// invocation order for both lifecycle hooks.
func (c *Config) WithExtension(ext Extension) *Config {
	c.extensions = append(c.extensions, ext)
	return c
}

// WithExtensions appends extensions in the given order.
func (c *Config) WithExtensions(exts ...Extension) *Config {
	for _, ext := range exts {
		c.WithExtension(ext)
	}
	return c
}

// WithConfigFile appends one config file name.
func (c *Config) WithConfigFile(name string) *Config {
	c.configFiles = append(c.configFiles, name)
	return c
}

// WithConfigFiles appends config file names in the given order.
func (c *Config) WithConfigFiles(names ...string) *Config {
	for _, name := range names {
		c.WithConfigFile(name)
	}
	return c
}

// WithDotEnvs replaces the dotenv file set entirely.
func (c *Config) WithDotEnvs(names ...string) *Config {
	c.dotEnvFiles = append([]string(nil), names...)
	return c
}

// BasePath returns the application root exactly as constructed.
func (c *Config) BasePath() string {
	return c.basePath
}

// Extensions returns the extensions in registration order.
func (c *Config) Extensions() []Extension {
	return c.extensions
}

// ConfigFiles returns the configured file names, unresolved.
func (c *Config) ConfigFiles() []string {
	return c.configFiles
}

// DotEnvs returns the dotenv paths resolved against the base path, in
// configured order. No existence checking happens here; the kernel's
// env-loading step skips missing files.
func (c *Config) DotEnvs() []string {
	paths := make([]string, len(c.dotEnvFiles))
	for i, name := range c.dotEnvFiles {
		paths[i] = filepath.Join(c.basePath, name)
	}
	return paths
}
