package appconfig

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Runtime holds the environment-derived bootstrap settings.
type Runtime struct {
	Environment string `envconfig:"APP_ENV" default:"prod"`
	Debug       string `envconfig:"APP_DEBUG" default:"0"`
	Locale      string `envconfig:"APP_LOCALE" default:""`
}

// LoadRuntime reads the bootstrap settings from the environment.
func LoadRuntime() (*Runtime, error) {
	var rt Runtime
	if err := envconfig.Process("", &rt); err != nil {
		return nil, fmt.Errorf("failed to load runtime settings: %w", err)
	}
	if rt.Environment == "" {
		rt.Environment = "prod"
	}
	return &rt, nil
}

// DebugEnabled reports whether the debug variable equals the literal "1".
func (r *Runtime) DebugEnabled() bool {
	return r.Debug == "1"
}
