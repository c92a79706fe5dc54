package appconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind decodes the config section at key into target and validates it
// with `validate` struct tags. An absent section leaves target at its
// zero value and only runs validation.
func Bind(values *Values, key string, target any) error {
	if section, ok := values.Get(key); ok {
		// Round-trip through YAML so map[string]any sections decode into
		// typed structs with the usual tag handling.
		raw, err := yaml.Marshal(section)
		if err != nil {
			return fmt.Errorf("bind %q: %w", key, err)
		}
		if err := yaml.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("bind %q: %w", key, err)
		}
	}

	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("validate %q: %w", key, err)
	}
	return nil
}
