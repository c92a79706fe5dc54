package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Values holds the merged application configuration loaded from the
// configured config files.
type Values struct {
	data map[string]any
}

// NewValues wraps an existing configuration map.
func NewValues(data map[string]any) *Values {
	if data == nil {
		data = make(map[string]any)
	}
	return &Values{data: data}
}

// LoadValues reads and merges the given config files in order; later
// files override earlier ones key by key (maps merge recursively).
// Missing files are skipped. YAML and TOML are selected by extension.
func LoadValues(paths []string) (*Values, error) {
	merged := make(map[string]any)

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		doc := make(map[string]any)
		switch ext := filepath.Ext(path); ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case ".toml":
			if err := toml.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
		}

		mergeMaps(merged, doc)
	}

	return &Values{data: merged}, nil
}

// Get returns the value at a dot-separated key path.
func (v *Values) Get(key string) (any, bool) {
	current := any(v.data)
	for _, part := range strings.Split(key, ".") {
		section, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = section[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String returns the string value at a key path; ok is false when the
// key is absent or not a string.
func (v *Values) String(key string) (string, bool) {
	val, ok := v.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// Section returns the map value at a key path.
func (v *Values) Section(key string) (map[string]any, bool) {
	val, ok := v.Get(key)
	if !ok {
		return nil, false
	}
	section, ok := val.(map[string]any)
	return section, ok
}

// Has reports whether a key path is present.
func (v *Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

func mergeMaps(dst, src map[string]any) {
	for key, val := range src {
		if srcMap, ok := val.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, srcMap)
				continue
			}
		}
		dst[key] = val
	}
}
