// Package discovery auto-registers user-supplied service manifests found
// under the application directory.
//
// The kernel scans <basePath>/app for *.service.yaml manifests, skipping
// the bootstrap and config subtrees, and registers each manifest as a
// container definition under its declared identifier. Extensions and
// application code resolve the resulting Descriptor values.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"

	"github.com/hearthstack/hearth/container"
)

// ManifestPattern matches service manifests relative to the app dir.
const ManifestPattern = "**/*.service.yaml"

// Subtrees never scanned for manifests.
var excludedDirs = map[string]bool{
	"bootstrap": true,
	"config":    true,
}

// Descriptor is a user-declared service definition.
type Descriptor struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description"`
	Tags        []string       `yaml:"tags"`
	Params      map[string]any `yaml:"params"`

	// Path of the manifest the descriptor was loaded from.
	Path string `yaml:"-"`
}

// Scan finds service manifests under dir. A missing dir yields no
// manifests, matching the dotenv convention of optional inputs.
func Scan(dir string) ([]Descriptor, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}

	var (
		mu          sync.Mutex
		descriptors []Descriptor
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		match, matchErr := doublestar.Match(ManifestPattern, filepath.ToSlash(rel))
		if matchErr != nil {
			return matchErr
		}
		if !match {
			return nil
		}

		desc, loadErr := loadManifest(path)
		if loadErr != nil {
			return loadErr
		}

		mu.Lock()
		descriptors = append(descriptors, desc)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	return descriptors, nil
}

// Register scans dir and registers each manifest as a container
// definition under its identifier. Returns the registered descriptors.
func Register(c *container.Container, dir string) ([]Descriptor, error) {
	descriptors, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	for _, desc := range descriptors {
		if err := c.Set(desc.ID, func(c *container.Container) (any, error) {
			return &desc, nil
		}); err != nil {
			return nil, fmt.Errorf("register manifest %s: %w", desc.Path, err)
		}
	}

	return descriptors, nil
}

func loadManifest(path string) (Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var desc Descriptor
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return Descriptor{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if desc.ID == "" {
		return Descriptor{}, fmt.Errorf("manifest %s: missing id", path)
	}

	desc.Path = path
	return desc, nil
}
