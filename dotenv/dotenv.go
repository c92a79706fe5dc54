// Package dotenv loads conventional .env files into the process
// environment.
package dotenv

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load loads each existing file into the process environment, in the
// given order. Missing files are silently skipped. Variables already
// present in the environment are never overridden, so earlier files and
// the real environment win over later files. Returns the paths actually
// loaded.
func Load(paths ...string) ([]string, error) {
	loaded := make([]string, 0, len(paths))

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return loaded, fmt.Errorf("stat %s: %w", path, err)
		}

		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}

	return loaded, nil
}
