package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// findEnvFile walks up from the working directory until it finds name, so
// the binary and `go test` in a sub-package resolve the same project .env.
func findEnvFile(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find %s file", name)
		}
		dir = parent
	}
}
