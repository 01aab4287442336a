// Package project resolves the examinee's project, its tests and its configuration.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the execexam configuration directory.
const ConfigDirName = ".execexam"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.yml"

// ErrNoConfig is returned when no .execexam/config.yml exists in the directory or any parent.
var ErrNoConfig = errors.New(".execexam/config.yml not found in the project directory or any parent")

// FindConfigFrom walks up from the given directory until it finds .execexam/config.yml
// and returns the path of that file.
func FindConfigFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoConfig
		}
		dir = parent
	}
}
