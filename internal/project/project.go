package project

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
)

// Project is an examinee's project prepared for a test run.
type Project struct {
	Dir        string // Absolute project directory, added to the import path of the tests
	Tests      string // Absolute test file or directory
	Config     *config.Config
	ConfigPath string // Empty when defaults are in use
}

// Load resolves the project and test paths and loads configuration.
// An explicit configPath must exist; otherwise the configuration is discovered
// from the project directory upwards and defaults apply when none is found.
func Load(projectDir, testsPath, configPath string) (*Project, error) {
	dir, err := resolveExisting("project directory", projectDir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Configf("project path is not a directory: %s", dir)
	}

	tests, err := resolveExisting("test file or directory", testsPath)
	if err != nil {
		return nil, err
	}

	cfg, path, err := loadConfig(dir, configPath)
	if err != nil {
		return nil, err
	}

	return &Project{
		Dir:        dir,
		Tests:      tests,
		Config:     cfg,
		ConfigPath: path,
	}, nil
}

func loadConfig(dir, configPath string) (*config.Config, string, error) {
	if configPath == "" {
		found, err := FindConfigFrom(dir)
		if stderrors.Is(err, ErrNoConfig) {
			return config.Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		configPath = found
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, "", errors.NotFound("config file", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", errors.Configf("failed to load configuration %s: %v", configPath, err)
	}
	return cfg, configPath, nil
}

func resolveExisting(what, path string) (string, error) {
	if path == "" {
		return "", errors.Configf("%s is required", what)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", what, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", errors.NotFound(what, path)
	}
	return abs, nil
}
