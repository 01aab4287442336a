// Package config loads the optional execexam configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/execexam/internal/schema"
)

// Config is the root of an execexam configuration file.
type Config struct {
	Runner  RunnerConfig  `yaml:"runner"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Display DisplayConfig `yaml:"display"`
	Advice  AdviceConfig  `yaml:"advice"`
}

// RunnerConfig controls how the test suite is invoked.
type RunnerConfig struct {
	Python string            `yaml:"python"` // Interpreter used for "python -m pytest"
	Args   []string          `yaml:"args"`   // Extra pytest arguments, placed before the report flags
	Env    map[string]string `yaml:"env"`    // Additional environment for the test process
}

// LookupConfig controls how failing test source is located.
// Args may contain the placeholders {name} and {path}.
type LookupConfig struct {
	Enabled *bool    `yaml:"enabled"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// DisplayConfig controls report rendering.
type DisplayConfig struct {
	ElideDepth int      `yaml:"elide_depth"`
	ShowReport bool     `yaml:"show_report"`
	Report     []string `yaml:"report"` // Report sections to print; empty means all
}

// AdviceConfig controls the optional test advice section.
// Model and Server are checked only when advice is requested.
type AdviceConfig struct {
	Model  string `yaml:"model"`
	Method string `yaml:"method"`  // apikey or apiserver
	Server string `yaml:"server"`  // Base URL of the chat completions API
	KeyEnv string `yaml:"key_env"` // Environment variable holding the API key
}

// IsEnabled reports whether source lookup should run.
func (l LookupConfig) IsEnabled() bool {
	return l.Enabled == nil || *l.Enabled
}

// Load reads and parses a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if raw != nil {
		if err := schema.ValidateValue(raw); err != nil {
			return nil, err
		}
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && raw != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
