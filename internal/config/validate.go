package config

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/advise"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// reportFlags are added by the runner and must not be configured.
var reportFlags = []string{"--json-report", "--json-report-file"}

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if err := validateRunner(cfg.Runner); err != nil {
		return err
	}
	if err := validateLookup(cfg.Lookup); err != nil {
		return err
	}
	if cfg.Display.ElideDepth < 1 {
		return &ValidationError{Field: "display.elide_depth", Message: "must be at least 1"}
	}
	if _, err := advise.ParseReportTypes(cfg.Display.Report); err != nil {
		return &ValidationError{Field: "display.report", Message: err.Error()}
	}
	return validateAdvice(cfg.Advice)
}

func validateRunner(r RunnerConfig) error {
	if strings.TrimSpace(r.Python) == "" {
		return &ValidationError{Field: "runner.python", Message: "must not be empty"}
	}
	for _, arg := range r.Args {
		for _, flag := range reportFlags {
			if arg == flag || strings.HasPrefix(arg, flag+"=") {
				return &ValidationError{
					Field:   "runner.args",
					Message: fmt.Sprintf("%s is managed by execexam and cannot be set", flag),
				}
			}
		}
	}
	for key := range r.Env {
		if key == "" || strings.Contains(key, "=") {
			return &ValidationError{Field: "runner.env", Message: fmt.Sprintf("invalid variable name %q", key)}
		}
	}
	return nil
}

func validateLookup(l LookupConfig) error {
	if !l.IsEnabled() {
		return nil
	}
	if strings.TrimSpace(l.Command) == "" {
		return &ValidationError{Field: "lookup.command", Message: "must not be empty when lookup is enabled"}
	}
	return nil
}

func validateAdvice(a AdviceConfig) error {
	if _, err := advise.ParseMethod(a.Method); err != nil {
		return &ValidationError{Field: "advice.method", Message: err.Error()}
	}
	if strings.TrimSpace(a.KeyEnv) == "" || strings.Contains(a.KeyEnv, "=") {
		return &ValidationError{Field: "advice.key_env", Message: fmt.Sprintf("invalid variable name %q", a.KeyEnv)}
	}
	return nil
}
