package config

// Default values applied to configuration.
const (
	DefaultPython        = "python3"
	DefaultLookupCommand = "symbex"
	DefaultElideDepth    = 4
	DefaultAdviceMethod  = "apikey"
	DefaultAdviceKeyEnv  = "OPENAI_API_KEY"
)

// DefaultPytestArgs keep pytest quiet so the captured output stays short:
// no tracebacks, no logging or warnings plugins, stdout not captured per test.
var DefaultPytestArgs = []string{
	"-q",
	"-ra",
	"-s",
	"-p", "no:logging",
	"-p", "no:warnings",
	"--tb=no",
}

// DefaultLookupArgs print one function's source from one file.
var DefaultLookupArgs = []string{"{name}", "-f", "{path}"}

// applyDefaults fills in unset configuration values.
func applyDefaults(cfg *Config) {
	if cfg.Runner.Python == "" {
		cfg.Runner.Python = DefaultPython
	}
	if cfg.Runner.Args == nil {
		cfg.Runner.Args = append([]string(nil), DefaultPytestArgs...)
	}
	if cfg.Lookup.Command == "" {
		cfg.Lookup.Command = DefaultLookupCommand
		if cfg.Lookup.Args == nil {
			cfg.Lookup.Args = append([]string(nil), DefaultLookupArgs...)
		}
	}
	if cfg.Display.ElideDepth == 0 {
		cfg.Display.ElideDepth = DefaultElideDepth
	}
	if cfg.Advice.Method == "" {
		cfg.Advice.Method = DefaultAdviceMethod
	}
	if cfg.Advice.KeyEnv == "" {
		cfg.Advice.KeyEnv = DefaultAdviceKeyEnv
	}
}
