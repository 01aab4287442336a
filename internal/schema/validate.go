// Package schema validates test reports and configuration files against the embedded JSON schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/execexam/schema"
)

var (
	configSchema *jsonschema.Schema
	reportSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{"config.schema.json", "report.schema.json"} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}

		reportSchema, err = compiler.Compile("report.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile report schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// ValidateReport validates JSON data against the test report schema.
// Only the shape of known fields is checked; absent top-level fields are
// left for the extractors to report.
func ValidateReport(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := reportSchema.Validate(v); err != nil {
		return fmt.Errorf("report validation failed: %w", err)
	}

	return nil
}

// ValidateValue validates an already decoded value against the config schema.
// Values must use JSON-compatible types (maps with string keys, slices, numbers).
func ValidateValue(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode config for validation: %w", err)
	}
	return ValidateConfig(data)
}
