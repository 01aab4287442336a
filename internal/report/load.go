package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/schema"
)

// Parse validates data against the report schema and decodes it.
func Parse(data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, errors.Report("empty report", nil)
	}
	if err := schema.ValidateReport(data); err != nil {
		return nil, errors.Report("malformed report", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Report("failed to decode report", err)
	}
	return &r, nil
}

// Decode reads a whole report from r.
func Decode(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Report("failed to read report", err)
	}
	return Parse(data)
}

// Load reads and parses a report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Report(fmt.Sprintf("failed to read report %s", path), err)
	}
	return Parse(data)
}
