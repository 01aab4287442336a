// Package testhelper loads golden report cases for tests.
//
// A case is a JSON file holding a test-run report and the text each
// extraction is expected to produce from it:
//
//	{
//	  "description": "one failing test",
//	  "elide_depth": 4,
//	  "report": {"summary": {...}, "tests": [...]},
//	  "want": {
//	    "summary": "Details: 1 failed, 1 total",
//	    "failing": "\n  Name: ...\n",
//	    "names": ["test_x"],
//	    "assertions": ""
//	  }
//	}
//
// Expectations left out of "want" are not checked. When "want.error" is set
// it names the error kind the extraction must fail with.
package testhelper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Case is one golden report case.
type Case struct {
	// Name is derived from the file name.
	Name string `json:"-"`

	Description string          `json:"description,omitempty"`
	Skip        bool            `json:"skip,omitempty"`
	ElideDepth  int             `json:"elide_depth,omitempty"`
	Report      json.RawMessage `json:"report"`
	Want        Want            `json:"want"`
}

// Want holds the expected extraction results. Nil fields are not checked.
type Want struct {
	Summary    *string  `json:"summary,omitempty"`
	Failing    *string  `json:"failing,omitempty"`
	Names      []string `json:"names,omitempty"`
	Assertions *string  `json:"assertions,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// LoadCase loads a single case from a JSON file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(c.Report) == 0 {
		return nil, fmt.Errorf("%s: case has no report", filepath.Base(path))
	}

	c.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	return &c, nil
}

// LoadCases loads every *.json case in dir, sorted by name.
func LoadCases(dir string) ([]Case, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	cases := make([]Case, 0, len(files))
	for _, f := range files {
		c, err := LoadCase(f)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *c)
	}
	return cases, nil
}
