// Package report models the JSON report written by pytest's json-report plugin.
package report

import "strings"

// Outcome is the result of a single test or test stage.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeError   Outcome = "error"
	OutcomeXFailed Outcome = "xfailed"
	OutcomeXPassed Outcome = "xpassed"
)

// nodeSeparator separates the file portion of a node id from the test name.
const nodeSeparator = "::"

// Report is the root of a test-run report.
//
// Keys the report carries but nothing displays (keywords, setup, teardown,
// environment, collectors, warnings) are not modelled and are dropped on decode.
type Report struct {
	Root     string     `json:"root,omitempty"`
	Created  float64    `json:"created,omitempty"`
	Duration float64    `json:"duration,omitempty"`
	ExitCode int        `json:"exitcode"`
	Summary  Mapping    `json:"summary"`
	Tests    []TestCase `json:"tests"`
}

// TestCase is one executed test.
type TestCase struct {
	NodeID     string    `json:"nodeid"`
	LineNo     int       `json:"lineno,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	Call       *Call     `json:"call,omitempty"`
	Assertions []Mapping `json:"assertions,omitempty"`
}

// Call is the stage that ran the test body.
type Call struct {
	Duration float64 `json:"duration,omitempty"`
	Outcome  Outcome `json:"outcome,omitempty"`
	Crash    *Crash  `json:"crash,omitempty"`
	Longrepr string  `json:"longrepr,omitempty"`
	Stdout   string  `json:"stdout,omitempty"`
}

// Crash locates the exception that failed a test.
type Crash struct {
	Path    string `json:"path,omitempty"`
	LineNo  int    `json:"lineno"`
	Message string `json:"message"`
}

// Failed reports whether the test's outcome is "failed".
func (tc *TestCase) Failed() bool {
	return tc.Outcome == OutcomeFailed
}

// Crash returns the crash record of the call stage, or nil.
func (tc *TestCase) Crash() *Crash {
	if tc.Call == nil {
		return nil
	}
	return tc.Call.Crash
}

// Name returns the segment of the node id after the last "::".
func (tc *TestCase) Name() string {
	if i := strings.LastIndex(tc.NodeID, nodeSeparator); i >= 0 {
		return tc.NodeID[i+len(nodeSeparator):]
	}
	return tc.NodeID
}

// File returns the segment of the node id before the first "::".
func (tc *TestCase) File() string {
	if i := strings.Index(tc.NodeID, nodeSeparator); i >= 0 {
		return tc.NodeID[:i]
	}
	return tc.NodeID
}

// Selector returns everything after the file portion of the node id,
// including class names for tests that live in classes.
func (tc *TestCase) Selector() string {
	if i := strings.Index(tc.NodeID, nodeSeparator); i >= 0 {
		return tc.NodeID[i+len(nodeSeparator):]
	}
	return ""
}

// Count returns the summary counter for an outcome.
func (r *Report) Count(outcome string) (int, bool) {
	v, ok := r.Summary.Get(outcome)
	if !ok {
		return 0, false
	}
	return v.Int()
}
