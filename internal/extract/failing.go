package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/report"
)

// NoFailures is the display text of a run without failing tests.
const NoFailures = "\n"

// Failure describes one failing test for display and source lookup.
type Failure struct {
	NodeID   string
	TestName string // Node id segment after the last "::"
	TestPath string // File holding the failing code
	LineNo   int
	Message  string
}

// FailingTests is the result of ExtractFailingTests.
// Display and Failures list the same tests in the same order.
type FailingTests struct {
	Display  string
	Failures []Failure
}

// HasFailures reports whether any test failed.
func (ft *FailingTests) HasFailures() bool {
	return len(ft.Failures) > 0
}

// Names returns the test names of all failures in order.
func (ft *FailingTests) Names() []string {
	names := make([]string, 0, len(ft.Failures))
	for _, f := range ft.Failures {
		names = append(names, f.TestName)
	}
	return names
}

// ExtractFailingTests collects every test whose outcome is "failed".
//
// Each failure contributes a Name/Path/Line number/Message block to Display,
// blocks separated by a blank line, and one entry to Failures. Display always
// starts with a newline, so a run without failures yields exactly NoFailures.
// A failed test without call.crash data is a malformed report.
func ExtractFailingTests(r *report.Report, opts ...Option) (*FailingTests, error) {
	if r == nil || r.Tests == nil {
		return nil, errors.MissingField("tests")
	}
	o := newOptions(opts)

	var b strings.Builder
	b.WriteString(NoFailures)
	result := &FailingTests{Failures: []Failure{}}

	for i := range r.Tests {
		tc := &r.Tests[i]
		if !tc.Failed() {
			continue
		}
		crash := tc.Crash()
		if crash == nil {
			return nil, errors.MalformedCrash(tc.NodeID)
		}

		f := Failure{
			NodeID:   tc.NodeID,
			TestName: tc.Name(),
			TestPath: resolveTestPath(r.Root, tc, crash),
			LineNo:   crash.LineNo,
			Message:  crash.Message,
		}

		if len(result.Failures) > 0 {
			b.WriteByte('\n')
		}
		writeFailure(&b, f, o.depth)
		result.Failures = append(result.Failures, f)
	}

	result.Display = b.String()
	return result, nil
}

func writeFailure(b *strings.Builder, f Failure, depth int) {
	fmt.Fprintf(b, "  Name: %s\n", f.NodeID)
	fmt.Fprintf(b, "  Path: %s\n", ElidePath(f.TestPath, depth))
	fmt.Fprintf(b, "  Line number: %d\n", f.LineNo)
	fmt.Fprintf(b, "  Message: %s\n", f.Message)
}

// resolveTestPath locates the file of a failing test. The crash path wins when
// present, otherwise the node id's file portion is used. Relative paths are
// taken relative to the report root.
func resolveTestPath(root string, tc *report.TestCase, crash *report.Crash) string {
	source := crash.Path
	if source == "" {
		source = tc.File()
	}
	source = filepath.FromSlash(source)
	if filepath.IsAbs(source) || root == "" {
		return filepath.Clean(source)
	}
	return filepath.Join(root, source)
}
