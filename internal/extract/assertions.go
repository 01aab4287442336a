package extract

import (
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/report"
)

// FormatAssertion renders one assertion record as a bulleted block with a
// hanging indent, one line per attribute in record order.
func FormatAssertion(a report.Mapping) string {
	var b strings.Builder
	for i, e := range a {
		if i == 0 {
			b.WriteString("  - ")
		} else {
			b.WriteString("    ")
		}
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(e.Value.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatAssertionList concatenates the blocks of several assertion records.
func FormatAssertionList(assertions []report.Mapping) string {
	var b strings.Builder
	for _, a := range assertions {
		b.WriteString(FormatAssertion(a))
	}
	return b.String()
}

// FormatAllAssertions renders the assertion blocks of every test that has
// assertions, each under a blank line and the test's short name. Tests
// without assertions contribute nothing.
func FormatAllAssertions(tests []report.TestCase) string {
	var b strings.Builder
	for i := range tests {
		tc := &tests[i]
		if len(tc.Assertions) == 0 {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(ShortName(tc))
		b.WriteByte('\n')
		b.WriteString(FormatAssertionList(tc.Assertions))
	}
	return b.String()
}

// ShortName returns the test's node id with the file portion reduced to its base name.
func ShortName(tc *report.TestCase) string {
	file := filepath.Base(filepath.FromSlash(tc.File()))
	if sel := tc.Selector(); sel != "" {
		return file + "::" + sel
	}
	return file
}
