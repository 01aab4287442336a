package extract

import (
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/report"
)

// detailsPrefix starts every non-empty details line.
const detailsPrefix = "Details: "

// FormatDetails renders a mapping as "Details: <value> <key>, <value> <key>, ...".
// An empty mapping renders as the empty string.
func FormatDetails(m report.Mapping) string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m))
	for _, e := range m {
		parts = append(parts, e.Value.String()+" "+e.Key)
	}
	return detailsPrefix + strings.Join(parts, ", ")
}

// FormatRunSummary renders the report's outcome counters through FormatDetails.
// Counters appear exactly as the runner reported them, in report order.
func FormatRunSummary(r *report.Report) (string, error) {
	if r == nil || r.Summary == nil {
		return "", errors.MissingField("summary")
	}
	return FormatDetails(r.Summary), nil
}
