// Package advise selects the report sections to show and asks a language
// model for advice on failing tests.
package advise

import (
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/errors"
)

// ReportType names one section of the output.
type ReportType string

const (
	ReportAll            ReportType = "all"
	ReportSetup          ReportType = "setup"          // parameter information
	ReportTestOutput     ReportType = "testoutput"     // captured output and run summary
	ReportTestFailures   ReportType = "testfailures"   // failing test details
	ReportTestCodes      ReportType = "testcodes"      // source of failing tests
	ReportTestAssertions ReportType = "testassertions" // recorded assertions
	ReportTestAdvice     ReportType = "testadvice"     // advice from a language model
)

// reportTypes lists every concrete type in display order.
var reportTypes = []ReportType{
	ReportSetup,
	ReportTestOutput,
	ReportTestFailures,
	ReportTestCodes,
	ReportTestAssertions,
	ReportTestAdvice,
}

// Selection is a set of report types.
type Selection struct {
	set map[ReportType]bool
}

// Has reports whether t is selected.
func (s Selection) Has(t ReportType) bool {
	return s.set[t]
}

// Types returns the selected types in display order.
func (s Selection) Types() []ReportType {
	var types []ReportType
	for _, t := range reportTypes {
		if s.set[t] {
			types = append(types, t)
		}
	}
	return types
}

// String joins the selected types with commas.
func (s Selection) String() string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

// ParseReportTypes builds a selection from names. Each value may hold several
// comma-separated names. No names selects "all".
//
// "all" selects every section except testadvice, which needs a model and a
// network connection and is only shown when named explicitly.
func ParseReportTypes(values []string) (Selection, error) {
	sel := Selection{set: make(map[ReportType]bool)}
	seen := false
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			seen = true
			if err := sel.add(ReportType(name)); err != nil {
				return Selection{}, err
			}
		}
	}
	if !seen {
		_ = sel.add(ReportAll)
	}
	return sel, nil
}

func (s Selection) add(t ReportType) error {
	if t == ReportAll {
		for _, rt := range reportTypes {
			if rt != ReportTestAdvice {
				s.set[rt] = true
			}
		}
		return nil
	}
	for _, rt := range reportTypes {
		if rt == t {
			s.set[t] = true
			return nil
		}
	}
	return errors.Configf("unknown report type %q (valid: %s)", t, validReportNames())
}

func validReportNames() string {
	names := []string{string(ReportAll)}
	for _, t := range reportTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// Method is how advice is requested.
type Method string

const (
	// MethodAPIKey calls a hosted OpenAI-compatible API with a key from the environment.
	MethodAPIKey Method = "apikey"
	// MethodAPIServer calls a self-hosted OpenAI-compatible server without a key.
	MethodAPIServer Method = "apiserver"
)

// ParseMethod parses an advice method name. The empty name selects MethodAPIKey.
func ParseMethod(name string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return MethodAPIKey, nil
	case MethodAPIKey, MethodAPIServer:
		return m, nil
	default:
		return "", errors.Configf("unknown advice method %q (valid: %s, %s)", name, MethodAPIKey, MethodAPIServer)
	}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	return string(m)
}
