// Package errors provides structured error types and exit codes for execexam.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success, no failing tests
	ExitRuntimeError     = 1 // Failing tests, runtime error, source lookup failure
	ExitConfigError      = 2 // Configuration error (invalid config, bad flags, etc.)
	ExitEnvironmentError = 3 // Environment error (interpreter missing, etc.)
	ExitReportError      = 4 // The test report violates its contract
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
	KindMissingField
	KindMalformedCrash
	KindReport
	KindLookup
	KindAdvice
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindEnvironment:
		return "environment"
	case KindMissingField:
		return "missing field"
	case KindMalformedCrash:
		return "malformed crash data"
	case KindReport:
		return "report"
	case KindLookup:
		return "lookup"
	case KindAdvice:
		return "advice"
	default:
		return "runtime"
	}
}

// ExecError is the base error type for execexam.
type ExecError struct {
	Kind    ErrorKind
	Message string
	Field   string // Report field if applicable
	Test    string // Test node id or name if applicable
	Cause   error  // Underlying error
}

func (e *ExecError) Error() string {
	if e.Test != "" {
		return fmt.Sprintf("[%s] %s", e.Test, e.Message)
	}
	return e.Message
}

func (e *ExecError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *ExecError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	case KindMissingField, KindMalformedCrash, KindReport:
		return ExitReportError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *ExecError {
	return &ExecError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *ExecError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *ExecError {
	return &ExecError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *ExecError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *ExecError {
	return &ExecError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *ExecError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *ExecError {
	return &ExecError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *ExecError {
	return &ExecError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// MissingField reports a required top-level report field that is absent.
func MissingField(field string) *ExecError {
	return &ExecError{
		Kind:    KindMissingField,
		Field:   field,
		Message: fmt.Sprintf("report is missing required field %q", field),
	}
}

// MalformedCrash reports a failed test that carries no crash information.
func MalformedCrash(nodeID string) *ExecError {
	return &ExecError{
		Kind:    KindMalformedCrash,
		Test:    nodeID,
		Message: "test failed but the report has no call.crash data",
	}
}

// Report creates an error for a report that could not be read or does not match its schema.
func Report(message string, cause error) *ExecError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &ExecError{
		Kind:    KindReport,
		Message: message,
		Cause:   cause,
	}
}

// Lookup creates an error for a source lookup command that failed.
// stderr is the command's diagnostic output and may be empty.
func Lookup(test string, cause error, stderr string) *ExecError {
	message := fmt.Sprintf("source lookup failed: %v", cause)
	if s := strings.TrimSpace(stderr); s != "" {
		message += " (stderr: " + s + ")"
	}
	return &ExecError{
		Kind:    KindLookup,
		Test:    test,
		Message: message,
		Cause:   cause,
	}
}

// Advice creates an error for test advice that cannot be requested or
// was not delivered. cause may be nil.
func Advice(message string, cause error) *ExecError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &ExecError{
		Kind:    KindAdvice,
		Message: message,
		Cause:   cause,
	}
}

// Is reports whether err is an *ExecError of the given kind anywhere in its chain.
func Is(err error, kind ErrorKind) bool {
	var ee *ExecError
	if stderrors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *ExecError
	if stderrors.As(err, &ee) {
		return ee.ExitCode()
	}
	return ExitRuntimeError
}
