// Package execexam provides public constants for tools that run the execexam
// CLI, such as graders that act on its exit status.
package execexam

// Exit codes returned by the execexam CLI.
const (
	// ExitSuccess indicates every test passed.
	ExitSuccess = 0

	// ExitFailure indicates failing tests or a runtime failure (pytest produced
	// no report, source lookup failed, etc.).
	ExitFailure = 1

	// ExitConfigError indicates bad arguments or an invalid configuration file.
	ExitConfigError = 2

	// ExitEnvError indicates the environment is unusable (interpreter missing, etc.).
	ExitEnvError = 3

	// ExitReportError indicates the test report is malformed or lacks required data.
	ExitReportError = 4
)
