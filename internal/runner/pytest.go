// Package runner invokes the external tools around a test run: pytest with its
// JSON report plugin, and the source lookup command for failing tests.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/report"
)

// reportFileName is the name of the JSON report inside the run's scratch directory.
const reportFileName = "report.json"

// Result is the outcome of one pytest invocation.
type Result struct {
	Output   string // Combined stdout and stderr of pytest
	ExitCode int    // pytest exit status
	Report   *report.Report
}

// Runner runs a test suite with pytest and collects its JSON report.
type Runner struct {
	cfg  config.RunnerConfig
	echo io.Writer
}

// New creates a Runner from configuration.
func New(cfg config.RunnerConfig) *Runner {
	return &Runner{cfg: cfg}
}

// SetEcho makes Run print its command line to w before starting.
func (r *Runner) SetEcho(w io.Writer) {
	r.echo = w
}

// buildPytestArgs constructs the interpreter arguments for one run.
func buildPytestArgs(extra []string, reportPath, tests string) []string {
	args := []string{"-m", "pytest"}
	args = append(args, extra...)
	args = append(args, "--json-report", "--json-report-file="+reportPath, tests)
	return args
}

// buildEnv returns the process environment with projectDir prepended to
// PYTHONPATH and the configured variables applied in sorted order.
func buildEnv(base []string, projectDir string, extra map[string]string) []string {
	env := make([]string, 0, len(base)+len(extra)+1)
	pythonPath := projectDir
	for _, kv := range base {
		if v, ok := strings.CutPrefix(kv, "PYTHONPATH="); ok {
			if v != "" {
				pythonPath = projectDir + string(os.PathListSeparator) + v
			}
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "PYTHONPATH="+pythonPath)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}

// Run executes the tests and loads the report pytest wrote.
// Failing tests make pytest exit non-zero; that is not an error as long as a
// report was produced.
func (r *Runner) Run(ctx context.Context, projectDir, tests string) (*Result, error) {
	scratch, err := os.MkdirTemp("", "execexam-")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scratch directory")
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	reportPath := filepath.Join(scratch, reportFileName)
	args := buildPytestArgs(r.cfg.Args, reportPath, tests)

	cmd := exec.CommandContext(ctx, r.cfg.Python, args...)
	cmd.Dir = projectDir
	cmd.Env = buildEnv(os.Environ(), projectDir, r.cfg.Env)

	var captured bytes.Buffer
	cmd.Stdout = &captured
	cmd.Stderr = &captured

	if r.echo != nil {
		fmt.Fprintf(r.echo, "Running: %s %s\n", r.cfg.Python, strings.Join(args, " "))
	}

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return nil, errors.Environmentf("failed to start %s: %v", r.cfg.Python, err)
		}
		exitCode = exitErr.ExitCode()
	}

	if _, err := os.Stat(reportPath); err != nil {
		msg := fmt.Sprintf("pytest exited with status %d without writing a JSON report (is pytest-json-report installed?)", exitCode)
		if out := strings.TrimSpace(captured.String()); out != "" {
			msg += "\n" + out
		}
		return nil, errors.New(msg)
	}

	rep, err := report.Load(reportPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:   captured.String(),
		ExitCode: exitCode,
		Report:   rep,
	}, nil
}
