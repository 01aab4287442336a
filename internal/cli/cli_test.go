package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/output"
)

// captureOutput redirects the package writer for the duration of a test.
// Tests that use it share package state and must not run in parallel.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	saved := out
	out = output.NewWithWriters(stdout, stderr, false)
	t.Cleanup(func() { out = saved })
	return stdout, stderr
}

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantQuiet     bool
		wantVerbose   bool
		wantNoColor   bool
		wantConfig    string
		wantRemaining []string
		wantErr       bool
	}{
		{
			name:          "no flags",
			args:          []string{"run", "proj", "tests"},
			wantRemaining: []string{"run", "proj", "tests"},
		},
		{
			name:          "-q flag",
			args:          []string{"-q", "summarize"},
			wantQuiet:     true,
			wantRemaining: []string{"summarize"},
		},
		{
			name:          "--verbose after positional arguments",
			args:          []string{"run", "proj", "tests", "--verbose"},
			wantVerbose:   true,
			wantRemaining: []string{"run", "proj", "tests"},
		},
		{
			name:          "--no-color flag",
			args:          []string{"--no-color", "summarize", "r.json"},
			wantNoColor:   true,
			wantRemaining: []string{"summarize", "r.json"},
		},
		{
			name:          "--config with space",
			args:          []string{"--config", "exam.yml", "summarize"},
			wantConfig:    "exam.yml",
			wantRemaining: []string{"summarize"},
		},
		{
			name:          "--config=value",
			args:          []string{"summarize", "--config=exam.yml"},
			wantConfig:    "exam.yml",
			wantRemaining: []string{"summarize"},
		},
		{
			name:          "-- passthrough",
			args:          []string{"summarize", "--", "-v"},
			wantRemaining: []string{"summarize", "-v"},
		},
		{
			name:          "command-specific flags are kept",
			args:          []string{"run", "--no-lookup", "proj", "tests"},
			wantRemaining: []string{"run", "--no-lookup", "proj", "tests"},
		},
		{
			name:    "--config without value",
			args:    []string{"summarize", "--config"},
			wantErr: true,
		},
		{
			name:    "empty --config=",
			args:    []string{"--config=", "summarize"},
			wantErr: true,
		},
		{
			name:    "quiet and verbose together",
			args:    []string{"-q", "-v", "summarize"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)

			opts, remaining, err := parseGlobalFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Error("parseGlobalFlags() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGlobalFlags() error = %v", err)
			}

			if opts.Quiet != tt.wantQuiet {
				t.Errorf("Quiet = %v, want %v", opts.Quiet, tt.wantQuiet)
			}
			if opts.Verbose != tt.wantVerbose {
				t.Errorf("Verbose = %v, want %v", opts.Verbose, tt.wantVerbose)
			}
			if opts.NoColor != tt.wantNoColor {
				t.Errorf("NoColor = %v, want %v", opts.NoColor, tt.wantNoColor)
			}
			if opts.ConfigPath != tt.wantConfig {
				t.Errorf("ConfigPath = %q, want %q", opts.ConfigPath, tt.wantConfig)
			}
			if diff := cmp.Diff(tt.wantRemaining, remaining); diff != "" {
				t.Errorf("remaining mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseGlobalFlags_AppliesVerbosity(t *testing.T) {
	captureOutput(t)

	if _, _, err := parseGlobalFlags([]string{"-v", "summarize"}); err != nil {
		t.Fatalf("parseGlobalFlags() error = %v", err)
	}
	if !out.Verbose() {
		t.Error("out.Verbose() = false after -v")
	}
}

func TestWantsHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"proj", "tests"}, false},
		{[]string{"-h"}, true},
		{[]string{"proj", "--help"}, true},
		{[]string{"--", "--help"}, false},
	}

	for _, tt := range tests {
		if got := wantsHelp(tt.args); got != tt.want {
			t.Errorf("wantsHelp(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestRun_Help(t *testing.T) {
	stdout, _ := captureOutput(t)

	if code := Run([]string{"--help"}); code != 0 {
		t.Errorf("Run(--help) = %d, want 0", code)
	}
	for _, want := range []string{"Usage:", "run <project> <tests>", "summarize", "--config=<path>"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("usage missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRun_NoArgs(t *testing.T) {
	stdout, _ := captureOutput(t)

	if code := Run(nil); code != 0 {
		t.Errorf("Run(nil) = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Commands:") {
		t.Error("Run(nil) should print usage")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	_, stderr := captureOutput(t)

	if code := Run([]string{"grade"}); code != errors.ExitConfigError {
		t.Errorf("Run(grade) = %d, want %d", code, errors.ExitConfigError)
	}
	if !strings.Contains(stderr.String(), `unknown command "grade"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_BadGlobalFlags(t *testing.T) {
	_, stderr := captureOutput(t)

	if code := Run([]string{"-q", "-v", "summarize"}); code != errors.ExitConfigError {
		t.Errorf("Run() = %d, want %d", code, errors.ExitConfigError)
	}
	if !strings.Contains(stderr.String(), "mutually exclusive") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestPanelTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{"failing test details", "😢 Failing Test Details"},
		{"test output", "😢 Test Output"},
		{"parameter information", "😢 Parameter Information"},
	}

	for _, tt := range tests {
		if got := panelTitle("😢", tt.label); got != tt.want {
			t.Errorf("panelTitle(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
