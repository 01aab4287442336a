// Package main tests for the execexam CLI entry point.
package main

import (
	"os/exec"
	"strings"
	"testing"
)

// TestMain_BuildVerification verifies the binary builds successfully.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", "/dev/null", ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build main package: %v", err)
	}
}

// TestMain_HelpFlag verifies the --help flag works correctly.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--help")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}

	if !strings.Contains(string(out), "execexam") {
		t.Errorf("--help output does not mention execexam:\n%s", out)
	}
}

// TestMain_VersionFlag verifies the --version flag works correctly.
func TestMain_VersionFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--version failed: %v\noutput: %s", err, out)
	}

	if !strings.HasPrefix(string(out), "execexam ") {
		t.Errorf("--version output = %q", out)
	}
}
