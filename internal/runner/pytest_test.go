package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
)

const fakeReport = `{
  "root": "/exam",
  "exitcode": 1,
  "summary": {"failed": 1, "passed": 1, "total": 2, "collected": 2},
  "tests": [
    {"nodeid": "test_q.py::test_a", "outcome": "failed",
     "call": {"crash": {"path": "/exam/test_q.py", "lineno": 3, "message": "assert 1 == 2"}}},
    {"nodeid": "test_q.py::test_b", "outcome": "passed"}
  ]
}`

// writeFakePython creates an executable that mimics pytest: it writes the given
// report to the --json-report-file path, prints a line, and exits with status.
// Tests that exec a freshly written script do not run in parallel, to avoid
// ETXTBSY from descriptors inherited by concurrent forks.
func writeFakePython(t *testing.T, reportJSON string, status int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter is a POSIX shell script")
	}

	script := "#!/bin/sh\n" +
		"for a in \"$@\"; do\n" +
		"  case \"$a\" in\n" +
		"    --json-report-file=*) f=\"${a#--json-report-file=}\" ;;\n" +
		"  esac\n" +
		"done\n" +
		"echo \"F.    [100%]\"\n" +
		"echo \"PYTHONPATH=$PYTHONPATH\"\n" +
		"echo \"EXAM_MODE=$EXAM_MODE\"\n"
	if reportJSON != "" {
		script += "cat > \"$f\" <<'JSON'\n" + reportJSON + "\nJSON\n"
	}
	script += "exit " + strconv.Itoa(status) + "\n"

	path := filepath.Join(t.TempDir(), "python")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake python: %v", err)
	}
	return path
}

func TestBuildPytestArgs(t *testing.T) {
	t.Parallel()

	got := buildPytestArgs([]string{"-q", "--tb=no"}, "/tmp/r.json", "/exam/tests")
	want := []string{"-m", "pytest", "-q", "--tb=no", "--json-report", "--json-report-file=/tmp/r.json", "/exam/tests"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buildPytestArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEnv(t *testing.T) {
	t.Parallel()
	sep := string(os.PathListSeparator)

	tests := []struct {
		name  string
		base  []string
		extra map[string]string
		want  []string
	}{
		{
			name: "no existing PYTHONPATH",
			base: []string{"HOME=/home/x"},
			want: []string{"HOME=/home/x", "PYTHONPATH=/exam"},
		},
		{
			name: "existing PYTHONPATH is kept after project",
			base: []string{"PYTHONPATH=/lib", "HOME=/home/x"},
			want: []string{"HOME=/home/x", "PYTHONPATH=/exam" + sep + "/lib"},
		},
		{
			name:  "extra variables sorted",
			base:  nil,
			extra: map[string]string{"B": "2", "A": "1"},
			want:  []string{"PYTHONPATH=/exam", "A=1", "B=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := buildEnv(tt.base, "/exam", tt.extra)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buildEnv() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunner_Run(t *testing.T) {
	python := writeFakePython(t, fakeReport, 1)
	projectDir := t.TempDir()

	cfg := config.Default().Runner
	cfg.Python = python
	cfg.Env = map[string]string{"EXAM_MODE": "strict"}
	r := New(cfg)
	var echo bytes.Buffer
	r.SetEcho(&echo)

	res, err := r.Run(context.Background(), projectDir, filepath.Join(projectDir, "test_q.py"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Output, "F.    [100%]") {
		t.Errorf("Output = %q, want captured pytest output", res.Output)
	}
	if !strings.Contains(res.Output, "PYTHONPATH="+projectDir) {
		t.Errorf("Output = %q, want project dir on PYTHONPATH", res.Output)
	}
	if !strings.Contains(res.Output, "EXAM_MODE=strict") {
		t.Errorf("Output = %q, want configured env", res.Output)
	}
	if len(res.Report.Tests) != 2 {
		t.Errorf("len(Report.Tests) = %d, want 2", len(res.Report.Tests))
	}
	if !strings.HasPrefix(echo.String(), "Running: "+python+" -m pytest") {
		t.Errorf("echo = %q", echo.String())
	}
}

func TestRunner_Run_NoReport(t *testing.T) {
	python := writeFakePython(t, "", 4)

	cfg := config.Default().Runner
	cfg.Python = python
	_, err := New(cfg).Run(context.Background(), t.TempDir(), "tests")
	if err == nil {
		t.Fatal("Run() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "status 4") {
		t.Errorf("error = %q, want exit status", err.Error())
	}
	if !strings.Contains(err.Error(), "F.    [100%]") {
		t.Errorf("error = %q, want captured output", err.Error())
	}
}

func TestRunner_Run_MalformedReport(t *testing.T) {
	python := writeFakePython(t, `{"tests": "nope"}`, 0)

	cfg := config.Default().Runner
	cfg.Python = python
	_, err := New(cfg).Run(context.Background(), t.TempDir(), "tests")
	if !errors.Is(err, errors.KindReport) {
		t.Errorf("Run() error = %v, want report error", err)
	}
}

func TestRunner_Run_MissingInterpreter(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Runner
	cfg.Python = filepath.Join(t.TempDir(), "no-such-python")
	_, err := New(cfg).Run(context.Background(), t.TempDir(), "tests")
	if !errors.Is(err, errors.KindEnvironment) {
		t.Errorf("Run() error = %v, want environment error", err)
	}
}
