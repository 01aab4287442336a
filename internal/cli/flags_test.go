package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/execexam/internal/advise"
	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
)

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		args          []string
		allowNoLookup bool
		want          commandFlags
		wantErr       bool
	}{
		{
			name: "positional only",
			args: []string{"proj", "tests"},
			want: commandFlags{positional: []string{"proj", "tests"}},
		},
		{
			name:          "no-lookup",
			args:          []string{"proj", "--no-lookup", "tests"},
			allowNoLookup: true,
			want:          commandFlags{noLookup: true, positional: []string{"proj", "tests"}},
		},
		{
			name:    "no-lookup not accepted",
			args:    []string{"--no-lookup", "r.json"},
			wantErr: true,
		},
		{
			name: "report with equals and separate value",
			args: []string{"--report=testoutput,testfailures", "--report", "testadvice", "r.json"},
			want: commandFlags{reports: []string{"testoutput,testfailures", "testadvice"}, positional: []string{"r.json"}},
		},
		{
			name: "advice flags",
			args: []string{"--advice-model", "llama3", "--advice-method=apiserver", "--advice-server", "http://localhost:11434"},
			want: commandFlags{adviceModel: "llama3", adviceMethod: "apiserver", adviceServer: "http://localhost:11434"},
		},
		{
			name: "stdin dash is positional",
			args: []string{"-"},
			want: commandFlags{positional: []string{"-"}},
		},
		{
			name:    "missing value",
			args:    []string{"--report"},
			wantErr: true,
		},
		{
			name:    "empty value",
			args:    []string{"--advice-model="},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"--fast", "r.json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCommandFlags(tt.args, tt.allowNoLookup)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCommandFlags() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCommandFlags() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, *got, cmp.AllowUnexported(commandFlags{})); diff != "" {
				t.Errorf("parseCommandFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveReportOptions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Display.Report = []string{"testoutput"}
	cfg.Advice.Model = "from-config"
	cfg.Advice.Server = "http://config.example"

	t.Run("config report list", func(t *testing.T) {
		t.Parallel()
		ro, err := resolveReportOptions(cfg, &commandFlags{})
		if err != nil {
			t.Fatalf("resolveReportOptions() error = %v", err)
		}
		if diff := cmp.Diff([]advise.ReportType{advise.ReportTestOutput}, ro.reports.Types()); diff != "" {
			t.Errorf("reports mismatch (-want +got):\n%s", diff)
		}
		if ro.advice.Model != "from-config" || ro.advice.Method != advise.MethodAPIKey || ro.advice.KeyEnv != config.DefaultAdviceKeyEnv {
			t.Errorf("advice = %+v", ro.advice)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()
		ro, err := resolveReportOptions(cfg, &commandFlags{
			reports:      []string{"testadvice"},
			adviceModel:  "llama3",
			adviceMethod: "apiserver",
			adviceServer: "http://localhost:11434",
		})
		if err != nil {
			t.Fatalf("resolveReportOptions() error = %v", err)
		}
		if !ro.reports.Has(advise.ReportTestAdvice) || ro.reports.Has(advise.ReportTestOutput) {
			t.Errorf("reports = %s, want testadvice only", ro.reports)
		}
		want := advise.ClientConfig{Method: advise.MethodAPIServer, Model: "llama3", Server: "http://localhost:11434", KeyEnv: config.DefaultAdviceKeyEnv}
		if diff := cmp.Diff(want, ro.advice); diff != "" {
			t.Errorf("advice mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolveReportOptions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    commandFlags
		model    string
		wantCode int
	}{
		{"unknown report type", commandFlags{reports: []string{"testoutput,nope"}}, "", errors.ExitConfigError},
		{"unknown method", commandFlags{adviceMethod: "carrier"}, "", errors.ExitConfigError},
		{"advice without model", commandFlags{reports: []string{"testadvice"}}, "", errors.ExitRuntimeError},
		{"advice with invalid server", commandFlags{
			reports:      []string{"testadvice"},
			adviceModel:  "m",
			adviceMethod: "apiserver",
			adviceServer: "invalid-url",
		}, "", errors.ExitRuntimeError},
		{"advice server missing", commandFlags{reports: []string{"testadvice"}, adviceMethod: "apiserver"}, "m", errors.ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			cfg.Advice.Model = tt.model
			_, err := resolveReportOptions(cfg, &tt.flags)
			if err == nil {
				t.Fatal("resolveReportOptions() error = nil, want error")
			}
			if code := errors.GetExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (%v)", code, tt.wantCode, err)
			}
		})
	}
}
