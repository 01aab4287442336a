package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/AndreyAkinshin/execexam/internal/advise"
	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/report"
)

// stdin is the reader used when summarize reads from standard input.
var stdin io.Reader = os.Stdin

// cmdSummarize explains an existing JSON report without running anything.
func cmdSummarize(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printSummarizeUsage()
		return 0
	}
	flags, err := parseCommandFlags(args, false)
	if err != nil {
		return flagError("summarize", err)
	}
	if len(flags.positional) > 1 {
		out.ErrorPrefix("summarize: expected at most one report file, got %d", len(flags.positional))
		return errors.ExitConfigError
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			out.ErrorPrefix("failed to load configuration %s: %v", opts.ConfigPath, err)
			return errors.ExitConfigError
		}
		cfg = loaded
	}

	ro, err := resolveReportOptions(cfg, flags)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	var rep *report.Report
	if len(flags.positional) == 1 && flags.positional[0] != "-" {
		rep, err = report.Load(flags.positional[0])
	} else {
		rep, err = report.Decode(stdin)
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	failing, err := renderReport(rep, renderOptions{depth: cfg.Display.ElideDepth, reports: ro.reports})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if ro.reports.Has(advise.ReportTestAdvice) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := printAdvice(ctx, ro.advice, adviceInput{failing: failing}); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
	}

	if opts.Verbose || cfg.Display.ShowReport {
		if err := printReportJSON(rep); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
	}

	return finish(rep, failing)
}

func printSummarizeUsage() {
	out.HelpTitle("execexam summarize - explain an existing pytest JSON report")
	out.HelpSection("Usage:")
	out.HelpUsage("execexam summarize [flags] [report.json]")
	out.HelpUsage("pytest --json-report --json-report-file=/dev/stdout | execexam summarize")
	out.HelpSection("Description:")
	out.Println("  Reads a report written by pytest-json-report and prints the same run")
	out.Println("  summary, failing test details and assertions as 'execexam run'.")
	out.Println("  The source of failing tests is not looked up.")
	out.HelpSection("Flags:")
	printReportFlags()
	printGlobalFlags(out)
	out.HelpSection("Examples:")
	out.HelpExample("execexam summarize .report.json", "Explain a report file")
	out.HelpExample("cat .report.json | execexam summarize", "Read the report from stdin")
	out.Println("")
}
