package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AndreyAkinshin/execexam/internal/advise"
	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/project"
	"github.com/AndreyAkinshin/execexam/internal/runner"
)

// cmdRun runs the tests against a project and explains the results.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printRunUsage()
		return 0
	}

	flags, err := parseCommandFlags(args, true)
	if err != nil {
		return flagError("run", err)
	}
	if len(flags.positional) != 2 {
		out.ErrorPrefix("run: expected <project> and <tests>, got %d argument(s)", len(flags.positional))
		out.Errorln("Run 'execexam run --help' for usage.")
		return errors.ExitConfigError
	}

	proj, err := project.Load(flags.positional[0], flags.positional[1], opts.ConfigPath)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	cfg := proj.Config
	if proj.ConfigPath != "" {
		out.Debug("using configuration %s", proj.ConfigPath)
	}

	ro, err := resolveReportOptions(cfg, flags)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	out.Debug("report sections: %s", ro.reports)

	if ro.reports.Has(advise.ReportSetup) {
		out.Panel(panelTitle("✨", "parameter information"),
			fmt.Sprintf("\nProject directory: %s\nTest file or test directory: %s\n", proj.Dir, proj.Tests))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := runner.New(cfg.Runner)
	if out.Verbose() {
		r.SetEcho(out.Stderr())
	}
	res, err := r.Run(ctx, proj.Dir, proj.Tests)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	failing, err := renderReport(res.Report, renderOptions{
		depth:   cfg.Display.ElideDepth,
		output:  res.Output,
		reports: ro.reports,
	})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	if !failing.HasFailures() && res.ExitCode != 0 {
		out.Warning("pytest exited with status %d but no test failed", res.ExitCode)
	}

	showCode := ro.reports.Has(advise.ReportTestCodes)
	wantAdvice := ro.reports.Has(advise.ReportTestAdvice)
	var sources []string
	if failing.HasFailures() && (showCode || wantAdvice) && cfg.Lookup.IsEnabled() && !flags.noLookup {
		lookup := runner.NewLookup(cfg.Lookup)
		for _, f := range failing.Failures {
			source, err := lookup.Find(ctx, f.TestName, f.TestPath)
			if err != nil {
				out.ErrorPrefix("%v", err)
				return errors.GetExitCode(err)
			}
			sources = append(sources, source)
			if showCode {
				out.FailurePanel(panelTitle("📦", "failing test code")+": "+f.TestName, "\n"+source)
			}
		}
	}

	if wantAdvice {
		in := adviceInput{output: res.Output, failing: failing, sources: sources}
		if err := printAdvice(ctx, ro.advice, in); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
	}

	if opts.Verbose || cfg.Display.ShowReport {
		if err := printReportJSON(res.Report); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
	}

	return finish(res.Report, failing)
}

func printRunUsage() {
	out.HelpTitle("execexam run - run an executable examination")
	out.HelpSection("Usage:")
	out.HelpUsage("execexam run [flags] <project> <tests>")
	out.HelpSection("Description:")
	out.Println("  Runs pytest on <tests> with <project> on the import path, then explains")
	out.Println("  the JSON report: a run summary, the failing tests with their locations,")
	out.Println("  the source of each failing test, and any recorded assertions.")
	out.Println("  With --report testadvice a language model suggests how to fix the failures.")
	out.HelpSection("Flags:")
	out.HelpFlag("--no-lookup", "Do not look up the source of failing tests", widthFlag)
	printReportFlags()
	printGlobalFlags(out)
	out.HelpSection("Examples:")
	out.HelpExample("execexam run . tests/", "Run every test under tests/")
	out.HelpExample("execexam run lab1 lab1/tests/test_q1.py --no-lookup", "Skip the source lookup")
	out.HelpExample("execexam run . tests/ --report testoutput,testfailures", "Print only the summary and failure details")
	out.HelpExample("execexam run . tests/ --report all,testadvice --advice-model gpt-4o-mini",
		"Also ask a model for advice (key from $OPENAI_API_KEY)")
	out.Println("")
}
