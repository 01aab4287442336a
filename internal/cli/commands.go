package cli

import (
	"context"
	"encoding/json"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/execexam/internal/advise"
	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/extract"
	"github.com/AndreyAkinshin/execexam/internal/output"
	"github.com/AndreyAkinshin/execexam/internal/report"
)

var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	widthCommand = 23 // Width for commands like "run <project> <tests>"
	widthFlag    = 21 // Width for flags like "--advice-server=<url>"
)

// exitTestsFailed is returned when at least one test failed.
const exitTestsFailed = errors.ExitRuntimeError

// applyGlobalOptions configures the output writer from global flags.
func applyGlobalOptions(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose)
	if opts.NoColor {
		out.SetColor(false)
	}
}

// panelTitle joins an icon and a title-cased label.
func panelTitle(icon, label string) string {
	return icon + " " + cases.Title(language.English).String(label)
}

// renderOptions configures renderReport.
type renderOptions struct {
	depth   int              // path elision depth
	output  string           // captured runner output shown above the summary
	reports advise.Selection // panels to print
}

// renderReport prints the selected summary, failing-test and assertion panels.
// Every extraction runs before anything is printed, so a malformed report
// produces an error and no partial result.
func renderReport(rep *report.Report, opts renderOptions) (*extract.FailingTests, error) {
	summary, err := extract.FormatRunSummary(rep)
	if err != nil {
		return nil, err
	}
	failing, err := extract.ExtractFailingTests(rep, extract.WithElideDepth(opts.depth))
	if err != nil {
		return nil, err
	}
	assertions := extract.FormatAllAssertions(rep.Tests)

	if opts.reports.Has(advise.ReportTestOutput) {
		out.Panel(panelTitle("🐍", "test output"), "\n"+opts.output+summary+"\n")
	}
	if failing.HasFailures() && opts.reports.Has(advise.ReportTestFailures) {
		out.FailurePanel(panelTitle("😢", "failing test details"), failing.Display)
	}
	if assertions != "" && opts.reports.Has(advise.ReportTestAssertions) {
		out.Panel(panelTitle("🔎", "test assertions"), assertions)
	}
	return failing, nil
}

// printReportJSON prints the report as indented JSON.
func printReportJSON(rep *report.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	out.Section("Report")
	out.Println("%s", data)
	return nil
}

// checkConnection reports whether a hosted advice API is reachable.
var checkConnection = func(ctx context.Context) bool {
	return advise.CheckInternetConnection(ctx, nil)
}

// adviceInput is what the model is shown about a run.
type adviceInput struct {
	output  string
	failing *extract.FailingTests
	sources []string
}

// printAdvice asks the configured model how to fix the failing tests and
// prints its answer. Without failures or, for a hosted API, without a
// network connection, it prints a note and gives no advice.
func printAdvice(ctx context.Context, cc advise.ClientConfig, in adviceInput) error {
	if !in.failing.HasFailures() {
		out.Info("All tests passed, so there is no advice to give.")
		return nil
	}
	if cc.Method == advise.MethodAPIKey && !checkConnection(ctx) {
		out.Warning("no internet connection, skipping test advice")
		return nil
	}
	client, err := advise.NewClient(cc)
	if err != nil {
		return err
	}
	out.Debug("requesting advice from %s (%s)", cc.Model, cc.Method)
	answer, err := client.Advise(ctx, advise.Request{
		TestOutput: in.output,
		Failures:   in.failing.Display,
		Sources:    in.sources,
	})
	if err != nil {
		return err
	}
	out.Panel(panelTitle("🤯", "test advice"), "\n"+answer+"\n")
	return nil
}

// finish prints the closing line and returns the exit code for a rendered report.
// The total comes from the report summary when it has one.
func finish(rep *report.Report, failing *extract.FailingTests) int {
	total, hasTotal := rep.Count("total")
	if !failing.HasFailures() {
		switch {
		case hasTotal && total == 1:
			out.FinalSuccess("1 test passed.")
		case hasTotal && total > 1:
			out.FinalSuccess("All %d tests passed.", total)
		default:
			out.FinalSuccess("No failing tests.")
		}
		return errors.ExitSuccess
	}

	n := len(failing.Failures)
	switch {
	case hasTotal && total >= n:
		out.FinalFailure("%d of %d tests failed.", n, total)
	case n == 1:
		out.FinalFailure("1 test failed.")
	default:
		out.FinalFailure("%d tests failed.", n)
	}
	return exitTestsFailed
}
