// Package cli provides command-line interface functionality for execexam.
package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/errors"
	"github.com/AndreyAkinshin/execexam/internal/output"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("execexam %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "run":
		return cmdRun(cmdArgs, opts)
	case "summarize":
		return cmdSummarize(cmdArgs, opts)
	case "help":
		printUsage()
		return 0
	case "version":
		fmt.Printf("execexam %s\n", Version)
		return 0
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("Run 'execexam --help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	NoColor    bool
	ConfigPath string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Flags may appear anywhere in the argument list, so "execexam run proj tests -v"
// works as well as "execexam -v run proj tests". Arguments after -- are passed
// through verbatim.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--no-color":
			opts.NoColor = true
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			if opts.ConfigPath == "" {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			i++
		case arg == "--":
			remaining = append(remaining, args[i+1:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	applyGlobalOptions(opts)

	return opts, remaining, nil
}

func printUsage() {
	w := out

	w.HelpTitle("execexam - run an executable examination")

	w.HelpSection("Usage:")
	w.HelpUsage("execexam [flags] <command> [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("run <project> <tests>", "Run the tests against a project and explain the results", widthCommand)
	w.HelpCommand("summarize [report.json]", "Explain an existing pytest JSON report (stdin if omitted)", widthCommand)
	w.HelpCommand("version", "Show version information", widthCommand)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("execexam run . tests/", "Run every test under tests/ against the current project")
	w.HelpExample("execexam run lab1 lab1/tests/test_q1.py -v", "Run one test file with verbose output")
	w.HelpExample("execexam summarize report.json", "Explain a report produced earlier")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (results only)", widthFlag)
	w.HelpFlag("-v, --verbose", "Show commands and the full JSON report", widthFlag)
	w.HelpFlag("--no-color", "Disable colored output", widthFlag)
	w.HelpFlag("--config=<path>", "Configuration file (default: .execexam/config.yml)", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)
	w.HelpFlag("--version", "Show version", widthFlag)
}
