// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
	width   int // panel width; 0 sizes panels to their content
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
		width: terminalWidth(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// SetColor enables or disables ANSI colors.
func (w *Writer) SetColor(color bool) {
	w.color = color
}

// Verbose reports whether verbose mode is on.
func (w *Writer) Verbose() bool {
	return w.verbose
}

// Stderr returns the stream that diagnostics are written to.
func (w *Writer) Stderr() io.Writer {
	return w.err
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Debug prints a diagnostic message to stderr, only in verbose mode.
func (w *Writer) Debug(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s%s%s", dim, msg, reset)
	} else {
		w.Errorln("%s", msg)
	}
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		w.Errorln("\033[33mwarning: "+format+"\033[0m", args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// ErrorPrefix prints an error message with execexam prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sexecexam:%s %s", red, reset, msg)
	} else {
		w.Errorln("execexam: %s", msg)
	}
}

// Panel prints body inside a rounded border under a title line.
// Panels are always shown, even in quiet mode; they are the command's result.
func (w *Writer) Panel(title, body string) {
	w.panel(title, body, lipgloss.Color("6"))
}

// FailurePanel prints a panel with a red border.
func (w *Writer) FailurePanel(title, body string) {
	w.panel(title, body, lipgloss.Color("1"))
}

func (w *Writer) panel(title, body string, border lipgloss.Color) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	heading := lipgloss.NewStyle()
	if w.color {
		box = box.BorderForeground(border)
		heading = heading.Bold(true).Foreground(border)
	}
	if w.width > 4 {
		// Width excludes the border; padding is inside it.
		box = box.Width(w.width - 2)
	}

	w.Println("")
	w.Println("%s", heading.Render(title))
	w.Println("%s", box.Render(strings.TrimRight(body, "\n")))
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("\033[1m=== %s ===\033[0m", title)
	} else {
		w.Println("=== %s ===", title)
	}
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", green, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", red, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Semantic color roles for help output.
const (
	colorTitle       = bold + cyan   // Main title/brand
	colorSection     = bold + yellow // Section headers
	colorCommand     = bold + cyan   // Commands and subcommands
	colorPlaceholder = green         // Placeholders like <project>, <tests>
	colorFlag        = yellow        // Flags like --verbose
	colorDescription = dim           // Help text descriptions
	colorExample     = cyan          // Example commands
)

// HelpTitle formats the main help title line.
func (w *Writer) HelpTitle(title string) {
	if w.color {
		w.Println("%s%s%s", colorTitle, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpSection formats a section header (e.g., "Commands:").
func (w *Writer) HelpSection(title string) {
	w.Println("")
	if w.color {
		w.Println("%s%s%s", colorSection, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpCommand formats a command with its description.
func (w *Writer) HelpCommand(name, description string, width int) {
	if w.color {
		coloredName := w.colorPlaceholders(name)
		padding := width - len(name)
		if padding < 0 {
			padding = 0
		}
		w.Println("  %s%s%s%s  %s%s%s", colorCommand, coloredName, reset, strings.Repeat(" ", padding), colorDescription, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// HelpFlag formats a flag with its description.
func (w *Writer) HelpFlag(name, description string, width int) {
	if w.color {
		coloredName := w.colorPlaceholders(name)
		padding := width - len(name)
		if padding < 0 {
			padding = 0
		}
		w.Println("  %s%s%s%s  %s%s%s", colorFlag, coloredName, reset, strings.Repeat(" ", padding), colorDescription, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// HelpExample formats an example command with description.
func (w *Writer) HelpExample(command, description string) {
	if w.color {
		w.Println("  %s%s%s", colorExample, command, reset)
		if description != "" {
			w.Println("      %s%s%s", colorDescription, description, reset)
		}
	} else {
		w.Println("  %s", command)
		if description != "" {
			w.Println("      %s", description)
		}
	}
}

// HelpUsage formats usage lines.
func (w *Writer) HelpUsage(usage string) {
	if w.color {
		w.Println("  %s", w.colorPlaceholders(usage))
	} else {
		w.Println("  %s", usage)
	}
}

// colorPlaceholders highlights <placeholder> patterns in text.
func (w *Writer) colorPlaceholders(text string) string {
	var result strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '<' {
			end := strings.Index(text[i:], ">")
			if end != -1 {
				placeholder := text[i : i+end+1]
				result.WriteString(reset)
				result.WriteString(colorPlaceholder)
				result.WriteString(placeholder)
				result.WriteString(reset)
				i += end + 1
				continue
			}
		}
		result.WriteByte(text[i])
		i++
	}
	return result.String()
}
