// Package xreflog provides the colorized console logger used by the xref
// engine and the cmd/xref CLI to render compare-run output.
package xreflog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/OpenTraceLab/netxref/pkg/xref"
)

// Logger renders compare-event log entries and run summaries to a stream,
// colorized by severity.
type Logger struct {
	out     io.Writer
	err     io.Writer
	verbose bool
}

// NewLogger creates a logger writing to stdout/stderr. verbose enables
// Debug output.
func NewLogger(verbose bool) *Logger {
	return &Logger{out: os.Stdout, err: os.Stderr, verbose: verbose}
}

// Success logs a success message in green.
func (l *Logger) Success(msg string, args ...interface{}) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(l.out, green("✓ "+msg)+"\n", args...)
}

// Info logs an informational message in cyan.
func (l *Logger) Info(msg string, args ...interface{}) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(l.out, cyan(msg)+"\n", args...)
}

// Warning logs a warning message in yellow.
func (l *Logger) Warning(msg string, args ...interface{}) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(l.out, yellow("⚠ "+msg)+"\n", args...)
}

// Error logs an error message in red.
func (l *Logger) Error(msg string, err error, args ...interface{}) {
	red := color.New(color.FgRed).SprintFunc()
	if err != nil {
		fmt.Fprintf(l.err, red("✗ "+msg+": %v")+"\n", append(args, err)...)
	} else {
		fmt.Fprintf(l.err, red("✗ "+msg)+"\n", args...)
	}
}

// Debug logs a debug message in dim/gray, suppressed unless verbose.
func (l *Logger) Debug(msg string, args ...interface{}) {
	if !l.verbose {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(l.out, dim(msg)+"\n", args...)
}

// LogEntry renders one compare-run log entry (spec §4.4's LogEntry event),
// colorized by its severity.
func (l *Logger) LogEntry(e xref.LogEntry) {
	switch e.Severity {
	case xref.SeverityError:
		l.Error(e.Message, nil)
	case xref.SeverityWarning:
		l.Warning(e.Message)
	default:
		l.Debug(e.Message)
	}
}

// Status renders a status with its color: green for a clean match, yellow
// for a match with caveats, faint for StatusNone, red for anything else.
func (l *Logger) Status(s xref.Status, hint string) string {
	switch s {
	case xref.StatusMatch:
		return color.New(color.FgGreen).Sprint(hint)
	case xref.StatusMatchWithWarning:
		return color.New(color.FgYellow).Sprint(hint)
	case xref.StatusNone:
		return color.New(color.Faint).Sprint(hint)
	default:
		return color.New(color.FgRed).Sprint(hint)
	}
}
