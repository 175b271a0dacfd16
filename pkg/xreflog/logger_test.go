package xreflog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/OpenTraceLab/netxref/pkg/xref"
)

func newTestLogger(verbose bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &Logger{out: out, err: errOut, verbose: verbose}, out, errOut
}

func TestSuccessAndWarningGoToStdout(t *testing.T) {
	log, out, _ := newTestLogger(false)

	log.Success("all %d circuits matched", 3)
	log.Warning("%d circuits mismatched", 1)

	text := out.String()
	if !strings.Contains(text, "3 circuits matched") {
		t.Errorf("expected Success message in stdout buffer, got %q", text)
	}
	if !strings.Contains(text, "1 circuits mismatched") {
		t.Errorf("expected Warning message in stdout buffer, got %q", text)
	}
}

func TestErrorGoesToStderr(t *testing.T) {
	log, out, errOut := newTestLogger(false)

	log.Error("job %s failed", nil, "rev2")
	if errOut.Len() == 0 {
		t.Fatal("expected Error to write to the error stream")
	}
	if !strings.Contains(errOut.String(), "job rev2 failed") {
		t.Errorf("unexpected error output: %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("expected nothing written to stdout, got %q", out.String())
	}
}

func TestDebugSuppressedUnlessVerbose(t *testing.T) {
	quiet, out, _ := newTestLogger(false)
	quiet.Debug("scanning net %s", "VCC")
	if out.Len() != 0 {
		t.Errorf("expected Debug to be suppressed when not verbose, got %q", out.String())
	}

	loud, out2, _ := newTestLogger(true)
	loud.Debug("scanning net %s", "VCC")
	if !strings.Contains(out2.String(), "scanning net VCC") {
		t.Errorf("expected Debug output when verbose, got %q", out2.String())
	}
}

func TestLogEntryDispatchesBySeverity(t *testing.T) {
	log, out, errOut := newTestLogger(true)

	log.LogEntry(xref.LogEntry{Severity: xref.SeverityWarning, Message: "ambiguous net match"})
	log.LogEntry(xref.LogEntry{Severity: xref.SeverityInfo, Message: "scanning complete"})
	log.LogEntry(xref.LogEntry{Severity: xref.SeverityError, Message: "malformed sequence"})

	if !strings.Contains(out.String(), "ambiguous net match") {
		t.Error("expected warning entry on stdout")
	}
	if !strings.Contains(out.String(), "scanning complete") {
		t.Error("expected info-severity entry routed to Debug output")
	}
	if !strings.Contains(errOut.String(), "malformed sequence") {
		t.Error("expected error entry on stderr")
	}
}

func TestStatusColorsDoNotPanicForAnyStatus(t *testing.T) {
	log, _, _ := newTestLogger(false)
	for _, s := range []xref.Status{
		xref.StatusNone, xref.StatusMatch, xref.StatusNoMatch,
		xref.StatusSkipped, xref.StatusMatchWithWarning, xref.StatusMismatch,
	} {
		if got := log.Status(s, "hint"); !strings.Contains(got, "hint") {
			t.Errorf("expected rendered status to retain the hint text, got %q", got)
		}
	}
}
