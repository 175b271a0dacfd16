package xref

import (
	"strings"
	"testing"
)

func TestStatusHintsNeverEmpty(t *testing.T) {
	statuses := []Status{
		StatusNone, StatusMatch, StatusNoMatch, StatusSkipped,
		StatusMatchWithWarning, StatusMismatch, Status(99),
	}

	for _, s := range statuses {
		if got := CircuitStatusHint(CircuitPair{}, s); got == "" {
			t.Errorf("CircuitStatusHint returned empty string for status %v", s)
		}
		if got := TopCircuitStatusHint(CircuitPair{}, s); got == "" {
			t.Errorf("TopCircuitStatusHint returned empty string for status %v", s)
		}
		if got := ChildCircuitStatusHint(CircuitPair{}, s); got == "" {
			t.Errorf("ChildCircuitStatusHint returned empty string for status %v", s)
		}
		if got := NetStatusHint(NetPair{}, s); got == "" {
			t.Errorf("NetStatusHint returned empty string for status %v", s)
		}
		if got := DeviceStatusHint(DevicePair{}, s); got == "" {
			t.Errorf("DeviceStatusHint returned empty string for status %v", s)
		}
		if got := PinStatusHint(PinPair{}, s); got == "" {
			t.Errorf("PinStatusHint returned empty string for status %v", s)
		}
		if got := SubCircuitStatusHint(SubCircuitPair{}, s); got == "" {
			t.Errorf("SubCircuitStatusHint returned empty string for status %v", s)
		}
	}
}

func TestCircuitStatusHintBranchesOnMissingSide(t *testing.T) {
	missing := CircuitPair{First: &fCircuit{name: "a"}}
	bothSides := CircuitPair{First: &fCircuit{name: "a"}, Second: &fCircuit{name: "b"}}

	missingHint := CircuitStatusHint(missing, StatusNoMatch)
	if !strings.Contains(missingHint, "No matching circuit found") {
		t.Errorf("expected missing-side hint, got %q", missingHint)
	}
	if !strings.Contains(missingHint, "\n") {
		t.Errorf("expected multi-line hint, got %q", missingHint)
	}

	mismatchHint := CircuitStatusHint(bothSides, StatusMismatch)
	if !strings.Contains(mismatchHint, "mismatch inside") {
		t.Errorf("expected both-present mismatch hint, got %q", mismatchHint)
	}
	if mismatchHint == missingHint {
		t.Errorf("missing-side and both-present hints must differ")
	}
}

func TestCircuitStatusHintSkipped(t *testing.T) {
	got := CircuitStatusHint(CircuitPair{}, StatusSkipped)
	if !strings.Contains(got, "Potential blockers") {
		t.Errorf("expected skipped-circuit guidance naming blockers, got %q", got)
	}
}

func TestChildCircuitStatusHintBranchesOnMissingSide(t *testing.T) {
	missing := CircuitPair{Second: &fCircuit{name: "b"}}
	bothSides := CircuitPair{First: &fCircuit{name: "a"}, Second: &fCircuit{name: "b"}}

	missingHint := ChildCircuitStatusHint(missing, StatusNoMatch)
	if !strings.Contains(missingHint, "pin\nassignment could not be derived") {
		t.Errorf("expected missing-side sub-circuit hint, got %q", missingHint)
	}

	mismatchHint := ChildCircuitStatusHint(bothSides, StatusMismatch)
	if !strings.Contains(mismatchHint, "not\noriginating from equivalent circuits") {
		t.Errorf("expected both-present sub-circuit hint, got %q", mismatchHint)
	}
	if mismatchHint == missingHint {
		t.Errorf("missing-side and both-present hints must differ")
	}
}

func TestNetStatusHintWarningVsMismatch(t *testing.T) {
	mismatchHint := NetStatusHint(NetPair{}, StatusMismatch)
	if !strings.Contains(mismatchHint, "Net members not found in the reference netlist") {
		t.Errorf("expected full diagnostic guidance, got %q", mismatchHint)
	}
	warningHint := NetStatusHint(NetPair{}, StatusMatchWithWarning)
	if !strings.Contains(warningHint, "ambiguous") {
		t.Errorf("expected ambiguous-match guidance, got %q", warningHint)
	}
	if warningHint == mismatchHint {
		t.Errorf("warning and mismatch hints must differ")
	}
}

func TestDeviceStatusHintBranchesOnMissingSide(t *testing.T) {
	missing := DevicePair{First: &fDevice{name: "R1"}}
	bothSides := DevicePair{First: &fDevice{name: "R1"}, Second: &fDevice{name: "R2"}}

	missingHint := DeviceStatusHint(missing, StatusNoMatch)
	if !strings.Contains(missingHint, "No matching device was found") {
		t.Errorf("expected missing-side device hint, got %q", missingHint)
	}

	mismatchHint := DeviceStatusHint(bothSides, StatusMismatch)
	if !strings.Contains(mismatchHint, "don't match topologically") {
		t.Errorf("expected both-present device hint, got %q", mismatchHint)
	}
	if mismatchHint == missingHint {
		t.Errorf("missing-side and both-present hints must differ")
	}

	warningHint := DeviceStatusHint(bothSides, StatusMatchWithWarning)
	if !strings.Contains(warningHint, "device classes don't match") {
		t.Errorf("expected parameter/class-mismatch hint, got %q", warningHint)
	}
}

func TestPinStatusHintBranchesOnMissingSide(t *testing.T) {
	missing := PinPair{First: &fPin{name: "1"}}
	bothSides := PinPair{First: &fPin{name: "1"}, Second: &fPin{name: "2"}}

	missingHint := PinStatusHint(missing, StatusNoMatch)
	if !strings.Contains(missingHint, "No matching pin was found") {
		t.Errorf("expected missing-side pin hint, got %q", missingHint)
	}

	mismatchHint := PinStatusHint(bothSides, StatusMismatch)
	if mismatchHint == missingHint {
		t.Errorf("missing-side and both-present hints must differ")
	}
}

func TestSubCircuitStatusHintBranchesOnMissingSide(t *testing.T) {
	missing := SubCircuitPair{First: &fSubCircuit{name: "X1"}}
	bothSides := SubCircuitPair{First: &fSubCircuit{name: "X1"}, Second: &fSubCircuit{name: "X2"}}

	missingHint := SubCircuitStatusHint(missing, StatusNoMatch)
	if !strings.Contains(missingHint, "No matching sub-circuit was found") {
		t.Errorf("expected missing-side sub-circuit hint, got %q", missingHint)
	}

	mismatchHint := SubCircuitStatusHint(bothSides, StatusMismatch)
	if !strings.Contains(mismatchHint, "not originating") {
		t.Errorf("expected both-present sub-circuit hint, got %q", mismatchHint)
	}
	if mismatchHint == missingHint {
		t.Errorf("missing-side and both-present hints must differ")
	}

	if got := SubCircuitStatusHint(SubCircuitPair{}, StatusMatch); got != "Sub-circuits match." {
		t.Errorf("expected terse match hint, got %q", got)
	}
}

func TestMessageHint(t *testing.T) {
	if got := messageHint("circuits match", ""); got != "circuits match" {
		t.Errorf("expected base hint unchanged with no message, got %q", got)
	}
	if got := messageHint("circuits do not match", "net COUNT differs"); got != "circuits do not match: net COUNT differs" {
		t.Errorf("unexpected combined hint: %q", got)
	}
}
