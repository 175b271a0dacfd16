package xref

import "fmt"

// Status hint strings are canonical, multi-line guidance text for a
// (status, missing-side) combination, reworded from the original
// NetlistCrossReferenceModel::*_status_hint functions into this repo's
// voice while preserving their meaning and line structure. cmd/xref's
// compare summary prints a circuit's hint right after the circuit's name
// on the same line.

// bothPresent reports whether neither side of a pair is the zero/nil
// value — i.e. whether a mismatch represents "paired but different"
// rather than "one side is missing entirely", matching the original's
// "!cps.first.first || !cps.first.second" missing-side check.
func bothPresent(first, second any) bool {
	return first != nil && second != nil
}

func CircuitStatusHint(pair CircuitPair, s Status) string {
	switch s {
	case StatusMismatch, StatusNoMatch:
		if !bothPresent(pair.First, pair.Second) {
			return "No matching circuit found in the other netlist.\n" +
				"By default, circuits are identified by their name.\n" +
				"A missing circuit probably means there is no circuit in the other netlist with this name."
		}
		return "Circuits could be paired, but there is a mismatch inside.\n" +
			"Browse the circuit's component list to identify the mismatching elements."
	case StatusSkipped:
		return "Circuits can only be matched if their child circuits have a known counterpart and a\n" +
			"pin-to-pin correspondence could be established for each child circuit.\n" +
			"This is not the case here. Browse the child circuits to identify the blockers.\n" +
			"Potential blockers are sub-circuits without a corresponding other circuit, or circuits\n" +
			"where some pins could not be mapped to pins from the corresponding other circuit."
	case StatusMatchWithWarning:
		return "Circuits match, but with warnings. Browse the circuit's component list to review them."
	case StatusMatch:
		return "Circuits match."
	default:
		return "Circuit was not compared."
	}
}

func TopCircuitStatusHint(pair CircuitPair, s Status) string {
	hint := CircuitStatusHint(pair, s)
	if s == StatusMatch {
		return "Top circuits match."
	}
	return hint
}

func ChildCircuitStatusHint(pair CircuitPair, s Status) string {
	switch s {
	case StatusMismatch, StatusNoMatch:
		if !bothPresent(pair.First, pair.Second) {
			return "No matching sub-circuit was found in the other netlist - this is likely because pin\n" +
				"assignment could not be derived from the nets connected to the pins.\n" +
				"Check that the pins are attached properly. If pins need to be swappable, mark them\n" +
				"equivalent for this device class."
		}
		return "Two different sub-circuits fit here in the same way, but they are not\n" +
			"originating from equivalent circuits.\n" +
			"If the circuits behind the sub-circuits are identical, associating them as the same\n" +
			"circuit will resolve this."
	case StatusMatchWithWarning:
		return "Circuit matches its parent's counterpart, with warnings."
	case StatusMatch:
		return "Circuit matches its parent's counterpart."
	case StatusSkipped:
		return "Circuit was skipped."
	default:
		return "Circuit was not compared."
	}
}

func NetStatusHint(pair NetPair, s Status) string {
	switch s {
	case StatusMismatch, StatusNoMatch:
		return "Nets don't match. Nets match if the connected sub-circuit pins and device terminals match\n" +
			"a counterpart in the other netlist (component-wise and pin/terminal-wise).\n" +
			"If there already is a net candidate from the other netlist, scan the net members for\n" +
			"mismatching items and fix those first.\n" +
			"Otherwise, look for the corresponding other net.\n" +
			"Net members not found in the reference netlist indicate additional connections.\n" +
			"Net members only found in the reference netlist indicate missing connections."
	case StatusMatchWithWarning:
		return "Nets match, but the choice was ambiguous. This may lead to mismatching nets elsewhere."
	case StatusMatch:
		return "Nets match."
	default:
		return "Net was not compared."
	}
}

func DeviceStatusHint(pair DevicePair, s Status) string {
	switch s {
	case StatusMismatch, StatusNoMatch:
		if !bothPresent(pair.First, pair.Second) {
			return "No matching device was found in the other netlist.\n" +
				"Devices are identified by the nets they are attached to. An unmatched device means\n" +
				"at least one terminal's net isn't matched with a corresponding net from the other netlist.\n" +
				"Make all terminal nets match and the device will match too."
		}
		return "Devices don't match topologically.\n" +
			"Check the terminal connections to identify the terminals that aren't connected to\n" +
			"corresponding nets. Either the devices are wired differently or the nets\n" +
			"need to be fixed before the devices will match too."
	case StatusMatchWithWarning:
		return "Topologically matching devices are found here, but either the parameters or the\n" +
			"device classes don't match.\n" +
			"If the device class differs but should be treated as equivalent, mark the classes\n" +
			"as the same device class."
	case StatusMatch:
		return "Devices match."
	default:
		return "Device was not compared."
	}
}

func PinStatusHint(pair PinPair, s Status) string {
	switch s {
	case StatusMismatch, StatusNoMatch:
		if !bothPresent(pair.First, pair.Second) {
			return "No matching pin was found in the other netlist.\n" +
				"Pins are identified by the nets they are attached to - pins on equivalent nets are also\n" +
				"equivalent. Making the nets match will make the pins match too."
		}
		return "Pin connectivity does not match its counterpart."
	case StatusMatch:
		return "Pins match."
	default:
		return "Pin was not compared."
	}
}

func SubCircuitStatusHint(pair SubCircuitPair, s Status) string {
	switch s {
	case StatusMismatch, StatusNoMatch:
		if !bothPresent(pair.First, pair.Second) {
			return "No matching sub-circuit was found in the other netlist - this is likely because pin\n" +
				"assignment could not be derived from the nets connected to the pins.\n" +
				"Check that the pins are attached properly. If pins need to be swappable, mark them\n" +
				"equivalent for this device class."
		}
		return "Two different sub-circuits fit here in the same way, but they are not originating\n" +
			"from equivalent circuits.\n" +
			"If the circuits behind the sub-circuits are identical, associating them as the same\n" +
			"circuit will resolve this."
	case StatusMatch:
		return "Sub-circuits match."
	default:
		return "Sub-circuit was not compared."
	}
}

// messageHint appends a recorded message to a base hint, as "hint: message",
// used when rendering a log entry or a mismatch reason alongside its status.
func messageHint(base, msg string) string {
	if msg == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, msg)
}
