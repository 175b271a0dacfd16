package xref

import (
	"strings"

	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

// This file implements C1: the name/structure comparators and the
// null-first pair lifter they're built on. Every comparator returns a
// value that is <0, 0 or >0, matching the three-way compare convention
// used throughout the package (the same convention as cmp.Compare and
// strings.Compare in the standard library).

type named interface{ Name() string }
type expandedNamed interface{ ExpandedName() string }
type identified interface{ ID() uint64 }

func byName[T named](a, b T) int {
	return strings.Compare(a.Name(), b.Name())
}

func byExpandedName[T expandedNamed](a, b T) int {
	return strings.Compare(a.ExpandedName(), b.ExpandedName())
}

// byExpandedNamePreferred is the indexed-model variant: entities with an
// empty expanded name sort after all named entities, then ties are broken
// by numeric id. This keeps the single-netlist backend's output
// insertion-order independent while still giving unnamed nets/devices a
// deterministic relative order.
func byExpandedNamePreferred[T interface {
	expandedNamed
	identified
}](a, b T) int {
	ea, eb := a.ExpandedName(), b.ExpandedName()
	if (ea == "") != (eb == "") {
		if ea == "" {
			return 1
		}
		return -1
	}
	if ea != eb {
		return strings.Compare(ea, eb)
	}
	ia, ib := a.ID(), b.ID()
	switch {
	case ia == ib:
		return 0
	case ia < ib:
		return -1
	default:
		return 1
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

func byTerminalID(a, b *netlist.NetTerminalRef) int {
	return cmpUint64(uint64(a.TerminalID()), uint64(b.TerminalID()))
}

func byDeviceClassName(a, b netlist.Device) int {
	ca, cb := a.Class(), b.Class()
	if (ca == nil) != (cb == nil) {
		if ca == nil {
			return -1
		}
		return 1
	}
	if ca == nil {
		return 0
	}
	return strings.Compare(ca.Name(), cb.Name())
}

func byRefCircuitName(a, b netlist.SubCircuit) int {
	ra, rb := a.CircuitRef(), b.CircuitRef()
	if (ra == nil) != (rb == nil) {
		if ra == nil {
			return -1
		}
		return 1
	}
	if ra == nil {
		return 0
	}
	return strings.Compare(ra.Name(), rb.Name())
}

// cmpNetTerminalRef orders two NetTerminalRef by their device's expanded
// name, then by terminal id.
func cmpNetTerminalRef(a, b *netlist.NetTerminalRef) int {
	if c := byExpandedName[netlist.Device](a.Device(), b.Device()); c != 0 {
		return c
	}
	return byTerminalID(a, b)
}

// cmpNetSubcircuitPinRef orders two NetSubcircuitPinRef by the sub-circuit's
// expanded name, then by the expanded name of the referenced pin.
func cmpNetSubcircuitPinRef(a, b *netlist.NetSubcircuitPinRef) int {
	if c := byExpandedName[netlist.SubCircuit](a.SubCircuit(), b.SubCircuit()); c != 0 {
		return c
	}
	return byExpandedName[netlist.Pin](a.Pin(), b.Pin())
}

// cmpNetPinRef orders two NetPinRef by the expanded name of the pin they
// reference.
func cmpNetPinRef(a, b *netlist.NetPinRef) int {
	return byExpandedName[netlist.Pin](a.Pin(), b.Pin())
}

// compareNullable implements the pair lifter's null-first rule for a single
// side: a nil value sorts before any non-nil value, and two non-nil values
// fall through to valueCmp.
func compareNullable[T comparable](a, b T, valueCmp func(a, b T) int) int {
	an, bn := isZero(a), isZero(b)
	if an != bn {
		if an {
			return -1
		}
		return 1
	}
	if an {
		return 0
	}
	return valueCmp(a, b)
}

// comparePairs lifts a value comparator to operate on a (first, second)
// pair: compare firsts (null-first), tie-break on seconds.
func comparePairs[T comparable](aFirst, aSecond, bFirst, bSecond T, valueCmp func(a, b T) int) int {
	if c := compareNullable(aFirst, bFirst, valueCmp); c != 0 {
		return c
	}
	return compareNullable(aSecond, bSecond, valueCmp)
}
