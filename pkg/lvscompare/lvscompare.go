// Package lvscompare implements the minimal structural comparer: it walks
// two netlist.Netlist graphs purely by name, in no particular physical or
// topological sense, and drives the pkg/xref compare-event interface from
// the matches and mismatches it finds. It does no isomorphism solving and
// no device-parameter analysis — callers who need that feed a stronger
// comparer (e.g. one built around an external LVS engine) through the same
// xref.CrossReference instead.
package lvscompare

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/netxref/pkg/netlist"
	"github.com/OpenTraceLab/netxref/pkg/xref"
)

// Logger is the subset of xref.CrossReference's compare-event interface
// this comparer drives. xref.CrossReference satisfies it directly.
type Logger interface {
	BeginNetlist(a, b netlist.Netlist)
	EndNetlist(a, b netlist.Netlist)
	BeginCircuit(a, b netlist.Circuit)
	EndCircuit(a, b netlist.Circuit, matching bool, msg string)
	CircuitSkipped(a, b netlist.Circuit, msg string)
	CircuitMismatch(a, b netlist.Circuit, msg string)
	LogEntry(severity xref.Severity, msg string)

	MatchNets(a, b netlist.Net)
	MatchAmbiguousNets(a, b netlist.Net, msg string)
	NetMismatch(a, b netlist.Net, msg string)

	MatchDevices(a, b netlist.Device)
	MatchDevicesWithDifferentDeviceClasses(a, b netlist.Device)
	DeviceMismatch(a, b netlist.Device, msg string)

	MatchPins(a, b netlist.Pin)
	PinMismatch(a, b netlist.Pin, msg string)

	MatchSubcircuits(a, b netlist.SubCircuit)
	SubcircuitMismatch(a, b netlist.SubCircuit, msg string)
}

// Compare runs the name-matching comparer over a and b, driving every
// matched or unmatched circuit, net, device, pin and sub-circuit through
// logger. It never returns an error: an unmatched entity on either side is
// reported as a mismatch event, not a Go error.
func Compare(logger Logger, a, b netlist.Netlist) {
	logger.BeginNetlist(a, b)

	circuitsA := sortedByName(a.Circuits(), netlist.Circuit.Name)
	circuitsB := byName(b.Circuits(), netlist.Circuit.Name)
	usedB := make(map[netlist.Circuit]bool)

	for _, ca := range circuitsA {
		cb, ok := circuitsB[ca.Name()]
		if !ok {
			logger.CircuitMismatch(ca, nil, fmt.Sprintf("no circuit named %q in the other netlist", ca.Name()))
			continue
		}
		usedB[cb] = true
		compareCircuit(logger, ca, cb)
	}
	for _, cb := range b.Circuits() {
		if usedB[cb] {
			continue
		}
		logger.CircuitMismatch(nil, cb, fmt.Sprintf("no circuit named %q in the first netlist", cb.Name()))
	}

	logger.EndNetlist(a, b)
}

func compareCircuit(logger Logger, ca, cb netlist.Circuit) {
	logger.BeginCircuit(ca, cb)

	nmismatch := compareNets(logger, ca, cb)
	dmismatch := compareDevices(logger, ca, cb)
	pmismatch := comparePins(logger, ca, cb)
	smismatch := compareSubCircuits(logger, ca, cb)

	matching := !(nmismatch || dmismatch || pmismatch || smismatch)
	msg := ""
	if !matching {
		msg = "one or more nets, devices, pins or sub-circuits did not match"
	}
	logger.EndCircuit(ca, cb, matching, msg)
}

func compareNets(logger Logger, ca, cb netlist.Circuit) bool {
	mismatch := false
	bn := byName(cb.Nets(), netlist.Net.Name)
	used := make(map[netlist.Net]bool)

	for _, na := range sortedByName(ca.Nets(), netlist.Net.Name) {
		nb, ok := bn[na.Name()]
		if !ok {
			logger.NetMismatch(na, nil, fmt.Sprintf("no net named %q in the other circuit", na.Name()))
			mismatch = true
			continue
		}
		used[nb] = true
		if len(na.Pins())+len(na.Terminals())+len(na.SubCircuitPins()) != len(nb.Pins())+len(nb.Terminals())+len(nb.SubCircuitPins()) {
			logger.MatchAmbiguousNets(na, nb, "connection counts differ")
			continue
		}
		logger.MatchNets(na, nb)
	}
	for _, nb := range cb.Nets() {
		if used[nb] {
			continue
		}
		logger.NetMismatch(nil, nb, fmt.Sprintf("no net named %q in the other circuit", nb.Name()))
		mismatch = true
	}
	return mismatch
}

func compareDevices(logger Logger, ca, cb netlist.Circuit) bool {
	mismatch := false
	bn := byName(cb.Devices(), netlist.Device.Name)
	used := make(map[netlist.Device]bool)

	for _, da := range sortedByName(ca.Devices(), netlist.Device.Name) {
		db, ok := bn[da.Name()]
		if !ok {
			logger.DeviceMismatch(da, nil, fmt.Sprintf("no device named %q in the other circuit", da.Name()))
			mismatch = true
			continue
		}
		used[db] = true
		if classNameOf(da) != classNameOf(db) {
			logger.MatchDevicesWithDifferentDeviceClasses(da, db)
			continue
		}
		logger.MatchDevices(da, db)
	}
	for _, db := range cb.Devices() {
		if used[db] {
			continue
		}
		logger.DeviceMismatch(nil, db, fmt.Sprintf("no device named %q in the other circuit", db.Name()))
		mismatch = true
	}
	return mismatch
}

func comparePins(logger Logger, ca, cb netlist.Circuit) bool {
	mismatch := false
	bn := byName(cb.Pins(), netlist.Pin.Name)
	used := make(map[netlist.Pin]bool)

	for _, pa := range sortedByName(ca.Pins(), netlist.Pin.Name) {
		pb, ok := bn[pa.Name()]
		if !ok {
			logger.PinMismatch(pa, nil, fmt.Sprintf("no pin named %q in the other circuit", pa.Name()))
			mismatch = true
			continue
		}
		used[pb] = true
		logger.MatchPins(pa, pb)
	}
	for _, pb := range cb.Pins() {
		if used[pb] {
			continue
		}
		logger.PinMismatch(nil, pb, fmt.Sprintf("no pin named %q in the other circuit", pb.Name()))
		mismatch = true
	}
	return mismatch
}

func compareSubCircuits(logger Logger, ca, cb netlist.Circuit) bool {
	mismatch := false
	bn := byName(cb.SubCircuits(), netlist.SubCircuit.Name)
	used := make(map[netlist.SubCircuit]bool)

	for _, sa := range sortedByName(ca.SubCircuits(), netlist.SubCircuit.Name) {
		sb, ok := bn[sa.Name()]
		if !ok {
			logger.SubcircuitMismatch(sa, nil, fmt.Sprintf("no sub-circuit named %q in the other circuit", sa.Name()))
			mismatch = true
			continue
		}
		used[sb] = true
		logger.MatchSubcircuits(sa, sb)
	}
	for _, sb := range cb.SubCircuits() {
		if used[sb] {
			continue
		}
		logger.SubcircuitMismatch(nil, sb, fmt.Sprintf("no sub-circuit named %q in the other circuit", sb.Name()))
		mismatch = true
	}
	return mismatch
}

func classNameOf(d netlist.Device) string {
	if d.Class() == nil {
		return ""
	}
	return d.Class().Name()
}

// byName indexes a slice by its Name(), for O(1) lookup from the other
// side. Iteration order is not meaningful here — use sortedByName for that.
func byName[T comparable](items []T, name func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, it := range items {
		m[name(it)] = it
	}
	return m
}

// sortedByName returns a name-sorted copy of items, so the events this
// comparer emits (and therefore any log ordering before xref's own
// end-of-circuit sort runs) are deterministic rather than dependent on
// the netlist's own iteration order.
func sortedByName[T comparable](items []T, name func(T) string) []T {
	out := append([]T(nil), items...)
	sort.Slice(out, func(i, j int) bool { return name(out[i]) < name(out[j]) })
	return out
}
