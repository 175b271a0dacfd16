// Package xref implements the netlist cross-reference engine: it consumes
// compare events from an external comparer and builds a structural
// correspondence between two netlists — pairing circuits, nets, devices,
// sub-circuits and pins and classifying each pairing with a Status.
package xref

import "github.com/OpenTraceLab/netxref/pkg/netlist"

type recorderState int

const (
	stateIdle recorderState = iota
	stateInNetlist
	stateInCircuit
)

// PerCircuitData holds everything recorded for one circuit pair: its
// overall status plus the four sorted entity-pair sequences and the log
// entries that arrived while this circuit was current.
type PerCircuitData struct {
	Status  Status
	Message string

	Nets        []EntityPair[netlist.Net]
	Devices     []EntityPair[netlist.Device]
	Pins        []EntityPair[netlist.Pin]
	SubCircuits []EntityPair[netlist.SubCircuit]

	LogEntries []LogEntry
}

type netPairKey struct {
	a, b netlist.Net
}

// CrossReference is C4 + C2: it receives compare events (its BeginNetlist,
// BeginCircuit, Match*/…Mismatch and End* methods), builds the pair store,
// and produces per-circuit and (lazily) per-net correlation data. It
// implements db-style netlist compare logger semantics: exactly one
// begin_netlist/end_netlist envelope per run, after which it is read-only
// save for its lazy per-net cache.
type CrossReference struct {
	netlistA, netlistB netlist.Netlist

	circuits       []EntityPair[netlist.Circuit]
	perCircuitData []*PerCircuitData
	dataRefs       map[netlist.Circuit]*PerCircuitData

	otherCircuit    *pairStore[netlist.Circuit]
	otherNet        *pairStore[netlist.Net]
	otherDevice     *pairStore[netlist.Device]
	otherPin        *pairStore[netlist.Pin]
	otherSubCircuit *pairStore[netlist.SubCircuit]

	perNetCache map[netPairKey]*PerNetData

	globalLogEntries []LogEntry

	state           recorderState
	currentCircuits EntityPair[netlist.Circuit]
	currentData     *PerCircuitData
}

// New creates an empty CrossReference, ready to receive one compare run.
func New() *CrossReference {
	x := &CrossReference{}
	x.reset()
	return x
}

func (x *CrossReference) reset() {
	x.netlistA, x.netlistB = nil, nil
	x.circuits = nil
	x.perCircuitData = nil
	x.dataRefs = make(map[netlist.Circuit]*PerCircuitData)
	x.otherCircuit = newPairStore[netlist.Circuit]()
	x.otherNet = newPairStore[netlist.Net]()
	x.otherDevice = newPairStore[netlist.Device]()
	x.otherPin = newPairStore[netlist.Pin]()
	x.otherSubCircuit = newPairStore[netlist.SubCircuit]()
	x.perNetCache = make(map[netPairKey]*PerNetData)
	x.globalLogEntries = nil
	x.state = stateIdle
	x.currentCircuits = EntityPair[netlist.Circuit]{}
	x.currentData = nil
}

// Clear resets the cross-reference to empty, as if newly created.
func (x *CrossReference) Clear() {
	x.reset()
}

func (x *CrossReference) logGlobal(sev Severity, msg string) {
	x.globalLogEntries = append(x.globalLogEntries, LogEntry{Severity: sev, Message: msg})
}

// ---------------------------------------------------------------------
// Compare-event interface (spec §4.4). The comparer drives these in the
// order: begin_netlist -> per-circuit traversal -> end_netlist.
// ---------------------------------------------------------------------

func (x *CrossReference) BeginNetlist(a, b netlist.Netlist) {
	if x.state != stateIdle {
		x.logGlobal(SeverityError, "begin_netlist called while a netlist was already open; previous run was discarded")
		x.reset()
	}
	x.netlistA, x.netlistB = a, b
	x.currentCircuits = EntityPair[netlist.Circuit]{}
	x.state = stateInNetlist
}

func (x *CrossReference) EndNetlist(a, b netlist.Netlist) {
	if x.state == stateInCircuit {
		x.logGlobal(SeverityError, "end_netlist called with a circuit still open; closing it implicitly")
		x.finishCircuit(StatusNoMatch, "implicitly closed by end_netlist")
	}
	if x.state == stateIdle {
		x.logGlobal(SeverityWarning, "end_netlist called without a matching begin_netlist")
	}
	x.sortNetlist()
	x.state = stateIdle
}

func (x *CrossReference) BeginCircuit(a, b netlist.Circuit) {
	if x.state == stateInCircuit {
		x.logGlobal(SeverityError, "begin_circuit called while another circuit was open; closing it implicitly")
		x.finishCircuit(StatusNoMatch, "implicitly closed by nested begin_circuit")
	}
	if x.state == stateIdle {
		x.logGlobal(SeverityWarning, "begin_circuit called outside begin_netlist/end_netlist")
	}
	x.establishCircuitPair(a, b)
	x.state = stateInCircuit
}

// EndCircuit finalizes the current circuit with Match or NoMatch depending
// on matching, sorts its four entity sequences, and returns to InNetlist.
func (x *CrossReference) EndCircuit(a, b netlist.Circuit, matching bool, msg string) {
	if x.state != stateInCircuit {
		x.logGlobal(SeverityWarning, "end_circuit called outside begin_circuit")
		return
	}
	status := StatusNoMatch
	if matching {
		status = StatusMatch
	}
	x.finishCircuit(status, msg)
}

// CircuitSkipped synthesizes a tight begin_circuit/end_circuit envelope with
// status Skipped.
func (x *CrossReference) CircuitSkipped(a, b netlist.Circuit, msg string) {
	x.BeginCircuit(a, b)
	x.finishCircuit(StatusSkipped, msg)
}

// CircuitMismatch synthesizes a tight begin_circuit/end_circuit envelope
// with status Mismatch.
func (x *CrossReference) CircuitMismatch(a, b netlist.Circuit, msg string) {
	x.BeginCircuit(a, b)
	x.finishCircuit(StatusMismatch, msg)
}

// LogEntry attaches a log line to the current circuit, or to the global
// log if no circuit is currently open.
func (x *CrossReference) LogEntry(severity Severity, msg string) {
	if x.currentData != nil {
		x.currentData.LogEntries = append(x.currentData.LogEntries, LogEntry{Severity: severity, Message: msg})
	} else {
		x.logGlobal(severity, msg)
	}
}

func (x *CrossReference) MatchNets(a, b netlist.Net) {
	x.establishNetPair(a, b, StatusMatch, "")
}

func (x *CrossReference) MatchAmbiguousNets(a, b netlist.Net, msg string) {
	x.establishNetPair(a, b, StatusMatchWithWarning, msg)
}

func (x *CrossReference) NetMismatch(a, b netlist.Net, msg string) {
	x.establishNetPair(a, b, StatusMismatch, msg)
}

func (x *CrossReference) MatchDevices(a, b netlist.Device) {
	x.establishDevicePair(a, b, StatusMatch, "")
}

func (x *CrossReference) MatchDevicesWithDifferentParameters(a, b netlist.Device) {
	x.establishDevicePair(a, b, StatusMatchWithWarning, "")
}

func (x *CrossReference) MatchDevicesWithDifferentDeviceClasses(a, b netlist.Device) {
	x.establishDevicePair(a, b, StatusMatchWithWarning, "")
}

func (x *CrossReference) DeviceMismatch(a, b netlist.Device, msg string) {
	x.establishDevicePair(a, b, StatusMismatch, msg)
}

func (x *CrossReference) MatchPins(a, b netlist.Pin) {
	x.establishPinPair(a, b, StatusMatch, "")
}

func (x *CrossReference) PinMismatch(a, b netlist.Pin, msg string) {
	x.establishPinPair(a, b, StatusMismatch, msg)
}

func (x *CrossReference) MatchSubcircuits(a, b netlist.SubCircuit) {
	x.establishSubCircuitPair(a, b, StatusMatch, "")
}

func (x *CrossReference) SubcircuitMismatch(a, b netlist.SubCircuit, msg string) {
	x.establishSubCircuitPair(a, b, StatusMismatch, msg)
}

// ---------------------------------------------------------------------
// Internal bookkeeping
// ---------------------------------------------------------------------

func (x *CrossReference) establishCircuitPair(a, b netlist.Circuit) {
	pair := EntityPair[netlist.Circuit]{First: a, Second: b}
	x.circuits = append(x.circuits, pair)

	data := &PerCircuitData{}
	x.perCircuitData = append(x.perCircuitData, data)
	if !isZero[netlist.Circuit](a) {
		x.dataRefs[a] = data
	}
	if !isZero[netlist.Circuit](b) {
		x.dataRefs[b] = data
	}

	x.otherCircuit.recordPair(a, b)
	x.currentCircuits = pair
	x.currentData = data
}

func (x *CrossReference) finishCircuit(status Status, msg string) {
	if x.currentData == nil {
		return
	}
	sortEntityPairs(x.currentData.Devices, byDeviceClassName)
	sortEntityPairs(x.currentData.SubCircuits, byRefCircuitName)
	sortEntityPairs(x.currentData.Pins, byName[netlist.Pin])
	sortEntityPairs(x.currentData.Nets, byName[netlist.Net])

	x.currentData.Status = status
	x.currentData.Message = msg

	x.currentCircuits = EntityPair[netlist.Circuit]{}
	x.currentData = nil
	x.state = stateInNetlist
}

func (x *CrossReference) establishNetPair(a, b netlist.Net, status Status, msg string) {
	if x.currentData == nil {
		x.logGlobal(SeverityError, "net event received outside a circuit; ignored")
		return
	}
	x.currentData.Nets = append(x.currentData.Nets, EntityPair[netlist.Net]{First: a, Second: b, Status: status, Message: msg})
	x.otherNet.recordPair(a, b)
}

func (x *CrossReference) establishDevicePair(a, b netlist.Device, status Status, msg string) {
	if x.currentData == nil {
		x.logGlobal(SeverityError, "device event received outside a circuit; ignored")
		return
	}
	x.currentData.Devices = append(x.currentData.Devices, EntityPair[netlist.Device]{First: a, Second: b, Status: status, Message: msg})
	x.otherDevice.recordPair(a, b)
}

func (x *CrossReference) establishPinPair(a, b netlist.Pin, status Status, msg string) {
	if x.currentData == nil {
		x.logGlobal(SeverityError, "pin event received outside a circuit; ignored")
		return
	}
	x.currentData.Pins = append(x.currentData.Pins, EntityPair[netlist.Pin]{First: a, Second: b, Status: status, Message: msg})
	x.otherPin.recordPair(a, b)
}

func (x *CrossReference) establishSubCircuitPair(a, b netlist.SubCircuit, status Status, msg string) {
	if x.currentData == nil {
		x.logGlobal(SeverityError, "subcircuit event received outside a circuit; ignored")
		return
	}
	x.currentData.SubCircuits = append(x.currentData.SubCircuits, EntityPair[netlist.SubCircuit]{First: a, Second: b, Status: status, Message: msg})
	x.otherSubCircuit.recordPair(a, b)
}

func (x *CrossReference) sortNetlist() {
	sortEntityPairs(x.circuits, byName[netlist.Circuit])
}

// ---------------------------------------------------------------------
// Queries (spec §4.4, read-only once end_netlist has run)
// ---------------------------------------------------------------------

func (x *CrossReference) NetlistA() netlist.Netlist { return x.netlistA }
func (x *CrossReference) NetlistB() netlist.Netlist { return x.netlistB }

func (x *CrossReference) CircuitCount() int { return len(x.circuits) }

// Circuits returns the top-level, name-sorted sequence of circuit pairs.
func (x *CrossReference) Circuits() []EntityPair[netlist.Circuit] { return x.circuits }

func (x *CrossReference) GlobalLogEntries() []LogEntry { return x.globalLogEntries }

func (x *CrossReference) OtherCircuitFor(c netlist.Circuit) netlist.Circuit {
	return x.otherCircuit.otherOf(c)
}

func (x *CrossReference) OtherNetFor(n netlist.Net) netlist.Net { return x.otherNet.otherOf(n) }

func (x *CrossReference) OtherDeviceFor(d netlist.Device) netlist.Device {
	return x.otherDevice.otherOf(d)
}

func (x *CrossReference) OtherPinFor(p netlist.Pin) netlist.Pin { return x.otherPin.otherOf(p) }

func (x *CrossReference) OtherSubCircuitFor(sc netlist.SubCircuit) netlist.SubCircuit {
	return x.otherSubCircuit.otherOf(sc)
}

// PerCircuitDataFor returns the record for a circuit pair, accepting either
// side as the lookup key (First is tried before Second). Returns nil if
// neither side is known.
func (x *CrossReference) PerCircuitDataFor(circuits EntityPair[netlist.Circuit]) *PerCircuitData {
	if !isZero[netlist.Circuit](circuits.First) {
		if d, ok := x.dataRefs[circuits.First]; ok {
			return d
		}
	}
	if !isZero[netlist.Circuit](circuits.Second) {
		if d, ok := x.dataRefs[circuits.Second]; ok {
			return d
		}
	}
	return nil
}

// PerNetDataFor lazily computes and caches the correlation for a net pair.
// Both sides nil returns an empty, non-nil PerNetData (not an error).
func (x *CrossReference) PerNetDataFor(nets EntityPair[netlist.Net]) *PerNetData {
	if isZero[netlist.Net](nets.First) && isZero[netlist.Net](nets.Second) {
		return &PerNetData{}
	}
	key := netPairKey{nets.First, nets.Second}
	if data, ok := x.perNetCache[key]; ok {
		return data
	}
	data := correlateNets(nets.First, nets.Second, x.otherDevice, x.otherPin, x.otherSubCircuit)
	x.perNetCache[key] = data
	return data
}
