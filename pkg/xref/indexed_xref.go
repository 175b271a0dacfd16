package xref

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

// subCircuitPinCacheSize bounds the per-sub-circuit-instance pin
// correlation cache: boards with thousands of sub-circuit instances
// shouldn't keep every one's pin correspondence resident once a browsing
// UI has scrolled past it.
const subCircuitPinCacheSize = 4096

type scPairKey struct{ a, b netlist.SubCircuit }

// circuitSeq is a name-sorted sequence of circuit pairs plus a lookup index
// keyed on either side's circuit identity — the shape both the top-level
// and per-parent child-circuit lists need.
type circuitSeq struct {
	pairs []EntityPair[netlist.Circuit]
	index map[netlist.Circuit]int
}

func newCircuitSeq(pairs []EntityPair[netlist.Circuit]) *circuitSeq {
	s := &circuitSeq{pairs: pairs, index: make(map[netlist.Circuit]int, len(pairs)*2)}
	for i, p := range pairs {
		if !isZero[netlist.Circuit](p.First) {
			s.index[p.First] = i
		}
		if !isZero[netlist.Circuit](p.Second) {
			s.index[p.Second] = i
		}
	}
	return s
}

func (s *circuitSeq) at(i int) (EntityPair[netlist.Circuit], bool) {
	if i < 0 || i >= len(s.pairs) {
		return EntityPair[netlist.Circuit]{}, false
	}
	return s.pairs[i], true
}

func (s *circuitSeq) indexOf(c netlist.Circuit) (int, bool) {
	if isZero[netlist.Circuit](c) {
		return 0, false
	}
	i, ok := s.index[c]
	return i, ok
}

// crossReferenceIndexedModel is the IndexedModel backend over a populated
// CrossReference, grounded on layNetlistCrossReferenceModel's handling of
// the cross-reference backed indexed model: circuit lists come out of the
// recorder's own pair sequences rather than being re-derived by sorting
// live collections, and net/device/pin/sub-circuit sequences are whatever
// was recorded for that circuit pair, already sorted at end_circuit.
type crossReferenceIndexedModel struct {
	xr *CrossReference

	top      *circuitSeq
	children map[netlist.Circuit]*circuitSeq

	subcircuitPins *lru.Cache[scPairKey, []NetSubCircuitPinPair]
}

// NewCrossReferenceIndexedModel builds an IndexedModel over a populated
// CrossReference, used to browse the paired result of a completed compare
// run (the "two-sided" view, as opposed to NewSingleIndexedModel's
// one-sided view of an individual netlist).
func NewCrossReferenceIndexedModel(xr *CrossReference) IndexedModel {
	cache, _ := lru.New[scPairKey, []NetSubCircuitPinPair](subCircuitPinCacheSize)
	return &crossReferenceIndexedModel{
		xr:             xr,
		children:       make(map[netlist.Circuit]*circuitSeq),
		subcircuitPins: cache,
	}
}

func circuitRepr(p EntityPair[netlist.Circuit]) netlist.Circuit {
	if !isZero[netlist.Circuit](p.First) {
		return p.First
	}
	return p.Second
}

func refCount(c netlist.Circuit) int {
	if isZero[netlist.Circuit](c) {
		return 0
	}
	return c.RefCount()
}

func (m *crossReferenceIndexedModel) IsSingle() bool { return false }

func (m *crossReferenceIndexedModel) topSeq() *circuitSeq {
	if m.top != nil {
		return m.top
	}
	var pairs []EntityPair[netlist.Circuit]
	for _, p := range m.xr.Circuits() {
		if refCount(p.First) == 0 && refCount(p.Second) == 0 {
			pairs = append(pairs, p)
		}
	}
	m.top = newCircuitSeq(pairs)
	return m.top
}

// childSeq builds the child-circuit pair list for a parent pair. A normally
// traversed parent (Status != Skipped) already has its sub-circuit
// instances recorded in PerCircuitData.SubCircuits by MatchSubcircuits /
// SubcircuitMismatch during the real compare, so the child list is read
// straight off that sorted, already-deduplicated-per-instance sequence. A
// Skipped parent was never traversed — match_subcircuits/subcircuit_mismatch
// were never called for it — so its child list has to be re-derived by
// scanning each side's own raw sub-circuit list directly, the way
// build_child_circuit_list does for skipped circuits in the original.
func (m *crossReferenceIndexedModel) childSeq(parent EntityPair[netlist.Circuit]) *circuitSeq {
	repr := circuitRepr(parent)
	if s, ok := m.children[repr]; ok {
		return s
	}

	var pairs []EntityPair[netlist.Circuit]
	if data := m.xr.PerCircuitDataFor(parent); data != nil && data.Status != StatusSkipped {
		pairs = m.childPairsFromRecorded(data)
	} else {
		pairs = m.childPairsFromRawSubCircuits(parent)
	}

	sortEntityPairs(pairs, byName[netlist.Circuit])
	s := newCircuitSeq(pairs)
	m.children[repr] = s
	return s
}

// childPairsFromRecorded derives the child-circuit pair list for a normally
// traversed parent from its recorded sub-circuit instance pairs, one child
// circuit pair per distinct referenced circuit.
func (m *crossReferenceIndexedModel) childPairsFromRecorded(data *PerCircuitData) []EntityPair[netlist.Circuit] {
	seen := make(map[netlist.Circuit]bool)
	var pairs []EntityPair[netlist.Circuit]
	for _, sc := range data.SubCircuits {
		var refA, refB netlist.Circuit
		if !isZero[netlist.SubCircuit](sc.First) {
			refA = sc.First.CircuitRef()
		}
		if !isZero[netlist.SubCircuit](sc.Second) {
			refB = sc.Second.CircuitRef()
		}
		repr := refA
		if isZero[netlist.Circuit](repr) {
			repr = refB
		}
		if isZero[netlist.Circuit](repr) || seen[repr] {
			continue
		}
		seen[repr] = true
		pairs = append(pairs, EntityPair[netlist.Circuit]{First: refA, Second: refB})
	}
	return pairs
}

// childPairsFromRawSubCircuits re-derives the child-circuit pair list for a
// Skipped parent by scanning each side's own sub-circuit list independently.
// The seen guard marks both a referenced circuit and its counterpart as it
// goes, so the second side's pass recognizes a circuit already paired from
// the first side's pass and doesn't re-add it under the opposite pairing —
// without the guard, a circuit instantiated on both sides is listed twice,
// once per side's walk.
func (m *crossReferenceIndexedModel) childPairsFromRawSubCircuits(parent EntityPair[netlist.Circuit]) []EntityPair[netlist.Circuit] {
	seen := make(map[netlist.Circuit]bool)
	var pairs []EntityPair[netlist.Circuit]

	addFrom := func(side netlist.Circuit, sideIsFirst bool) {
		if isZero[netlist.Circuit](side) {
			return
		}
		for _, sc := range side.SubCircuits() {
			ref := sc.CircuitRef()
			if isZero[netlist.Circuit](ref) || seen[ref] {
				continue
			}
			other := m.xr.OtherCircuitFor(ref)
			if !isZero[netlist.Circuit](other) && seen[other] {
				// already recorded while walking the counterpart side
				seen[ref] = true
				continue
			}
			seen[ref] = true
			if !isZero[netlist.Circuit](other) {
				seen[other] = true
			}
			if sideIsFirst {
				pairs = append(pairs, EntityPair[netlist.Circuit]{First: ref, Second: other})
			} else {
				pairs = append(pairs, EntityPair[netlist.Circuit]{First: other, Second: ref})
			}
		}
	}

	addFrom(parent.First, true)
	addFrom(parent.Second, false)
	return pairs
}

func (m *crossReferenceIndexedModel) CircuitCount() int { return m.xr.CircuitCount() }

func (m *crossReferenceIndexedModel) TopCircuitCount() int { return len(m.topSeq().pairs) }

func (m *crossReferenceIndexedModel) ChildCircuitCount(circuits CircuitPair) int {
	return len(m.childSeq(EntityPair[netlist.Circuit]{First: circuits.First, Second: circuits.Second}).pairs)
}

func (m *crossReferenceIndexedModel) circuitData(circuits CircuitPair) *PerCircuitData {
	return m.xr.PerCircuitDataFor(EntityPair[netlist.Circuit]{First: circuits.First, Second: circuits.Second})
}

func (m *crossReferenceIndexedModel) NetCount(circuits CircuitPair) int {
	if d := m.circuitData(circuits); d != nil {
		return len(d.Nets)
	}
	return 0
}

func (m *crossReferenceIndexedModel) DeviceCount(circuits CircuitPair) int {
	if d := m.circuitData(circuits); d != nil {
		return len(d.Devices)
	}
	return 0
}

func (m *crossReferenceIndexedModel) PinCount(circuits CircuitPair) int {
	if d := m.circuitData(circuits); d != nil {
		return len(d.Pins)
	}
	return 0
}

func (m *crossReferenceIndexedModel) SubCircuitCount(circuits CircuitPair) int {
	if d := m.circuitData(circuits); d != nil {
		return len(d.SubCircuits)
	}
	return 0
}

func (m *crossReferenceIndexedModel) netData(nets NetPair) *PerNetData {
	return m.xr.PerNetDataFor(EntityPair[netlist.Net]{First: nets.First, Second: nets.Second})
}

func (m *crossReferenceIndexedModel) NetTerminalCount(nets NetPair) int {
	return len(m.netData(nets).Terminals)
}

func (m *crossReferenceIndexedModel) NetPinCount(nets NetPair) int { return len(m.netData(nets).Pins) }

func (m *crossReferenceIndexedModel) NetSubCircuitPinCount(nets NetPair) int {
	return len(m.netData(nets).SubCircuitPins)
}

func (m *crossReferenceIndexedModel) subCircuitPinPairs(subcircuits SubCircuitPair) []NetSubCircuitPinPair {
	key := scPairKey{subcircuits.First, subcircuits.Second}
	if pairs, ok := m.subcircuitPins.Get(key); ok {
		return pairs
	}
	pairs := buildSubCircuitPinPairs(m.xr, subcircuits.First, subcircuits.Second)
	m.subcircuitPins.Add(key, pairs)
	return pairs
}

func (m *crossReferenceIndexedModel) SubCircuitPinCount(subcircuits SubCircuitPair) int {
	return len(m.subCircuitPinPairs(subcircuits))
}

func (m *crossReferenceIndexedModel) ParentOfNet(nets NetPair) CircuitPair {
	var a, b netlist.Circuit
	if !isZero[netlist.Net](nets.First) {
		a = nets.First.Circuit()
	}
	if !isZero[netlist.Net](nets.Second) {
		b = nets.Second.Circuit()
	}
	return CircuitPair{First: a, Second: b}
}

func (m *crossReferenceIndexedModel) ParentOfDevice(devices DevicePair) CircuitPair {
	var a, b netlist.Circuit
	if !isZero[netlist.Device](devices.First) {
		a = devices.First.Circuit()
	}
	if !isZero[netlist.Device](devices.Second) {
		b = devices.Second.Circuit()
	}
	return CircuitPair{First: a, Second: b}
}

func (m *crossReferenceIndexedModel) ParentOfSubCircuit(subcircuits SubCircuitPair) CircuitPair {
	var a, b netlist.Circuit
	if !isZero[netlist.SubCircuit](subcircuits.First) {
		a = subcircuits.First.Circuit()
	}
	if !isZero[netlist.SubCircuit](subcircuits.Second) {
		b = subcircuits.Second.Circuit()
	}
	return CircuitPair{First: a, Second: b}
}

func (m *crossReferenceIndexedModel) CircuitFromIndex(i int) (CircuitPair, Status) {
	circuits := m.xr.Circuits()
	if i < 0 || i >= len(circuits) {
		return CircuitPair{}, StatusNone
	}
	p := circuits[i]
	return circuitPairOf(p), statusOf(m.xr.PerCircuitDataFor(p))
}

func (m *crossReferenceIndexedModel) TopCircuitFromIndex(i int) (CircuitPair, Status) {
	p, ok := m.topSeq().at(i)
	if !ok {
		return CircuitPair{}, StatusNone
	}
	return circuitPairOf(p), statusOf(m.xr.PerCircuitDataFor(p))
}

func (m *crossReferenceIndexedModel) ChildCircuitFromIndex(circuits CircuitPair, i int) (CircuitPair, Status) {
	p, ok := m.childSeq(EntityPair[netlist.Circuit]{First: circuits.First, Second: circuits.Second}).at(i)
	if !ok {
		return CircuitPair{}, StatusNone
	}
	return circuitPairOf(p), statusOf(m.xr.PerCircuitDataFor(p))
}

func (m *crossReferenceIndexedModel) NetFromIndex(circuits CircuitPair, i int) (NetPair, Status) {
	d := m.circuitData(circuits)
	if d == nil || i < 0 || i >= len(d.Nets) {
		return NetPair{}, StatusNone
	}
	p := d.Nets[i]
	return NetPair{First: p.First, Second: p.Second}, p.Status
}

func (m *crossReferenceIndexedModel) DeviceFromIndex(circuits CircuitPair, i int) (DevicePair, Status) {
	d := m.circuitData(circuits)
	if d == nil || i < 0 || i >= len(d.Devices) {
		return DevicePair{}, StatusNone
	}
	p := d.Devices[i]
	return DevicePair{First: p.First, Second: p.Second}, p.Status
}

func (m *crossReferenceIndexedModel) PinFromIndex(circuits CircuitPair, i int) (PinPair, Status) {
	d := m.circuitData(circuits)
	if d == nil || i < 0 || i >= len(d.Pins) {
		return PinPair{}, StatusNone
	}
	p := d.Pins[i]
	return PinPair{First: p.First, Second: p.Second}, p.Status
}

func (m *crossReferenceIndexedModel) SubCircuitFromIndex(circuits CircuitPair, i int) (SubCircuitPair, Status) {
	d := m.circuitData(circuits)
	if d == nil || i < 0 || i >= len(d.SubCircuits) {
		return SubCircuitPair{}, StatusNone
	}
	p := d.SubCircuits[i]
	return SubCircuitPair{First: p.First, Second: p.Second}, p.Status
}

func (m *crossReferenceIndexedModel) NetTerminalRefFromIndex(nets NetPair, i int) NetTerminalPair {
	refs := m.netData(nets).Terminals
	if i < 0 || i >= len(refs) {
		return NetTerminalPair{}
	}
	return refs[i]
}

func (m *crossReferenceIndexedModel) NetPinRefFromIndex(nets NetPair, i int) NetPinPair {
	refs := m.netData(nets).Pins
	if i < 0 || i >= len(refs) {
		return NetPinPair{}
	}
	return refs[i]
}

func (m *crossReferenceIndexedModel) NetSubCircuitPinRefFromIndex(nets NetPair, i int) NetSubCircuitPinPair {
	refs := m.netData(nets).SubCircuitPins
	if i < 0 || i >= len(refs) {
		return NetSubCircuitPinPair{}
	}
	return refs[i]
}

func (m *crossReferenceIndexedModel) SubCircuitPinRefFromIndex(subcircuits SubCircuitPair, i int) NetSubCircuitPinPair {
	pairs := m.subCircuitPinPairs(subcircuits)
	if i < 0 || i >= len(pairs) {
		return NetSubCircuitPinPair{}
	}
	return pairs[i]
}

func (m *crossReferenceIndexedModel) CircuitIndex(circuits CircuitPair) (int, bool) {
	all := newCircuitSeq(m.xr.Circuits())
	if i, ok := all.indexOf(circuits.First); ok {
		return i, ok
	}
	return all.indexOf(circuits.Second)
}

func (m *crossReferenceIndexedModel) NetIndex(nets NetPair) (int, bool) {
	d := m.circuitData(CircuitPair{First: parentOf(nets.First, nets.Second)})
	if d == nil {
		return 0, false
	}
	for i, p := range d.Nets {
		if p.First == nets.First && p.Second == nets.Second {
			return i, true
		}
	}
	return 0, false
}

func (m *crossReferenceIndexedModel) DeviceIndex(devices DevicePair) (int, bool) {
	parent := m.ParentOfDevice(devices)
	d := m.circuitData(parent)
	if d == nil {
		return 0, false
	}
	for i, p := range d.Devices {
		if p.First == devices.First && p.Second == devices.Second {
			return i, true
		}
	}
	return 0, false
}

func (m *crossReferenceIndexedModel) PinIndex(pins PinPair, circuits CircuitPair) (int, bool) {
	d := m.circuitData(circuits)
	if d == nil {
		return 0, false
	}
	for i, p := range d.Pins {
		if p.First == pins.First && p.Second == pins.Second {
			return i, true
		}
	}
	return 0, false
}

func (m *crossReferenceIndexedModel) SubCircuitIndex(subcircuits SubCircuitPair) (int, bool) {
	parent := m.ParentOfSubCircuit(subcircuits)
	d := m.circuitData(parent)
	if d == nil {
		return 0, false
	}
	for i, p := range d.SubCircuits {
		if p.First == subcircuits.First && p.Second == subcircuits.Second {
			return i, true
		}
	}
	return 0, false
}

func (m *crossReferenceIndexedModel) SecondNetFor(n netlist.Net) netlist.Net {
	return m.xr.OtherNetFor(n)
}

func (m *crossReferenceIndexedModel) SecondCircuitFor(c netlist.Circuit) netlist.Circuit {
	return m.xr.OtherCircuitFor(c)
}

func circuitPairOf(p EntityPair[netlist.Circuit]) CircuitPair {
	return CircuitPair{First: p.First, Second: p.Second}
}

func statusOf(d *PerCircuitData) Status {
	if d == nil {
		return StatusNone
	}
	return d.Status
}

func parentOf(a, b netlist.Net) netlist.Circuit {
	if !isZero[netlist.Net](a) {
		return a.Circuit()
	}
	if !isZero[netlist.Net](b) {
		return b.Circuit()
	}
	return nil
}

// buildSubCircuitPinPairs derives, for one paired sub-circuit instance, the
// per-pin net-reference correspondence: for every pin of the referenced
// circuit, the NetSubcircuitPinRef this instance's net (on each side)
// attaches to that pin, matched by following the already-established
// other-pin correspondence rather than raw pin ids (the two sides'
// referenced circuits are different objects, so their pin ids don't align
// by coincidence the way a single circuit's own ids would).
func buildSubCircuitPinPairs(xr *CrossReference, a, b netlist.SubCircuit) []NetSubCircuitPinPair {
	findRefs := func(sc netlist.SubCircuit) map[netlist.Pin]*netlist.NetSubcircuitPinRef {
		out := make(map[netlist.Pin]*netlist.NetSubcircuitPinRef)
		if isZero[netlist.SubCircuit](sc) {
			return out
		}
		parent := sc.Circuit()
		ref := sc.CircuitRef()
		if parent == nil || ref == nil {
			return out
		}
		for _, n := range parent.Nets() {
			for _, r := range n.SubCircuitPins() {
				if r.SubCircuit() == sc {
					if p := ref.PinByID(r.PinID()); !isZero[netlist.Pin](p) {
						out[p] = r
					}
				}
			}
		}
		return out
	}

	refsA := findRefs(a)
	refsB := findRefs(b)

	var refCircuitA, refCircuitB netlist.Circuit
	if !isZero[netlist.SubCircuit](a) {
		refCircuitA = a.CircuitRef()
	}
	if !isZero[netlist.SubCircuit](b) {
		refCircuitB = b.CircuitRef()
	}

	var pairs []NetSubCircuitPinPair
	seenB := make(map[netlist.Pin]bool)

	if refCircuitA != nil {
		for _, pinA := range refCircuitA.Pins() {
			refA := refsA[pinA]
			var refB *netlist.NetSubcircuitPinRef
			if pinB := xr.OtherPinFor(pinA); !isZero[netlist.Pin](pinB) {
				refB = refsB[pinB]
				seenB[pinB] = true
			}
			if refA == nil && refB == nil {
				continue
			}
			pairs = append(pairs, NetSubCircuitPinPair{First: refA, Second: refB})
		}
	}
	if refCircuitB != nil {
		for _, pinB := range refCircuitB.Pins() {
			if seenB[pinB] {
				continue
			}
			if refB := refsB[pinB]; refB != nil {
				pairs = append(pairs, NetSubCircuitPinPair{Second: refB})
			}
		}
	}

	sortRefPairs(pairs, cmpNetSubcircuitPinRef)
	return pairs
}
