package xref

import (
	"testing"

	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

// fTerminalDef is a minimal netlist.DeviceTerminalDefinition for these
// tests; fDeviceClass (fixture_test.go) holds a slice of these in
// definition order, which buildTerminalRefs walks to resolve a normalized
// terminal id to a concrete terminal on the paired device.
type fTerminalDef struct {
	id   int
	name string
}

func (t fTerminalDef) ID() int      { return t.id }
func (t fTerminalDef) Name() string { return t.name }

// swapNormalizer is a fDeviceClass whose NormalizeTerminalID collapses a
// configurable set of ids to a single canonical id, standing in for a MOS
// source/drain swap.
type swapNormalizer struct {
	fDeviceClass
	collapse map[int]int
}

func (c *swapNormalizer) NormalizeTerminalID(id int) int {
	if n, ok := c.collapse[id]; ok {
		return n
	}
	return id
}

func mosClass() *swapNormalizer {
	return &swapNormalizer{
		fDeviceClass: fDeviceClass{
			name: "MOS",
			terms: []netlist.DeviceTerminalDefinition{
				fTerminalDef{id: 0, name: "S"},
				fTerminalDef{id: 1, name: "D"},
				fTerminalDef{id: 2, name: "G"},
			},
		},
		collapse: map[int]int{0: 0, 1: 0, 2: 2}, // S and D both normalize to 0
	}
}

func TestCorrelateTerminalsNormalizesSwappableIDs(t *testing.T) {
	circA := &fCircuit{name: "INV", id: 1}
	circB := &fCircuit{name: "INV", id: 2}

	class := mosClass()
	da := &fDevice{name: "M1", id: 1, circuit: circA, class: class}
	db := &fDevice{name: "M1", id: 1, circuit: circB, class: class}

	// refA is attached at D (id 1); the only available terminal on db is at
	// S (id 0) — without normalization these would never match.
	refA := &netlist.NetTerminalRef{DeviceVal: da, TerminalIDVal: 1}
	refB := &netlist.NetTerminalRef{DeviceVal: db, TerminalIDVal: 0}

	na := &fNet{name: "OUT", id: 1, circuit: circA, terms: []*netlist.NetTerminalRef{refA}}
	nb := &fNet{name: "OUT", id: 2, circuit: circB, terms: []*netlist.NetTerminalRef{refB}}

	otherDevice := newPairStore[netlist.Device]()
	otherDevice.recordPair(da, db)
	otherPin := newPairStore[netlist.Pin]()
	otherSubCircuit := newPairStore[netlist.SubCircuit]()

	data := correlateNets(na, nb, otherDevice, otherPin, otherSubCircuit)

	if len(data.Terminals) != 1 {
		t.Fatalf("expected exactly one terminal pair, got %d", len(data.Terminals))
	}
	pair := data.Terminals[0]
	if pair.First != refA || pair.Second != refB {
		t.Errorf("expected normalization to pair D(1) with S(0), got First=%v Second=%v", pair.First, pair.Second)
	}
}

func TestCorrelateTerminalsConsumeOnceAndLeftovers(t *testing.T) {
	circA := &fCircuit{name: "BUF", id: 1}
	circB := &fCircuit{name: "BUF", id: 2}

	class := &fDeviceClass{
		name: "R",
		terms: []netlist.DeviceTerminalDefinition{
			fTerminalDef{id: 0, name: "A"},
			fTerminalDef{id: 1, name: "B"},
		},
	}

	da1 := &fDevice{name: "R1", id: 1, circuit: circA, class: class} // unmapped on B
	da2 := &fDevice{name: "R2", id: 2, circuit: circA, class: class}
	db2 := &fDevice{name: "R2", id: 3, circuit: circB, class: class}
	db3 := &fDevice{name: "R3", id: 4, circuit: circB, class: class} // no A counterpart at all

	refA1 := &netlist.NetTerminalRef{DeviceVal: da1, TerminalIDVal: 0}
	refA2 := &netlist.NetTerminalRef{DeviceVal: da2, TerminalIDVal: 0}
	refB2 := &netlist.NetTerminalRef{DeviceVal: db2, TerminalIDVal: 0}
	refB3 := &netlist.NetTerminalRef{DeviceVal: db3, TerminalIDVal: 0}

	na := &fNet{name: "N", id: 1, circuit: circA, terms: []*netlist.NetTerminalRef{refA1, refA2}}
	nb := &fNet{name: "N", id: 2, circuit: circB, terms: []*netlist.NetTerminalRef{refB2, refB3}}

	otherDevice := newPairStore[netlist.Device]()
	otherDevice.recordPair(da2, db2)
	otherPin := newPairStore[netlist.Pin]()
	otherSubCircuit := newPairStore[netlist.SubCircuit]()

	data := correlateNets(na, nb, otherDevice, otherPin, otherSubCircuit)

	if len(data.Terminals) != 3 {
		t.Fatalf("expected 3 output pairs (1 matched + 1 A-orphan + 1 B-orphan), got %d", len(data.Terminals))
	}

	var matched, aOrphan, bOrphan int
	for _, p := range data.Terminals {
		switch {
		case p.First == refA1 && p.Second == nil:
			aOrphan++
		case p.First == nil && p.Second == refB3:
			bOrphan++
		case p.First == refA2 && p.Second == refB2:
			matched++
		default:
			t.Errorf("unexpected pair: %+v", p)
		}
	}
	if matched != 1 || aOrphan != 1 || bOrphan != 1 {
		t.Errorf("expected exactly one of each kind, got matched=%d aOrphan=%d bOrphan=%d", matched, aOrphan, bOrphan)
	}
}

func TestCorrelateSubCircuitPinsSwappableFallback(t *testing.T) {
	refCircuit := &fCircuit{name: "INV2", id: 1}
	pinA1 := &fPin{name: "A", id: 1}
	pinA2 := &fPin{name: "B", id: 2}
	refCircuit.pins = []netlist.Pin{pinA1, pinA2}
	refCircuit.byID = map[uint64]netlist.Pin{1: pinA1, 2: pinA2}

	parentA := &fCircuit{name: "TOP", id: 2}
	parentB := &fCircuit{name: "TOP", id: 3}

	sa := &fSubCircuit{name: "X1", id: 1, circuit: parentA, circuitRef: refCircuit}
	sb := &fSubCircuit{name: "X1", id: 2, circuit: parentB, circuitRef: refCircuit}

	refA := &netlist.NetSubcircuitPinRef{SubCircuitVal: sa, PinIDVal: 1} // attached at pin A (id 1)
	refB5 := &netlist.NetSubcircuitPinRef{SubCircuitVal: sb, PinIDVal: 5}
	refB3 := &netlist.NetSubcircuitPinRef{SubCircuitVal: sb, PinIDVal: 3}

	na := &fNet{name: "NET", id: 1, circuit: parentA, scpins: []*netlist.NetSubcircuitPinRef{refA}}
	nb := &fNet{name: "NET", id: 2, circuit: parentB, scpins: []*netlist.NetSubcircuitPinRef{refB5, refB3}}

	otherDevice := newPairStore[netlist.Device]()
	otherPin := newPairStore[netlist.Pin]() // pinA1 deliberately left unpaired
	otherSubCircuit := newPairStore[netlist.SubCircuit]()
	otherSubCircuit.recordPair(sa, sb)

	data := correlateNets(na, nb, otherDevice, otherPin, otherSubCircuit)

	if len(data.SubCircuitPins) != 2 {
		t.Fatalf("expected 2 output pairs (1 fallback match + 1 leftover), got %d", len(data.SubCircuitPins))
	}

	var matched, leftover int
	for _, p := range data.SubCircuitPins {
		switch {
		case p.First == refA && p.Second == refB3:
			matched++
		case p.First == nil && p.Second == refB5:
			leftover++
		default:
			t.Errorf("unexpected pair: %+v", p)
		}
	}
	if matched != 1 {
		t.Error("expected the swappable fallback to pick the lowest-keyed still-available pin (id 3, not id 5)")
	}
	if leftover != 1 {
		t.Error("expected the unconsumed higher-id entry to appear as a leftover (nil, refB5)")
	}
}

func TestCorrelateNetsOneSided(t *testing.T) {
	circ := &fCircuit{name: "C", id: 1}
	class := &fDeviceClass{name: "R", terms: []netlist.DeviceTerminalDefinition{fTerminalDef{id: 0, name: "A"}}}
	dev := &fDevice{name: "R1", id: 1, circuit: circ, class: class}
	termRef := &netlist.NetTerminalRef{DeviceVal: dev, TerminalIDVal: 0}
	pinRef := &netlist.NetPinRef{PinVal: &fPin{name: "P", id: 1}}

	n := &fNet{
		name: "ORPHAN", id: 1, circuit: circ,
		terms: []*netlist.NetTerminalRef{termRef},
		pins:  []*netlist.NetPinRef{pinRef},
	}

	otherDevice := newPairStore[netlist.Device]()
	otherPin := newPairStore[netlist.Pin]()
	otherSubCircuit := newPairStore[netlist.SubCircuit]()

	data := correlateNets(nil, n, otherDevice, otherPin, otherSubCircuit)

	if len(data.Terminals) != 1 || data.Terminals[0].First != nil || data.Terminals[0].Second != termRef {
		t.Errorf("expected the sole terminal emitted as (nil, ref) for a net absent on side A, got %+v", data.Terminals)
	}
	if len(data.Pins) != 1 || data.Pins[0].First != nil || data.Pins[0].Second != pinRef {
		t.Errorf("expected the sole pin ref emitted as (nil, ref), got %+v", data.Pins)
	}
}

func TestCorrelateNetsBothNil(t *testing.T) {
	otherDevice := newPairStore[netlist.Device]()
	otherPin := newPairStore[netlist.Pin]()
	otherSubCircuit := newPairStore[netlist.SubCircuit]()

	data := correlateNets(nil, nil, otherDevice, otherPin, otherSubCircuit)
	if data == nil {
		t.Fatal("expected a non-nil empty PerNetData for an invalid (nil, nil) net pair")
	}
	if len(data.Terminals) != 0 || len(data.Pins) != 0 || len(data.SubCircuitPins) != 0 {
		t.Errorf("expected all three sequences empty, got %+v", data)
	}
}
