package xref

import (
	"testing"

	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

func TestSingleIndexedModelCountsAndOrder(t *testing.T) {
	top := &fCircuit{name: "TOP", id: 1}
	child := &fCircuit{name: "CHILD", id: 2, refCount: 1}
	sub := &fSubCircuit{name: "X1", id: 1, circuit: top, circuitRef: child}
	top.subckts = []netlist.SubCircuit{sub}

	zed := &fNet{name: "ZED", id: 1, circuit: top}
	alpha := &fNet{name: "ALPHA", id: 2, circuit: top}
	top.nets = []netlist.Net{zed, alpha}

	nl := &fNetlist{name: "A", circuits: []netlist.Circuit{top, child}}
	m := NewSingleIndexedModel(nl)

	if !m.IsSingle() {
		t.Fatal("expected IsSingle() true")
	}
	if m.CircuitCount() != 2 {
		t.Errorf("expected 2 circuits, got %d", m.CircuitCount())
	}
	if m.TopCircuitCount() != 1 {
		t.Errorf("expected 1 top circuit (child has RefCount 1), got %d", m.TopCircuitCount())
	}

	topPair := CircuitPair{First: top}
	if got := m.ChildCircuitCount(topPair); got != 1 {
		t.Errorf("expected 1 child circuit, got %d", got)
	}
	childPair, status := m.ChildCircuitFromIndex(topPair, 0)
	if childPair.First != child || status != StatusNone {
		t.Errorf("expected child circuit with StatusNone, got %v/%v", childPair, status)
	}

	if got := m.NetCount(topPair); got != 2 {
		t.Fatalf("expected 2 nets, got %d", got)
	}
	firstNet, _ := m.NetFromIndex(topPair, 0)
	if firstNet.First.Name() != "ALPHA" {
		t.Errorf("expected nets sorted by expanded name, first was %q", firstNet.First.Name())
	}

	idx, ok := m.NetIndex(NetPair{First: zed})
	if !ok || idx != 1 {
		t.Errorf("expected ZED at index 1, got %d (ok=%v)", idx, ok)
	}

	if got := m.SecondNetFor(zed); got != nil {
		t.Errorf("expected nil SecondNetFor in single mode, got %v", got)
	}
}

func TestCrossReferenceIndexedModelTopAndChildren(t *testing.T) {
	topA := &fCircuit{name: "TOP", id: 1}
	topB := &fCircuit{name: "TOP", id: 2}
	childA := &fCircuit{name: "CHILD", id: 3, refCount: 1}

	sub := &fSubCircuit{name: "X1", id: 1, circuit: topA, circuitRef: childA}
	topA.subckts = []netlist.SubCircuit{sub}

	nlA := &fNetlist{name: "A", circuits: []netlist.Circuit{topA, childA}}
	nlB := &fNetlist{name: "B", circuits: []netlist.Circuit{topB}}

	x := New()
	x.BeginNetlist(nlA, nlB)
	x.BeginCircuit(topA, topB)
	x.SubcircuitMismatch(sub, nil, "instantiated only on A")
	x.EndCircuit(topA, topB, true, "")
	x.BeginCircuit(childA, nil)
	x.EndCircuit(childA, nil, false, "present only on A")
	x.EndNetlist(nlA, nlB)

	m := NewCrossReferenceIndexedModel(x)
	if m.IsSingle() {
		t.Fatal("expected IsSingle() false")
	}

	if got := m.TopCircuitCount(); got != 1 {
		t.Fatalf("expected 1 top-level circuit pair (CHILD has RefCount>0 on A), got %d", got)
	}
	top, status := m.TopCircuitFromIndex(0)
	if top.First != topA || top.Second != topB || status != StatusMatch {
		t.Fatalf("unexpected top circuit pair: %v / %v", top, status)
	}

	if got := m.ChildCircuitCount(top); got != 1 {
		t.Fatalf("expected 1 child circuit visible from the A side only, got %d", got)
	}
	child, childStatus := m.ChildCircuitFromIndex(top, 0)
	if child.First != childA {
		t.Errorf("expected child pair's First to be CHILD from netlist A, got %v", child.First)
	}
	if child.Second != nil {
		t.Errorf("expected child pair's Second to be nil (no B-side counterpart), got %v", child.Second)
	}
	if childStatus != StatusNoMatch {
		t.Errorf("expected the orphan child circuit to carry StatusNoMatch, got %v", childStatus)
	}

	if got := m.SubCircuitCount(top); got != 1 {
		t.Errorf("expected 1 recorded sub-circuit pairing under TOP, got %d", got)
	}
}

func TestCrossReferenceIndexedModelSubCircuitPinCache(t *testing.T) {
	childA := &fCircuit{name: "CHILD", id: 1, refCount: 1}
	childB := &fCircuit{name: "CHILD", id: 2, refCount: 1}
	topA := &fCircuit{name: "TOP", id: 3}
	topB := &fCircuit{name: "TOP", id: 4}

	pinA := &fPin{name: "A", id: 1}
	pinB := &fPin{name: "A", id: 1}
	childA.pins = []netlist.Pin{pinA}
	childB.pins = []netlist.Pin{pinB}
	childA.byID = map[uint64]netlist.Pin{1: pinA}
	childB.byID = map[uint64]netlist.Pin{1: pinB}

	subA := &fSubCircuit{name: "X1", id: 1, circuit: topA, circuitRef: childA}
	subB := &fSubCircuit{name: "X1", id: 1, circuit: topB, circuitRef: childB}

	x := New()
	x.BeginNetlist(&fNetlist{name: "A"}, &fNetlist{name: "B"})
	x.BeginCircuit(topA, topB)
	x.MatchSubcircuits(subA, subB)
	x.EndCircuit(topA, topB, true, "")
	x.EndNetlist(&fNetlist{name: "A"}, &fNetlist{name: "B"})

	m := NewCrossReferenceIndexedModel(x).(*crossReferenceIndexedModel)
	scPair := SubCircuitPair{First: subA, Second: subB}

	first := m.subCircuitPinPairs(scPair)
	second := m.subCircuitPinPairs(scPair)
	if len(first) != len(second) {
		t.Fatalf("expected a stable result from the LRU cache across calls")
	}
	if cached, ok := m.subcircuitPins.Get(scPairKey{subA, subB}); !ok || len(cached) != len(first) {
		t.Error("expected the sub-circuit pin pairs to be cached under the (a, b) key")
	}
}
