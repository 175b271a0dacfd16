package xref

import (
	"testing"

	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

func twoMatchingCircuits() (ca, cb *fCircuit) {
	ca = &fCircuit{name: "INV", id: 1}
	cb = &fCircuit{name: "INV", id: 2}

	na := &fNet{name: "IN", id: 1, circuit: ca}
	nb := &fNet{name: "IN", id: 1, circuit: cb}
	ca.nets = []netlist.Net{na}
	cb.nets = []netlist.Net{nb}

	da := &fDevice{name: "M1", id: 1, circuit: ca}
	db := &fDevice{name: "M1", id: 1, circuit: cb}
	ca.devices = []netlist.Device{da}
	cb.devices = []netlist.Device{db}

	return ca, cb
}

func TestBeginEndCircuitMatch(t *testing.T) {
	x := New()
	nlA := &fNetlist{name: "A"}
	nlB := &fNetlist{name: "B"}
	x.BeginNetlist(nlA, nlB)

	ca, cb := twoMatchingCircuits()
	x.BeginCircuit(ca, cb)
	x.MatchNets(ca.nets[0], cb.nets[0])
	x.MatchDevices(ca.devices[0], cb.devices[0])
	x.EndCircuit(ca, cb, true, "")
	x.EndNetlist(nlA, nlB)

	if x.CircuitCount() != 1 {
		t.Fatalf("expected 1 circuit pair, got %d", x.CircuitCount())
	}

	data := x.PerCircuitDataFor(EntityPair[netlist.Circuit]{First: ca})
	if data == nil {
		t.Fatal("expected data looked up by First side")
	}
	if data.Status != StatusMatch {
		t.Errorf("expected StatusMatch, got %v", data.Status)
	}

	dataB := x.PerCircuitDataFor(EntityPair[netlist.Circuit]{First: nil, Second: cb})
	if dataB != data {
		t.Error("expected the same PerCircuitData looked up by either side")
	}

	if got := x.OtherDeviceFor(ca.devices[0]); got != cb.devices[0] {
		t.Errorf("expected OtherDeviceFor to resolve M1 across sides, got %v", got)
	}
}

func TestEndNetlistClosesDanglingCircuit(t *testing.T) {
	x := New()
	nlA, nlB := &fNetlist{name: "A"}, &fNetlist{name: "B"}
	x.BeginNetlist(nlA, nlB)

	ca := &fCircuit{name: "ORPHAN", id: 1}
	x.BeginCircuit(ca, nil)
	// No EndCircuit call: EndNetlist must close it implicitly rather than
	// leaving the recorder stuck in stateInCircuit.
	x.EndNetlist(nlA, nlB)

	data := x.PerCircuitDataFor(EntityPair[netlist.Circuit]{First: ca})
	if data == nil {
		t.Fatal("expected the dangling circuit to still have been recorded")
	}
	if data.Status != StatusNoMatch {
		t.Errorf("expected implicit close to record NoMatch, got %v", data.Status)
	}

	found := false
	for _, e := range x.GlobalLogEntries() {
		if e.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Error("expected an error log entry about the implicit close")
	}
}

func TestCircuitSkippedAndMismatch(t *testing.T) {
	x := New()
	nlA, nlB := &fNetlist{name: "A"}, &fNetlist{name: "B"}
	x.BeginNetlist(nlA, nlB)

	skipped := &fCircuit{name: "SKIP", id: 1}
	x.CircuitSkipped(skipped, nil, "present only on A")

	mismatched := &fCircuit{name: "BAD", id: 2}
	mismatchedB := &fCircuit{name: "BAD", id: 3}
	x.CircuitMismatch(mismatched, mismatchedB, "structurally different")

	x.EndNetlist(nlA, nlB)

	if got := x.PerCircuitDataFor(EntityPair[netlist.Circuit]{First: skipped}).Status; got != StatusSkipped {
		t.Errorf("expected StatusSkipped, got %v", got)
	}
	if got := x.PerCircuitDataFor(EntityPair[netlist.Circuit]{First: mismatched}).Status; got != StatusMismatch {
		t.Errorf("expected StatusMismatch, got %v", got)
	}
}

func TestPerNetDataForCachesByIdentity(t *testing.T) {
	x := New()
	nlA, nlB := &fNetlist{name: "A"}, &fNetlist{name: "B"}
	x.BeginNetlist(nlA, nlB)

	ca, cb := twoMatchingCircuits()
	x.BeginCircuit(ca, cb)
	x.MatchNets(ca.nets[0], cb.nets[0])
	x.MatchDevices(ca.devices[0], cb.devices[0])
	x.EndCircuit(ca, cb, true, "")
	x.EndNetlist(nlA, nlB)

	pair := EntityPair[netlist.Net]{First: ca.nets[0], Second: cb.nets[0]}
	d1 := x.PerNetDataFor(pair)
	d2 := x.PerNetDataFor(pair)
	if d1 != d2 {
		t.Error("expected PerNetDataFor to return the cached result on repeat calls")
	}

	empty := x.PerNetDataFor(EntityPair[netlist.Net]{})
	if empty == nil {
		t.Error("expected a non-nil empty PerNetData for an all-nil pair")
	}
}

func TestCircuitsSortedByName(t *testing.T) {
	x := New()
	nlA, nlB := &fNetlist{name: "A"}, &fNetlist{name: "B"}
	x.BeginNetlist(nlA, nlB)

	zed := &fCircuit{name: "ZED", id: 1}
	alpha := &fCircuit{name: "ALPHA", id: 2}
	x.BeginCircuit(zed, nil)
	x.EndCircuit(zed, nil, false, "")
	x.BeginCircuit(alpha, nil)
	x.EndCircuit(alpha, nil, false, "")

	x.EndNetlist(nlA, nlB)

	circuits := x.Circuits()
	if len(circuits) != 2 {
		t.Fatalf("expected 2 circuits, got %d", len(circuits))
	}
	if circuits[0].First.Name() != "ALPHA" || circuits[1].First.Name() != "ZED" {
		t.Errorf("expected circuits sorted by name, got %q then %q", circuits[0].First.Name(), circuits[1].First.Name())
	}
}
