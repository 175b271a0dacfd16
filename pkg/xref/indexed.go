package xref

import "github.com/OpenTraceLab/netxref/pkg/netlist"

// This file defines C5: the uniform indexed-model view over either a
// single netlist or a populated CrossReference. Indexes are order-stable —
// the same (circuits, insertion order) input always yields the same i for
// the same entity pair.

// CircuitPair, NetPair, DevicePair, PinPair and SubCircuitPair are the
// plain (first, second) handles IndexedModel operates on — unlike
// EntityPair they carry no status; status is returned alongside the pair
// by the *FromIndex methods instead.
type CircuitPair struct{ First, Second netlist.Circuit }
type NetPair struct{ First, Second netlist.Net }
type DevicePair struct{ First, Second netlist.Device }
type PinPair struct{ First, Second netlist.Pin }
type SubCircuitPair struct{ First, Second netlist.SubCircuit }

type NetTerminalPair = RefPair[*netlist.NetTerminalRef]
type NetPinPair = RefPair[*netlist.NetPinRef]
type NetSubCircuitPinPair = RefPair[*netlist.NetSubcircuitPinRef]

// IndexedModel is the uniform index view shared by the single-netlist and
// cross-reference backends (spec §4.5). Implementations must treat
// out-of-range indices as "return a zero pair / StatusNone", never panic.
type IndexedModel interface {
	IsSingle() bool

	CircuitCount() int
	TopCircuitCount() int
	ChildCircuitCount(circuits CircuitPair) int
	NetCount(circuits CircuitPair) int
	DeviceCount(circuits CircuitPair) int
	PinCount(circuits CircuitPair) int
	SubCircuitCount(circuits CircuitPair) int
	NetTerminalCount(nets NetPair) int
	NetPinCount(nets NetPair) int
	NetSubCircuitPinCount(nets NetPair) int
	SubCircuitPinCount(subcircuits SubCircuitPair) int

	ParentOfNet(nets NetPair) CircuitPair
	ParentOfDevice(devices DevicePair) CircuitPair
	ParentOfSubCircuit(subcircuits SubCircuitPair) CircuitPair

	CircuitFromIndex(i int) (CircuitPair, Status)
	ChildCircuitFromIndex(circuits CircuitPair, i int) (CircuitPair, Status)
	TopCircuitFromIndex(i int) (CircuitPair, Status)
	NetFromIndex(circuits CircuitPair, i int) (NetPair, Status)
	DeviceFromIndex(circuits CircuitPair, i int) (DevicePair, Status)
	PinFromIndex(circuits CircuitPair, i int) (PinPair, Status)
	SubCircuitFromIndex(circuits CircuitPair, i int) (SubCircuitPair, Status)

	NetTerminalRefFromIndex(nets NetPair, i int) NetTerminalPair
	NetPinRefFromIndex(nets NetPair, i int) NetPinPair
	NetSubCircuitPinRefFromIndex(nets NetPair, i int) NetSubCircuitPinPair
	SubCircuitPinRefFromIndex(subcircuits SubCircuitPair, i int) NetSubCircuitPinPair

	CircuitIndex(circuits CircuitPair) (int, bool)
	NetIndex(nets NetPair) (int, bool)
	DeviceIndex(devices DevicePair) (int, bool)
	PinIndex(pins PinPair, circuits CircuitPair) (int, bool)
	SubCircuitIndex(subcircuits SubCircuitPair) (int, bool)

	SecondNetFor(n netlist.Net) netlist.Net
	SecondCircuitFor(c netlist.Circuit) netlist.Circuit
}

// indexCache assigns stable positions to comparable keys the first time
// they're requested, mirroring the original's per-parent std::map<K,V>
// caches (lazily filled, one fill per distinct parent/collection).
type indexCache[K comparable] struct {
	order []K
	index map[K]int
}

func newIndexCache[K comparable]() *indexCache[K] {
	return &indexCache[K]{index: make(map[K]int)}
}

func (c *indexCache[K]) fill(keys []K) {
	c.order = keys
	for i, k := range keys {
		c.index[k] = i
	}
}

func (c *indexCache[K]) filled() bool { return c.order != nil }

func (c *indexCache[K]) at(i int) (K, bool) {
	if i < 0 || i >= len(c.order) {
		var zero K
		return zero, false
	}
	return c.order[i], true
}

func (c *indexCache[K]) indexOf(k K) (int, bool) {
	i, ok := c.index[k]
	return i, ok
}
