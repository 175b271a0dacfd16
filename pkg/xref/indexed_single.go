package xref

import "github.com/OpenTraceLab/netxref/pkg/netlist"

// singleIndexedModel is the IndexedModel backend for one netlist on its
// own, with no cross-reference available yet. Every pair it returns has an
// empty Second side and status StatusNone; everything is sorted and cached
// lazily, on first access, the way layIndexedNetlistModel does it.
type singleIndexedModel struct {
	nl netlist.Netlist

	allCircuits *indexCache[netlist.Circuit]
	topCircuits *indexCache[netlist.Circuit]
	children    map[netlist.Circuit]*indexCache[netlist.Circuit]

	nets    map[netlist.Circuit]*indexCache[netlist.Net]
	devices map[netlist.Circuit]*indexCache[netlist.Device]
	pins    map[netlist.Circuit]*indexCache[netlist.Pin]
	subckts map[netlist.Circuit]*indexCache[netlist.SubCircuit]

	terminals map[netlist.Net][]*netlist.NetTerminalRef
	pinrefs   map[netlist.Net][]*netlist.NetPinRef
	scpinrefs map[netlist.Net][]*netlist.NetSubcircuitPinRef

	subcircuitPins map[netlist.SubCircuit][]NetSubCircuitPinPair
}

// NewSingleIndexedModel builds an IndexedModel over one netlist, used to
// browse a netlist before (or without) a cross-reference against a second
// one.
func NewSingleIndexedModel(nl netlist.Netlist) IndexedModel {
	return &singleIndexedModel{
		nl:             nl,
		children:       make(map[netlist.Circuit]*indexCache[netlist.Circuit]),
		nets:           make(map[netlist.Circuit]*indexCache[netlist.Net]),
		devices:        make(map[netlist.Circuit]*indexCache[netlist.Device]),
		pins:           make(map[netlist.Circuit]*indexCache[netlist.Pin]),
		subckts:        make(map[netlist.Circuit]*indexCache[netlist.SubCircuit]),
		terminals:      make(map[netlist.Net][]*netlist.NetTerminalRef),
		pinrefs:        make(map[netlist.Net][]*netlist.NetPinRef),
		scpinrefs:      make(map[netlist.Net][]*netlist.NetSubcircuitPinRef),
		subcircuitPins: make(map[netlist.SubCircuit][]NetSubCircuitPinPair),
	}
}

func (m *singleIndexedModel) IsSingle() bool { return true }

func (m *singleIndexedModel) allCircuitsCache() *indexCache[netlist.Circuit] {
	if m.allCircuits == nil {
		m.allCircuits = newIndexCache[netlist.Circuit]()
	}
	if !m.allCircuits.filled() {
		cs := append([]netlist.Circuit(nil), m.nl.Circuits()...)
		sortByExpandedNamePreferred(cs)
		m.allCircuits.fill(cs)
	}
	return m.allCircuits
}

func (m *singleIndexedModel) topCircuitsCache() *indexCache[netlist.Circuit] {
	if m.topCircuits == nil {
		m.topCircuits = newIndexCache[netlist.Circuit]()
	}
	if !m.topCircuits.filled() {
		var cs []netlist.Circuit
		for _, c := range m.nl.Circuits() {
			if c.RefCount() == 0 {
				cs = append(cs, c)
			}
		}
		sortByExpandedNamePreferred(cs)
		m.topCircuits.fill(cs)
	}
	return m.topCircuits
}

func (m *singleIndexedModel) childrenCache(parent netlist.Circuit) *indexCache[netlist.Circuit] {
	cache, ok := m.children[parent]
	if !ok {
		cache = newIndexCache[netlist.Circuit]()
		m.children[parent] = cache
	}
	if !cache.filled() {
		seen := make(map[netlist.Circuit]bool)
		var cs []netlist.Circuit
		if !isZero[netlist.Circuit](parent) {
			for _, sc := range parent.SubCircuits() {
				ref := sc.CircuitRef()
				if isZero[netlist.Circuit](ref) || seen[ref] {
					continue
				}
				seen[ref] = true
				cs = append(cs, ref)
			}
		}
		sortByExpandedNamePreferred(cs)
		cache.fill(cs)
	}
	return cache
}

func (m *singleIndexedModel) netsCache(parent netlist.Circuit) *indexCache[netlist.Net] {
	cache, ok := m.nets[parent]
	if !ok {
		cache = newIndexCache[netlist.Net]()
		m.nets[parent] = cache
	}
	if !cache.filled() {
		var ns []netlist.Net
		if !isZero[netlist.Circuit](parent) {
			ns = append(ns, parent.Nets()...)
		}
		sortByExpandedNamePreferred(ns)
		cache.fill(ns)
	}
	return cache
}

func (m *singleIndexedModel) devicesCache(parent netlist.Circuit) *indexCache[netlist.Device] {
	cache, ok := m.devices[parent]
	if !ok {
		cache = newIndexCache[netlist.Device]()
		m.devices[parent] = cache
	}
	if !cache.filled() {
		var ds []netlist.Device
		if !isZero[netlist.Circuit](parent) {
			ds = append(ds, parent.Devices()...)
		}
		sortByExpandedNamePreferred(ds)
		cache.fill(ds)
	}
	return cache
}

func (m *singleIndexedModel) pinsCache(parent netlist.Circuit) *indexCache[netlist.Pin] {
	cache, ok := m.pins[parent]
	if !ok {
		cache = newIndexCache[netlist.Pin]()
		m.pins[parent] = cache
	}
	if !cache.filled() {
		var ps []netlist.Pin
		if !isZero[netlist.Circuit](parent) {
			ps = append(ps, parent.Pins()...)
		}
		sortByExpandedNamePreferred(ps)
		cache.fill(ps)
	}
	return cache
}

func (m *singleIndexedModel) subcktsCache(parent netlist.Circuit) *indexCache[netlist.SubCircuit] {
	cache, ok := m.subckts[parent]
	if !ok {
		cache = newIndexCache[netlist.SubCircuit]()
		m.subckts[parent] = cache
	}
	if !cache.filled() {
		var cs []netlist.SubCircuit
		if !isZero[netlist.Circuit](parent) {
			cs = append(cs, parent.SubCircuits()...)
		}
		sortByExpandedNamePreferred(cs)
		cache.fill(cs)
	}
	return cache
}

func (m *singleIndexedModel) terminalsFor(n netlist.Net) []*netlist.NetTerminalRef {
	if isZero[netlist.Net](n) {
		return nil
	}
	refs, ok := m.terminals[n]
	if !ok {
		refs = append([]*netlist.NetTerminalRef(nil), n.Terminals()...)
		sortRefPairsInPlace(refs, cmpNetTerminalRef)
		m.terminals[n] = refs
	}
	return refs
}

func (m *singleIndexedModel) pinrefsFor(n netlist.Net) []*netlist.NetPinRef {
	if isZero[netlist.Net](n) {
		return nil
	}
	refs, ok := m.pinrefs[n]
	if !ok {
		refs = append([]*netlist.NetPinRef(nil), n.Pins()...)
		sortRefPairsInPlace(refs, cmpNetPinRef)
		m.pinrefs[n] = refs
	}
	return refs
}

func (m *singleIndexedModel) scpinrefsFor(n netlist.Net) []*netlist.NetSubcircuitPinRef {
	if isZero[netlist.Net](n) {
		return nil
	}
	refs, ok := m.scpinrefs[n]
	if !ok {
		refs = append([]*netlist.NetSubcircuitPinRef(nil), n.SubCircuitPins()...)
		sortRefPairsInPlace(refs, cmpNetSubcircuitPinRef)
		m.scpinrefs[n] = refs
	}
	return refs
}

func (m *singleIndexedModel) subcircuitPinsFor(sc netlist.SubCircuit) []NetSubCircuitPinPair {
	if isZero[netlist.SubCircuit](sc) {
		return nil
	}
	if cached, ok := m.subcircuitPins[sc]; ok {
		return cached
	}
	var pairs []NetSubCircuitPinPair
	ref := sc.CircuitRef()
	if ref != nil && sc.Circuit() != nil {
		byPinID := make(map[uint64]*netlist.NetSubcircuitPinRef)
		for _, n := range sc.Circuit().Nets() {
			for _, r := range n.SubCircuitPins() {
				if r.SubCircuit() == sc {
					byPinID[r.PinID()] = r
				}
			}
		}
		for _, p := range ref.Pins() {
			if r, ok := byPinID[p.ID()]; ok {
				pairs = append(pairs, NetSubCircuitPinPair{First: r})
			}
		}
	}
	m.subcircuitPins[sc] = pairs
	return pairs
}

func (m *singleIndexedModel) CircuitCount() int { return len(m.allCircuitsCache().order) }

func (m *singleIndexedModel) TopCircuitCount() int { return len(m.topCircuitsCache().order) }

func (m *singleIndexedModel) ChildCircuitCount(circuits CircuitPair) int {
	return len(m.childrenCache(circuits.First).order)
}

func (m *singleIndexedModel) NetCount(circuits CircuitPair) int {
	return len(m.netsCache(circuits.First).order)
}

func (m *singleIndexedModel) DeviceCount(circuits CircuitPair) int {
	return len(m.devicesCache(circuits.First).order)
}

func (m *singleIndexedModel) PinCount(circuits CircuitPair) int {
	return len(m.pinsCache(circuits.First).order)
}

func (m *singleIndexedModel) SubCircuitCount(circuits CircuitPair) int {
	return len(m.subcktsCache(circuits.First).order)
}

func (m *singleIndexedModel) NetTerminalCount(nets NetPair) int {
	return len(m.terminalsFor(nets.First))
}

func (m *singleIndexedModel) NetPinCount(nets NetPair) int { return len(m.pinrefsFor(nets.First)) }

func (m *singleIndexedModel) NetSubCircuitPinCount(nets NetPair) int {
	return len(m.scpinrefsFor(nets.First))
}

func (m *singleIndexedModel) SubCircuitPinCount(subcircuits SubCircuitPair) int {
	return len(m.subcircuitPinsFor(subcircuits.First))
}

func (m *singleIndexedModel) ParentOfNet(nets NetPair) CircuitPair {
	if isZero[netlist.Net](nets.First) {
		return CircuitPair{}
	}
	return CircuitPair{First: nets.First.Circuit()}
}

func (m *singleIndexedModel) ParentOfDevice(devices DevicePair) CircuitPair {
	if isZero[netlist.Device](devices.First) {
		return CircuitPair{}
	}
	return CircuitPair{First: devices.First.Circuit()}
}

func (m *singleIndexedModel) ParentOfSubCircuit(subcircuits SubCircuitPair) CircuitPair {
	if isZero[netlist.SubCircuit](subcircuits.First) {
		return CircuitPair{}
	}
	return CircuitPair{First: subcircuits.First.Circuit()}
}

func (m *singleIndexedModel) CircuitFromIndex(i int) (CircuitPair, Status) {
	c, ok := m.allCircuitsCache().at(i)
	if !ok {
		return CircuitPair{}, StatusNone
	}
	return CircuitPair{First: c}, StatusNone
}

func (m *singleIndexedModel) TopCircuitFromIndex(i int) (CircuitPair, Status) {
	c, ok := m.topCircuitsCache().at(i)
	if !ok {
		return CircuitPair{}, StatusNone
	}
	return CircuitPair{First: c}, StatusNone
}

func (m *singleIndexedModel) ChildCircuitFromIndex(circuits CircuitPair, i int) (CircuitPair, Status) {
	c, ok := m.childrenCache(circuits.First).at(i)
	if !ok {
		return CircuitPair{}, StatusNone
	}
	return CircuitPair{First: c}, StatusNone
}

func (m *singleIndexedModel) NetFromIndex(circuits CircuitPair, i int) (NetPair, Status) {
	n, ok := m.netsCache(circuits.First).at(i)
	if !ok {
		return NetPair{}, StatusNone
	}
	return NetPair{First: n}, StatusNone
}

func (m *singleIndexedModel) DeviceFromIndex(circuits CircuitPair, i int) (DevicePair, Status) {
	d, ok := m.devicesCache(circuits.First).at(i)
	if !ok {
		return DevicePair{}, StatusNone
	}
	return DevicePair{First: d}, StatusNone
}

func (m *singleIndexedModel) PinFromIndex(circuits CircuitPair, i int) (PinPair, Status) {
	p, ok := m.pinsCache(circuits.First).at(i)
	if !ok {
		return PinPair{}, StatusNone
	}
	return PinPair{First: p}, StatusNone
}

func (m *singleIndexedModel) SubCircuitFromIndex(circuits CircuitPair, i int) (SubCircuitPair, Status) {
	sc, ok := m.subcktsCache(circuits.First).at(i)
	if !ok {
		return SubCircuitPair{}, StatusNone
	}
	return SubCircuitPair{First: sc}, StatusNone
}

func (m *singleIndexedModel) NetTerminalRefFromIndex(nets NetPair, i int) NetTerminalPair {
	refs := m.terminalsFor(nets.First)
	if i < 0 || i >= len(refs) {
		return NetTerminalPair{}
	}
	return NetTerminalPair{First: refs[i]}
}

func (m *singleIndexedModel) NetPinRefFromIndex(nets NetPair, i int) NetPinPair {
	refs := m.pinrefsFor(nets.First)
	if i < 0 || i >= len(refs) {
		return NetPinPair{}
	}
	return NetPinPair{First: refs[i]}
}

func (m *singleIndexedModel) NetSubCircuitPinRefFromIndex(nets NetPair, i int) NetSubCircuitPinPair {
	refs := m.scpinrefsFor(nets.First)
	if i < 0 || i >= len(refs) {
		return NetSubCircuitPinPair{}
	}
	return NetSubCircuitPinPair{First: refs[i]}
}

func (m *singleIndexedModel) SubCircuitPinRefFromIndex(subcircuits SubCircuitPair, i int) NetSubCircuitPinPair {
	pairs := m.subcircuitPinsFor(subcircuits.First)
	if i < 0 || i >= len(pairs) {
		return NetSubCircuitPinPair{}
	}
	return pairs[i]
}

func (m *singleIndexedModel) CircuitIndex(circuits CircuitPair) (int, bool) {
	return m.allCircuitsCache().indexOf(circuits.First)
}

func (m *singleIndexedModel) NetIndex(nets NetPair) (int, bool) {
	if isZero[netlist.Net](nets.First) {
		return 0, false
	}
	return m.netsCache(nets.First.Circuit()).indexOf(nets.First)
}

func (m *singleIndexedModel) DeviceIndex(devices DevicePair) (int, bool) {
	if isZero[netlist.Device](devices.First) {
		return 0, false
	}
	return m.devicesCache(devices.First.Circuit()).indexOf(devices.First)
}

func (m *singleIndexedModel) PinIndex(pins PinPair, circuits CircuitPair) (int, bool) {
	return m.pinsCache(circuits.First).indexOf(pins.First)
}

func (m *singleIndexedModel) SubCircuitIndex(subcircuits SubCircuitPair) (int, bool) {
	if isZero[netlist.SubCircuit](subcircuits.First) {
		return 0, false
	}
	return m.subcktsCache(subcircuits.First.Circuit()).indexOf(subcircuits.First)
}

func (m *singleIndexedModel) SecondNetFor(n netlist.Net) netlist.Net { return nil }

func (m *singleIndexedModel) SecondCircuitFor(c netlist.Circuit) netlist.Circuit { return nil }
