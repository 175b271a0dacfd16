package xref

import "github.com/OpenTraceLab/netxref/pkg/netlist"

// PerNetData holds the three correlated sub-reference sequences for one net
// pair, produced by correlateNets (C3) and cached by CrossReference.
type PerNetData struct {
	Terminals      []RefPair[*netlist.NetTerminalRef]
	Pins           []RefPair[*netlist.NetPinRef]
	SubCircuitPins []RefPair[*netlist.NetSubcircuitPinRef]
}

type deviceTerminalKey struct {
	device     netlist.Device
	terminalID uint64
}

type subcircuitPinKey struct {
	subcircuit netlist.SubCircuit
	pinID      uint64
}

// correlateNets implements C3: given a net pair (at least one side
// non-nil), build the terminal/pin/sub-circuit-pin correlation. otherDevice,
// otherPin and otherSubCircuit must already be frozen (end-of-netlist has
// run) — the result is a pure function of the two nets plus those maps.
func correlateNets(a, b netlist.Net, otherDevice *pairStore[netlist.Device], otherPin *pairStore[netlist.Pin], otherSubCircuit *pairStore[netlist.SubCircuit]) *PerNetData {
	data := &PerNetData{}

	switch {
	case isZero[netlist.Net](a) && isZero[netlist.Net](b):
		// invalid pair: both sides nil — return an empty result, not an error.
	case isZero[netlist.Net](b):
		initFromSingleNet(a, data, true)
	case isZero[netlist.Net](a):
		initFromSingleNet(b, data, false)
	default:
		buildTerminalRefs(a, b, data, otherDevice)
		buildPinRefs(a, b, data, otherPin)
		buildSubcircuitPinRefs(a, b, data, otherSubCircuit, otherPin)
	}

	return data
}

// initFromSingleNet fills data from one net's own references when the
// other side of the net pair is absent. first indicates whether the
// populated net is the first or second side of every emitted RefPair.
func initFromSingleNet(n netlist.Net, data *PerNetData, first bool) {
	for _, ref := range n.Pins() {
		if first {
			data.Pins = append(data.Pins, RefPair[*netlist.NetPinRef]{First: ref})
		} else {
			data.Pins = append(data.Pins, RefPair[*netlist.NetPinRef]{Second: ref})
		}
	}
	for _, ref := range n.SubCircuitPins() {
		if first {
			data.SubCircuitPins = append(data.SubCircuitPins, RefPair[*netlist.NetSubcircuitPinRef]{First: ref})
		} else {
			data.SubCircuitPins = append(data.SubCircuitPins, RefPair[*netlist.NetSubcircuitPinRef]{Second: ref})
		}
	}
	for _, ref := range n.Terminals() {
		if first {
			data.Terminals = append(data.Terminals, RefPair[*netlist.NetTerminalRef]{First: ref})
		} else {
			data.Terminals = append(data.Terminals, RefPair[*netlist.NetTerminalRef]{Second: ref})
		}
	}
}

// buildTerminalRefs implements the terminal-matching algorithm of spec §4.3:
// normalize swappable terminal ids on the paired device, walk the paired
// device's terminal definitions in order to find the first still-available
// match, and consume it so no ref_b is paired twice.
func buildTerminalRefs(a, b netlist.Net, data *PerNetData, otherDevice *pairStore[netlist.Device]) {
	mapA := make(map[deviceTerminalKey]*netlist.NetTerminalRef)
	mapB := make(map[deviceTerminalKey]*netlist.NetTerminalRef)
	orderA := make([]deviceTerminalKey, 0, len(a.Terminals()))

	for _, ref := range a.Terminals() {
		k := deviceTerminalKey{ref.Device(), uint64(ref.TerminalID())}
		mapA[k] = ref
		orderA = append(orderA, k)
	}
	for _, ref := range b.Terminals() {
		mapB[deviceTerminalKey{ref.Device(), uint64(ref.TerminalID())}] = ref
	}

	for _, ka := range orderA {
		refA := mapA[ka]
		da := ka.device

		var refB *netlist.NetTerminalRef

		db := otherDevice.otherOf(da)
		if !isZero[netlist.Device](db) && da.Class() != nil && db.Class() != nil {
			natID := da.Class().NormalizeTerminalID(int(ka.terminalID))
			for _, td := range db.Class().TerminalDefinitions() {
				if db.Class().NormalizeTerminalID(td.ID()) == natID {
					kb := deviceTerminalKey{db, uint64(td.ID())}
					if cand, ok := mapB[kb]; ok {
						refB = cand
						delete(mapB, kb)
						break
					}
				}
			}
		}

		data.Terminals = append(data.Terminals, RefPair[*netlist.NetTerminalRef]{First: refA, Second: refB})
	}

	for _, ref := range b.Terminals() {
		k := deviceTerminalKey{ref.Device(), uint64(ref.TerminalID())}
		if _, ok := mapB[k]; ok {
			data.Terminals = append(data.Terminals, RefPair[*netlist.NetTerminalRef]{Second: ref})
		}
	}

	sortRefPairs(data.Terminals, cmpNetTerminalRef)
}

// buildPinRefs implements the circuit-pin matching algorithm of spec §4.3.
func buildPinRefs(a, b netlist.Net, data *PerNetData, otherPin *pairStore[netlist.Pin]) {
	mapB := make(map[netlist.Pin]*netlist.NetPinRef)
	for _, ref := range b.Pins() {
		mapB[ref.Pin()] = ref
	}

	for _, refA := range a.Pins() {
		var refB *netlist.NetPinRef

		pb := otherPin.otherOf(refA.Pin())
		if !isZero[netlist.Pin](pb) {
			if cand, ok := mapB[pb]; ok {
				refB = cand
				delete(mapB, pb)
			}
		}

		data.Pins = append(data.Pins, RefPair[*netlist.NetPinRef]{First: refA, Second: refB})
	}

	for _, ref := range b.Pins() {
		if _, ok := mapB[ref.Pin()]; ok {
			data.Pins = append(data.Pins, RefPair[*netlist.NetPinRef]{Second: ref})
		}
	}

	sortRefPairs(data.Pins, cmpNetPinRef)
}

// buildSubcircuitPinRefs implements the sub-circuit-pin matching algorithm
// of spec §4.3, including the swappable-pin fallback: when the directly
// corresponding pin isn't found on the paired sub-circuit, fall back to the
// lowest-keyed still-available pin ref on that same sub-circuit.
func buildSubcircuitPinRefs(a, b netlist.Net, data *PerNetData, otherSubCircuit *pairStore[netlist.SubCircuit], otherPin *pairStore[netlist.Pin]) {
	mapB := make(map[subcircuitPinKey]*netlist.NetSubcircuitPinRef)
	orderB := make([]subcircuitPinKey, 0, len(b.SubCircuitPins()))
	for _, ref := range b.SubCircuitPins() {
		k := subcircuitPinKey{ref.SubCircuit(), ref.PinID()}
		mapB[k] = ref
		orderB = append(orderB, k)
	}

	for _, refA := range a.SubCircuitPins() {
		sa := refA.SubCircuit()
		var refB *netlist.NetSubcircuitPinRef

		sb := otherSubCircuit.otherOf(sa)
		if !isZero[netlist.SubCircuit](sb) {

			if sa.CircuitRef() != nil {
				pa := sa.CircuitRef().PinByID(refA.PinID())
				if !isZero[netlist.Pin](pa) {
					pb := otherPin.otherOf(pa)
					if !isZero[netlist.Pin](pb) {
						kb := subcircuitPinKey{sb, pb.ID()}
						if cand, ok := mapB[kb]; ok {
							refB = cand
							delete(mapB, kb)
						}
					}
				}
			}

			if refB == nil {
				// Swappable fallback: take the lowest-keyed still-available
				// entry on the same paired sub-circuit, regardless of pin id.
				var bestKey subcircuitPinKey
				found := false
				for _, kb := range orderB {
					if kb.subcircuit != sb {
						continue
					}
					if _, ok := mapB[kb]; !ok {
						continue
					}
					if !found || kb.pinID < bestKey.pinID {
						bestKey, found = kb, true
					}
				}
				if found {
					refB = mapB[bestKey]
					delete(mapB, bestKey)
				}
			}
		}

		data.SubCircuitPins = append(data.SubCircuitPins, RefPair[*netlist.NetSubcircuitPinRef]{First: refA, Second: refB})
	}

	for _, kb := range orderB {
		if ref, ok := mapB[kb]; ok {
			data.SubCircuitPins = append(data.SubCircuitPins, RefPair[*netlist.NetSubcircuitPinRef]{Second: ref})
		}
	}

	sortRefPairs(data.SubCircuitPins, cmpNetSubcircuitPinRef)
}
