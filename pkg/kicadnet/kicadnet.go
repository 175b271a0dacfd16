package kicadnet

import (
	"fmt"
	"math"
	"sort"

	"github.com/OpenTraceLab/netxref/pkg/kicad/schematic"
	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

// BuildNetlist flattens a parsed KiCad schematic into a netlist.Netlist
// with one top-level circuit: every symbol instance becomes a Device,
// every electrically-connected group of wires/junctions/pins/labels that
// carries at least one pin or label becomes a Net, and every distinct
// global label becomes one of the circuit's external Pins.
func BuildNetlist(sch *schematic.Schematic, name string) (netlist.Netlist, error) {
	libByName := make(map[string]*schematic.LibSymbol, len(sch.LibSymbols))
	for i := range sch.LibSymbols {
		lib := &sch.LibSymbols[i]
		libByName[lib.Name] = lib
	}

	circuit := &circuitImpl{id: 1, name: name, pinByID: make(map[uint64]netlist.Pin)}

	b := newNetBuilder()

	var nextDeviceID, nextPinID uint64 = 1, 1
	classByName := make(map[string]*deviceClassImpl)
	devices := make([]*deviceImpl, 0, len(sch.Symbols))

	for i := range sch.Symbols {
		sym := &sch.Symbols[i]
		lib, ok := libByName[sym.LibID]
		if !ok {
			continue
		}

		class, ok := classByName[sym.LibID]
		if !ok {
			class = &deviceClassImpl{name: sym.LibID, terms: libTerminals(lib)}
			classByName[sym.LibID] = class
		}

		ref := propertyValue(sym.Properties, "Reference")
		if ref == "" {
			ref = fmt.Sprintf("U%d", nextDeviceID)
		}
		dev := &deviceImpl{id: nextDeviceID, name: ref, circuit: circuit, class: class}
		nextDeviceID++
		devices = append(devices, dev)

		libPins := flattenPins(lib)
		for _, pr := range sym.Pins {
			lp, ok := libPins[pr.Number]
			if !ok {
				continue
			}
			abs := transformPin(sym, lp.Position)
			pin := &pinImpl{id: nextPinID, name: pr.Number}
			nextPinID++
			b.addPin(abs, dev, pin)
		}
	}

	for _, w := range sch.Wires {
		for i := 1; i < len(w.Points); i++ {
			b.union(keyOf(w.Points[i-1]), keyOf(w.Points[i]))
		}
	}
	for _, j := range sch.Junctions {
		b.touch(keyOf(j.Position))
	}
	for _, l := range sch.Labels {
		b.addLabel(l.Position, l.Text, 3)
	}
	for _, l := range sch.HierLabels {
		b.addLabel(l.Position, l.Text, 2)
	}
	for _, l := range sch.GlobalLabels {
		b.addLabel(l.Position, l.Text, 1)
	}

	pinForLabel := make(map[string]*pinImpl)
	globalNames := make(map[string]bool, len(sch.GlobalLabels))
	for _, l := range sch.GlobalLabels {
		globalNames[l.Text] = true
	}
	groups := b.finalize()

	nets := make([]netlist.Net, 0, len(groups))

	var nextNetID uint64 = 1
	for idx, g := range groups {
		if len(g.pins) == 0 && g.label == "" {
			continue
		}
		netName := g.label
		if netName == "" {
			netName = fmt.Sprintf("Net-(%d)", idx)
		}
		n := &netImpl{id: nextNetID, name: netName, circuit: circuit}
		nextNetID++

		for _, hit := range g.pins {
			n.terminals = append(n.terminals, &netlist.NetTerminalRef{
				DeviceVal:     hit.device,
				TerminalIDVal: int(hit.pin.ID()),
			})
		}

		if g.label != "" && globalNames[g.label] {
			pin, ok := pinForLabel[g.label]
			if !ok {
				pin = &pinImpl{id: nextPinID, name: g.label}
				nextPinID++
				pinForLabel[g.label] = pin
				circuit.pins = append(circuit.pins, pin)
				circuit.pinByID[pin.id] = pin
			}
			n.pins = append(n.pins, &netlist.NetPinRef{PinVal: pin})
		}

		nets = append(nets, n)
	}

	for _, dev := range devices {
		circuit.devices = append(circuit.devices, dev)
	}
	circuit.nets = nets

	sort.Slice(circuit.devices, func(i, j int) bool { return circuit.devices[i].Name() < circuit.devices[j].Name() })
	sort.Slice(circuit.pins, func(i, j int) bool { return circuit.pins[i].Name() < circuit.pins[j].Name() })

	return &netlistImpl{name: name, circuits: []netlist.Circuit{circuit}}, nil
}

func propertyValue(props []schematic.Property, key string) string {
	for _, p := range props {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// libTerminals builds the device-class terminal definition list from a
// library symbol's own pin numbering, flattening multi-unit symbols.
func libTerminals(lib *schematic.LibSymbol) []netlist.DeviceTerminalDefinition {
	pins := flattenPins(lib)
	nums := make([]string, 0, len(pins))
	for num := range pins {
		nums = append(nums, num)
	}
	sort.Strings(nums)

	terms := make([]netlist.DeviceTerminalDefinition, 0, len(nums))
	for i, num := range nums {
		terms = append(terms, terminalDef{id: i, name: pins[num].Name.Name})
	}
	return terms
}

func flattenPins(lib *schematic.LibSymbol) map[string]schematic.Pin {
	out := make(map[string]schematic.Pin, len(lib.Pins))
	for _, p := range lib.Pins {
		out[p.Number.Number] = p
	}
	for _, unit := range lib.Units {
		for _, p := range unit.Pins {
			out[p.Number.Number] = p
		}
	}
	return out
}

// transformPin maps a library pin's symbol-local position to schematic
// world coordinates, the same mirror-then-rotate-then-translate shape as
// the teacher's Footprint.TransformPosition (PCB footprint coordinates),
// adapted here to schematic/symbol coordinates.
func transformPin(sym *schematic.Symbol, rel schematic.Position) schematic.Position {
	x, y := rel.X, rel.Y

	if sym.Mirror == "x" {
		y = -y
	} else if sym.Mirror == "y" {
		x = -x
	}

	angle := float64(sym.Angle)
	if angle != 0 {
		rad := angle * math.Pi / 180.0
		cos, sin := math.Cos(rad), math.Sin(rad)
		nx := x*cos - y*sin
		ny := x*sin + y*cos
		x, y = nx, ny
	}

	return schematic.Position{X: x + sym.Position.X, Y: y + sym.Position.Y}
}
