// Package kicadnet adapts a parsed KiCad schematic into the borrowed
// netlist.Netlist graph the cross-reference engine in pkg/xref operates
// on, so two schematics (or a schematic and a reverse-engineered netlist)
// can be run through the same comparer.
package kicadnet

import "github.com/OpenTraceLab/netxref/pkg/netlist"

// netlistImpl is the top-level netlist.Netlist: one schematic, one
// top-level circuit. Only the schematic's own sheet is read: hierarchical
// sheet instances are neither loaded into that circuit nor expanded into a
// Circuit/SubCircuit tree — schematics fed into a compare run are assumed pre-flattened, matching
// the reverse-engineered side they're typically compared against.
type netlistImpl struct {
	name     string
	circuits []netlist.Circuit
}

func (n *netlistImpl) Name() string              { return n.name }
func (n *netlistImpl) Circuits() []netlist.Circuit { return n.circuits }

type circuitImpl struct {
	id           uint64
	name         string
	nets         []netlist.Net
	devices      []netlist.Device
	pins         []netlist.Pin
	subcircuits  []netlist.SubCircuit
	pinByID      map[uint64]netlist.Pin
}

func (c *circuitImpl) Name() string                    { return c.name }
func (c *circuitImpl) ExpandedName() string            { return c.name }
func (c *circuitImpl) ID() uint64                      { return c.id }
func (c *circuitImpl) Nets() []netlist.Net             { return c.nets }
func (c *circuitImpl) Devices() []netlist.Device       { return c.devices }
func (c *circuitImpl) Pins() []netlist.Pin             { return c.pins }
func (c *circuitImpl) SubCircuits() []netlist.SubCircuit { return c.subcircuits }
func (c *circuitImpl) PinByID(id uint64) netlist.Pin   { return c.pinByID[id] }

// RefCount is always 0: flattened schematics have no sub-circuit
// instances referencing this circuit, so it is always top-level.
func (c *circuitImpl) RefCount() int { return 0 }

type netImpl struct {
	id             uint64
	name           string
	circuit        netlist.Circuit
	terminals      []*netlist.NetTerminalRef
	pins           []*netlist.NetPinRef
	subcircuitPins []*netlist.NetSubcircuitPinRef
}

func (n *netImpl) Name() string         { return n.name }
func (n *netImpl) ExpandedName() string { return n.name }
func (n *netImpl) ID() uint64           { return n.id }
func (n *netImpl) Circuit() netlist.Circuit { return n.circuit }

func (n *netImpl) Terminals() []*netlist.NetTerminalRef      { return n.terminals }
func (n *netImpl) Pins() []*netlist.NetPinRef                { return n.pins }
func (n *netImpl) SubCircuitPins() []*netlist.NetSubcircuitPinRef { return n.subcircuitPins }

type deviceClassImpl struct {
	name  string
	terms []netlist.DeviceTerminalDefinition
}

func (dc *deviceClassImpl) Name() string { return dc.name }
func (dc *deviceClassImpl) TerminalDefinitions() []netlist.DeviceTerminalDefinition {
	return dc.terms
}

// NormalizeTerminalID is the identity mapping: generic KiCad symbols (as
// opposed to extracted SPICE primitives) carry no swappable-terminal
// convention of their own, so terminal ids are already canonical.
func (dc *deviceClassImpl) NormalizeTerminalID(id int) int { return id }

type terminalDef struct {
	id   int
	name string
}

func (t terminalDef) ID() int        { return t.id }
func (t terminalDef) Name() string   { return t.name }

type deviceImpl struct {
	id      uint64
	name    string
	circuit netlist.Circuit
	class   netlist.DeviceClass
}

func (d *deviceImpl) Name() string             { return d.name }
func (d *deviceImpl) ExpandedName() string     { return d.name }
func (d *deviceImpl) ID() uint64               { return d.id }
func (d *deviceImpl) Circuit() netlist.Circuit { return d.circuit }
func (d *deviceImpl) Class() netlist.DeviceClass { return d.class }

type pinImpl struct {
	id   uint64
	name string
}

func (p *pinImpl) Name() string         { return p.name }
func (p *pinImpl) ExpandedName() string { return p.name }
func (p *pinImpl) ID() uint64           { return p.id }
