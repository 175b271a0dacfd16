package xref

import "github.com/OpenTraceLab/netxref/pkg/netlist"

// Minimal pointer-backed netlist.* implementations used across this
// package's tests. They carry just enough fields to exercise C3/C4/C5;
// none of it is meant to be a realistic netlist adapter (see pkg/kicadnet
// for that).

type fCircuit struct {
	name     string
	id       uint64
	refCount int
	nets     []netlist.Net
	devices  []netlist.Device
	pins     []netlist.Pin
	subckts  []netlist.SubCircuit
	byID     map[uint64]netlist.Pin
}

func (c *fCircuit) Name() string         { return c.name }
func (c *fCircuit) ExpandedName() string { return c.name }
func (c *fCircuit) ID() uint64           { return c.id }
func (c *fCircuit) Nets() []netlist.Net            { return c.nets }
func (c *fCircuit) Devices() []netlist.Device       { return c.devices }
func (c *fCircuit) Pins() []netlist.Pin             { return c.pins }
func (c *fCircuit) SubCircuits() []netlist.SubCircuit { return c.subckts }
func (c *fCircuit) PinByID(id uint64) netlist.Pin {
	if c.byID == nil {
		return nil
	}
	return c.byID[id]
}
func (c *fCircuit) RefCount() int { return c.refCount }

type fNet struct {
	name    string
	id      uint64
	circuit netlist.Circuit
	terms   []*netlist.NetTerminalRef
	pins    []*netlist.NetPinRef
	scpins  []*netlist.NetSubcircuitPinRef
}

func (n *fNet) Name() string            { return n.name }
func (n *fNet) ExpandedName() string    { return n.name }
func (n *fNet) ID() uint64              { return n.id }
func (n *fNet) Circuit() netlist.Circuit { return n.circuit }
func (n *fNet) Terminals() []*netlist.NetTerminalRef       { return n.terms }
func (n *fNet) Pins() []*netlist.NetPinRef                 { return n.pins }
func (n *fNet) SubCircuitPins() []*netlist.NetSubcircuitPinRef { return n.scpins }

type fDeviceClass struct {
	name  string
	terms []netlist.DeviceTerminalDefinition
}

func (c *fDeviceClass) Name() string { return c.name }
func (c *fDeviceClass) TerminalDefinitions() []netlist.DeviceTerminalDefinition {
	return c.terms
}
func (c *fDeviceClass) NormalizeTerminalID(id int) int { return id }

type fDevice struct {
	name    string
	id      uint64
	circuit netlist.Circuit
	class   netlist.DeviceClass
}

func (d *fDevice) Name() string             { return d.name }
func (d *fDevice) ExpandedName() string     { return d.name }
func (d *fDevice) ID() uint64               { return d.id }
func (d *fDevice) Circuit() netlist.Circuit { return d.circuit }
func (d *fDevice) Class() netlist.DeviceClass { return d.class }

type fPin struct {
	name string
	id   uint64
}

func (p *fPin) Name() string         { return p.name }
func (p *fPin) ExpandedName() string { return p.name }
func (p *fPin) ID() uint64           { return p.id }

type fSubCircuit struct {
	name       string
	id         uint64
	circuit    netlist.Circuit
	circuitRef netlist.Circuit
}

func (s *fSubCircuit) Name() string             { return s.name }
func (s *fSubCircuit) ExpandedName() string     { return s.name }
func (s *fSubCircuit) ID() uint64               { return s.id }
func (s *fSubCircuit) Circuit() netlist.Circuit    { return s.circuit }
func (s *fSubCircuit) CircuitRef() netlist.Circuit { return s.circuitRef }

type fNetlist struct {
	name     string
	circuits []netlist.Circuit
}

func (n *fNetlist) Name() string              { return n.name }
func (n *fNetlist) Circuits() []netlist.Circuit { return n.circuits }
