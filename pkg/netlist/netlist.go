// Package netlist defines the borrowed entity model that the cross-reference
// engine in pkg/xref operates on: circuits, nets, devices, pins, sub-circuit
// instances and the net-side back-references between them.
//
// The engine never owns these entities. It is handed two independently
// built netlists (see Netlist) and correlates entities across them by
// identity — every concrete implementation of Circuit, Net, Device, Pin and
// SubCircuit below MUST be backed by a pointer so that two handles to "the
// same" entity compare equal and are usable as map keys.
package netlist

// Netlist is a collection of circuits making up one extracted or
// reference-side design.
type Netlist interface {
	Name() string
	Circuits() []Circuit
}

// Circuit is a named block containing nets, devices, pins and sub-circuit
// instances.
type Circuit interface {
	Name() string
	ExpandedName() string
	ID() uint64

	Nets() []Net
	Devices() []Device
	Pins() []Pin
	SubCircuits() []SubCircuit

	// PinByID returns the pin with the given id, used when resolving a
	// sub-circuit pin reference back to the pin of the referenced circuit.
	PinByID(id uint64) Pin

	// RefCount is the number of SubCircuit instances elsewhere in the
	// netlist that instantiate this circuit. A circuit with RefCount() == 0
	// is a top-level circuit.
	RefCount() int
}

// Net is a named electrical node; it holds the terminal/pin/sub-circuit-pin
// references that describe its connectivity.
type Net interface {
	Name() string
	ExpandedName() string
	ID() uint64
	Circuit() Circuit

	Terminals() []*NetTerminalRef
	Pins() []*NetPinRef
	SubCircuitPins() []*NetSubcircuitPinRef
}

// Device is a primitive instance (resistor, transistor, ...).
type Device interface {
	Name() string
	ExpandedName() string
	ID() uint64
	Circuit() Circuit
	Class() DeviceClass
}

// Pin is an external connection point of a circuit.
type Pin interface {
	Name() string
	ExpandedName() string
	ID() uint64
}

// SubCircuit is an instance of a child circuit inside a parent circuit.
type SubCircuit interface {
	Name() string
	ExpandedName() string
	ID() uint64

	// Circuit is the parent circuit this instance lives in.
	Circuit() Circuit
	// CircuitRef is the child circuit being instantiated.
	CircuitRef() Circuit
}

// DeviceClass defines the terminals of a device and how to normalize
// swappable terminal ids (e.g. MOS source/drain) to a canonical id.
type DeviceClass interface {
	Name() string
	TerminalDefinitions() []DeviceTerminalDefinition
	NormalizeTerminalID(id int) int
}

// DeviceTerminalDefinition names one terminal slot of a device class.
type DeviceTerminalDefinition interface {
	ID() int
	Name() string
}

// NetTerminalRef is one endpoint of a net at a device terminal.
type NetTerminalRef struct {
	DeviceVal     Device
	TerminalIDVal int
}

func (r *NetTerminalRef) Device() Device    { return r.DeviceVal }
func (r *NetTerminalRef) TerminalID() int   { return r.TerminalIDVal }

// NetPinRef attaches a net to a circuit's outside pin.
type NetPinRef struct {
	PinVal Pin
}

func (r *NetPinRef) Pin() Pin { return r.PinVal }

// NetSubcircuitPinRef attaches a net to a sub-circuit instance's pin.
type NetSubcircuitPinRef struct {
	SubCircuitVal SubCircuit
	PinIDVal      uint64
}

func (r *NetSubcircuitPinRef) SubCircuit() SubCircuit { return r.SubCircuitVal }
func (r *NetSubcircuitPinRef) PinID() uint64          { return r.PinIDVal }

// Pin resolves the pin this reference points to, by looking it up on the
// referenced circuit of the sub-circuit instance.
func (r *NetSubcircuitPinRef) Pin() Pin {
	if r.SubCircuitVal == nil {
		return nil
	}
	ref := r.SubCircuitVal.CircuitRef()
	if ref == nil {
		return nil
	}
	return ref.PinByID(r.PinIDVal)
}
