package kicadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/netxref/pkg/kicad/schematic"
	"github.com/OpenTraceLab/netxref/pkg/netlist"
)

// twoResistorSchematic builds two Device:R symbols, R1 and R2, with R1's
// pin 2 wired to R2's pin 1, and a global label "VCC" sitting on R1's pin 1 —
// enough to exercise both the union-find wire path and the label-identity
// path through BuildNetlist.
func twoResistorSchematic() *schematic.Schematic {
	libR := schematic.LibSymbol{
		Name: "Device:R",
		Pins: []schematic.Pin{
			{Number: schematic.PinNum{Number: "1"}, Position: schematic.Position{X: 0, Y: 0}},
			{Number: schematic.PinNum{Number: "2"}, Position: schematic.Position{X: 0, Y: 2.54}},
		},
	}

	r1 := schematic.Symbol{
		LibID:    "Device:R",
		Position: schematic.Position{X: 0, Y: 0},
		Properties: []schematic.Property{
			{Key: "Reference", Value: "R1"},
		},
		Pins: []schematic.PinRef{{Number: "1"}, {Number: "2"}},
	}
	r2 := schematic.Symbol{
		LibID:    "Device:R",
		Position: schematic.Position{X: 10, Y: 0},
		Properties: []schematic.Property{
			{Key: "Reference", Value: "R2"},
		},
		Pins: []schematic.PinRef{{Number: "1"}, {Number: "2"}},
	}

	return &schematic.Schematic{
		LibSymbols: []schematic.LibSymbol{libR},
		Symbols:    []schematic.Symbol{r1, r2},
		Wires: []schematic.Wire{
			{Points: []schematic.Position{{X: 0, Y: 2.54}, {X: 10, Y: 0}}},
		},
		GlobalLabels: []schematic.GlobalLabel{
			{Text: "VCC", Position: schematic.Position{X: 0, Y: 0}},
		},
	}
}

func TestBuildNetlistDevicesAndPins(t *testing.T) {
	sch := twoResistorSchematic()

	nl, err := BuildNetlist(sch, "board")
	require.NoError(t, err)
	require.Len(t, nl.Circuits(), 1)

	circuit := nl.Circuits()[0]
	assert.Equal(t, "board", circuit.Name())
	assert.Equal(t, 0, circuit.RefCount())

	devices := circuit.Devices()
	require.Len(t, devices, 2)
	assert.Equal(t, "R1", devices[0].Name())
	assert.Equal(t, "R2", devices[1].Name())
	assert.Equal(t, "Device:R", devices[0].Class().Name())
}

func TestBuildNetlistWireUnionsPins(t *testing.T) {
	sch := twoResistorSchematic()
	nl, err := BuildNetlist(sch, "board")
	require.NoError(t, err)

	circuit := nl.Circuits()[0]

	var wired netlist.Net
	for _, n := range circuit.Nets() {
		if len(n.Terminals()) == 2 {
			wired = n
		}
	}
	require.NotNil(t, wired, "expected one net joining R1 pin 2 and R2 pin 1")

	devicesOnNet := map[string]bool{}
	for _, term := range wired.Terminals() {
		devicesOnNet[term.Device().Name()] = true
	}
	assert.True(t, devicesOnNet["R1"])
	assert.True(t, devicesOnNet["R2"])
}

func TestBuildNetlistGlobalLabelBecomesCircuitPin(t *testing.T) {
	sch := twoResistorSchematic()
	nl, err := BuildNetlist(sch, "board")
	require.NoError(t, err)

	circuit := nl.Circuits()[0]

	require.Len(t, circuit.Pins(), 1)
	assert.Equal(t, "VCC", circuit.Pins()[0].Name())

	var vccNet netlist.Net
	for _, n := range circuit.Nets() {
		if n.Name() == "VCC" {
			vccNet = n
		}
	}
	require.NotNil(t, vccNet, "expected a net named after the global label")
	require.Len(t, vccNet.Pins(), 1)
	assert.Equal(t, "VCC", vccNet.Pins()[0].Pin().Name())
	require.Len(t, vccNet.Terminals(), 1)
	assert.Equal(t, "R1", vccNet.Terminals()[0].Device().Name())
}
