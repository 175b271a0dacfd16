// Command xref compares two KiCad schematics structurally and reports
// where their circuits, nets, devices, pins and sub-circuits agree or
// disagree.
package main

import "github.com/OpenTraceLab/netxref/cmd/xref/cmd"

func main() {
	cmd.Execute()
}
