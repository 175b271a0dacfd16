package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netxref/pkg/kicad/schematic"
	"github.com/OpenTraceLab/netxref/pkg/kicadnet"
	"github.com/OpenTraceLab/netxref/pkg/lvscompare"
	"github.com/OpenTraceLab/netxref/pkg/xref"
	"github.com/OpenTraceLab/netxref/pkg/xreflog"
)

var compareCmd = &cobra.Command{
	Use:   "compare <a.kicad_sch> <b.kicad_sch>",
	Short: "Cross-reference two KiCad schematics",
	Long: `Parses two KiCad schematic files, builds their netlist graphs, and
runs the structural comparer over them, printing a per-circuit summary.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	log := xreflog.NewLogger(verbose)

	xr, err := compareSchematics(args[0], args[1])
	if err != nil {
		return err
	}

	printSummary(log, xr)
	return nil
}

// compareSchematics parses both schematics, builds their netlist graphs,
// and runs them through the structural comparer into a fresh
// CrossReference.
func compareSchematics(pathA, pathB string) (*xref.CrossReference, error) {
	schA, err := schematic.ParseFile(pathA)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pathA, err)
	}
	schB, err := schematic.ParseFile(pathB)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pathB, err)
	}

	nlA, err := kicadnet.BuildNetlist(schA, pathA)
	if err != nil {
		return nil, fmt.Errorf("building netlist from %s: %w", pathA, err)
	}
	nlB, err := kicadnet.BuildNetlist(schB, pathB)
	if err != nil {
		return nil, fmt.Errorf("building netlist from %s: %w", pathB, err)
	}

	xr := xref.New()
	lvscompare.Compare(xr, nlA, nlB)
	return xr, nil
}

func printSummary(log *xreflog.Logger, xr *xref.CrossReference) {
	for _, e := range xr.GlobalLogEntries() {
		log.LogEntry(e)
	}

	mismatches := 0
	for _, cpair := range xr.Circuits() {
		data := xr.PerCircuitDataFor(cpair)
		if data == nil {
			continue
		}
		name := cpair.First
		label := ""
		if name != nil {
			label = name.Name()
		} else if cpair.Second != nil {
			label = cpair.Second.Name()
		}

		hint := xref.CircuitStatusHint(xref.CircuitPair{First: cpair.First, Second: cpair.Second}, data.Status)
		fmt.Printf("%s: %s\n", label, log.Status(data.Status, hint))
		if data.Status != xref.StatusMatch {
			mismatches++
		}

		for _, e := range data.LogEntries {
			log.LogEntry(e)
		}
	}

	if mismatches == 0 {
		log.Success("all %d circuits matched", xr.CircuitCount())
	} else {
		log.Warning("%d of %d circuits did not cleanly match", mismatches, xr.CircuitCount())
	}
}
