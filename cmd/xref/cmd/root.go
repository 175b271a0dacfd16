package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "xref",
	Short: "netxref - structural netlist cross-reference tool",
	Long: `xref compares two netlists (currently: two KiCad schematics) by name
and structure, and classifies every circuit, net, device, pin and
sub-circuit pairing it finds.

Examples:
  xref compare golden.kicad_sch extracted.kicad_sch
  xref report --config batch.yaml`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
