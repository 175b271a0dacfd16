package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/netxref/pkg/xref"
	"github.com/OpenTraceLab/netxref/pkg/xreflog"
)

// BatchConfig describes a set of schematic pairs to cross-reference in one
// run, e.g. every board revision in a release against its golden design.
type BatchConfig struct {
	Jobs []BatchJob `yaml:"jobs"`
}

// BatchJob names one pair of schematics to compare.
type BatchJob struct {
	Name string `yaml:"name"`
	A    string `yaml:"a"`
	B    string `yaml:"b"`
}

var reportConfigPath string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a batch of schematic comparisons from a YAML config",
	Long: `Reads a YAML config naming one or more schematic pairs and runs the
structural comparer over each, printing a header line per job followed
by the same per-circuit summary and pass/fail line compare would print.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportConfigPath, "config", "c", "", "path to the batch YAML config (required)")
	reportCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(reportConfigPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", reportConfigPath, err)
	}

	var cfg BatchConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", reportConfigPath, err)
	}

	log := xreflog.NewLogger(verbose)
	failed := 0

	for _, job := range cfg.Jobs {
		log.Info("=== %s ===", job.Name)

		xr, err := compareSchematics(job.A, job.B)
		if err != nil {
			log.Error("job %s failed", err, job.Name)
			failed++
			continue
		}

		printSummary(log, xr)
		if jobFailed(xr) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs had circuit mismatches", failed, len(cfg.Jobs))
	}
	return nil
}

func jobFailed(xr *xref.CrossReference) bool {
	for _, cpair := range xr.Circuits() {
		data := xr.PerCircuitDataFor(cpair)
		if data != nil && data.Status != xref.StatusMatch {
			return true
		}
	}
	return false
}
