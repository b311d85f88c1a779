package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tobyrandall/crateclean/pkg/crateclean/output"
	"github.com/tobyrandall/crateclean/pkg/crateclean/quarantine"
)

var restoreStrictConflicts bool

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Move quarantined files back to their original locations",
	Long: `Restore replays the manifest and moves every quarantined file back to the
path it was taken from. Records whose quarantined file is already gone are
skipped, so running restore twice is safe. A file already occupying an
original location is never overwritten; the quarantined copy stays put and a
conflict warning is reported.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreStrictConflicts, "strict-conflicts", false, "treat conflicts as failures (non-zero exit)")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	start := time.Now()

	rc, err := buildRunContext(inputRequirements{})
	if err != nil {
		return err
	}

	restoreReport, err := quarantine.Restore(rc.manifestPath)
	if err != nil {
		return err
	}

	report := &output.Report{
		Mode:          output.ModeRestore,
		Roots:         rc.roots,
		RestoreReport: restoreReport,
		Duration:      time.Since(start),
	}
	if err := render(report); err != nil {
		return err
	}

	if n := len(restoreReport.Failed); n > 0 {
		return fmt.Errorf("%d restores failed", n)
	}
	if restoreStrictConflicts && len(restoreReport.Conflicts) > 0 {
		return fmt.Errorf("%d restore conflicts", len(restoreReport.Conflicts))
	}
	return nil
}
