package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tobyrandall/crateclean/pkg/crateclean/manifest"
	"github.com/tobyrandall/crateclean/pkg/crateclean/output"
	"github.com/tobyrandall/crateclean/pkg/crateclean/quarantine"
)

var moveDryRun bool

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Quarantine orphaned files",
	Long: `Move relocates every orphaned file into the quarantine directory under the
first scan root, recording each move in the append-only manifest so it can be
undone with 'crateclean restore'. Collisions between same-named files are
resolved with " (1)", " (2)" suffixes.

With --dry-run, the planned moves are reported and nothing is touched.`,
	RunE: runMove,
}

func init() {
	moveCmd.Flags().BoolVar(&moveDryRun, "dry-run", false, "report planned moves without mutating anything")
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	start := time.Now()

	rc, err := buildRunContext(inputRequirements{needXML: true})
	if err != nil {
		return err
	}

	col, scanRes, result, err := reconcileRun(cmd.Context(), rc)
	if err != nil {
		return err
	}

	if len(result.Orphans) == 0 {
		printInfo("No orphans found.")
	}

	var app *manifest.Appender
	if !moveDryRun && len(result.Orphans) > 0 {
		if err := os.MkdirAll(rc.quarantineDir, 0o755); err != nil {
			return fmt.Errorf("creating quarantine directory: %w", err)
		}
		app, err = manifest.OpenAppender(rc.manifestPath)
		if err != nil {
			return err
		}
		defer app.Close()
	}

	mover := quarantine.NewMover(rc.quarantineDir, rc.canon, app)
	moveReport, err := mover.MoveOrphans(result.Orphans, moveDryRun)
	if err != nil {
		return err
	}

	mode := output.ModeMove
	if moveDryRun {
		mode = output.ModeDryRun
	}
	report := &output.Report{
		Mode:         mode,
		XMLPath:      rc.xmlPath,
		Roots:        rc.roots,
		TotalRecords: col.TotalRecords,
		TotalScanned: int(scanRes.FilesScanned),
		Orphans:      pathsToStrings(result.Orphans),
		Missing:      pathsToStrings(result.Missing),
		InSyncCount:  len(result.InSync),
		MoveReport:   moveReport,
		Warnings:     scanWarnings(scanRes.Errors),
		Duration:     time.Since(start),
	}
	if err := render(report); err != nil {
		return err
	}

	if n := len(moveReport.Failed); n > 0 {
		return fmt.Errorf("%d of %d moves failed", n, n+len(moveReport.Moved))
	}
	return nil
}
