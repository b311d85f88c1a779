package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tobyrandall/crateclean/pkg/crateclean/output"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Report orphaned and missing files without touching anything",
	Long: `Preview reconciles the Rekordbox collection against the scan roots and
reports orphans (on disk, not referenced) and missing references (referenced,
not on disk). It is strictly read-only.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	start := time.Now()

	rc, err := buildRunContext(inputRequirements{needXML: true})
	if err != nil {
		return err
	}

	col, scanRes, result, err := reconcileRun(cmd.Context(), rc)
	if err != nil {
		return err
	}

	report := &output.Report{
		Mode:         output.ModePreview,
		XMLPath:      rc.xmlPath,
		Roots:        rc.roots,
		TotalRecords: col.TotalRecords,
		TotalScanned: int(scanRes.FilesScanned),
		Orphans:      pathsToStrings(result.Orphans),
		Missing:      pathsToStrings(result.Missing),
		InSyncCount:  len(result.InSync),
		Warnings:     scanWarnings(scanRes.Errors),
		Duration:     time.Since(start),
	}
	return render(report)
}

// render formats a report with the configured formatter and prints it.
func render(report *output.Report) error {
	name := viper.GetString("output")
	formatter, err := output.Get(name)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", name, output.Available())
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}
