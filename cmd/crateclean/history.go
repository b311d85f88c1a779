package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tobyrandall/crateclean/pkg/crateclean/manifest"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View quarantine history",
	Long: `History lists the manifest records for the quarantine directory under the
first scan root, newest first, with the current state of each quarantined
file (still quarantined, or already restored/removed).`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	rc, err := buildRunContext(inputRequirements{})
	if err != nil {
		return err
	}

	records, corrupt, err := manifest.Read(rc.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			printInfo("No manifest at %s; nothing has been quarantined yet.", rc.manifestPath)
			return nil
		}
		return err
	}

	if len(records) == 0 {
		printInfo("Manifest is empty; nothing has been quarantined yet.")
		return nil
	}

	// Newest first for display.
	shown := records
	if historyLimit > 0 && len(shown) > historyLimit {
		shown = shown[len(shown)-historyLimit:]
	}

	fmt.Printf("\n%-20s  %-10s  %-12s  %s\n", "WHEN", "SIZE", "STATE", "ORIGINAL PATH")
	fmt.Println(strings.Repeat("-", 80))
	for i := len(shown) - 1; i >= 0; i-- {
		rec := shown[i]
		state := "quarantined"
		if _, err := os.Lstat(rec.QuarantinedPath); os.IsNotExist(err) {
			state = "restored"
		}
		fmt.Printf("%-20s  %-10s  %-12s  %s\n",
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
			types.FormatSize(rec.SizeBytes),
			state,
			rec.OriginalPath,
		)
	}
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("\nShowing %d of %d records. Use --limit to see more.\n", len(shown), len(records))
	if corrupt > 0 {
		fmt.Printf("Warning: skipped %d corrupt manifest lines.\n", corrupt)
	}
	return nil
}
