package output

import (
	"bytes"
	"fmt"

	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

// PlainFormatter produces unstyled text output suitable for piping or for
// terminals without color support.
type PlainFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	fmt.Fprintf(w, "Rekordbox collection records (XML): %d\n", r.TotalRecords)
	fmt.Fprintf(w, "Scanned disk files: %d\n", r.TotalScanned)
	fmt.Fprintf(w, "Orphans: %d\n", len(r.Orphans))
	fmt.Fprintf(w, "Collection references missing on disk: %d\n", len(r.Missing))
	fmt.Fprintf(w, "In sync: %d\n", r.InSyncCount)

	if r.Mode == ModePreview {
		writePathList(w, "Orphaned files", r.Orphans)
		writePathList(w, "Missing files", r.Missing)
	}

	if mr := r.MoveReport; mr != nil {
		w.WriteByte('\n')
		if mr.DryRun {
			fmt.Fprintf(w, "Dry run: %d files would be moved\n", len(mr.Moved))
			for _, m := range mr.Moved {
				fmt.Fprintf(w, "  %s -> %s\n", m.Source, m.Destination)
			}
		} else {
			fmt.Fprintf(w, "Moved %d files (%s) to quarantine\n", len(mr.Moved), types.FormatSize(mr.TotalBytes))
			for _, m := range mr.Moved {
				fmt.Fprintf(w, "  %s -> %s\n", m.Source, m.Destination)
			}
		}
		writePathList(w, "Skipped (already quarantined)", mr.Skipped)
		for _, fail := range mr.Failed {
			fmt.Fprintf(w, "FAILED: %s: %s\n", fail.Path, fail.Error)
		}
	}

	if rr := r.RestoreReport; rr != nil {
		w.WriteByte('\n')
		fmt.Fprintf(w, "Restored %d files\n", len(rr.Restored))
		for _, m := range rr.Restored {
			fmt.Fprintf(w, "  %s -> %s\n", m.From, m.To)
		}
		writePathList(w, "Already restored or removed", rr.AlreadyGone)
		writePathList(w, "Conflicts (destination occupied)", rr.Conflicts)
		for _, fail := range rr.Failed {
			fmt.Fprintf(w, "FAILED: %s: %s\n", fail.Path, fail.Error)
		}
		if rr.CorruptRecords > 0 {
			fmt.Fprintf(w, "Warning: skipped %d corrupt manifest lines\n", rr.CorruptRecords)
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	return nil
}

// writePathList prints a labeled path list, omitting the section when empty.
func writePathList(w *bytes.Buffer, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", label, len(paths))
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
