package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/tobyrandall/crateclean/pkg/crateclean/quarantine"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

// PrettyFormatter formats reports with colors and styling using lipgloss.
type PrettyFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatCounts(r))

	if mr := r.MoveReport; mr != nil {
		w.WriteString("\n")
		w.WriteString(f.formatMoves(mr))
	}
	if rr := r.RestoreReport; rr != nil {
		w.WriteString("\n")
		w.WriteString(f.formatRestores(rr))
	}

	if len(r.Warnings) > 0 {
		w.WriteString("\n")
		for _, warning := range r.Warnings {
			w.WriteString(WarningStyle.Render("! "+warning) + "\n")
		}
	}
	return nil
}

// formatHeader builds the boxed run summary.
func (f *PrettyFormatter) formatHeader(r *Report) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Mode:"), ValueStyle.Render(string(r.Mode))))
	if r.XMLPath != "" {
		lines = append(lines, fmt.Sprintf("%s %s",
			LabelStyle.Render("Collection:"), ValueStyle.Render(r.XMLPath)))
	}
	if len(r.Roots) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s",
			LabelStyle.Render("Scan roots:"), ValueStyle.Render(strings.Join(r.Roots, ", "))))
	}
	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Duration:"), MutedStyle.Render(r.Duration.Round(time.Millisecond).String())))

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatCounts renders the reconciliation summary counters.
func (f *PrettyFormatter) formatCounts(r *Report) string {
	var b strings.Builder
	writeCount := func(label string, n int, style func(int) string) {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(label), style(n))
	}

	neutral := func(n int) string { return ValueStyle.Render(fmt.Sprintf("%d", n)) }
	warnIfAny := func(n int) string {
		if n > 0 {
			return WarningStyle.Render(fmt.Sprintf("%d", n))
		}
		return SuccessStyle.Render("0")
	}
	dangerIfAny := func(n int) string {
		if n > 0 {
			return DangerStyle.Render(fmt.Sprintf("%d", n))
		}
		return SuccessStyle.Render("0")
	}

	writeCount("Rekordbox collection records (XML):", r.TotalRecords, neutral)
	writeCount("Scanned disk files:", r.TotalScanned, neutral)
	writeCount("Orphans:", len(r.Orphans), warnIfAny)
	writeCount("Collection references missing on disk:", len(r.Missing), dangerIfAny)
	writeCount("In sync:", r.InSyncCount, func(n int) string {
		return SuccessStyle.Render(fmt.Sprintf("%d", n))
	})
	return b.String()
}

// formatMoves renders the move (or dry-run) section.
func (f *PrettyFormatter) formatMoves(mr *quarantine.MoveReport) string {
	var b strings.Builder
	if mr.DryRun {
		fmt.Fprintf(&b, "%s\n", WarningStyle.Render(
			fmt.Sprintf("Dry run: %d files would be moved", len(mr.Moved))))
	} else {
		fmt.Fprintf(&b, "%s\n", SuccessStyle.Render(
			fmt.Sprintf("Moved %d files (%s) to quarantine", len(mr.Moved), types.FormatSize(mr.TotalBytes))))
	}
	for _, m := range mr.Moved {
		fmt.Fprintf(&b, "  %s %s %s\n",
			ValueStyle.Render(m.Source), MutedStyle.Render("->"), ValueStyle.Render(m.Destination))
	}
	for _, skipped := range mr.Skipped {
		fmt.Fprintf(&b, "  %s\n", MutedStyle.Render("skipped (already quarantined): "+skipped))
	}
	for _, fail := range mr.Failed {
		fmt.Fprintf(&b, "  %s\n", DangerStyle.Render(fmt.Sprintf("failed: %s: %s", fail.Path, fail.Error)))
	}
	return b.String()
}

// formatRestores renders the restore section.
func (f *PrettyFormatter) formatRestores(rr *quarantine.RestoreReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", SuccessStyle.Render(fmt.Sprintf("Restored %d files", len(rr.Restored))))
	for _, m := range rr.Restored {
		fmt.Fprintf(&b, "  %s %s %s\n",
			ValueStyle.Render(m.From), MutedStyle.Render("->"), ValueStyle.Render(m.To))
	}
	for _, gone := range rr.AlreadyGone {
		fmt.Fprintf(&b, "  %s\n", MutedStyle.Render("already restored or removed: "+gone))
	}
	for _, conflict := range rr.Conflicts {
		fmt.Fprintf(&b, "  %s\n", WarningStyle.Render("conflict, destination occupied: "+conflict))
	}
	for _, fail := range rr.Failed {
		fmt.Fprintf(&b, "  %s\n", DangerStyle.Render(fmt.Sprintf("failed: %s: %s", fail.Path, fail.Error)))
	}
	if rr.CorruptRecords > 0 {
		fmt.Fprintf(&b, "  %s\n", WarningStyle.Render(
			fmt.Sprintf("skipped %d corrupt manifest lines", rr.CorruptRecords)))
	}
	return b.String()
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
