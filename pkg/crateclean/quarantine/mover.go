// Package quarantine relocates orphaned files into a flat quarantine
// directory and reverses those moves from the manifest. Moves are
// collision-safe, observable under dry-run, and each successful move is
// durably recorded before the next begins.
package quarantine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tobyrandall/crateclean/pkg/crateclean/canonical"
	"github.com/tobyrandall/crateclean/pkg/crateclean/logging"
	"github.com/tobyrandall/crateclean/pkg/crateclean/manifest"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

var logger = logging.Get("quarantine")

// Move is one completed (or planned, under dry-run) relocation.
type Move struct {
	// Source is the canonical path the file was (or would be) moved from.
	Source string `json:"source"`

	// Destination is the path inside the quarantine directory.
	Destination string `json:"destination"`

	// SizeBytes is the file size, zero under dry-run.
	SizeBytes int64 `json:"size_bytes"`
}

// Failure records a per-file move or restore error. The run continues past
// failures; they surface in the exit status instead.
type Failure struct {
	// Path is the file the operation failed on.
	Path string `json:"path"`

	// Error is the failure message.
	Error string `json:"error"`
}

// MoveReport enumerates the outcome of a quarantine run.
type MoveReport struct {
	// Moved lists completed moves, or planned moves under dry-run.
	Moved []Move `json:"moved"`

	// Skipped lists files left alone because they already live inside the
	// quarantine directory.
	Skipped []string `json:"skipped,omitempty"`

	// Failed lists per-file failures.
	Failed []Failure `json:"failed,omitempty"`

	// TotalBytes is the combined size of moved files.
	TotalBytes int64 `json:"total_bytes"`

	// DryRun reports whether this run mutated anything.
	DryRun bool `json:"dry_run"`
}

// Mover quarantines orphan files.
type Mover struct {
	quarantineDir string

	// quarantineKey is the canonical form of quarantineDir, comparable
	// against the canonical paths MoveOrphans receives.
	quarantineKey string

	man   *manifest.Appender
	now   func() time.Time
	runID string
}

// NewMover creates a Mover targeting quarantineDir, canonicalized with the
// same canonicalizer that produced the orphan paths. The appender may be nil
// only for dry runs.
func NewMover(quarantineDir string, canon canonical.Canonicalizer, man *manifest.Appender) *Mover {
	return &Mover{
		quarantineDir: quarantineDir,
		quarantineKey: canon.Canonicalize(quarantineDir).String(),
		man:           man,
		now:           time.Now,
		runID:         uuid.NewString(),
	}
}

// MoveOrphans relocates every orphan into the quarantine directory in
// lexicographic order, appending one synced manifest record per successful
// move. Per-file failures are collected and the run continues.
func (m *Mover) MoveOrphans(orphans []types.CanonicalPath, dryRun bool) (*MoveReport, error) {
	report := &MoveReport{DryRun: dryRun}
	if len(orphans) == 0 {
		return report, nil
	}

	sorted := make([]types.CanonicalPath, len(orphans))
	copy(sorted, orphans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if !dryRun {
		if m.man == nil {
			return nil, fmt.Errorf("no manifest appender configured")
		}
		if err := os.MkdirAll(m.quarantineDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating quarantine directory %s: %w", m.quarantineDir, err)
		}
	}

	// Names claimed within this run, so many same-named files stay distinct
	// even before anything lands on disk.
	claimed := make(map[string]struct{})

	for _, orphan := range sorted {
		src := orphan.String()

		if isWithin(src, m.quarantineKey) {
			logger.Warn("refusing to re-quarantine", "path", src)
			report.Skipped = append(report.Skipped, src)
			continue
		}

		dst := m.resolveDestination(src, claimed)
		claimed[filepath.Base(dst)] = struct{}{}

		if dryRun {
			report.Moved = append(report.Moved, Move{Source: src, Destination: dst})
			continue
		}

		if err := m.moveOne(src, dst, report); err != nil {
			report.Failed = append(report.Failed, Failure{Path: src, Error: err.Error()})
			logger.Error("move failed", "source", src, "error", err)
		}
	}

	logger.Info("quarantine run finished",
		"moved", len(report.Moved), "skipped", len(report.Skipped),
		"failed", len(report.Failed), "dry_run", dryRun)
	return report, nil
}

// moveOne performs a single move and its manifest append. If the append
// fails the move is undone so the manifest never lags the filesystem.
func (m *Mover) moveOne(src, dst string, report *MoveReport) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := moveFile(src, dst); err != nil {
		return err
	}

	rec := manifest.Record{
		OriginalPath:    src,
		QuarantinedPath: dst,
		Timestamp:       m.now().UTC(),
		SizeBytes:       info.Size(),
		Mtime:           info.ModTime().UTC(),
		RunID:           m.runID,
	}
	if err := m.man.Append(rec); err != nil {
		// Put the file back; an unrecorded quarantined file is unrestorable.
		if undoErr := moveFile(dst, src); undoErr != nil {
			return fmt.Errorf("manifest append failed (%v) and undo failed: %w", err, undoErr)
		}
		return fmt.Errorf("manifest append failed, move undone: %w", err)
	}

	report.Moved = append(report.Moved, Move{Source: src, Destination: dst, SizeBytes: info.Size()})
	report.TotalBytes += info.Size()
	logger.Debug("quarantined", "source", src, "destination", dst)
	return nil
}

// resolveDestination picks a collision-free name under the quarantine
// directory: the plain basename, then "name (1).ext", "name (2).ext" and so
// on until a name is free both on disk and within this run.
func (m *Mover) resolveDestination(src string, claimed map[string]struct{}) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for n := 1; m.taken(name, claimed); n++ {
		name = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	return filepath.Join(m.quarantineDir, name)
}

func (m *Mover) taken(name string, claimed map[string]struct{}) bool {
	if _, ok := claimed[name]; ok {
		return true
	}
	_, err := os.Lstat(filepath.Join(m.quarantineDir, name))
	return err == nil
}
