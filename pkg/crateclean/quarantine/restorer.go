package quarantine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tobyrandall/crateclean/pkg/crateclean/manifest"
)

// Restored is one move reversed from the manifest.
type Restored struct {
	// From is the quarantined path the file came back from.
	From string `json:"from"`

	// To is the original path the file was returned to.
	To string `json:"to"`
}

// RestoreReport enumerates the outcome of a restore run.
type RestoreReport struct {
	// Restored lists files moved back to their original locations.
	Restored []Restored `json:"restored"`

	// AlreadyGone lists quarantined paths that no longer exist; their records
	// were presumably consumed by an earlier restore.
	AlreadyGone []string `json:"already_gone,omitempty"`

	// Conflicts lists original paths that are occupied; the quarantined copy
	// is left in place rather than overwriting.
	Conflicts []string `json:"conflicts,omitempty"`

	// Failed lists per-file restore errors.
	Failed []Failure `json:"failed,omitempty"`

	// CorruptRecords is the number of unparseable manifest lines skipped.
	CorruptRecords int `json:"corrupt_records,omitempty"`
}

// Restore reads the manifest at manifestPath and moves every recorded file
// back to its original location, oldest move first. The manifest is never
// modified: a record whose quarantined path is gone is treated as already
// restored, so re-running restore is safe and a second run is a no-op.
func Restore(manifestPath string) (*RestoreReport, error) {
	records, corrupt, err := manifest.Read(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no manifest at %s: nothing to restore", manifestPath)
		}
		return nil, err
	}

	report := &RestoreReport{CorruptRecords: corrupt}
	for _, rec := range records {
		restoreOne(rec, report)
	}

	logger.Info("restore finished",
		"restored", len(report.Restored), "already_gone", len(report.AlreadyGone),
		"conflicts", len(report.Conflicts), "failed", len(report.Failed))
	return report, nil
}

func restoreOne(rec manifest.Record, report *RestoreReport) {
	if _, err := os.Lstat(rec.QuarantinedPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("quarantined file missing, skipping", "path", rec.QuarantinedPath)
			report.AlreadyGone = append(report.AlreadyGone, rec.QuarantinedPath)
			return
		}
		report.Failed = append(report.Failed, Failure{Path: rec.QuarantinedPath, Error: err.Error()})
		return
	}

	// Never overwrite: a new file at the original location wins, the
	// quarantined copy stays put.
	if _, err := os.Lstat(rec.OriginalPath); err == nil {
		logger.Warn("destination occupied, skipping", "path", rec.OriginalPath)
		report.Conflicts = append(report.Conflicts, rec.OriginalPath)
		return
	}

	if err := os.MkdirAll(filepath.Dir(rec.OriginalPath), 0o755); err != nil {
		report.Failed = append(report.Failed, Failure{Path: rec.OriginalPath, Error: err.Error()})
		return
	}
	if err := moveFile(rec.QuarantinedPath, rec.OriginalPath); err != nil {
		report.Failed = append(report.Failed, Failure{Path: rec.QuarantinedPath, Error: err.Error()})
		return
	}

	report.Restored = append(report.Restored, Restored{From: rec.QuarantinedPath, To: rec.OriginalPath})
	logger.Debug("restored", "from", rec.QuarantinedPath, "to", rec.OriginalPath)
}
