package manifest

import "time"

// DefaultName is the manifest file name inside the quarantine directory.
const DefaultName = "orphans_manifest.jsonl"

// Record is one durable line of the manifest: a single completed quarantine
// move. The manifest is the sole source of truth for restore.
type Record struct {
	// OriginalPath is the canonical path the file was moved from.
	OriginalPath string `json:"original_path"`

	// QuarantinedPath is the destination inside the quarantine directory.
	QuarantinedPath string `json:"quarantined_path"`

	// Timestamp is when the move completed, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// SizeBytes is the file size at move time.
	SizeBytes int64 `json:"size_bytes"`

	// Mtime is the file's modification time at move time.
	Mtime time.Time `json:"mtime"`

	// RunID identifies the move invocation that produced this record.
	RunID string `json:"run_id"`
}
