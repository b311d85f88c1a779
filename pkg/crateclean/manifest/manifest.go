// Package manifest maintains the append-only move log that makes quarantine
// reversible. One JSON object per line; appended and synced record by record
// during move, read-only during restore, never rewritten in place. A crash
// mid-run therefore leaves the manifest consistent with every completed move.
package manifest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tobyrandall/crateclean/pkg/crateclean/logging"
)

var logger = logging.Get("manifest")

// maxLineBytes bounds a single manifest line; paths never approach this.
const maxLineBytes = 1 << 20

// Appender appends records to a manifest file with write-ahead-log
// durability: each record is flushed to stable storage before Append returns.
type Appender struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenAppender opens (creating if absent) the manifest at path for appending.
func OpenAppender(path string) (*Appender, error) {
	if path == "" {
		return nil, errors.New("manifest path cannot be empty")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	return &Appender{f: f, path: path}, nil
}

// Path returns the manifest file path.
func (a *Appender) Path() string {
	return a.path
}

// Append writes one record as a JSON line and syncs the file before
// returning. The caller must not proceed to the next move until Append
// succeeds for the previous one.
func (a *Appender) Append(rec Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling manifest record: %w", err)
	}
	data = append(data, '\n')

	if _, err := a.f.Write(data); err != nil {
		return fmt.Errorf("appending manifest record: %w", err)
	}
	if err := a.f.Sync(); err != nil {
		return fmt.Errorf("syncing manifest: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.f.Close()
}

// Read loads every parseable record from the manifest at path, in file
// order. Unparseable lines (including a partial trailing line from an
// interrupted write) are skipped and counted, never fatal: one bad line must
// not discard the whole manifest.
func Read(path string) (records []Record, corrupt int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("skipping corrupt manifest line", "path", path, "line", line, "error", err)
			corrupt++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, corrupt, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return records, corrupt, nil
}
