// Package output provides formatters for rendering crateclean reports in
// various formats (pretty, plain, json, yaml).
//
// The package uses a registry pattern so formatters can be selected at
// runtime:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, report); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tobyrandall/crateclean/pkg/crateclean/quarantine"
)

// Mode identifies which operation produced a report.
type Mode string

// Report modes.
const (
	ModePreview Mode = "preview"
	ModeMove    Mode = "move"
	ModeDryRun  Mode = "dry-run"
	ModeRestore Mode = "restore"
)

// Report contains the complete output data for formatting: the
// reconciliation summary plus, depending on the mode, the move or restore
// outcome.
type Report struct {
	// Mode is the operation that produced this report.
	Mode Mode `json:"mode" yaml:"mode"`

	// XMLPath is the Rekordbox export that was reconciled against.
	XMLPath string `json:"xml_path,omitempty" yaml:"xml_path,omitempty"`

	// Roots are the scan roots.
	Roots []string `json:"roots,omitempty" yaml:"roots,omitempty"`

	// TotalRecords is the number of collection records in the XML.
	TotalRecords int `json:"total_records" yaml:"total_records"`

	// TotalScanned is the number of audio files found on disk.
	TotalScanned int `json:"total_scanned" yaml:"total_scanned"`

	// Orphans are scanned files the collection does not reference.
	Orphans []string `json:"orphans" yaml:"orphans"`

	// Missing are referenced paths absent from disk.
	Missing []string `json:"missing" yaml:"missing"`

	// InSyncCount is the number of paths present on both sides.
	InSyncCount int `json:"in_sync" yaml:"in_sync"`

	// MoveReport is present for move and dry-run modes.
	MoveReport *quarantine.MoveReport `json:"move_report,omitempty" yaml:"move_report,omitempty"`

	// RestoreReport is present for restore mode.
	RestoreReport *quarantine.RestoreReport `json:"restore_report,omitempty" yaml:"restore_report,omitempty"`

	// Warnings are non-fatal conditions encountered during the run.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Duration is the total run time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Formatter is the interface all output formatters implement.
type Formatter interface {
	// Format writes the formatted report to the buffer.
	Format(w *bytes.Buffer, r *Report) error
}

// FormatterFactory creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FormatterFactory)}
}

// Register adds a formatter factory, replacing any existing one of the same
// name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns the sorted names of all registered formatters.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
