// Package types provides core data types for crateclean.
// It defines the canonical path key used for all reconciliation lookups,
// the set container built on it, and shared error values.
package types

import (
	"errors"
	"sort"

	"github.com/dustin/go-humanize"
)

// CanonicalPath is an absolute, decoded, Unicode-normalized path string used
// as the unique comparison key for reconciliation. Values are produced by the
// canonical package only; never build one from a raw string elsewhere.
type CanonicalPath string

// String returns the path as a plain string.
func (p CanonicalPath) String() string {
	return string(p)
}

// PathSet is an unordered set of canonical paths.
type PathSet map[CanonicalPath]struct{}

// NewPathSet creates an empty PathSet.
func NewPathSet() PathSet {
	return make(PathSet)
}

// Add inserts a path into the set.
func (s PathSet) Add(p CanonicalPath) {
	s[p] = struct{}{}
}

// Contains reports whether the set holds the given path.
func (s PathSet) Contains(p CanonicalPath) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of paths in the set.
func (s PathSet) Len() int {
	return len(s)
}

// Sorted returns the set's paths as a lexicographically sorted slice.
// Sorting gives repeated runs over unchanged input a stable order.
func (s PathSet) Sorted() []CanonicalPath {
	out := make([]CanonicalPath, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ScanError pairs a path with the error encountered while scanning it.
type ScanError struct {
	// Path is the file or directory path where the error occurred.
	Path string `json:"path"`

	// Error is the error message describing what went wrong.
	Error string `json:"error"`
}

// ErrRootNotFound indicates a scan root does not exist.
var ErrRootNotFound = errors.New("scan root does not exist")

// ErrRootNotDir indicates a scan root is not a directory.
var ErrRootNotDir = errors.New("scan root is not a directory")

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
