// Package scanner walks scan roots and collects the canonical paths of
// audio files, skipping platform metadata and the quarantine directory.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/tobyrandall/crateclean/pkg/crateclean/logging"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

var logger = logging.Get("scanner")

// Result holds the outcome of walking the scan roots.
type Result struct {
	// Set contains the canonical paths of every included file.
	Set types.PathSet

	// FilesScanned is the number of files that passed the filters.
	FilesScanned int64

	// TotalBytes is the combined size of included files.
	TotalBytes int64

	// Elapsed is the wall time the walk took.
	Elapsed time.Duration

	// Errors are single-file walk errors; they omit only the errored file.
	// An unreadable directory aborts the scan instead.
	Errors []types.ScanError
}

// Scanner walks directories with fastwalk. Fastwalk traverses in parallel,
// so shared state is guarded.
type Scanner struct {
	opts Options
	exts map[string]struct{}

	filesScanned atomic.Int64
	bytesScanned atomic.Int64

	set   types.PathSet
	setMu sync.Mutex

	errors   []types.ScanError
	errorsMu sync.Mutex
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{
		opts: opts,
		exts: opts.normalizedExtensions(),
		set:  types.NewPathSet(),
	}
}

// Scan validates every root, then walks them and returns the scanned set.
// A missing or non-directory root is fatal: reconciliation against a partial
// scan would misclassify every file under the absent root.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()

	roots, err := s.validateRoots()
	if err != nil {
		return nil, err
	}

	conf := fastwalk.Config{Follow: false}
	for _, root := range roots {
		logger.Debug("walking root", "root", root)
		if err := fastwalk.Walk(&conf, root, s.walkCallback(ctx)); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	res := &Result{
		Set:          s.set,
		FilesScanned: s.filesScanned.Load(),
		TotalBytes:   s.bytesScanned.Load(),
		Elapsed:      time.Since(start),
		Errors:       s.errors,
	}
	logger.Info("scan complete", "files", res.FilesScanned, "roots", len(roots), "elapsed", res.Elapsed)
	return res, nil
}

// validateRoots resolves every root to an absolute path and verifies it is an
// existing directory before any walking begins.
func (s *Scanner) validateRoots() ([]string, error) {
	if len(s.opts.Roots) == 0 {
		return nil, errors.New("no scan roots given")
	}

	roots := make([]string, 0, len(s.opts.Roots))
	for _, r := range s.opts.Roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", r, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", types.ErrRootNotFound, abs)
			}
			return nil, fmt.Errorf("stat %s: %w", abs, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", types.ErrRootNotDir, abs)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

func (s *Scanner) walkCallback(ctx context.Context) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return context.Canceled
		}

		// An unreadable directory (or the root itself) leaves a whole subtree
		// unscanned; reconciling against that partial view would misclassify
		// every file under it, so abort. Single-file errors only omit that
		// file and are collected instead.
		if err != nil {
			if d == nil || d.IsDir() {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			s.addError(path, err)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if s.skipDir(name) {
				return fastwalk.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || s.skipFile(name) {
			return nil
		}
		s.processFile(path, d)
		return nil
	}
}

// skipDir reports whether a directory subtree is excluded from the walk.
func (s *Scanner) skipDir(name string) bool {
	if s.opts.QuarantineDirName != "" && name == s.opts.QuarantineDirName {
		return true
	}
	// Hidden directories hold no library audio.
	return strings.HasPrefix(name, ".")
}

// skipFile reports whether a base name matches an ignore rule or a
// disallowed extension.
func (s *Scanner) skipFile(name string) bool {
	for _, prefix := range s.opts.IgnorePrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, ignored := range s.opts.IgnoreNames {
		if name == ignored {
			return true
		}
	}
	_, ok := s.exts[strings.ToLower(filepath.Ext(name))]
	return !ok
}

func (s *Scanner) processFile(path string, d fs.DirEntry) {
	info, err := d.Info()
	if err != nil {
		s.addError(path, err)
		return
	}

	s.filesScanned.Add(1)
	s.bytesScanned.Add(info.Size())

	key := s.opts.Canonicalizer.Canonicalize(path)
	s.setMu.Lock()
	s.set.Add(key)
	s.setMu.Unlock()
}

func (s *Scanner) addError(path string, err error) {
	s.errorsMu.Lock()
	s.errors = append(s.errors, types.ScanError{Path: path, Error: err.Error()})
	s.errorsMu.Unlock()
}
