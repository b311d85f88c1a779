package scanner

import (
	"strings"

	"github.com/tobyrandall/crateclean/pkg/crateclean/canonical"
)

// Options configures a scan.
type Options struct {
	// Roots are the directories to walk. Each must exist and be a directory.
	Roots []string

	// Extensions is the allowed-extension list, with or without leading dots,
	// matched case-insensitively. Empty means no files match.
	Extensions []string

	// QuarantineDirName is the name of the quarantine directory; any directory
	// with this name is skipped so previously quarantined files are never
	// rescanned as new orphans.
	QuarantineDirName string

	// IgnoreNames are exact base names to skip (platform metadata files).
	IgnoreNames []string

	// IgnorePrefixes are base-name prefixes to skip (AppleDouble "._" files).
	IgnorePrefixes []string

	// Canonicalizer converts included file paths into canonical keys.
	Canonicalizer canonical.Canonicalizer
}

// normalizedExtensions returns the allowed extensions as lower-cased,
// dot-prefixed strings ready for suffix comparison.
func (o Options) normalizedExtensions() map[string]struct{} {
	exts := make(map[string]struct{}, len(o.Extensions))
	for _, e := range o.Extensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		exts["."+e] = struct{}{}
	}
	return exts
}
