// Package canonical converts raw path strings into canonical comparison keys.
//
// Rekordbox exports track locations as percent-encoded file:// URIs while the
// filesystem walk yields native paths, and macOS stores names in decomposed
// Unicode (NFD) while the XML export usually carries composed form. Both sides
// are funneled through Canonicalize so that any two spellings of the same file
// produce the same key.
package canonical

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
	"golang.org/x/text/unicode/norm"
)

// Canonicalizer holds the explicit configuration needed to canonicalize a
// path string. It performs no filesystem access: missing files canonicalize
// the same way existing ones do.
type Canonicalizer struct {
	// BaseDir is the directory relative inputs are resolved against.
	BaseDir string

	// HomeDir is substituted for a leading "~" segment.
	HomeDir string

	// CaseInsensitive folds the final key to lower case, for reconciling
	// libraries that live on case-insensitive filesystems.
	CaseInsensitive bool
}

// New returns a Canonicalizer with the given base and home directories.
func New(baseDir, homeDir string, caseInsensitive bool) Canonicalizer {
	return Canonicalizer{BaseDir: baseDir, HomeDir: homeDir, CaseInsensitive: caseInsensitive}
}

// Canonicalize converts a raw path string into its canonical key. It is a
// total function: malformed input falls back to best-effort decoding rather
// than failing.
//
// Steps, in order: strip a file: URI scheme, percent-decode, normalize to
// Unicode form D, expand a leading tilde, resolve to an absolute clean path,
// and optionally case-fold.
func (c Canonicalizer) Canonicalize(raw string) types.CanonicalPath {
	s := strings.TrimSpace(raw)
	s = stripFileScheme(s)
	s = percentDecode(s)
	s = norm.NFD.String(s)
	s = c.expandTilde(s)

	if !filepath.IsAbs(s) && c.BaseDir != "" {
		s = filepath.Join(c.BaseDir, s)
	} else {
		s = filepath.Clean(s)
	}

	if c.CaseInsensitive {
		s = strings.ToLower(s)
	}
	return types.CanonicalPath(s)
}

// CanonicalizeAll canonicalizes a batch of raw strings into a PathSet.
func (c Canonicalizer) CanonicalizeAll(raws []string) types.PathSet {
	set := types.NewPathSet()
	for _, r := range raws {
		set.Add(c.Canonicalize(r))
	}
	return set
}

// stripFileScheme removes a leading file: scheme, including the
// "file://localhost" form Rekordbox writes and the odd "file:/localhost/..."
// spelling seen in some exports. Non-URI input passes through unchanged.
func stripFileScheme(s string) string {
	if len(s) < 5 || !strings.EqualFold(s[:5], "file:") {
		return s
	}
	rest := s[5:]

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		// Drop the authority (empty or "localhost").
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return rest[i:]
		}
		return "/"
	}

	// "file:/localhost/Music/x.mp3" is a mangled authority, not a directory.
	if strings.HasPrefix(rest, "/localhost/") {
		return rest[len("/localhost"):]
	}
	return rest
}

// percentDecode decodes %XX escapes. Already-decoded input is returned as is:
// strings without valid escapes decode to themselves, and strings with
// malformed escapes are kept undecoded rather than rejected.
func percentDecode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// expandTilde substitutes the configured home directory for a leading "~".
func (c Canonicalizer) expandTilde(s string) string {
	if c.HomeDir == "" || !strings.HasPrefix(s, "~") {
		return s
	}
	if s == "~" {
		return c.HomeDir
	}
	if strings.HasPrefix(s, "~/") {
		return filepath.Join(c.HomeDir, s[2:])
	}
	// "~user" expansion is not supported; leave it alone.
	return s
}
