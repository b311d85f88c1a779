package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func testCanonicalizer() Canonicalizer {
	return New("/base", "/home/dj", false)
}

func TestCanonicalize_FileURI(t *testing.T) {
	c := testCanonicalizer()

	assert.Equal(t,
		c.Canonicalize("/Music/My Track 01.mp3"),
		c.Canonicalize("file://localhost/Music/My%20Track%2001.mp3"),
		"percent-encoded file URI must match the plain path")

	assert.Equal(t,
		c.Canonicalize("/Music/House & Techno/a.mp3"),
		c.Canonicalize("file://localhost/Music/House%20%26%20Techno/a.mp3"))
}

func TestCanonicalize_FileURIVariants(t *testing.T) {
	c := testCanonicalizer()
	want := c.Canonicalize("/Music/a.mp3")

	tests := []struct {
		name string
		raw  string
	}{
		{"empty authority", "file:///Music/a.mp3"},
		{"localhost authority", "file://localhost/Music/a.mp3"},
		{"mangled single-slash localhost", "file:/localhost/Music/a.mp3"},
		{"single slash no host", "file:/Music/a.mp3"},
		{"uppercase scheme", "FILE://localhost/Music/a.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, c.Canonicalize(tt.raw))
		})
	}
}

func TestCanonicalize_UnicodeNormalization(t *testing.T) {
	c := testCanonicalizer()

	composed := "/Music/Caf\u00e9.mp3"    // NFC: é as one rune
	decomposed := "/Music/Cafe\u0301.mp3" // NFD: e + combining acute
	encoded := "file://localhost/Music/Caf%C3%A9.mp3"

	assert.Equal(t, c.Canonicalize(composed), c.Canonicalize(decomposed))
	assert.Equal(t, c.Canonicalize(composed), c.Canonicalize(encoded))

	// The canonical form is NFD.
	got := c.Canonicalize(composed).String()
	assert.Equal(t, norm.NFD.String(got), got)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	c := testCanonicalizer()

	inputs := []string{
		"/Music/My Track.mp3",
		"file://localhost/Music/Caf%C3%A9.mp3",
		"relative/track.wav",
		"~/crates/deep house/b.flac",
	}
	for _, in := range inputs {
		once := c.Canonicalize(in)
		twice := c.Canonicalize(once.String())
		assert.Equal(t, once, twice, "canonicalize must be idempotent for %q", in)
	}
}

func TestCanonicalize_RelativeAndDotSegments(t *testing.T) {
	c := testCanonicalizer()

	assert.Equal(t, "/base/b.mp3", c.Canonicalize("a/../b.mp3").String())
	assert.Equal(t, "/Music/b.mp3", c.Canonicalize("/Music/x/../b.mp3").String())
	assert.Equal(t, "/Music/a.mp3", c.Canonicalize("  /Music/a.mp3  ").String())
}

func TestCanonicalize_TildeExpansion(t *testing.T) {
	c := testCanonicalizer()

	assert.Equal(t, "/home/dj/crates/a.mp3", c.Canonicalize("~/crates/a.mp3").String())
	assert.Equal(t, "/home/dj", c.Canonicalize("~").String())
	// "~user" is not expanded; it resolves as a relative path.
	assert.Equal(t, "/base/~other/a.mp3", c.Canonicalize("~other/a.mp3").String())
}

func TestCanonicalize_MalformedEscapes(t *testing.T) {
	c := testCanonicalizer()

	// An invalid escape sequence falls back to the raw string.
	assert.Equal(t, "/Music/100%.mp3", c.Canonicalize("/Music/100%.mp3").String())
	// Paths without any % are untouched by decoding.
	assert.Equal(t, "/Music/plain.mp3", c.Canonicalize("/Music/plain.mp3").String())
}

func TestCanonicalize_CaseInsensitive(t *testing.T) {
	sensitive := New("/base", "/home/dj", false)
	insensitive := New("/base", "/home/dj", true)

	assert.NotEqual(t,
		sensitive.Canonicalize("/Music/A.MP3"),
		sensitive.Canonicalize("/music/a.mp3"))
	assert.Equal(t,
		insensitive.Canonicalize("/Music/A.MP3"),
		insensitive.Canonicalize("/music/a.mp3"))
}

func TestCanonicalizeAll(t *testing.T) {
	c := testCanonicalizer()

	set := c.CanonicalizeAll([]string{
		"/Music/a.mp3",
		"file://localhost/Music/a.mp3", // same file, different spelling
		"/Music/b.mp3",
	})
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(c.Canonicalize("/Music/a.mp3")))
	assert.True(t, set.Contains(c.Canonicalize("/Music/b.mp3")))
}
