package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobyrandall/crateclean/pkg/crateclean/canonical"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}

func testOptions(roots ...string) Options {
	return Options{
		Roots:             roots,
		Extensions:        []string{"mp3", "wav", "flac"},
		QuarantineDirName: "_Rekordbox_Orphans",
		IgnoreNames:       []string{".DS_Store", "Thumbs.db", "desktop.ini"},
		IgnorePrefixes:    []string{"._"},
		Canonicalizer:     canonical.New("/", "/home/dj", false),
	}
}

func TestScan_ExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"))
	writeFile(t, filepath.Join(root, "b.WAV")) // extension match is case-insensitive
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "cover.jpg"))
	writeFile(t, filepath.Join(root, "sub", "c.flac"))

	res, err := New(testOptions(root)).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.FilesScanned)
	assert.Equal(t, 3, res.Set.Len())
	assert.Empty(t, res.Errors)
}

func TestScan_IgnoresMetadataFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.mp3"))
	writeFile(t, filepath.Join(root, ".DS_Store"))
	writeFile(t, filepath.Join(root, "._resource.mp3"))
	writeFile(t, filepath.Join(root, "Thumbs.db"))
	writeFile(t, filepath.Join(root, "desktop.ini"))

	res, err := New(testOptions(root)).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FilesScanned)
}

func TestScan_SkipsQuarantineAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.mp3"))
	writeFile(t, filepath.Join(root, "_Rekordbox_Orphans", "quarantined.mp3"))
	writeFile(t, filepath.Join(root, ".git", "blob.mp3"))
	writeFile(t, filepath.Join(root, "nested", "_Rekordbox_Orphans", "deep.mp3"))

	res, err := New(testOptions(root)).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FilesScanned)
}

func TestScan_MultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, filepath.Join(rootA, "a.mp3"))
	writeFile(t, filepath.Join(rootB, "b.mp3"))

	res, err := New(testOptions(rootA, rootB)).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.FilesScanned)
}

func TestScan_MissingRootIsFatal(t *testing.T) {
	res, err := New(testOptions(filepath.Join(t.TempDir(), "absent"))).Scan(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, types.ErrRootNotFound)
}

func TestScan_FileRootIsFatal(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not-a-dir.mp3")
	writeFile(t, file)

	_, err := New(testOptions(file)).Scan(context.Background())
	assert.ErrorIs(t, err, types.ErrRootNotDir)
}

func TestScan_NoRoots(t *testing.T) {
	_, err := New(testOptions()).Scan(context.Background())
	assert.Error(t, err)
}

// fakeEntry stands in for a walk entry that errored; fastwalk hands the
// callback the entry alongside the error.
type fakeEntry struct {
	name string
	dir  bool
}

func (e fakeEntry) Name() string { return e.name }
func (e fakeEntry) IsDir() bool  { return e.dir }
func (e fakeEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}
func (e fakeEntry) Info() (fs.FileInfo, error) { return nil, errors.New("no info") }

func TestWalkCallback_UnreadableDirAborts(t *testing.T) {
	cb := New(testOptions(t.TempDir())).walkCallback(context.Background())

	err := cb("/m/locked", fakeEntry{name: "locked", dir: true}, errors.New("permission denied"))
	require.Error(t, err, "an unreadable directory must abort the scan")
	assert.Contains(t, err.Error(), "permission denied")

	// The root itself erroring arrives with a nil entry.
	err = cb("/m", nil, errors.New("root vanished"))
	require.Error(t, err)
}

func TestWalkCallback_FileErrorIsCollected(t *testing.T) {
	s := New(testOptions(t.TempDir()))
	cb := s.walkCallback(context.Background())

	err := cb("/m/f.mp3", fakeEntry{name: "f.mp3"}, errors.New("stat failed"))
	require.NoError(t, err, "a single-file error only omits that file")
	require.Len(t, s.errors, 1)
	assert.Equal(t, "/m/f.mp3", s.errors[0].Path)
}

func TestScan_CanonicalKeys(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "track.mp3")
	writeFile(t, path)

	opts := testOptions(root)
	res, err := New(opts).Scan(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Set.Contains(opts.Canonicalizer.Canonicalize(path)))
}
