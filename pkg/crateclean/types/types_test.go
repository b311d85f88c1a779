package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathSet(t *testing.T) {
	set := NewPathSet()
	assert.Equal(t, 0, set.Len())

	set.Add("/m/b.mp3")
	set.Add("/m/a.mp3")
	set.Add("/m/a.mp3") // duplicate

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("/m/a.mp3"))
	assert.False(t, set.Contains("/m/c.mp3"))
	assert.Equal(t, []CanonicalPath{"/m/a.mp3", "/m/b.mp3"}, set.Sorted())
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "FormatSize(%d)", tt.bytes)
	}
}
