package filelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_TruncatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	w := New(path)
	w.WriteLine("first")
	w.WriteLine("second\nline")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond line\n", string(data))
	assert.Equal(t, path, w.Path())
}

func TestWriter_FailuresAreSwallowed(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "dir", "thermal.log"))
	assert.NotPanics(t, func() { w.WriteLine("dropped") })
	assert.NoError(t, w.Close())

	w = New("")
	assert.NotPanics(t, func() { w.WriteLine("dropped") })
}

func TestWriter_WriteAfterClose(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, w.Close())
	assert.NotPanics(t, func() { w.WriteLine("late") })
	assert.NoError(t, w.Close())
}
