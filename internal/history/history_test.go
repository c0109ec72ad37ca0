package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDeduplicatesAndBounds(t *testing.T) {
	l := NewList(3)
	for _, q := range []string{"a", "b", "", "a", "c", "d"} {
		require.NoError(t, l.Add(q))
	}
	assert.Equal(t, []string{"a", "c", "d"}, l.All())
	latest, ok := l.Latest()
	assert.True(t, ok)
	assert.Equal(t, "d", latest)
}

func TestNavigation(t *testing.T) {
	l := NewList(10)
	l.Add("first")
	l.Add("second")

	_, ok := l.Next()
	assert.False(t, ok, "next before previous")

	l.SetTemporary("typing")
	v, _ := l.Previous()
	assert.Equal(t, "second", v)
	v, _ = l.Previous()
	assert.Equal(t, "first", v)
	v, _ = l.Previous()
	assert.Equal(t, "first", v, "stays at the oldest entry")
	assert.True(t, l.IsNavigating())

	v, _ = l.Next()
	assert.Equal(t, "second", v)
	v, ok = l.Next()
	assert.True(t, ok)
	assert.Equal(t, "typing", v)
	assert.False(t, l.IsNavigating())
}

func TestPersistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	m, err := NewManager(dir)
	require.NoError(t, err)

	l, err := Open(m, SearchFile, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	require.NoError(t, l.Add(`(\w+)@(\w+)`))
	require.NoError(t, l.Add("cat"))

	reloaded, err := Open(m, SearchFile, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, reloaded.All())
}

func TestCorruptFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReplaceFile), []byte("entries = ["), 0644))
	m, err := NewManager(dir)
	require.NoError(t, err)

	entries, err := m.Load(ReplaceFile)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
