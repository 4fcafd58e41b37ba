package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFileYieldsEmptyValues(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.yaml"))

	value, err := store.Get("anything")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestFileStore_SetPersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	require.NoError(t, NewFileStore(path).Set("feedctl.configDir", "/srv/feedctl"))

	// A fresh instance reads the same file, as a new process would.
	value, err := NewFileStore(path).Get("feedctl.configDir")
	require.NoError(t, err)
	assert.Equal(t, "/srv/feedctl", value)
}

func TestFileStore_SetPreservesOtherKeys(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))
	require.NoError(t, store.Set("a", "updated"))

	a, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "updated", a)

	b, err := store.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "2", b)
}

func TestFileStore_CorruptFileIsAnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0600))

	_, err := NewFileStore(path).Get("a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse preferences file")
}
