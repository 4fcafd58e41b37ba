package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedworks/feedctl/internal/prefs"
)

type recordingAssets struct {
	rescans int
}

func (r *recordingAssets) RescanAssets() { r.rescans++ }

func newTestRelocator(t *testing.T, dir string) (*Relocator, *Store, prefs.Store, *recordingAssets) {
	t.Helper()

	store := NewStore(dir)
	preferences := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, preferences.Set(PrefKeyConfigDir, dir))
	assets := &recordingAssets{}

	return NewRelocator(store, preferences, assets), store, preferences, assets
}

func TestMove_Success(t *testing.T) {
	t.Parallel()

	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "relocated")

	relocator, store, preferences, assets := newTestRelocator(t, oldDir)
	_, err := store.LoadOrCreate()
	require.NoError(t, err)
	oldFullPath := store.FullPath()

	require.NoError(t, relocator.Move(newDir))

	assert.Equal(t, newDir, store.Dir())
	assert.FileExists(t, store.FullPath())
	assert.NoFileExists(t, oldFullPath)

	remembered, err := preferences.Get(PrefKeyConfigDir)
	require.NoError(t, err)
	assert.Equal(t, newDir, remembered)
	assert.Equal(t, 1, assets.rescans)
}

func TestMove_SidecarMovesAlongside(t *testing.T) {
	t.Parallel()

	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "relocated")

	relocator, store, _, _ := newTestRelocator(t, oldDir)
	_, err := store.LoadOrCreate()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.SidecarPath(), []byte("meta"), 0600))

	require.NoError(t, relocator.Move(newDir))

	assert.FileExists(t, store.FullPath())
	assert.FileExists(t, store.SidecarPath())
	assert.NoFileExists(t, filepath.Join(oldDir, FileName+SidecarSuffix))
}

func TestMove_SidecarAbsentIsNotAnError(t *testing.T) {
	t.Parallel()

	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "relocated")

	relocator, store, _, _ := newTestRelocator(t, oldDir)
	_, err := store.LoadOrCreate()
	require.NoError(t, err)

	require.NoError(t, relocator.Move(newDir))

	assert.FileExists(t, store.FullPath())
	assert.NoFileExists(t, store.SidecarPath())
}

func TestMove_MissingFileCreatesAtNewLocation(t *testing.T) {
	t.Parallel()

	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "relocated")

	relocator, store, preferences, assets := newTestRelocator(t, oldDir)

	moveCalled := false
	relocator.rename = func(oldPath, newPath string) error {
		moveCalled = true
		return os.Rename(oldPath, newPath)
	}

	require.NoError(t, relocator.Move(newDir))

	assert.False(t, moveCalled, "no filesystem move should be attempted")
	assert.Equal(t, newDir, store.Dir())
	assert.FileExists(t, store.FullPath())

	remembered, err := preferences.Get(PrefKeyConfigDir)
	require.NoError(t, err)
	assert.Equal(t, newDir, remembered)
	assert.Equal(t, 1, assets.rescans)
}

func TestMove_FailureRollsBackCompletely(t *testing.T) {
	t.Parallel()

	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "relocated")

	relocator, store, preferences, assets := newTestRelocator(t, oldDir)
	cfg, err := store.LoadOrCreate()
	require.NoError(t, err)
	oldFullPath := store.FullPath()

	relocator.rename = func(_, _ string) error {
		return errors.New("disk detached")
	}

	err = relocator.Move(newDir)
	require.Error(t, err)

	// Path fields, preference store, and the on-disk file all equal their
	// pre-call state.
	assert.Equal(t, oldDir, store.Dir())
	assert.FileExists(t, oldFullPath)
	assert.NoFileExists(t, filepath.Join(newDir, FileName))

	remembered, err := preferences.Get(PrefKeyConfigDir)
	require.NoError(t, err)
	assert.Equal(t, oldDir, remembered)
	assert.Equal(t, 0, assets.rescans)

	// The old configuration is still loadable and unchanged.
	reloaded, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
