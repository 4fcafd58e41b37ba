package config

import (
	"fmt"
	"os"

	"github.com/feedworks/feedctl/internal/logger"
	"github.com/feedworks/feedctl/internal/prefs"
)

// AssetNotifier is told to rescan managed assets after a relocation changed
// what is on disk. Calls are fire-and-forget; failures inside the
// collaborator are not this package's concern.
type AssetNotifier interface {
	RescanAssets()
}

// relocationState captures the path state needed to roll a move back. It is
// discarded once the operation commits or rolls back.
type relocationState struct {
	oldDir      string
	oldFullPath string
	oldSidecar  string
	oldPrefDir  string
}

// Relocator moves the configuration file and its sidecar to a new
// directory. After any call to Move, the in-memory path state and the
// on-disk file agree on either the new location or the old one, never a mix.
type Relocator struct {
	store  *Store
	prefs  prefs.Store
	assets AssetNotifier

	// rename is swapped out by tests to force move failures.
	rename func(oldPath, newPath string) error
}

// NewRelocator creates a Relocator for the given store. The preference
// store remembers the chosen directory across sessions; the notifier is
// invoked after any outcome that changed what is on disk.
func NewRelocator(store *Store, preferences prefs.Store, assets AssetNotifier) *Relocator {
	return &Relocator{
		store:  store,
		prefs:  preferences,
		assets: assets,
		rename: os.Rename,
	}
}

// Move relocates the configuration file to newDir. The new directory choice
// is persisted to the preference store before any filesystem work: a crash
// mid-move then points future loads at the new location, where the file is
// recreated if missing. A failed move is logged, fully rolled back, and
// reported through the returned error; it never leaves path state and disk
// state disagreeing.
func (r *Relocator) Move(newDir string) error {
	state := relocationState{
		oldDir:      r.store.Dir(),
		oldFullPath: r.store.FullPath(),
		oldSidecar:  r.store.SidecarPath(),
	}
	oldPref, err := r.prefs.Get(PrefKeyConfigDir)
	if err != nil {
		return fmt.Errorf("failed to read preference store: %w", err)
	}
	state.oldPrefDir = oldPref

	r.store.setDir(newDir)
	if err := r.prefs.Set(PrefKeyConfigDir, newDir); err != nil {
		r.store.setDir(state.oldDir)
		logger.Errorf("Failed to persist config directory preference: %v", err)
		return fmt.Errorf("failed to persist config directory preference: %w", err)
	}

	if _, err := os.Stat(state.oldFullPath); os.IsNotExist(err) {
		// Nothing to move. A fresh load creates the file at the new
		// location.
		if _, err := r.store.LoadOrCreate(); err != nil {
			r.rollback(state)
			logger.Errorf("Failed to create configuration at %s: %v", newDir, err)
			return fmt.Errorf("failed to create configuration at new location: %w", err)
		}
		r.assets.RescanAssets()
		return nil
	}

	if err := r.moveConfigFile(state, newDir); err != nil {
		r.rollback(state)
		logger.Errorf("Failed to move configuration to %s, keeping %s: %v", newDir, state.oldDir, err)
		return err
	}

	logger.Infof("Moved configuration from %s to %s", state.oldDir, newDir)
	r.assets.RescanAssets()
	return nil
}

// moveConfigFile moves the primary file, then the sidecar on a best-effort
// basis. The sidecar's absence is not an error.
func (r *Relocator) moveConfigFile(state relocationState, newDir string) error {
	if err := os.MkdirAll(newDir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", newDir, err)
	}

	if err := r.rename(state.oldFullPath, r.store.FullPath()); err != nil {
		return fmt.Errorf("failed to move config file: %w", err)
	}

	if _, err := os.Stat(state.oldSidecar); err == nil {
		if err := r.rename(state.oldSidecar, r.store.SidecarPath()); err != nil {
			logger.Warnf("Failed to move sidecar file %s: %v", state.oldSidecar, err)
		}
	}

	return nil
}

// rollback restores the path fields and the preference-store value captured
// before the move.
func (r *Relocator) rollback(state relocationState) {
	r.store.setDir(state.oldDir)
	if err := r.prefs.Set(PrefKeyConfigDir, state.oldPrefDir); err != nil {
		logger.Errorf("Failed to restore config directory preference: %v", err)
	}
}
