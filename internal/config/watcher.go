package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/feedworks/feedctl/internal/logger"
)

// Watch observes the configuration file for external changes and calls
// onChange after every write or create, so the caller can invalidate any
// state derived from the previous contents. It watches the containing
// directory because atomic saves replace the file by rename. Blocks until
// the context is cancelled.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", s.dir, err)
	}

	logger.Infof("Watching configuration file: %s", s.FullPath())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if filepath.Clean(event.Name) != s.FullPath() {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debugf("External config update detected")
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			logger.Errorf("File watcher error: %v", err)
		}
	}
}
