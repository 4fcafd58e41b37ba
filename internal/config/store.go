package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/feedworks/feedctl/internal/logger"
)

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithFileName overrides the configuration file name. Intended for tests.
func WithFileName(name string) StoreOption {
	return func(s *Store) {
		s.fileName = name
	}
}

// Store loads, creates, and persists the configuration file at a given
// directory. It performs no caching; caching resolved state is the
// resolver's responsibility.
type Store struct {
	dir      string
	fileName string
}

// NewStore creates a Store over the given configuration directory.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:      dir,
		fileName: FileName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the current configuration directory.
func (s *Store) Dir() string {
	return s.dir
}

// FullPath returns the full path of the configuration file.
func (s *Store) FullPath() string {
	return filepath.Join(s.dir, s.fileName)
}

// SidecarPath returns the full path of the sidecar metadata file.
func (s *Store) SidecarPath() string {
	return s.FullPath() + SidecarSuffix
}

// setDir repoints the store at a new configuration directory. Only the
// Relocator changes this, as part of its move protocol.
func (s *Store) setDir(dir string) {
	s.dir = dir
}

// LoadOrCreate parses the configuration file if it exists, or synthesizes
// the default configuration and persists it immediately. Parse failures are
// fatal and propagate to the caller unmodified; a missing file is not an
// error. The call is idempotent in effect, though the first-ever call
// creates the file.
func (s *Store) LoadOrCreate() (*Config, error) {
	fullPath := s.FullPath()

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", fullPath, err)
		}

		cfg := NewDefault(s.dir)
		if err := s.Save(cfg); err != nil {
			return nil, err
		}
		logger.Infof("No configuration found at %s, created default", fullPath)
		return cfg, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", fullPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", fullPath, err)
	}

	return &cfg, nil
}

// Save persists the configuration atomically, holding a file lock so that
// concurrent feedctl processes cannot interleave partial writes.
func (s *Store) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	fullPath := s.FullPath()

	lock := flock.New(fullPath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	// Write to a temporary file first so the rename is atomic.
	tempPath := fullPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tempPath, fullPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	return nil
}
