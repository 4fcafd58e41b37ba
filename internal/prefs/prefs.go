// Package prefs provides the host preference store: a small persistent
// key to string map that outlives the process, used to remember choices
// such as the configuration directory across sessions.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store is a persistent key to string map.
type Store interface {
	// Get returns the value stored under key, or "" when none is stored.
	Get(key string) (string, error)

	// Set stores value under key and persists the change immediately.
	Set(key, value string) error
}

// fileStore persists preferences as a YAML map in a single file.
type fileStore struct {
	path string
}

var _ Store = (*fileStore)(nil)

// NewFileStore creates a Store persisted at path. The file and its parent
// directory are created on first Set.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

// Get implements Store.Get. A missing file or key is not an error.
func (s *fileStore) Get(key string) (string, error) {
	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Set implements Store.Set.
func (s *fileStore) Set(key, value string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}

func (s *fileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file: %w", err)
	}
	return values, nil
}
