package sources

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// keyringService is the service name feed credentials are filed under in
// the host keyring.
const keyringService = "feedctl"

// CredentialStore resolves feed credential references to secrets.
type CredentialStore interface {
	// Get returns the secret stored under key, or "" when none is stored.
	Get(key string) (string, error)

	// Set stores a secret under key.
	Set(key, secret string) error
}

// keyringCredentialStore stores feed credentials in the OS keyring.
type keyringCredentialStore struct{}

var _ CredentialStore = (*keyringCredentialStore)(nil)

// NewKeyringCredentialStore creates a CredentialStore backed by the host
// keyring.
func NewKeyringCredentialStore() CredentialStore {
	return &keyringCredentialStore{}
}

// Get implements CredentialStore.Get. A missing entry is not an error.
func (*keyringCredentialStore) Get(key string) (string, error) {
	secret, err := keyring.Get(keyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credential %s from keyring: %w", key, err)
	}
	return secret, nil
}

// Set implements CredentialStore.Set.
func (*keyringCredentialStore) Set(key, secret string) error {
	if err := keyring.Set(keyringService, key, secret); err != nil {
		return fmt.Errorf("failed to store credential %s in keyring: %w", key, err)
	}
	return nil
}
