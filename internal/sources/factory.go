package sources

import (
	"fmt"
	"strings"
)

// SourceFactory builds PackageSource instances from feed descriptors.
type SourceFactory interface {
	// CreateSource creates the feed implementation matching the
	// descriptor's location scheme.
	CreateSource(descriptor FeedDescriptor) (PackageSource, error)
}

// defaultSourceFactory is the default implementation of SourceFactory.
type defaultSourceFactory struct {
	credentials CredentialStore
}

var _ SourceFactory = (*defaultSourceFactory)(nil)

// NewSourceFactory creates a factory that resolves feed credentials through
// the given store.
func NewSourceFactory(credentials CredentialStore) SourceFactory {
	return &defaultSourceFactory{credentials: credentials}
}

// CreateSource implements SourceFactory.CreateSource. HTTP and HTTPS
// locations become registry feeds; everything else is treated as a local
// directory path.
func (f *defaultSourceFactory) CreateSource(descriptor FeedDescriptor) (PackageSource, error) {
	if descriptor.Location == "" {
		return nil, fmt.Errorf("feed %s: location is required", descriptor.Name)
	}

	if isRemote(descriptor.Location) {
		token := ""
		if descriptor.CredentialKey != "" {
			secret, err := f.credentials.Get(descriptor.CredentialKey)
			if err != nil {
				return nil, err
			}
			token = secret
		}
		return NewHTTPSource(descriptor, token), nil
	}

	return NewLocalSource(descriptor), nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
