// Package config provides loading, persistence, and relocation of the
// feedctl configuration file.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/feedworks/feedctl/internal/sources"
)

const (
	// FileName is the fixed name of the configuration file inside the
	// configuration directory.
	FileName = "feeds.yaml"

	// SidecarSuffix is appended to FileName to form the sidecar metadata
	// file name. The sidecar is moved alongside the primary file but is
	// never required to exist.
	SidecarSuffix = ".meta"

	// PrefKeyConfigDir is the preference-store key remembering the chosen
	// configuration directory across sessions.
	PrefKeyConfigDir = "feedctl.configDir"
)

// defaultFeedName names the feed synthesized into a default configuration.
const defaultFeedName = "official"

// defaultFeedLocation is the registry a default configuration points at.
const defaultFeedLocation = "https://registry.feedworks.dev/api"

// FeedConfig describes one named feed in the configuration file.
type FeedConfig struct {
	// Name is the unique identifier for this feed.
	Name string `yaml:"name"`

	// Location is the feed URL or directory path.
	Location string `yaml:"location"`

	// CredentialKey optionally names a keyring entry holding the feed's
	// access token.
	CredentialKey string `yaml:"credentialKey,omitempty"`
}

// Descriptor converts the persisted feed entry to its runtime descriptor.
func (f FeedConfig) Descriptor() sources.FeedDescriptor {
	return sources.FeedDescriptor{
		Name:          f.Name,
		Location:      f.Location,
		CredentialKey: f.CredentialKey,
	}
}

// Config represents the persisted settings. It is created by the Store,
// mutated only through its setters, and replaced wholesale on reload.
type Config struct {
	// StoragePath is the absolute directory packages are unpacked into.
	StoragePath string `yaml:"storagePath"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// InstallFromCache allows installs to be satisfied from the local
	// cache. It is force-cleared whenever command-line overrides supply
	// feeds, so a stale cache cannot mask the override's intent.
	InstallFromCache bool `yaml:"installFromCache"`

	// Feeds is the ordered list of configured feeds.
	Feeds []FeedConfig `yaml:"feeds"`

	// ActiveFeed designates which feed governs queries when no override
	// applies. Empty means the first configured feed.
	ActiveFeed string `yaml:"activeFeed,omitempty"`
}

// NewDefault synthesizes the documented default configuration for a
// configuration directory: the official registry as the single active feed,
// verbose logging off, cache installs off, packages stored under the
// configuration directory.
func NewDefault(dir string) *Config {
	return &Config{
		StoragePath:      filepath.Join(dir, "packages"),
		InstallFromCache: false,
		Verbose:          false,
		Feeds: []FeedConfig{
			{Name: defaultFeedName, Location: defaultFeedLocation},
		},
		ActiveFeed: defaultFeedName,
	}
}

// Validate performs validation on the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	names := make(map[string]bool)
	for i, feed := range c.Feeds {
		if feed.Name == "" {
			return fmt.Errorf("feed[%d]: name is required", i)
		}
		if names[feed.Name] {
			return fmt.Errorf("feed[%d]: duplicate feed name '%s'", i, feed.Name)
		}
		names[feed.Name] = true

		if feed.Location == "" {
			return fmt.Errorf("feed[%d] (%s): location is required", i, feed.Name)
		}
	}

	if c.ActiveFeed != "" && !names[c.ActiveFeed] {
		return fmt.Errorf("active feed '%s' is not a configured feed", c.ActiveFeed)
	}

	return nil
}

// ActiveDescriptor returns the designated active feed's descriptor. When no
// designation is set the first configured feed is used.
func (c *Config) ActiveDescriptor() (sources.FeedDescriptor, error) {
	if len(c.Feeds) == 0 {
		return sources.FeedDescriptor{}, fmt.Errorf("no feeds are configured")
	}

	if c.ActiveFeed == "" {
		return c.Feeds[0].Descriptor(), nil
	}

	for _, feed := range c.Feeds {
		if feed.Name == c.ActiveFeed {
			return feed.Descriptor(), nil
		}
	}
	return sources.FeedDescriptor{}, fmt.Errorf("active feed '%s' is not a configured feed", c.ActiveFeed)
}

// SetActiveFeed designates the named feed as active.
func (c *Config) SetActiveFeed(name string) error {
	for _, feed := range c.Feeds {
		if feed.Name == name {
			c.ActiveFeed = name
			return nil
		}
	}
	return fmt.Errorf("feed '%s' is not a configured feed", name)
}

// SetInstallFromCache sets the install-from-cache flag.
func (c *Config) SetInstallFromCache(enabled bool) {
	c.InstallFromCache = enabled
}

// SetStoragePath sets the package storage directory.
func (c *Config) SetStoragePath(path string) {
	c.StoragePath = path
}
