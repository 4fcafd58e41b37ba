// Package resolver decides which feed (or composite of feeds) governs all
// package queries for the current session, merging persisted configuration
// with transient command-line overrides.
package resolver

import (
	"fmt"

	"github.com/feedworks/feedctl/internal/config"
	"github.com/feedworks/feedctl/internal/logger"
	"github.com/feedworks/feedctl/internal/override"
	"github.com/feedworks/feedctl/internal/sources"
)

// ConfigStore is the slice of the configuration store the resolver needs.
type ConfigStore interface {
	// LoadOrCreate returns the persisted configuration, creating the
	// default one if no file exists yet.
	LoadOrCreate() (*config.Config, error)
}

// PluginNotifier is told to reinitialize feed-aware plugins after the
// resolved feed changes, because they may hold state derived from the
// previously active feed. Calls are fire-and-forget.
type PluginNotifier interface {
	ReloadPlugins()
}

// NoopNotifier is a PluginNotifier that does nothing.
type NoopNotifier struct{}

// ReloadPlugins implements PluginNotifier.
func (NoopNotifier) ReloadPlugins() {}

// ResolvedSource is the outcome of a resolution: the feed descriptors that
// were selected and the PackageSource serving them. It is owned exclusively
// by the Resolver and recomputed only on explicit reload.
type ResolvedSource struct {
	descriptors []sources.FeedDescriptor
	source      sources.PackageSource
}

// Descriptors returns the selected feed descriptors in precedence order.
func (r *ResolvedSource) Descriptors() []sources.FeedDescriptor {
	return r.descriptors
}

// Source returns the PackageSource queries are delegated to.
func (r *ResolvedSource) Source() sources.PackageSource {
	return r.source
}

// resolverState models the lazy resolution lifecycle explicitly.
type resolverState int

const (
	stateUnresolved resolverState = iota
	stateResolved
)

// Resolver combines the configuration store's output with command-line
// overrides into one active feed, caching the result until Invalidate is
// called. It is owned by the process's single coordinating goroutine;
// concurrent Resolve or Invalidate calls are out of contract.
type Resolver struct {
	store   ConfigStore
	factory sources.SourceFactory
	plugins PluginNotifier
	args    []string

	state   resolverState
	current *ResolvedSource
	cfg     *config.Config
}

// New creates a Resolver. args are the process invocation arguments scanned
// for feed overrides at resolution time.
func New(store ConfigStore, factory sources.SourceFactory, plugins PluginNotifier, args []string) *Resolver {
	if plugins == nil {
		plugins = NoopNotifier{}
	}
	return &Resolver{
		store:   store,
		factory: factory,
		plugins: plugins,
		args:    args,
		state:   stateUnresolved,
	}
}

// Active returns the resolved feed, resolving on first access and returning
// the cached value thereafter. This is the stable fast path for repeated
// queries within a session.
func (r *Resolver) Active() (sources.PackageSource, error) {
	if r.state == stateResolved {
		return r.current.source, nil
	}

	cfg, err := r.store.LoadOrCreate()
	if err != nil {
		return nil, err
	}

	resolved, err := r.Resolve(cfg, override.Scan(r.args))
	if err != nil {
		return nil, err
	}
	return resolved.source, nil
}

// Config returns the configuration backing the current resolution,
// resolving first if needed.
func (r *Resolver) Config() (*config.Config, error) {
	if r.state != stateResolved {
		if _, err := r.Active(); err != nil {
			return nil, err
		}
	}
	return r.cfg, nil
}

// Invalidate discards the cached resolution. The next query resolves
// afresh.
func (r *Resolver) Invalidate() {
	r.state = stateUnresolved
	r.current = nil
	r.cfg = nil
}

// Resolve computes and caches the active feed. The decision rule, in order:
// exactly one override selects that feed alone; two or more select a
// composite over all of them in scan order; no overrides select the
// configuration's designated feed. Whenever overrides are present the
// configuration's install-from-cache flag is forced off. Plugins are
// notified only when the resolved feed actually changed.
func (r *Resolver) Resolve(cfg *config.Config, overrides []sources.FeedDescriptor) (*ResolvedSource, error) {
	selected, err := r.selectDescriptors(cfg, overrides)
	if err != nil {
		return nil, err
	}

	feeds := make([]sources.PackageSource, 0, len(selected))
	for _, descriptor := range selected {
		feed, err := r.factory.CreateSource(descriptor)
		if err != nil {
			return nil, fmt.Errorf("failed to create feed %s: %w", descriptor.Name, err)
		}
		feeds = append(feeds, feed)
	}

	var source sources.PackageSource
	if len(feeds) == 1 {
		source = feeds[0]
	} else {
		source = sources.NewCompositeSource(feeds...)
	}

	changed := r.current == nil || !descriptorsEqual(r.current.descriptors, selected)

	r.current = &ResolvedSource{descriptors: selected, source: source}
	r.cfg = cfg
	r.state = stateResolved

	if changed {
		logger.Debugf("Active feed changed, reloading plugins")
		r.plugins.ReloadPlugins()
	}

	return r.current, nil
}

// selectDescriptors applies the precedence rule and its side effects.
func (r *Resolver) selectDescriptors(cfg *config.Config, overrides []sources.FeedDescriptor) ([]sources.FeedDescriptor, error) {
	if len(overrides) > 0 {
		cfg.SetInstallFromCache(false)
		logger.Infof("Using %d feed override(s) from command line", len(overrides))
		return overrides, nil
	}

	active, err := cfg.ActiveDescriptor()
	if err != nil {
		return nil, err
	}
	return []sources.FeedDescriptor{active}, nil
}

func descriptorsEqual(a, b []sources.FeedDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
