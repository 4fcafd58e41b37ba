// Package query is the entry point consumers use to search feeds, list
// updates, and fetch specific packages. Every operation delegates to
// whatever the resolver currently designates as the active feed, resolving
// lazily on first use.
package query

import (
	"context"

	"github.com/feedworks/feedctl/internal/resolver"
	"github.com/feedworks/feedctl/internal/sources"
)

// Facade exposes the three pass-through query operations. None of them
// mutate resolver state; they only read the cached active feed. Underlying
// feed errors propagate unmodified: no retries or timeouts are added here.
type Facade struct {
	resolver *resolver.Resolver
}

// New creates a Facade over the given resolver.
func New(r *resolver.Resolver) *Facade {
	return &Facade{resolver: r}
}

// Search returns packages matching the query from the active feed.
// Cancellation of ctx is observed by the underlying feed, not
// re-implemented here.
func (f *Facade) Search(ctx context.Context, query sources.SearchQuery) ([]sources.Package, error) {
	active, err := f.resolver.Active()
	if err != nil {
		return nil, err
	}
	return active.Search(ctx, query)
}

// GetUpdates returns, for each installed package, the newer version the
// active feed offers, if any.
func (f *Facade) GetUpdates(installed []sources.Package, query sources.UpdateQuery) ([]sources.Package, error) {
	active, err := f.resolver.Active()
	if err != nil {
		return nil, err
	}
	return active.GetUpdates(installed, query)
}

// GetSpecificPackage returns the identified package from the active feed.
// Absence is reported as sources.ErrPackageNotFound, not treated as a feed
// failure.
func (f *Facade) GetSpecificPackage(identifier string) (*sources.Package, error) {
	active, err := f.resolver.Active()
	if err != nil {
		return nil, err
	}
	return active.GetPackage(identifier)
}
