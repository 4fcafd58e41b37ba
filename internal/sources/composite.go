package sources

import (
	"context"
	"errors"
	"fmt"
)

// CompositeSource fans a single logical query out across an ordered list of
// underlying feeds and merges the results, preserving feed order.
type CompositeSource struct {
	feeds []PackageSource
}

var _ PackageSource = (*CompositeSource)(nil)

// NewCompositeSource aggregates the given feeds behind the PackageSource
// capability. Iteration order is the order given.
func NewCompositeSource(feeds ...PackageSource) *CompositeSource {
	return &CompositeSource{feeds: feeds}
}

// Feeds returns the underlying feeds in iteration order.
func (c *CompositeSource) Feeds() []PackageSource {
	return c.feeds
}

// Name implements PackageSource.Name.
func (c *CompositeSource) Name() string {
	return fmt.Sprintf("composite of %d feeds", len(c.feeds))
}

// Search implements PackageSource.Search. Results from each feed are
// appended in feed order; errors from an underlying feed propagate
// unmodified.
func (c *CompositeSource) Search(ctx context.Context, query SearchQuery) ([]Package, error) {
	var merged []Package
	for _, feed := range c.feeds {
		pkgs, err := feed.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		merged = append(merged, pkgs...)
	}
	return merged, nil
}

// GetUpdates implements PackageSource.GetUpdates. Each installed package is
// reported at most once, from the first feed that offers a newer version.
func (c *CompositeSource) GetUpdates(installed []Package, query UpdateQuery) ([]Package, error) {
	var merged []Package
	seen := make(map[string]bool)
	for _, feed := range c.feeds {
		updates, err := feed.GetUpdates(installed, query)
		if err != nil {
			return nil, err
		}
		for _, pkg := range updates {
			if seen[pkg.ID] {
				continue
			}
			seen[pkg.ID] = true
			merged = append(merged, pkg)
		}
	}
	return merged, nil
}

// GetPackage implements PackageSource.GetPackage. Feeds are consulted in
// order; the first hit wins.
func (c *CompositeSource) GetPackage(identifier string) (*Package, error) {
	for _, feed := range c.feeds {
		pkg, err := feed.GetPackage(identifier)
		if err != nil {
			if errors.Is(err, ErrPackageNotFound) {
				continue
			}
			return nil, err
		}
		return pkg, nil
	}
	return nil, ErrPackageNotFound
}
