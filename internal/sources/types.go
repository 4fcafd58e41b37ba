// Package sources defines the package feed capability and its
// implementations: local directory feeds, HTTP registry feeds, and a
// composite feed that fans queries out across several underlying feeds.
package sources

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks -source=types.go PackageSource

// ErrPackageNotFound is returned by GetPackage when the identifier does not
// exist in the feed. Absence of a specific package is an expected outcome,
// not a failure of the feed itself.
var ErrPackageNotFound = errors.New("package not found")

// Package is the metadata a feed returns for a queryable package.
type Package struct {
	ID          string `json:"id" yaml:"id"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
}

// SearchQuery carries the parameters of a feed search.
type SearchQuery struct {
	Term              string
	IncludePrerelease bool
	Take              int
	Skip              int
}

// DefaultSearchQuery returns a SearchQuery with the documented defaults:
// empty term, stable releases only, first page of 15 results.
func DefaultSearchQuery() SearchQuery {
	return SearchQuery{Take: 15}
}

// UpdateQuery carries the parameters of an update listing.
type UpdateQuery struct {
	IncludePrerelease  bool
	TargetFrameworks   string
	VersionConstraints string
}

// PackageSource is a queryable package feed.
type PackageSource interface {
	// Name returns the feed's configured name.
	Name() string

	// Search returns packages matching the query. Cancellation of ctx is
	// observed by the feed implementation.
	Search(ctx context.Context, query SearchQuery) ([]Package, error)

	// GetUpdates returns, for each installed package that has a newer
	// version available in the feed, the package at that newer version.
	GetUpdates(installed []Package, query UpdateQuery) ([]Package, error)

	// GetPackage returns the latest version of the identified package, or
	// ErrPackageNotFound when the feed does not carry it.
	GetPackage(identifier string) (*Package, error)
}

// FeedDescriptor identifies one configured feed: a unique name, a location
// (URL or directory path), and an optional credential reference. Descriptors
// are immutable once constructed.
type FeedDescriptor struct {
	Name          string
	Location      string
	CredentialKey string
}

// NewFeedDescriptor creates a descriptor for a named feed location.
func NewFeedDescriptor(name, location string) FeedDescriptor {
	return FeedDescriptor{Name: name, Location: location}
}

// String implements fmt.Stringer for log output.
func (d FeedDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Location)
}
