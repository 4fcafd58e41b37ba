package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/feedworks/feedctl/internal/versions"
)

// localSource is a feed backed by a directory of package manifests. Each
// manifest is a YAML file describing one package version.
type localSource struct {
	descriptor FeedDescriptor
}

var _ PackageSource = (*localSource)(nil)

// NewLocalSource creates a feed over the directory named by the descriptor's
// location.
func NewLocalSource(descriptor FeedDescriptor) PackageSource {
	return &localSource{descriptor: descriptor}
}

// Name implements PackageSource.Name.
func (s *localSource) Name() string {
	return s.descriptor.Name
}

// Search implements PackageSource.Search.
func (s *localSource) Search(ctx context.Context, query SearchQuery) ([]Package, error) {
	packages, err := s.readManifests(ctx)
	if err != nil {
		return nil, err
	}

	latest := latestPerPackage(packages, query.IncludePrerelease)

	var matched []Package
	term := strings.ToLower(query.Term)
	for _, pkg := range latest {
		if term != "" &&
			!strings.Contains(strings.ToLower(pkg.ID), term) &&
			!strings.Contains(strings.ToLower(pkg.Description), term) {
			continue
		}
		matched = append(matched, pkg)
	}

	return paginate(matched, query.Skip, query.Take), nil
}

// GetUpdates implements PackageSource.GetUpdates.
func (s *localSource) GetUpdates(installed []Package, query UpdateQuery) ([]Package, error) {
	packages, err := s.readManifests(context.Background())
	if err != nil {
		return nil, err
	}

	byID := make(map[string][]string)
	for _, pkg := range packages {
		byID[pkg.ID] = append(byID[pkg.ID], pkg.Version)
	}

	var updates []Package
	for _, current := range installed {
		latest := versions.Latest(byID[current.ID], query.IncludePrerelease)
		if latest == "" || !versions.IsNewer(latest, current.Version) {
			continue
		}
		updates = append(updates, findPackage(packages, current.ID, latest))
	}
	return updates, nil
}

// GetPackage implements PackageSource.GetPackage. Prerelease versions are
// considered so that a feed carrying only prereleases still resolves.
func (s *localSource) GetPackage(identifier string) (*Package, error) {
	packages, err := s.readManifests(context.Background())
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, pkg := range packages {
		if pkg.ID == identifier {
			candidates = append(candidates, pkg.Version)
		}
	}
	latest := versions.Latest(candidates, true)
	if latest == "" {
		return nil, ErrPackageNotFound
	}

	pkg := findPackage(packages, identifier, latest)
	return &pkg, nil
}

// readManifests loads every package manifest under the feed directory.
func (s *localSource) readManifests(ctx context.Context) ([]Package, error) {
	entries, err := os.ReadDir(s.descriptor.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed directory %s: %w", s.descriptor.Location, err)
	}

	var packages []Package
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !isManifest(entry.Name()) {
			continue
		}

		path := filepath.Join(s.descriptor.Location, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
		}

		var pkg Package
		if err := yaml.Unmarshal(data, &pkg); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
		if pkg.ID == "" {
			return nil, fmt.Errorf("manifest %s: id is required", path)
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func isManifest(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// latestPerPackage reduces a version-per-manifest list to one entry per
// package ID, sorted by ID for stable output.
func latestPerPackage(packages []Package, includePrerelease bool) []Package {
	byID := make(map[string][]string)
	for _, pkg := range packages {
		byID[pkg.ID] = append(byID[pkg.ID], pkg.Version)
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []Package
	for _, id := range ids {
		latest := versions.Latest(byID[id], includePrerelease)
		if latest == "" {
			continue
		}
		result = append(result, findPackage(packages, id, latest))
	}
	return result
}

func findPackage(packages []Package, id, version string) Package {
	for _, pkg := range packages {
		if pkg.ID == id && pkg.Version == version {
			return pkg
		}
	}
	return Package{ID: id, Version: version}
}

func paginate(packages []Package, skip, take int) []Package {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(packages) {
		return nil
	}
	packages = packages[skip:]
	if take > 0 && take < len(packages) {
		packages = packages[:take]
	}
	return packages
}
