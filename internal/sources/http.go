package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/feedworks/feedctl/internal/versions"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxFetchAttempts   = 3
)

// HTTPError represents a non-2xx response from a registry endpoint.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

// Error returns the error message.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// httpSource is a feed backed by a JSON registry API. Endpoints used:
//   - GET {base}/v1/search?q=&prerelease=&take=&skip=  -> []Package
//   - GET {base}/v1/packages/{id}                      -> Package
//   - GET {base}/v1/packages/{id}/versions             -> []string
type httpSource struct {
	descriptor FeedDescriptor
	baseURL    string
	token      string
	client     *http.Client
}

var _ PackageSource = (*httpSource)(nil)

// NewHTTPSource creates a feed over the registry endpoint named by the
// descriptor's location. token is the optional credential resolved for the
// feed; empty means anonymous access.
func NewHTTPSource(descriptor FeedDescriptor, token string) PackageSource {
	return &httpSource{
		descriptor: descriptor,
		baseURL:    strings.TrimRight(descriptor.Location, "/"),
		token:      token,
		client:     &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Name implements PackageSource.Name.
func (s *httpSource) Name() string {
	return s.descriptor.Name
}

// Search implements PackageSource.Search.
func (s *httpSource) Search(ctx context.Context, query SearchQuery) ([]Package, error) {
	params := url.Values{}
	if query.Term != "" {
		params.Set("q", query.Term)
	}
	if query.IncludePrerelease {
		params.Set("prerelease", "true")
	}
	params.Set("take", strconv.Itoa(query.Take))
	params.Set("skip", strconv.Itoa(query.Skip))

	data, err := s.get(ctx, fmt.Sprintf("%s/v1/search?%s", s.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var results []Package
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse search response from %s: %w", s.descriptor.Name, err)
	}
	return results, nil
}

// GetUpdates implements PackageSource.GetUpdates.
func (s *httpSource) GetUpdates(installed []Package, query UpdateQuery) ([]Package, error) {
	ctx := context.Background()

	var updates []Package
	for _, current := range installed {
		available, err := s.listVersions(ctx, current.ID)
		if err != nil {
			return nil, err
		}
		latest := versions.Latest(available, query.IncludePrerelease)
		if latest == "" || !versions.IsNewer(latest, current.Version) {
			continue
		}
		updates = append(updates, Package{ID: current.ID, Version: latest})
	}
	return updates, nil
}

// GetPackage implements PackageSource.GetPackage.
func (s *httpSource) GetPackage(identifier string) (*Package, error) {
	data, err := s.get(context.Background(), fmt.Sprintf("%s/v1/packages/%s", s.baseURL, url.PathEscape(identifier)))
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package response from %s: %w", s.descriptor.Name, err)
	}
	return &pkg, nil
}

// listVersions fetches all known versions of a package. Unknown packages
// yield an empty list rather than an error.
func (s *httpSource) listVersions(ctx context.Context, identifier string) ([]string, error) {
	data, err := s.get(ctx, fmt.Sprintf("%s/v1/packages/%s/versions", s.baseURL, url.PathEscape(identifier)))
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	var available []string
	if err := json.Unmarshal(data, &available); err != nil {
		return nil, fmt.Errorf("failed to parse versions response from %s: %w", s.descriptor.Name, err)
	}
	return available, nil
}

// get performs a GET with retry on transient failures. Client errors (4xx)
// are permanent and returned immediately.
func (s *httpSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "feedctl")
		if s.token != "" {
			req.Header.Set("Authorization", "Bearer "+s.token)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			httpErr := &HTTPError{StatusCode: resp.StatusCode, URL: rawURL, Message: http.StatusText(resp.StatusCode)}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, backoff.Permanent(httpErr)
			}
			return nil, httpErr
		}
		return body, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxFetchAttempts))
}
