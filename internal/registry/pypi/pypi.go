// Package pypi implements the PackageProvider interfaces against the public
// PyPI registry JSON API.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/pypulse/pypulse/internal/cache"
	"github.com/pypulse/pypulse/internal/errors"
	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/rank"
	"github.com/pypulse/pypulse/internal/registry/options"
	"github.com/pypulse/pypulse/internal/scoring"
)

const (
	registryNamePyPI = "pypi"

	// simpleContentType selects the PEP 691 JSON rendering of the simple index.
	simpleContentType = "application/vnd.pypi.simple.v1+json"

	// minSimilarity is the score below which candidate names are excluded from search results.
	minSimilarity = 0.2

	// enrichConcurrency bounds the parallel project fetches used to attach
	// summaries and versions to search results.
	enrichConcurrency = 4

	// recentReleaseCount limits how many flattened releases are echoed back in a Detail.
	recentReleaseCount = 10

	cacheKeyIndex     = "simple-index"
	cacheKeyProjectFm = "project/%s"
)

// Registry implements the PackageProvider interface for the PyPI JSON API.
// NewRegistry should be used to create instances of Registry.
type Registry struct {
	baseURL   string
	client    *http.Client
	userAgent string
	now       func() time.Time
	logger    hclog.Logger

	// index caches the full simple-index project name list.
	index *cache.Cache[[]string]

	// projects caches per-package project documents.
	projects *cache.Cache[projectResponse]
}

// NewRegistry creates a new PyPI registry client.
func NewRegistry(logger hclog.Logger, opts ...Option) (*Registry, error) {
	opt, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	l := logger.Named(registryNamePyPI)

	index, err := cache.NewCache[[]string](l, opt.cacheOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create index cache: %w", err)
	}
	projects, err := cache.NewCache[projectResponse](l, opt.cacheOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create project cache: %w", err)
	}

	return &Registry{
		baseURL:   opt.baseURL,
		client:    opt.client,
		userAgent: opt.userAgent,
		now:       opt.now,
		logger:    l,
		index:     index,
		projects:  projects,
	}, nil
}

func (r *Registry) ID() string {
	return registryNamePyPI
}

// Search implements the PackageSearcher interface for Registry.
// It ranks the registry's project names against the query using the
// similarity scorer and returns the top results, enriched with the summary
// and latest version of each package where available.
func (r *Registry) Search(
	ctx context.Context,
	query string,
	opt ...options.SearchOption,
) ([]packages.Package, error) {
	query = rank.Normalize(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", errors.ErrBadRequest)
	}

	opts, err := options.NewSearchOptions(opt...)
	if err != nil {
		return nil, err
	}

	names, err := r.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]packages.Package, 0, opts.Limit)
	for _, name := range names {
		score := rank.Score(query, name)
		if score < minSimilarity {
			continue
		}
		results = append(results, packages.Package{
			Name:       name,
			Similarity: score,
			Source:     registryNamePyPI,
		})
	}

	slices.SortFunc(results, func(a, b packages.Package) int {
		if a.Similarity != b.Similarity {
			if a.Similarity > b.Similarity {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	r.enrich(ctx, results)

	return results, nil
}

// enrich attaches summary and version information to search results via
// bounded-concurrency project fetches. Enrichment is best-effort: a failed
// fetch degrades that entry to a name-only result rather than failing the search.
func (r *Registry) enrich(ctx context.Context, results []packages.Package) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i := range results {
		g.Go(func() error {
			resp, err := r.fetchProject(ctx, results[i].Name)
			if err != nil {
				r.logger.Debug("Skipping search result enrichment", "package", results[i].Name, "error", err)
				return nil
			}
			results[i].Version = resp.Info.Version
			results[i].Summary = resp.Info.Summary
			return nil
		})
	}

	// Goroutines never return errors, enrichment is best-effort.
	_ = g.Wait()
}

// Resolve implements the PackageResolver interface for Registry.
// It retrieves the project document for the named package, flattens its
// release history and attaches the derived maintenance information.
func (r *Registry) Resolve(
	ctx context.Context,
	name string,
	opt ...options.ResolveOption,
) (packages.Detail, error) {
	name = rank.Normalize(name)
	if name == "" {
		return packages.Detail{}, fmt.Errorf("%w: name must not be empty", errors.ErrBadRequest)
	}

	opts, err := options.NewResolveOptions(opt...)
	if err != nil {
		return packages.Detail{}, err
	}

	r.logger.Debug("Resolving package", "name", name, "version", opts.Version)

	resp, err := r.fetchProject(ctx, name)
	if err != nil {
		return packages.Detail{}, err
	}

	version := resp.Info.Version
	if opts.Version != "" {
		if _, ok := resp.Releases[opts.Version]; !ok {
			return packages.Detail{}, fmt.Errorf("%w: %s %s", errors.ErrVersionNotFound, name, opts.Version)
		}
		version = opts.Version
	}

	releases := flattenReleases(resp.Releases)
	maintenance := scoring.Evaluate(releases, r.now())

	recent := releases
	if len(recent) > recentReleaseCount {
		recent = recent[:recentReleaseCount]
	}

	return packages.Detail{
		Name:           resp.Info.Name,
		Version:        version,
		Summary:        resp.Info.Summary,
		License:        extractLicense(resp.Info),
		Author:         resp.Info.Author,
		Homepage:       extractHomepage(resp.Info.ProjectURLs, resp.Info.HomePage),
		Repository:     extractRepoURL(resp.Info.ProjectURLs, resp.Info.HomePage),
		RequiresPython: resp.Info.RequiresPython,
		Keywords:       parseKeywords(resp.Info.Keywords),
		ProjectURLs:    resp.Info.ProjectURLs,
		ReleaseCount:   len(releases),
		RecentReleases: recent,
		Maintenance:    maintenance,
		Source:         registryNamePyPI,
	}, nil
}

// Ping probes the registry for reachability. Used by health tracking.
func (r *Registry) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.baseURL+"/simple/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrRegistryUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", errors.ErrRegistryUnavailable, resp.StatusCode)
	}
	return nil
}

// projectNames returns all project names known to the registry, from cache when fresh.
func (r *Registry) projectNames(ctx context.Context) ([]string, error) {
	if names, ok := r.index.Get(cacheKeyIndex); ok {
		return names, nil
	}

	var idx simpleIndex
	if err := r.getJSON(ctx, r.baseURL+"/simple/", simpleContentType, &idx); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(idx.Projects))
	for _, p := range idx.Projects {
		names = append(names, p.Name)
	}

	r.index.Set(cacheKeyIndex, names)
	r.logger.Debug("Refreshed simple index", "projects", len(names))

	return names, nil
}

// fetchProject returns the project document for name, from cache when fresh.
func (r *Registry) fetchProject(ctx context.Context, name string) (projectResponse, error) {
	key := fmt.Sprintf(cacheKeyProjectFm, name)
	if resp, ok := r.projects.Get(key); ok {
		return resp, nil
	}

	endpoint := fmt.Sprintf("%s/pypi/%s/json", r.baseURL, url.PathEscape(name))

	var resp projectResponse
	if err := r.getJSON(ctx, endpoint, "application/json", &resp); err != nil {
		return projectResponse{}, err
	}

	r.projects.Set(key, resp)

	return resp, nil
}

// getJSON performs a GET against the registry and decodes the JSON response,
// mapping failures onto the domain error taxonomy.
func (r *Registry) getJSON(ctx context.Context, endpoint, accept string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for '%s': %w", endpoint, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetching '%s': %v", errors.ErrRegistryUnavailable, endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errors.ErrPackageNotFound, endpoint)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: received status %d from '%s'", errors.ErrRegistryUnavailable, resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding response from '%s': %v", errors.ErrRegistryResponse, endpoint, err)
	}

	return nil
}
