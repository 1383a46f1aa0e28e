package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/registry"
	"github.com/pypulse/pypulse/internal/registry/options"
)

// PackageSearchRequest represents the incoming API request for searching the upstream registry.
type PackageSearchRequest struct {
	Query string `doc:"Package name or name fragment to search for" example:"requests" query:"query" required:"true"`
	Limit int    `doc:"Maximum number of results to return"         example:"10"       query:"limit"`
}

// PackageSearchResponse represents the wrapped API response for search results.
type PackageSearchResponse struct {
	Body struct {
		Results []packages.Package `doc:"Search results ordered by descending similarity" json:"results"`
	}
}

// PackageDetailRequest represents the incoming API request for package metadata.
type PackageDetailRequest struct {
	Name    string `doc:"Exact name of the package"                             example:"requests" path:"name"`
	Version string `doc:"Optional exact version, defaults to latest"            example:"2.32.0"   query:"version"`
}

// PackageDetailResponse represents the wrapped API response for package metadata.
type PackageDetailResponse struct {
	Body packages.Detail
}

// RegisterPackageRoutes sets up package-related API endpoint routes.
func RegisterPackageRoutes(routerAPI huma.API, provider registry.PackageProvider, apiPathPrefix string) {
	packagesAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Packages"}

	// Add route at the root of the group (no path specified).
	huma.Register(
		packagesAPI,
		huma.Operation{
			OperationID: "searchPackages",
			Method:      http.MethodGet,
			Summary:     "Search the upstream registry for packages",
			Tags:        tags,
		},
		func(ctx context.Context, input *PackageSearchRequest) (*PackageSearchResponse, error) {
			return handlePackageSearch(ctx, provider, input)
		},
	)

	huma.Register(
		packagesAPI,
		huma.Operation{
			OperationID: "getPackageDetail",
			Method:      http.MethodGet,
			Path:        "/{name}",
			Summary:     "Get package metadata and maintenance score",
			Tags:        tags,
		},
		func(ctx context.Context, input *PackageDetailRequest) (*PackageDetailResponse, error) {
			return handlePackageDetail(ctx, provider, input)
		},
	)
}

// handlePackageSearch returns registry packages matching the query, ordered by descending similarity.
func handlePackageSearch(
	ctx context.Context,
	provider registry.PackageProvider,
	input *PackageSearchRequest,
) (*PackageSearchResponse, error) {
	var opts []options.SearchOption
	if input.Limit != 0 {
		opts = append(opts, options.WithSearchLimit(input.Limit))
	}

	results, err := provider.Search(ctx, input.Query, opts...)
	if err != nil {
		return nil, err
	}

	resp := &PackageSearchResponse{}
	resp.Body.Results = results

	return resp, nil
}

// handlePackageDetail returns full metadata for the named package.
func handlePackageDetail(
	ctx context.Context,
	provider registry.PackageProvider,
	input *PackageDetailRequest,
) (*PackageDetailResponse, error) {
	var opts []options.ResolveOption
	if input.Version != "" {
		opts = append(opts, options.WithResolveVersion(input.Version))
	}

	detail, err := provider.Resolve(ctx, input.Name, opts...)
	if err != nil {
		return nil, err
	}

	resp := &PackageDetailResponse{}
	resp.Body = detail

	return resp, nil
}
