package daemon

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pypulse/pypulse/internal/cmd"
	"github.com/pypulse/pypulse/internal/errors"
	"github.com/pypulse/pypulse/internal/registry"
	"github.com/pypulse/pypulse/internal/registry/options"
)

const (
	serverName = "pypulse"

	toolSearchPackages    = "search_packages"
	toolGetPackageDetails = "get_package_details"
)

// toolHandler implements the MCP tool handlers backed by the package registry.
type toolHandler struct {
	logger   hclog.Logger
	provider registry.PackageProvider
}

// newMCPServer creates the MCP server and registers the package tools on it.
func newMCPServer(logger hclog.Logger, provider registry.PackageProvider) *server.MCPServer {
	h := &toolHandler{
		logger:   logger.Named("tools"),
		provider: provider,
	}

	s := server.NewMCPServer(
		serverName,
		cmd.Version(),
		server.WithToolCapabilities(false),
	)

	searchTool := mcp.NewTool(
		toolSearchPackages,
		mcp.WithDescription(
			"Search the PyPI registry for packages by name similarity. "+
				"Returns matches ordered by descending similarity, with summary and latest version where available.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Package name or name fragment to search for (e.g. 'requests')."),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results to return (1-%d, default %d).",
				options.MaxSearchLimit, options.DefaultSearchLimit)),
		),
	)
	s.AddTool(searchTool, h.handleSearchPackages)

	detailsTool := mcp.NewTool(
		toolGetPackageDetails,
		mcp.WithDescription(
			"Get metadata for a PyPI package, including its release history and a maintenance "+
				"score (0-100) derived from release recency and frequency.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact package name (e.g. 'requests')."),
		),
		mcp.WithString("version",
			mcp.Description("Optional exact version to report; defaults to the latest release."),
		),
	)
	s.AddTool(detailsTool, h.handleGetPackageDetails)

	return s
}

func (h *toolHandler) handleSearchPackages(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts []options.SearchOption
	if limit := request.GetInt("limit", 0); limit != 0 {
		opts = append(opts, options.WithSearchLimit(limit))
	}

	h.logger.Debug("Tool call", "tool", toolSearchPackages, "query", query)

	results, err := h.provider.Search(ctx, query, opts...)
	if err != nil {
		return h.toolError(toolSearchPackages, err)
	}

	return toolResultJSON(struct {
		Results []any `json:"results"`
	}{anySlice(results)})
}

func (h *toolHandler) handleGetPackageDetails(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts []options.ResolveOption
	if version := request.GetString("version", ""); version != "" {
		opts = append(opts, options.WithResolveVersion(version))
	}

	h.logger.Debug("Tool call", "tool", toolGetPackageDetails, "name", name)

	detail, err := h.provider.Resolve(ctx, name, opts...)
	if err != nil {
		return h.toolError(toolGetPackageDetails, err)
	}

	return toolResultJSON(detail)
}

// toolError converts domain errors into MCP tool error results.
// Only genuinely unexpected errors are surfaced as protocol errors.
func (h *toolHandler) toolError(tool string, err error) (*mcp.CallToolResult, error) {
	switch {
	case stdErrors.Is(err, errors.ErrBadRequest),
		stdErrors.Is(err, errors.ErrPackageNotFound),
		stdErrors.Is(err, errors.ErrVersionNotFound):
		return mcp.NewToolResultError(err.Error()), nil
	case stdErrors.Is(err, errors.ErrRegistryUnavailable),
		stdErrors.Is(err, errors.ErrRegistryResponse):
		h.logger.Error("Upstream registry failure", "tool", tool, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	default:
		h.logger.Error("Unexpected error handling tool call", "tool", tool, "error", err)
		return nil, err
	}
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func anySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
