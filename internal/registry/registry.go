package registry

import (
	"context"

	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/registry/options"
)

// PackageSearcher defines the interface for searching for packages in a registry.
type PackageSearcher interface {
	// Search finds packages whose names are similar to the query string,
	// ordered by descending similarity.
	// The query should ideally be a package name or fragment (e.g. "requests").
	Search(ctx context.Context, query string, opt ...options.SearchOption) ([]packages.Package, error)
}

// PackageResolver defines the interface for retrieving the full details of a package from a registry.
type PackageResolver interface {
	// Resolve retrieves a package by name, including its flattened release
	// history and derived maintenance information.
	// If a version is not supplied as an option, the latest version is reported.
	Resolve(ctx context.Context, name string, opt ...options.ResolveOption) (packages.Detail, error)
}

// PackageProvider defines the common interface for any type that can provide
// package search and retrieval capabilities.
type PackageProvider interface {
	PackageSearcher
	PackageResolver

	// ID returns the ID of this PackageProvider.
	ID() string
}

// Builder constructs a configured PackageProvider.
type Builder interface {
	Build() (PackageProvider, error)
}
