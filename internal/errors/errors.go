// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints
// and from MCP tool handlers.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// This typically results from validation failures or incorrect request parameters.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrPackageNotFound indicates that the requested package does not exist in the upstream registry.
	// Recommended to map to HTTP 404 Not Found.
	ErrPackageNotFound = errors.New("package not found")

	// ErrVersionNotFound indicates that the package exists but the requested version does not.
	// Recommended to map to HTTP 404 Not Found.
	ErrVersionNotFound = errors.New("version not found")

	// ErrRegistryUnavailable indicates a communication failure with the upstream registry,
	// including timeouts, connection errors and non-OK HTTP statuses other than 404.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrRegistryUnavailable = errors.New("registry unavailable")

	// ErrRegistryResponse indicates the upstream registry responded with a payload that could not be decoded.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrRegistryResponse = errors.New("invalid registry response")

	// ErrHealthNotTracked indicates that health monitoring has not produced a status yet.
	// Recommended to map to HTTP 404 Not Found.
	ErrHealthNotTracked = errors.New("registry health is not being tracked")
)
