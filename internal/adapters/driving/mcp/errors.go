// Package mcp provides an MCP (Model Context Protocol) server adapter for casegen.
// It lets AI assistants ingest documents and request grounded use-cases.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrServiceUnavailable is returned by tools whose backing service is not wired.
var ErrServiceUnavailable = errors.New("mcp: service not available")
