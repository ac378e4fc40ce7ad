// Package mcp provides an MCP (Model Context Protocol) server adapter for mushaf.
// It lets AI assistants read pages, verses and similar verses from the
// published corpus snapshot.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
