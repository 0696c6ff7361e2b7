// Package mcp provides an MCP (Model Context Protocol) server adapter for receipta.
// It lets AI assistants browse a user's products and price histories.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
