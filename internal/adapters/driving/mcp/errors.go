// Package mcp provides an MCP (Model Context Protocol) server adapter for morpho.
// It lets AI assistants run productivity comparisons on local corpus files.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrMissingRunService is returned by run tools when no run service is configured.
var ErrMissingRunService = errors.New("mcp: run service is not configured")
