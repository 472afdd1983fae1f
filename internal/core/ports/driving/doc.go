// Package driving defines the interfaces the CLI and the MCP server call
// into: analysis, settings, exports and stored runs.
//
// Implementations live in internal/core/services.
package driving
