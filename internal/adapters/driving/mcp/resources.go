package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for morpho resources.
	uriScheme = "morpho://"
)

// FormatDescription documents the corpus file format.
const FormatDescription = `morpho corpus format

One construction per line, written as prefix_suffix, for example:

  re_do
  un_tie
  re_make

Rules:
  - each record contains exactly one underscore
  - prefix and suffix must both be non-empty
  - blank lines are ignored, Windows line endings are accepted
  - an underscore inside a prefix or suffix is not supported

A record that breaks these rules stops the analysis with its line number.`

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "format",
		Name:        "format",
		Description: "Description of the prefix_suffix corpus file format",
		MIMEType:    "text/plain",
	}, s.handleFormatResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current resampling and output settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleFormatResource returns the corpus format description.
func (s *Server) handleFormatResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     FormatDescription,
		}},
	}, nil
}

// handleSettingsResource returns the effective settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.settings(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
