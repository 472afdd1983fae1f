package mcp

import (
	"github.com/custodia-labs/morpho/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Analysis runs comparisons and single-corpus measurements.
	Analysis driving.AnalysisService

	// Settings supplies defaults for tool inputs. Optional.
	Settings driving.SettingsService

	// Runs reads stored comparisons. Optional.
	Runs driving.RunService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
