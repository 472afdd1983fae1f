package driven

import (
	"context"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// Exporter writes the results of a comparison somewhere durable.
type Exporter interface {
	// Name identifies the exporter in logs and errors.
	Name() string

	// Export writes the comparison. It returns the locations written.
	Export(ctx context.Context, c *domain.Comparison) ([]string, error)
}

// ExporterFactory builds the exporters selected by output settings.
type ExporterFactory interface {
	// Create returns the enabled exporters. The returned close function
	// releases any resources they hold and must be called once exporting
	// is done, even when no exporters are returned.
	Create(out domain.OutputSettings) ([]Exporter, func() error, error)
}
