package driving

import (
	"context"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// ExportService writes comparison results to the configured outputs.
type ExportService interface {
	// Export writes c to every output enabled in out and returns the
	// locations written.
	Export(ctx context.Context, c *domain.Comparison, out domain.OutputSettings) ([]string, error)
}

// RunService inspects results databases written by ExportService.
type RunService interface {
	// List returns the runs stored in the database at dbPath.
	List(ctx context.Context, dbPath string) ([]domain.RunSummary, error)

	// Get returns one stored run.
	Get(ctx context.Context, dbPath, id string) (*domain.RunDetail, error)
}
