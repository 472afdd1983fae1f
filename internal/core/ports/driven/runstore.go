package driven

import (
	"context"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// RunStore reads comparisons back from a results database.
type RunStore interface {
	// ListRuns returns all stored runs, newest first.
	ListRuns(ctx context.Context) ([]domain.RunSummary, error)

	// GetRun returns a stored run with its summary table.
	// Returns domain.ErrNotFound if no run has the ID.
	GetRun(ctx context.Context, id string) (*domain.RunDetail, error)

	// Close releases the database.
	Close() error
}

// RunStoreOpener opens the results database at path.
type RunStoreOpener func(path string) (RunStore, error)
