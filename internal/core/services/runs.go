package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
	"github.com/custodia-labs/morpho/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService reads runs back from exported results databases.
type RunService struct {
	open driven.RunStoreOpener
}

// NewRunService creates a new run service.
func NewRunService(open driven.RunStoreOpener) *RunService {
	return &RunService{open: open}
}

// List returns the runs stored at dbPath.
func (s *RunService) List(ctx context.Context, dbPath string) ([]domain.RunSummary, error) {
	store, err := s.openStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns one stored run.
func (s *RunService) Get(ctx context.Context, dbPath, id string) (*domain.RunDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}

	store, err := s.openStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

func (s *RunService) openStore(dbPath string) (driven.RunStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: results database path is required", domain.ErrInvalidInput)
	}
	if s.open == nil {
		return nil, fmt.Errorf("open results database: run store not configured")
	}
	store, err := s.open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	return store, nil
}
