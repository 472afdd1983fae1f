package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
	"github.com/custodia-labs/morpho/internal/core/ports/driving"
	"github.com/custodia-labs/morpho/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService fans a comparison out to the enabled exporters.
type ExportService struct {
	factory driven.ExporterFactory
}

// NewExportService creates a new export service.
// A nil factory makes Export a no-op.
func NewExportService(factory driven.ExporterFactory) *ExportService {
	return &ExportService{factory: factory}
}

// Export writes c to every output enabled in out.
// All exporters run even when one fails; their errors are joined.
func (s *ExportService) Export(ctx context.Context, c *domain.Comparison, out domain.OutputSettings) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("export: %w: nil comparison", domain.ErrInvalidInput)
	}
	if s.factory == nil || !out.AnyEnabled() {
		return nil, nil
	}

	logger.Section("Exporting Results")
	exporters, closeFn, err := s.factory.Create(out)
	if err != nil {
		return nil, fmt.Errorf("create exporters: %w", err)
	}

	var (
		written []string
		errs    []error
	)
	for _, e := range exporters {
		paths, err := e.Export(ctx, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("export %s: %w", e.Name(), err))
			continue
		}
		for _, p := range paths {
			logger.Info("%s: wrote %s", e.Name(), p)
		}
		written = append(written, paths...)
	}

	if closeFn != nil {
		if err := closeFn(); err != nil {
			errs = append(errs, fmt.Errorf("close exporters: %w", err))
		}
	}

	return written, errors.Join(errs...)
}
