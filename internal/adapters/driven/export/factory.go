package export

import (
	"fmt"
	"os"

	"github.com/custodia-labs/morpho/internal/adapters/driven/export/csvfile"
	"github.com/custodia-labs/morpho/internal/adapters/driven/export/report"
	"github.com/custodia-labs/morpho/internal/adapters/driven/export/sample"
	"github.com/custodia-labs/morpho/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ExporterFactory = (*Factory)(nil)

// Factory creates exporters from output settings.
type Factory struct {
	writer driven.CorpusWriter
}

// NewFactory creates a factory. The writer encodes the sample file.
func NewFactory(writer driven.CorpusWriter) *Factory {
	return &Factory{writer: writer}
}

// Create returns the exporters enabled in out, in the order files, database.
// The output directory is created when a file exporter is enabled.
func (f *Factory) Create(out domain.OutputSettings) ([]driven.Exporter, func() error, error) {
	noop := func() error { return nil }

	var exporters []driven.Exporter
	if out.CSV || out.Report || out.Sample {
		if out.Dir == "" {
			return nil, noop, fmt.Errorf("%w: empty output directory", domain.ErrInvalidInput)
		}
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("creating output directory: %w", err)
		}
	}

	if out.CSV {
		exporters = append(exporters, csvfile.New(out.Dir))
	}
	if out.Report {
		exporters = append(exporters, report.New(out.Dir))
	}
	if out.Sample {
		if f.writer == nil {
			return nil, noop, fmt.Errorf("sample export: corpus writer not configured")
		}
		exporters = append(exporters, sample.New(out.Dir, f.writer))
	}

	if out.Database == "" {
		return exporters, noop, nil
	}

	store, err := sqlite.Open(out.Database)
	if err != nil {
		return nil, noop, fmt.Errorf("opening results database: %w", err)
	}
	return append(exporters, store), store.Close, nil
}
