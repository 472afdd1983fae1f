// Package sample exports the last resample draw in the corpus format.
package sample

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/morpho/internal/adapters/driven/export/atomicfile"
	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Exporter = (*Exporter)(nil)

// Exporter writes <source>_sample.txt.
type Exporter struct {
	dir    string
	writer driven.CorpusWriter
}

// New creates a sample exporter writing into dir.
func New(dir string, writer driven.CorpusWriter) *Exporter {
	return &Exporter{dir: dir, writer: writer}
}

// Name identifies the exporter.
func (e *Exporter) Name() string {
	return "sample"
}

// FileName returns the sample file name for a corpus,
// e.g. "corpora/adult.txt" -> "adult_sample.txt".
func FileName(corpus string) string {
	base := filepath.Base(corpus)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "corpus"
	}
	return base + "_sample.txt"
}

// Export writes the last draw. Nothing is written when resampling was skipped.
func (e *Exporter) Export(ctx context.Context, c *domain.Comparison) ([]string, error) {
	if c.Resample == nil || len(c.Resample.LastDraw) == 0 {
		return nil, nil
	}

	source := c.Unfiltered[c.Resample.Source-1].Name
	path := filepath.Join(e.dir, FileName(source))

	err := atomicfile.Write(ctx, path, func(w io.Writer) error {
		return e.writer.Encode(w, c.Resample.LastDraw)
	})
	if err != nil {
		return nil, fmt.Errorf("export sample: %w", err)
	}
	return []string{path}, nil
}
