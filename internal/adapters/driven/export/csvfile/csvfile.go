// Package csvfile exports comparison results as CSV tables.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/morpho/internal/adapters/driven/export/atomicfile"
	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Exporter = (*Exporter)(nil)

// Output file names.
const (
	CreativityFile = "results_creativity.csv"
	SummaryFile    = "summary_table.csv"
)

// IterationsFile returns the per-iteration file name of a position,
// e.g. "iterations_Prefixes.csv".
func IterationsFile(p domain.Position) string {
	return "iterations_" + p.Label() + "es.csv"
}

// Exporter writes the creativity, iteration and summary tables.
type Exporter struct {
	dir string
}

// New creates an exporter writing into dir. The directory must exist.
func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Name identifies the exporter.
func (e *Exporter) Name() string {
	return "csv"
}

// Export writes the CSV files and returns their paths.
// Iteration files are only written when resampling ran.
func (e *Exporter) Export(ctx context.Context, c *domain.Comparison) ([]string, error) {
	type file struct {
		name string
		rows [][]string
	}

	files := []file{
		{CreativityFile, creativityRows(c)},
	}
	if c.Resample != nil {
		for _, p := range domain.Positions() {
			files = append(files, file{IterationsFile(p), iterationRows(c.Resample.IterationsAt(p))})
		}
	}
	files = append(files, file{SummaryFile, summaryRows(c.Rows())})

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(e.dir, f.name)
		if err := atomicfile.Write(ctx, path, writeRows(f.rows)); err != nil {
			return paths, fmt.Errorf("export %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeRows(rows [][]string) func(io.Writer) error {
	return func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	}
}

// creativityRows lists the per-morpheme CRE of samples 1 and 2 before any
// control, followed by the Sample 3 means.
func creativityRows(c *domain.Comparison) [][]string {
	rows := [][]string{{"Sample", "Position", "Morpheme", "CRE"}}
	for _, sa := range c.Unfiltered {
		for _, p := range domain.Positions() {
			for _, r := range sa.At(p).Records {
				rows = append(rows, []string{
					strconv.Itoa(int(r.Sample)), p.Label(), r.Morpheme, strconv.Itoa(r.CRE),
				})
			}
		}
	}
	if c.Resample == nil {
		return rows
	}
	for _, p := range domain.Positions() {
		for _, m := range c.Resample.At(p).Means {
			rows = append(rows, []string{
				strconv.Itoa(int(m.Sample)), p.Label(), m.Morpheme, formatFloat(m.CRE),
			})
		}
	}
	return rows
}

func iterationRows(records []domain.IterationRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"Iteration", "Morpheme", "CRE"})
	for _, r := range records {
		rows = append(rows, []string{strconv.Itoa(r.Iteration), r.Morpheme, strconv.Itoa(r.CRE)})
	}
	return rows
}

func summaryRows(results []domain.ResultRow) [][]string {
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, []string{"Control", "Sample", "Analysis", "CRE", "sd", "Tokens", "Types", "TRI", "TRI%"})
	for _, r := range results {
		rows = append(rows, []string{
			string(r.Control),
			strconv.Itoa(int(r.Sample)),
			r.Analysis,
			formatFloat(r.CREMean),
			formatFloat(r.CREStdDev),
			strconv.Itoa(r.Tokens),
			strconv.Itoa(r.Types),
			formatFloat(r.TRI),
			formatFloat(r.TRIPercent),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
