package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

var allOutputs = domain.OutputSettings{Dir: ".", CSV: true, Report: true, Sample: true}

func TestExportService_Export(t *testing.T) {
	csv := &mockExporter{name: "csv", paths: []string{"results_creativity.csv", "summary_table.csv"}}
	report := &mockExporter{name: "report", paths: []string{"feedback_file.txt"}}
	factory := &mockExporterFactory{exporters: []driven.Exporter{csv, report}}

	cmp := &domain.Comparison{RunID: "run-1"}
	written, err := NewExportService(factory).Export(context.Background(), cmp, allOutputs)
	require.NoError(t, err)

	assert.Equal(t, []string{"results_creativity.csv", "summary_table.csv", "feedback_file.txt"}, written)
	assert.Equal(t, []*domain.Comparison{cmp}, csv.exported)
	assert.Equal(t, []*domain.Comparison{cmp}, report.exported)
	assert.Equal(t, 1, factory.closed)
	assert.Equal(t, allOutputs, factory.lastOut)
}

func TestExportService_ContinuesAfterFailure(t *testing.T) {
	broken := &mockExporter{name: "csv", exportErr: errors.New("disk full")}
	report := &mockExporter{name: "report", paths: []string{"feedback_file.txt"}}
	factory := &mockExporterFactory{exporters: []driven.Exporter{broken, report}, closeErr: errors.New("close failed")}

	written, err := NewExportService(factory).Export(context.Background(), &domain.Comparison{}, allOutputs)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "export csv: disk full")
	assert.Contains(t, err.Error(), "close failed")
	assert.Equal(t, []string{"feedback_file.txt"}, written)
	assert.Equal(t, 1, factory.closed)
}

func TestExportService_CreateError(t *testing.T) {
	factory := &mockExporterFactory{createErr: errors.New("mkdir denied")}
	_, err := NewExportService(factory).Export(context.Background(), &domain.Comparison{}, allOutputs)
	assert.ErrorContains(t, err, "create exporters")
}

func TestExportService_NothingEnabled(t *testing.T) {
	factory := &mockExporterFactory{}
	written, err := NewExportService(factory).Export(context.Background(), &domain.Comparison{}, domain.OutputSettings{})
	require.NoError(t, err)
	assert.Nil(t, written)
	assert.Equal(t, 0, factory.closed)

	written, err = NewExportService(nil).Export(context.Background(), &domain.Comparison{}, allOutputs)
	require.NoError(t, err)
	assert.Nil(t, written)
}

func TestExportService_NilComparison(t *testing.T) {
	_, err := NewExportService(&mockExporterFactory{}).Export(context.Background(), nil, allOutputs)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
