package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	comparison *domain.Comparison
	analysis   *domain.SampleAnalysis
	inventory  *domain.Inventory
	err        error

	lastRequest domain.AnalysisRequest
}

func (m *mockAnalysisService) Compare(_ context.Context, req domain.AnalysisRequest) (*domain.Comparison, error) {
	m.lastRequest = req
	return m.comparison, m.err
}

func (m *mockAnalysisService) Index(_ context.Context, _ string) (*domain.Inventory, error) {
	return m.inventory, m.err
}

func (m *mockAnalysisService) Creativity(_ context.Context, _ string) (*domain.SampleAnalysis, error) {
	return m.analysis, m.err
}

func (m *mockAnalysisService) Filter(_ context.Context, _, _ string, _ io.Writer) (*domain.FilteredCorpus, error) {
	return nil, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) Path() string { return "/tmp/config.toml" }

// mockRunService is a mock implementation of driving.RunService.
type mockRunService struct {
	runs   []domain.RunSummary
	err    error
	lastDB string
}

func (m *mockRunService) List(_ context.Context, dbPath string) ([]domain.RunSummary, error) {
	m.lastDB = dbPath
	return m.runs, m.err
}

func (m *mockRunService) Get(_ context.Context, dbPath, _ string) (*domain.RunDetail, error) {
	m.lastDB = dbPath
	return nil, m.err
}

func testComparison() *domain.Comparison {
	stat := func(p domain.Position) domain.PositionAnalysis {
		return domain.PositionAnalysis{Stat: domain.AggregateStat{Position: p, CREMean: 1.5, TRI: 0.5, TRIPercent: 50}}
	}
	sample := func(id domain.SampleID, name string) domain.SampleAnalysis {
		return domain.SampleAnalysis{
			Sample: id, Name: name, Tokens: 10,
			Prefix: stat(domain.PositionPrefix), Suffix: stat(domain.PositionSuffix),
		}
	}
	return &domain.Comparison{
		RunID:      "run-1",
		Unfiltered: [2]domain.SampleAnalysis{sample(1, "a.txt"), sample(2, "b.txt")},
		Lexical:    [2]domain.SampleAnalysis{sample(1, "a.txt"), sample(2, "b.txt")},
		Filter:     domain.LexicalFilter{SharedPrefixes: []string{"re"}, SharedSuffixes: []string{"do", "tie"}},
		Resample: &domain.ResampleResult{
			Source: domain.SampleFirst, DrawSize: 6, Iterations: 50, Completed: 50, Seed: 99,
		},
	}
}
