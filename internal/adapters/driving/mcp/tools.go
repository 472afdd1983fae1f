package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// CompareInput is the input schema for the compare_corpora tool.
type CompareInput struct {
	First      string  `json:"first" jsonschema:"path to the first corpus file (one prefix_suffix record per line)"`
	Second     string  `json:"second" jsonschema:"path to the second corpus file"`
	Iterations int     `json:"iterations,omitempty" jsonschema:"resample iterations, 1 to 1000 (default from settings)"`
	Seed       *uint64 `json:"seed,omitempty" jsonschema:"random seed for reproducible resampling"`
}

// CompareOutput is the output schema for the compare_corpora tool.
type CompareOutput struct {
	RunID          string             `json:"run_id"`
	EqualSize      bool               `json:"equal_size"`
	SharedPrefixes int                `json:"shared_prefixes"`
	SharedSuffixes int                `json:"shared_suffixes"`
	DrawSize       int                `json:"draw_size,omitempty"`
	Iterations     int                `json:"iterations,omitempty"`
	Completed      int                `json:"completed,omitempty"`
	Seed           uint64             `json:"seed,omitempty"`
	Rows           []domain.ResultRow `json:"rows"`
}

// CreativityInput is the input schema for the measure_creativity tool.
type CreativityInput struct {
	Corpus   string `json:"corpus" jsonschema:"path to the corpus file"`
	Position string `json:"position,omitempty" jsonschema:"prefix or suffix (default both)"`
}

// CreativityOutput is the output schema for the measure_creativity tool.
type CreativityOutput struct {
	Name      string                   `json:"name"`
	Tokens    int                      `json:"tokens"`
	Positions []domain.PositionAnalysis `json:"positions"`
}

// IndexInput is the input schema for the index_corpus tool.
type IndexInput struct {
	Corpus string `json:"corpus" jsonschema:"path to the corpus file"`
}

// IndexOutput is the output schema for the index_corpus tool.
type IndexOutput struct {
	Tokens   int      `json:"tokens"`
	Prefixes []string `json:"prefixes"`
	Suffixes []string `json:"suffixes"`
}

// ListRunsInput is the input schema for the list_runs tool.
type ListRunsInput struct {
	Database string `json:"database,omitempty" jsonschema:"results database path (default from settings)"`
}

// RunOutput describes one stored run.
type RunOutput struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	First      string `json:"first"`
	Second     string `json:"second"`
	Iterations int    `json:"iterations"`
	Completed  int    `json:"completed"`
	Seed       uint64 `json:"seed"`
	EqualSize  bool   `json:"equal_size"`
	Partial    bool   `json:"partial"`
}

// ListRunsOutput is the output schema for the list_runs tool.
type ListRunsOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_corpora",
		Description: "Compare the morphological productivity (CRE and TRI) of two corpora, controlling for vocabulary and sample size",
	}, s.handleCompare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "measure_creativity",
		Description: "Measure per-morpheme creativity and triteness of one corpus",
	}, s.handleCreativity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_corpus",
		Description: "List the token count and the prefix and suffix types of one corpus",
	}, s.handleIndex)

	if s.ports.Runs != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_runs",
			Description: "List comparisons stored in a morpho results database",
		}, s.handleListRuns)
	}
}

// handleCompare handles the compare_corpora tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	settings := s.settings()

	req := domain.AnalysisRequest{
		FirstPath:  input.First,
		SecondPath: input.Second,
		Iterations: settings.Resample.Iterations,
		Seed:       settings.Resample.Seed,
		Workers:    settings.Resample.Workers,
	}
	if input.Iterations != 0 {
		req.Iterations = input.Iterations
	}
	if input.Seed != nil {
		req.Seed = input.Seed
	}

	cmp, err := s.ports.Analysis.Compare(ctx, req)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	output := CompareOutput{
		RunID:          cmp.RunID,
		EqualSize:      cmp.EqualSize,
		SharedPrefixes: len(cmp.Filter.SharedPrefixes),
		SharedSuffixes: len(cmp.Filter.SharedSuffixes),
		Rows:           cmp.Rows(),
	}
	if r := cmp.Resample; r != nil {
		output.DrawSize = r.DrawSize
		output.Iterations = r.Iterations
		output.Completed = r.Completed
		output.Seed = r.Seed
	}

	return nil, output, nil
}

// handleCreativity handles the measure_creativity tool invocation.
func (s *Server) handleCreativity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreativityInput,
) (*mcp.CallToolResult, CreativityOutput, error) {
	positions := domain.Positions()
	if input.Position != "" {
		p, err := domain.ParsePosition(input.Position)
		if err != nil {
			return nil, CreativityOutput{}, err
		}
		positions = []domain.Position{p}
	}

	sa, err := s.ports.Analysis.Creativity(ctx, input.Corpus)
	if err != nil {
		return nil, CreativityOutput{}, err
	}

	output := CreativityOutput{
		Name:      sa.Name,
		Tokens:    sa.Tokens,
		Positions: make([]domain.PositionAnalysis, 0, len(positions)),
	}
	for _, p := range positions {
		output.Positions = append(output.Positions, sa.At(p))
	}

	return nil, output, nil
}

// handleIndex handles the index_corpus tool invocation.
func (s *Server) handleIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	inv, err := s.ports.Analysis.Index(ctx, input.Corpus)
	if err != nil {
		return nil, IndexOutput{}, err
	}

	return nil, IndexOutput{
		Tokens:   inv.Tokens,
		Prefixes: inv.Prefixes.Sorted(),
		Suffixes: inv.Suffixes.Sorted(),
	}, nil
}

// handleListRuns handles the list_runs tool invocation.
func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	if s.ports.Runs == nil {
		return nil, ListRunsOutput{}, ErrMissingRunService
	}

	db := input.Database
	if db == "" {
		db = s.settings().Output.Database
	}
	if db == "" {
		return nil, ListRunsOutput{}, fmt.Errorf("%w: no results database configured", domain.ErrInvalidInput)
	}

	runs, err := s.ports.Runs.List(ctx, db)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	output := ListRunsOutput{
		Runs:  make([]RunOutput, len(runs)),
		Count: len(runs),
	}
	for i, r := range runs {
		output.Runs[i] = RunOutput{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
			First:      r.First,
			Second:     r.Second,
			Iterations: r.Iterations,
			Completed:  r.Completed,
			Seed:       r.Seed,
			EqualSize:  r.EqualSize,
			Partial:    r.Partial,
		}
	}

	return nil, output, nil
}

// settings returns stored settings, falling back to defaults.
func (s *Server) settings() *domain.AppSettings {
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			return settings
		}
	}
	defaults := domain.DefaultAppSettings()
	return &defaults
}
