package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCorpusReader implements driven.CorpusReader over in-memory records.
type mockCorpusReader struct {
	corpora map[string][]string
	readErr error
}

func newMockCorpusReader(corpora map[string][]string) *mockCorpusReader {
	return &mockCorpusReader{corpora: corpora}
}

func (m *mockCorpusReader) Read(_ context.Context, path string) (*domain.Corpus, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	records, ok := m.corpora[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	return domain.NewCorpus(path, tokens(records...))
}

func (m *mockCorpusReader) Decode(r io.Reader, name string) (*domain.Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return domain.NewCorpus(name, tokens(strings.Fields(string(data))...))
}

// mockCorpusWriter implements driven.CorpusWriter and remembers what it wrote.
type mockCorpusWriter struct {
	written  []domain.Token
	writeErr error
}

func (m *mockCorpusWriter) Encode(w io.Writer, toks []domain.Token) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written = toks
	for _, t := range toks {
		if _, err := fmt.Fprintln(w, t.Construction()); err != nil {
			return err
		}
	}
	return nil
}

// mockExporter implements driven.Exporter.
type mockExporter struct {
	name      string
	paths     []string
	exportErr error
	exported  []*domain.Comparison
}

func (m *mockExporter) Name() string { return m.name }

func (m *mockExporter) Export(_ context.Context, c *domain.Comparison) ([]string, error) {
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	m.exported = append(m.exported, c)
	return m.paths, nil
}

// mockExporterFactory implements driven.ExporterFactory.
type mockExporterFactory struct {
	exporters []driven.Exporter
	createErr error
	closeErr  error
	closed    int
	lastOut   domain.OutputSettings
}

func (m *mockExporterFactory) Create(out domain.OutputSettings) ([]driven.Exporter, func() error, error) {
	m.lastOut = out
	if m.createErr != nil {
		return nil, nil, m.createErr
	}
	return m.exporters, func() error {
		m.closed++
		return m.closeErr
	}, nil
}

// mockRunStore implements driven.RunStore.
type mockRunStore struct {
	runs   map[string]*domain.RunDetail
	closed bool
}

func (m *mockRunStore) ListRuns(_ context.Context) ([]domain.RunSummary, error) {
	out := make([]domain.RunSummary, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r.RunSummary)
	}
	return out, nil
}

func (m *mockRunStore) GetRun(_ context.Context, id string) (*domain.RunDetail, error) {
	r, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRunStore) Close() error {
	m.closed = true
	return nil
}

// tokens builds tokens from "prefix_suffix" records.
func tokens(records ...string) []domain.Token {
	out := make([]domain.Token, 0, len(records))
	for _, r := range records {
		prefix, suffix, _ := strings.Cut(r, domain.ConstructionSeparator)
		out = append(out, domain.Token{Prefix: prefix, Suffix: suffix})
	}
	return out
}

func corpus(name string, records ...string) *domain.Corpus {
	return &domain.Corpus{Name: name, Tokens: tokens(records...)}
}

func filtered(name string, records ...string) domain.FilteredCorpus {
	return domain.FilteredCorpus{Corpus: *corpus(name, records...)}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
