package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
	"github.com/custodia-labs/morpho/internal/core/ports/driving"
	"github.com/custodia-labs/morpho/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the productivity pipeline over corpus files.
type AnalysisService struct {
	reader    driven.CorpusReader
	writer    driven.CorpusWriter
	resampler *Resampler
}

// NewAnalysisService creates a new analysis service.
// The writer is only needed by Filter and may be nil otherwise.
func NewAnalysisService(reader driven.CorpusReader, writer driven.CorpusWriter, resampler *Resampler) *AnalysisService {
	if resampler == nil {
		resampler = NewResampler(0)
	}
	return &AnalysisService{
		reader:    reader,
		writer:    writer,
		resampler: resampler,
	}
}

// Compare runs the full pipeline over two corpora.
//
//nolint:gocyclo // Pipeline with necessary sequential steps
func (s *AnalysisService) Compare(ctx context.Context, req domain.AnalysisRequest) (*domain.Comparison, error) {
	// 1. Load both corpora
	logger.Section("Loading Corpora")
	first, err := s.reader.Read(ctx, req.FirstPath)
	if err != nil {
		return nil, fmt.Errorf("read first corpus: %w", err)
	}
	second, err := s.reader.Read(ctx, req.SecondPath)
	if err != nil {
		return nil, fmt.Errorf("read second corpus: %w", err)
	}
	logger.Info("%s: %d tokens", first.Name, first.Len())
	logger.Info("%s: %d tokens", second.Name, second.Len())

	cmp := &domain.Comparison{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	// 2. Productivity with no controls
	logger.Section("Unfiltered Productivity")
	if cmp.Unfiltered[0], err = AnalyseSample(domain.SampleFirst, first); err != nil {
		return nil, err
	}
	if cmp.Unfiltered[1], err = AnalyseSample(domain.SampleSecond, second); err != nil {
		return nil, err
	}
	logStats(cmp.Unfiltered[:])

	// 3. Restrict both corpora to shared vocabulary
	logger.Section("Lexical Filtering")
	filter, err := FilterVocabulary(first, second)
	if err != nil {
		return nil, err
	}
	cmp.Filter = filter
	logger.Info("shared prefixes: %d, shared suffixes: %d", len(filter.SharedPrefixes), len(filter.SharedSuffixes))
	for _, f := range []domain.FilteredCorpus{filter.A, filter.B} {
		logger.Info("%s filtered against %s: %d tokens", f.Name, f.Against, f.Len())
		if f.Len() == 0 {
			return nil, fmt.Errorf("filter %s against %s: %w", f.Name, f.Against, domain.ErrEmptyCorpus)
		}
	}

	if cmp.Lexical[0], err = AnalyseSample(domain.SampleFirst, &filter.A.Corpus); err != nil {
		return nil, err
	}
	if cmp.Lexical[1], err = AnalyseSample(domain.SampleSecond, &filter.B.Corpus); err != nil {
		return nil, err
	}
	logStats(cmp.Lexical[:])

	// 4. Equalise size by resampling the larger filtered corpus
	logger.Section("Resampling")
	res, err := s.resampler.Run(ctx, filter.A, filter.B, ResampleOptions{
		Iterations: req.Iterations,
		Seed:       req.Seed,
		Workers:    req.Workers,
		Progress:   req.Progress,
	})
	if errors.Is(err, domain.ErrEqualSize) {
		logger.Info("both filtered corpora have %d tokens, no resampling necessary", filter.A.Len())
		cmp.EqualSize = true
		return cmp, nil
	}
	if err != nil {
		return nil, err
	}
	cmp.Resample = res
	logger.Info("sample 3: %d/%d iterations, prefix TRI %.4f, suffix TRI %.4f",
		res.Completed, res.Iterations, res.Prefix.Stat.TRI, res.Suffix.Stat.TRI)

	return cmp, nil
}

func logStats(samples []domain.SampleAnalysis) {
	for _, sa := range samples {
		for _, p := range domain.Positions() {
			st := sa.At(p).Stat
			logger.Debug("sample %d %s: types=%d CRE=%.4f sd=%.4f TRI=%.4f",
				sa.Sample, p.Analysis(), st.Types, st.CREMean, st.CREStdDev, st.TRI)
		}
	}
}

// Index returns the inventory of one corpus.
func (s *AnalysisService) Index(ctx context.Context, path string) (*domain.Inventory, error) {
	c, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	inv, err := IndexCorpus(c.Tokens)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Creativity measures both positions of one corpus.
func (s *AnalysisService) Creativity(ctx context.Context, path string) (*domain.SampleAnalysis, error) {
	c, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	sa, err := AnalyseSample(domain.SampleFirst, c)
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

// Filter restricts the corpus at path to the vocabulary of against and
// writes the result to w.
func (s *AnalysisService) Filter(ctx context.Context, path, against string, w io.Writer) (*domain.FilteredCorpus, error) {
	if s.writer == nil {
		return nil, fmt.Errorf("filter corpus: corpus writer not configured")
	}

	c, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	ref, err := s.reader.Read(ctx, against)
	if err != nil {
		return nil, fmt.Errorf("read reference corpus: %w", err)
	}
	inv, err := IndexCorpus(ref.Tokens)
	if err != nil {
		return nil, err
	}

	filtered := FilterAgainst(c, inv, ref.Name)
	logger.Info("%s: kept %d of %d tokens", c.Name, filtered.Len(), c.Len())

	if err := s.writer.Encode(w, filtered.Tokens); err != nil {
		return nil, fmt.Errorf("write filtered corpus: %w", err)
	}
	return &filtered, nil
}
