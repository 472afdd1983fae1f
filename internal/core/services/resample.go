package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/logger"
)

// MaxIterations is the upper bound on resample iterations.
const MaxIterations = 1000

// progressLogInterval throttles verbose progress lines.
const progressLogInterval = time.Second

// ClampIterations bounds k to [1, MaxIterations] and reports whether it
// had to change.
func ClampIterations(k int) (int, bool) {
	switch {
	case k < 1:
		return 1, true
	case k > MaxIterations:
		return MaxIterations, true
	default:
		return k, false
	}
}

// ResampleOptions configures one resampler run.
type ResampleOptions struct {
	// Iterations is the requested draw count. Clamped to [1, MaxIterations].
	Iterations int

	// Seed reproduces a run. Nil draws a fresh seed, reported in the result.
	Seed *uint64

	// Workers overrides the resampler's worker count when positive.
	Workers int

	// Progress is called after each completed iteration. Calls never overlap.
	Progress func(done, total int)
}

// Resampler equalises corpus size by drawing repeated samples from the
// larger corpus and averaging creativity over the draws.
type Resampler struct {
	workers int
}

// NewResampler creates a resampler running up to workers iterations at once.
// Non-positive values use runtime.NumCPU.
func NewResampler(workers int) *Resampler {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Resampler{workers: workers}
}

type iterationSlot struct {
	done   bool
	prefix []domain.MorphemeRecord
	suffix []domain.MorphemeRecord
}

// Run draws opts.Iterations samples of min(|a|, |b|) tokens without
// replacement from the larger of a and b.
//
// Returns domain.ErrEqualSize when both corpora have the same size. When ctx
// is cancelled the completed iterations are aggregated and the result is
// marked Partial; if none completed the context error is returned.
func (r *Resampler) Run(ctx context.Context, a, b domain.FilteredCorpus, opts ResampleOptions) (*domain.ResampleResult, error) {
	nA, nB := a.Len(), b.Len()
	if nA == 0 || nB == 0 {
		return nil, fmt.Errorf("resample: %w", domain.ErrEmptyCorpus)
	}
	if nA == nB {
		return nil, domain.ErrEqualSize
	}

	source, larger, drawSize := domain.SampleFirst, a, nB
	if nB > nA {
		source, larger, drawSize = domain.SampleSecond, b, nA
	}

	iterations, clamped := ClampIterations(opts.Iterations)
	if clamped {
		logger.Warn("iterations %d outside [1, %d], using %d", opts.Iterations, MaxIterations, iterations)
	}

	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Uint64()
	}

	workers := r.workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	logger.Info("drawing %d tokens from %s (%d tokens), %d iterations, %d workers, seed %d",
		drawSize, larger.Name, larger.Len(), iterations, workers, seed)

	slots := make([]iterationSlot, iterations)

	var (
		mu       sync.Mutex
		finished int
		every    = rate.Sometimes{Interval: progressLogInterval}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range iterations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			draw := drawTokens(larger.Tokens, drawSize, seed, i+1)
			prefix, err := Creativity(domain.SampleResampled, draw, domain.PositionPrefix)
			if err != nil {
				return fmt.Errorf("iteration %d: %w", i+1, err)
			}
			suffix, err := Creativity(domain.SampleResampled, draw, domain.PositionSuffix)
			if err != nil {
				return fmt.Errorf("iteration %d: %w", i+1, err)
			}
			slots[i] = iterationSlot{done: true, prefix: prefix, suffix: suffix}

			mu.Lock()
			finished++
			n := finished
			if opts.Progress != nil {
				opts.Progress(n, iterations)
			}
			mu.Unlock()

			every.Do(func() {
				logger.Debug("resample progress %d/%d", n, iterations)
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	result := &domain.ResampleResult{
		Source:     source,
		DrawSize:   drawSize,
		Requested:  opts.Iterations,
		Iterations: iterations,
		Clamped:    clamped,
		Seed:       seed,
	}

	prefixes, suffixes := make(tally), make(tally)
	last := 0
	for i, slot := range slots {
		if !slot.done {
			continue
		}
		result.Completed++
		last = i + 1
		prefixes.add(slot.prefix)
		suffixes.add(slot.suffix)
		result.IterationRecords = appendIteration(result.IterationRecords, i+1, slot.prefix)
		result.IterationRecords = appendIteration(result.IterationRecords, i+1, slot.suffix)
	}

	if result.Completed == 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resample: %w", err)
		}
		return nil, fmt.Errorf("resample: %w", domain.ErrEmptyTypeSet)
	}
	if result.Completed < iterations {
		result.Partial = true
		logger.Warn("resampling cancelled after %d of %d iterations", result.Completed, iterations)
	}

	result.Prefix = prefixes.resampled(domain.PositionPrefix, drawSize, len(suffixes))
	result.Suffix = suffixes.resampled(domain.PositionSuffix, drawSize, len(prefixes))
	result.LastDraw = drawTokens(larger.Tokens, drawSize, seed, last)

	return result, nil
}

// drawTokens selects n tokens without replacement using a partial
// Fisher-Yates shuffle over indices. The stream depends only on seed and
// iteration.
func drawTokens(tokens []domain.Token, n int, seed uint64, iteration int) []domain.Token {
	rng := rand.New(rand.NewPCG(seed, uint64(iteration)))

	idx := make([]int, len(tokens))
	for i := range idx {
		idx[i] = i
	}
	draw := make([]domain.Token, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		draw[i] = tokens[idx[i]]
	}
	return draw
}

func appendIteration(dst []domain.IterationRecord, iteration int, records []domain.MorphemeRecord) []domain.IterationRecord {
	for _, r := range records {
		dst = append(dst, domain.IterationRecord{
			Iteration: iteration,
			Position:  r.Position,
			Morpheme:  r.Morpheme,
			CRE:       r.CRE,
		})
	}
	return dst
}

// creSum accumulates CRE across iterations with integers so the reduction
// does not depend on order.
type creSum struct {
	sum   int
	count int
}

type tally map[string]*creSum

func (t tally) add(records []domain.MorphemeRecord) {
	for _, r := range records {
		s, ok := t[r.Morpheme]
		if !ok {
			s = &creSum{}
			t[r.Morpheme] = s
		}
		s.sum += r.CRE
		s.count++
	}
}

// resampled turns the tally into Sample-3 means and their aggregate.
// A morpheme is trite when its mean is exactly 1, that is sum == count.
func (t tally) resampled(p domain.Position, drawSize, partnerTypes int) domain.ResampledPosition {
	morphemes := make([]string, 0, len(t))
	for m := range t {
		morphemes = append(morphemes, m)
	}
	sort.Strings(morphemes)

	means := make([]domain.MorphemeMean, len(morphemes))
	values := make([]float64, len(morphemes))
	trite := 0
	for i, m := range morphemes {
		s := t[m]
		mean := float64(s.sum) / float64(s.count)
		means[i] = domain.MorphemeMean{
			Sample:   domain.SampleResampled,
			Position: p,
			Morpheme: m,
			CRE:      mean,
			Draws:    s.count,
		}
		values[i] = mean
		if s.sum == s.count {
			trite++
		}
	}

	return domain.ResampledPosition{
		Means: means,
		Stat:  newStat(domain.SampleResampled, p, values, trite, drawSize, partnerTypes),
	}
}
