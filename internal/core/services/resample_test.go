package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/logger"
)

// generated builds a deterministic corpus of n tokens over a small vocabulary.
func generated(name string, n int) domain.FilteredCorpus {
	prefixes := []string{"re", "un", "pre", "dis", "over", "out", "mis", "sub"}
	suffixes := []string{"do", "make", "tie", "load", "run", "set", "take", "form", "play"}
	records := make([]string, n)
	for i := range n {
		records[i] = prefixes[(i*7)%len(prefixes)] + "_" + suffixes[(i*i+3*i)%len(suffixes)]
	}
	return filtered(name, records...)
}

func TestClampIterations(t *testing.T) {
	tests := []struct {
		in      int
		want    int
		clamped bool
	}{
		{-5, 1, true},
		{0, 1, true},
		{1, 1, false},
		{100, 100, false},
		{MaxIterations, MaxIterations, false},
		{MaxIterations + 1, MaxIterations, true},
	}

	for _, tt := range tests {
		got, clamped := ClampIterations(tt.in)
		assert.Equal(t, tt.want, got, "ClampIterations(%d)", tt.in)
		assert.Equal(t, tt.clamped, clamped, "ClampIterations(%d)", tt.in)
	}
}

func TestNewResampler_DefaultWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, NewResampler(0).workers, 1)
	assert.Equal(t, 3, NewResampler(3).workers)
}

func TestResampler_EqualSize(t *testing.T) {
	r := NewResampler(2)
	_, err := r.Run(context.Background(), generated("a", 10), generated("b", 10), ResampleOptions{Iterations: 5})
	assert.ErrorIs(t, err, domain.ErrEqualSize)
}

func TestResampler_EmptyCorpus(t *testing.T) {
	r := NewResampler(2)
	_, err := r.Run(context.Background(), filtered("a"), generated("b", 10), ResampleOptions{Iterations: 5})
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestResampler_DrawSizeAndSource(t *testing.T) {
	r := NewResampler(4)

	t.Run("first is larger", func(t *testing.T) {
		res, err := r.Run(context.Background(), generated("a", 60), generated("b", 20),
			ResampleOptions{Iterations: 10, Seed: uint64Ptr(7)})
		require.NoError(t, err)

		assert.Equal(t, domain.SampleFirst, res.Source)
		assert.Equal(t, 20, res.DrawSize)
		assert.Len(t, res.LastDraw, 20)
		assert.Equal(t, 20, res.Prefix.Stat.Tokens)
		assert.Equal(t, 20, res.Suffix.Stat.Tokens)
		assert.Equal(t, domain.SampleResampled, res.Prefix.Stat.Sample)
		assert.Equal(t, 10, res.Completed)
		assert.False(t, res.Partial)
		assert.False(t, res.Clamped)
	})

	t.Run("second is larger", func(t *testing.T) {
		res, err := r.Run(context.Background(), generated("a", 15), generated("b", 40),
			ResampleOptions{Iterations: 10, Seed: uint64Ptr(7)})
		require.NoError(t, err)

		assert.Equal(t, domain.SampleSecond, res.Source)
		assert.Equal(t, 15, res.DrawSize)
	})
}

func TestResampler_DrawIsSubsetWithoutReplacement(t *testing.T) {
	larger := filtered("a", "p0_s0", "p1_s1", "p2_s2", "p3_s3", "p4_s4", "p5_s5", "p6_s6", "p7_s7")
	for iteration := 1; iteration <= 20; iteration++ {
		draw := drawTokens(larger.Tokens, 5, 99, iteration)
		require.Len(t, draw, 5)

		seen := make(map[string]bool)
		for _, tok := range draw {
			key := tok.Construction()
			assert.False(t, seen[key], "token %s drawn twice", key)
			seen[key] = true
		}
	}
}

func TestResampler_SeedReproducible(t *testing.T) {
	a, b := generated("a", 80), generated("b", 25)
	opts := ResampleOptions{Iterations: 50, Seed: uint64Ptr(42)}

	serial, err := NewResampler(1).Run(context.Background(), a, b, opts)
	require.NoError(t, err)
	parallel, err := NewResampler(8).Run(context.Background(), a, b, opts)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestResampler_SeedSensitivity(t *testing.T) {
	a, b := generated("a", 80), generated("b", 25)
	r := NewResampler(4)

	one, err := r.Run(context.Background(), a, b, ResampleOptions{Iterations: 5, Seed: uint64Ptr(1)})
	require.NoError(t, err)
	two, err := r.Run(context.Background(), a, b, ResampleOptions{Iterations: 5, Seed: uint64Ptr(2)})
	require.NoError(t, err)

	assert.NotEqual(t, one.LastDraw, two.LastDraw)
}

func TestResampler_GeneratedSeedIsReported(t *testing.T) {
	a, b := generated("a", 50), generated("b", 20)
	r := NewResampler(2)

	first, err := r.Run(context.Background(), a, b, ResampleOptions{Iterations: 8})
	require.NoError(t, err)

	again, err := r.Run(context.Background(), a, b, ResampleOptions{Iterations: 8, Seed: uint64Ptr(first.Seed)})
	require.NoError(t, err)

	assert.Equal(t, first.Prefix, again.Prefix)
	assert.Equal(t, first.Suffix, again.Suffix)
	assert.Equal(t, first.LastDraw, again.LastDraw)
}

func TestResampler_ClampsIterations(t *testing.T) {
	defer logger.SetOutput(os.Stderr)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	r := NewResampler(4)
	a, b := generated("a", 30), generated("b", 10)

	low, err := r.Run(context.Background(), a, b, ResampleOptions{Iterations: 0, Seed: uint64Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 0, low.Requested)
	assert.Equal(t, 1, low.Iterations)
	assert.True(t, low.Clamped)
	assert.Contains(t, buf.String(), "[WARN]")

	high, err := r.Run(context.Background(), a, b, ResampleOptions{Iterations: 5000, Seed: uint64Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 5000, high.Requested)
	assert.Equal(t, MaxIterations, high.Iterations)
	assert.Equal(t, MaxIterations, high.Completed)
	assert.True(t, high.Clamped)
}

func TestResampler_MeansAndTriteness(t *testing.T) {
	larger := filtered("a", "a_x", "a_x", "a_x", "a_x", "a_x", "a_x", "a_x", "a_x", "a_x", "c_q")
	smaller := filtered("b", "a_x", "a_x", "a_x", "a_x", "c_q")

	res, err := NewResampler(4).Run(context.Background(), larger, smaller,
		ResampleOptions{Iterations: 40, Seed: uint64Ptr(11)})
	require.NoError(t, err)

	means := make(map[string]domain.MorphemeMean)
	for _, m := range res.Prefix.Means {
		means[m.Morpheme] = m
	}

	a := means["a"]
	assert.Equal(t, 1.0, a.CRE)
	assert.Equal(t, 40, a.Draws, "a is in every draw")

	if c, ok := means["c"]; ok {
		assert.Equal(t, 1.0, c.CRE)
		assert.LessOrEqual(t, c.Draws, 40)
		assert.GreaterOrEqual(t, c.Draws, 1)
	}

	st := res.Prefix.Stat
	assert.Equal(t, len(res.Prefix.Means), st.Types)
	assert.Equal(t, st.Types, st.TriteCount)
	assert.Equal(t, 1.0, st.TRI)
	assert.Equal(t, len(res.Suffix.Means), st.PartnerTypes)

	assert.True(t, sort.SliceIsSorted(res.Prefix.Means, func(i, j int) bool {
		return res.Prefix.Means[i].Morpheme < res.Prefix.Means[j].Morpheme
	}))
}

func TestResampler_IterationRecords(t *testing.T) {
	res, err := NewResampler(4).Run(context.Background(), generated("a", 40), generated("b", 12),
		ResampleOptions{Iterations: 6, Seed: uint64Ptr(5)})
	require.NoError(t, err)

	prev := 0
	seen := make(map[int]bool)
	for _, rec := range res.IterationRecords {
		assert.GreaterOrEqual(t, rec.Iteration, prev)
		assert.GreaterOrEqual(t, rec.CRE, 1)
		prev = rec.Iteration
		seen[rec.Iteration] = true
	}
	assert.Len(t, seen, 6)
	assert.NotEmpty(t, res.IterationsAt(domain.PositionPrefix))
	assert.NotEmpty(t, res.IterationsAt(domain.PositionSuffix))

	last := drawTokens(generated("a", 40).Tokens, 12, 5, 6)
	assert.Equal(t, last, res.LastDraw)
}

func TestResampler_Progress(t *testing.T) {
	var calls []int
	totals := make(map[int]bool)

	_, err := NewResampler(4).Run(context.Background(), generated("a", 40), generated("b", 12), ResampleOptions{
		Iterations: 25,
		Seed:       uint64Ptr(1),
		Progress: func(done, total int) {
			calls = append(calls, done)
			totals[total] = true
		},
	})
	require.NoError(t, err)

	require.Len(t, calls, 25)
	for i, done := range calls {
		assert.Equal(t, i+1, done)
	}
	assert.Equal(t, map[int]bool{25: true}, totals)
}

func TestResampler_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResampler(2).Run(ctx, generated("a", 40), generated("b", 12), ResampleOptions{Iterations: 10})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResampler_CancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, b := generated("a", 40), generated("b", 12)
	res, err := NewResampler(1).Run(ctx, a, b, ResampleOptions{
		Iterations: 10,
		Seed:       uint64Ptr(9),
		Progress: func(done, _ int) {
			if done == 3 {
				cancel()
			}
		},
	})
	require.NoError(t, err)

	assert.True(t, res.Partial)
	assert.Equal(t, 3, res.Completed)
	assert.Equal(t, 10, res.Iterations)
	assert.Equal(t, drawTokens(a.Tokens, 12, 9, 3), res.LastDraw)
}
