package sample

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/morpho/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/morpho/internal/core/domain"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		corpus string
		want   string
	}{
		{"adult.txt", "adult_sample.txt"},
		{"corpora/child.speech.txt", "child.speech_sample.txt"},
		{"noext", "noext_sample.txt"},
		{"", "corpus_sample.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.corpus, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.corpus))
		})
	}
}

func comparison(source domain.SampleID, draw []domain.Token) *domain.Comparison {
	c := &domain.Comparison{
		Unfiltered: [2]domain.SampleAnalysis{
			{Sample: domain.SampleFirst, Name: "corpora/adult.txt"},
			{Sample: domain.SampleSecond, Name: "corpora/child.txt"},
		},
	}
	if draw != nil {
		c.Resample = &domain.ResampleResult{Source: source, DrawSize: len(draw), LastDraw: draw}
	}
	return c
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	codec := file.NewCodec()
	draw := []domain.Token{
		{Prefix: "re", Suffix: "do"},
		{Prefix: "un", Suffix: "tie"},
	}

	exp := New(dir, codec)
	assert.Equal(t, "sample", exp.Name())

	paths, err := exp.Export(context.Background(), comparison(domain.SampleSecond, draw))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "child_sample.txt")}, paths)

	back, err := codec.Read(context.Background(), paths[0])
	require.NoError(t, err)
	assert.Equal(t, draw, back.Tokens)
}

func TestExporter_NoResample(t *testing.T) {
	dir := t.TempDir()

	paths, err := New(dir, file.NewCodec()).Export(context.Background(), comparison(domain.SampleFirst, nil))
	require.NoError(t, err)
	assert.Empty(t, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
