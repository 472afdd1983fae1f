package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// CorpusReader loads corpora in the prefix_suffix line format.
type CorpusReader interface {
	// Read loads the corpus stored at path. The corpus is named after path.
	// Returns an *domain.InputFormatError for malformed records and
	// domain.ErrEmptyCorpus when no records exist.
	Read(ctx context.Context, path string) (*domain.Corpus, error)

	// Decode parses a corpus from r.
	Decode(r io.Reader, name string) (*domain.Corpus, error)
}

// CorpusWriter writes tokens in the same line format CorpusReader accepts.
type CorpusWriter interface {
	// Encode writes one prefix_suffix record per line.
	Encode(w io.Writer, tokens []domain.Token) error
}
