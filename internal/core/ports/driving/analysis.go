package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// AnalysisService runs productivity measurements over corpus files.
type AnalysisService interface {
	// Compare runs the full pipeline over two corpora: unfiltered
	// creativity, vocabulary filtering, lexical creativity and resampling.
	// Equal filtered sizes are not an error: the result has EqualSize set
	// and no Resample. A cancelled run returns a Partial resample if at
	// least one iteration completed.
	Compare(ctx context.Context, req domain.AnalysisRequest) (*domain.Comparison, error)

	// Index returns the token count and type sets of one corpus.
	Index(ctx context.Context, path string) (*domain.Inventory, error)

	// Creativity measures CRE and TRI for both positions of one corpus.
	Creativity(ctx context.Context, path string) (*domain.SampleAnalysis, error)

	// Filter restricts the corpus at path to the vocabulary of the corpus at
	// against and writes the surviving tokens to w in the corpus format.
	Filter(ctx context.Context, path, against string, w io.Writer) (*domain.FilteredCorpus, error)
}
