package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.CorpusReader = (*Codec)(nil)
	_ driven.CorpusWriter = (*Codec)(nil)
)

// maxLineSize bounds a single record. Records are short; the limit only
// guards against binary input.
const maxLineSize = 1024 * 1024

// ctxCheckEvery is how many lines are read between cancellation checks.
const ctxCheckEvery = 4096

// Codec implements the corpus line format.
type Codec struct{}

// NewCodec creates a corpus codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Read loads the corpus stored at path.
func (c *Codec) Read(ctx context.Context, path string) (*domain.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	return c.decode(ctx, f, path)
}

// Decode parses a corpus from r.
func (c *Codec) Decode(r io.Reader, name string) (*domain.Corpus, error) {
	return c.decode(context.Background(), r, name)
}

func (c *Codec) decode(ctx context.Context, r io.Reader, name string) (*domain.Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var tokens []domain.Token
	line := 0
	for scanner.Scan() {
		line++
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		tok, err := ParseRecord(text)
		if err != nil {
			return nil, &domain.InputFormatError{Path: name, Line: line, Text: text, Reason: err.Error()}
		}
		tokens = append(tokens, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return domain.NewCorpus(name, tokens)
}

// ParseRecord splits one record into a token. Both fields are normalised
// to NFC so composed and decomposed spellings of a morpheme match.
func ParseRecord(text string) (domain.Token, error) {
	switch n := strings.Count(text, domain.ConstructionSeparator); {
	case n == 0:
		return domain.Token{}, fmt.Errorf("missing %q separator", domain.ConstructionSeparator)
	case n > 1:
		return domain.Token{}, fmt.Errorf("%d %q separators, expected one", n, domain.ConstructionSeparator)
	}

	prefix, suffix, _ := strings.Cut(text, domain.ConstructionSeparator)
	if prefix == "" || suffix == "" {
		return domain.Token{}, fmt.Errorf("prefix and suffix must be non-empty")
	}
	return domain.Token{Prefix: norm.NFC.String(prefix), Suffix: norm.NFC.String(suffix)}, nil
}

// Encode writes one record per line.
func (c *Codec) Encode(w io.Writer, tokens []domain.Token) error {
	bw := bufio.NewWriter(w)
	for _, t := range tokens {
		if _, err := bw.WriteString(t.Construction()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
