package services

import (
	"fmt"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// FilterVocabulary restricts each corpus to tokens whose prefix AND suffix
// both occur in the other corpus. Input order is preserved. The shared
// prefix and suffix lists are taken from the original corpora.
//
// Filtered corpora may be empty; callers decide whether that is fatal.
func FilterVocabulary(a, b *domain.Corpus) (domain.LexicalFilter, error) {
	if a == nil || b == nil {
		return domain.LexicalFilter{}, fmt.Errorf("filter vocabulary: %w: nil corpus", domain.ErrInvalidInput)
	}

	invA, err := IndexCorpus(a.Tokens)
	if err != nil {
		return domain.LexicalFilter{}, fmt.Errorf("filter vocabulary of %s: %w", a.Name, err)
	}
	invB, err := IndexCorpus(b.Tokens)
	if err != nil {
		return domain.LexicalFilter{}, fmt.Errorf("filter vocabulary of %s: %w", b.Name, err)
	}

	return domain.LexicalFilter{
		A:              FilterAgainst(a, invB, b.Name),
		B:              FilterAgainst(b, invA, a.Name),
		SharedPrefixes: invA.Prefixes.Intersect(invB.Prefixes).Sorted(),
		SharedSuffixes: invA.Suffixes.Intersect(invB.Suffixes).Sorted(),
	}, nil
}

// FilterAgainst keeps the tokens of c whose prefix is in ref.Prefixes and
// whose suffix is in ref.Suffixes.
func FilterAgainst(c *domain.Corpus, ref domain.Inventory, against string) domain.FilteredCorpus {
	kept := make([]domain.Token, 0, c.Len())
	for _, t := range c.Tokens {
		if ref.Prefixes.Has(t.Prefix) && ref.Suffixes.Has(t.Suffix) {
			kept = append(kept, t)
		}
	}
	return domain.FilteredCorpus{
		Corpus:  domain.Corpus{Name: c.Name, Tokens: kept},
		Against: against,
	}
}
