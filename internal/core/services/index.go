package services

import (
	"fmt"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// IndexCorpus returns the token count and the prefix, suffix and
// construction type sets of tokens.
func IndexCorpus(tokens []domain.Token) (domain.Inventory, error) {
	if len(tokens) == 0 {
		return domain.Inventory{}, fmt.Errorf("index corpus: %w", domain.ErrEmptyCorpus)
	}

	inv := domain.Inventory{
		Tokens:        len(tokens),
		Prefixes:      domain.NewTypeSet(),
		Suffixes:      domain.NewTypeSet(),
		Constructions: domain.NewTypeSet(),
	}
	for _, t := range tokens {
		inv.Prefixes.Add(t.Prefix)
		inv.Suffixes.Add(t.Suffix)
		inv.Constructions.Add(t.Construction())
	}
	return inv, nil
}
