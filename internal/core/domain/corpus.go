package domain

import (
	"fmt"
	"sort"
)

// ConstructionSeparator joins prefix and suffix in the corpus format and in
// construction keys.
const ConstructionSeparator = "_"

const unknownDescription = "Unknown"

// Position identifies a slot within a construction.
type Position string

// Available positions.
const (
	// PositionPrefix is the first element of a construction.
	PositionPrefix Position = "prefix"

	// PositionSuffix is the second element of a construction.
	PositionSuffix Position = "suffix"
)

// Positions lists both positions in reporting order.
func Positions() []Position {
	return []Position{PositionPrefix, PositionSuffix}
}

// IsValid returns true if the position is recognised.
func (p Position) IsValid() bool {
	return p == PositionPrefix || p == PositionSuffix
}

// Partner returns the other position of the construction.
func (p Position) Partner() Position {
	if p == PositionPrefix {
		return PositionSuffix
	}
	return PositionPrefix
}

// String returns the string representation.
func (p Position) String() string {
	return string(p)
}

// Label returns the capitalised name used in tables.
func (p Position) Label() string {
	switch p {
	case PositionPrefix:
		return "Prefix"
	case PositionSuffix:
		return "Suffix"
	default:
		return unknownDescription
	}
}

// Analysis returns the result-table name of a CRE analysis at this position,
// e.g. "Prefix/Suffix" for prefixes measured against their suffixes.
func (p Position) Analysis() string {
	return p.Label() + "/" + p.Partner().Label()
}

// ParsePosition converts user input into a Position.
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: position must be %q or %q, got %q",
			ErrInvalidInput, PositionPrefix, PositionSuffix, s)
	}
	return p, nil
}

// Token is one occurrence of a construction.
type Token struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// At returns the token's value at the given position.
func (t Token) At(p Position) string {
	if p == PositionPrefix {
		return t.Prefix
	}
	return t.Suffix
}

// Construction returns the matching key of the token, "prefix_suffix".
func (t Token) Construction() string {
	return t.Prefix + ConstructionSeparator + t.Suffix
}

// Corpus is an ordered sequence of tokens. Order carries no meaning for any
// statistic. Corpora are never mutated after construction.
type Corpus struct {
	// Name identifies the corpus in reports, usually its file path.
	Name string

	// Tokens holds every token in input order.
	Tokens []Token
}

// NewCorpus validates tokens and returns a corpus.
// A corpus must be non-empty and every token must have both fields set.
func NewCorpus(name string, tokens []Token) (*Corpus, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyCorpus)
	}
	for i, t := range tokens {
		if t.Prefix == "" || t.Suffix == "" {
			return nil, &InputFormatError{
				Path:   name,
				Line:   i + 1,
				Text:   t.Construction(),
				Reason: "prefix and suffix must be non-empty",
			}
		}
	}
	return &Corpus{Name: name, Tokens: tokens}, nil
}

// Len returns the number of tokens.
func (c *Corpus) Len() int {
	return len(c.Tokens)
}

// TypeSet is the set of distinct strings at one position of a corpus.
type TypeSet map[string]struct{}

// NewTypeSet builds a set from values.
func NewTypeSet(values ...string) TypeSet {
	s := make(TypeSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value.
func (s TypeSet) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s TypeSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of distinct values.
func (s TypeSet) Len() int {
	return len(s)
}

// Sorted returns the values in ascending order.
func (s TypeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the values present in both sets.
func (s TypeSet) Intersect(other TypeSet) TypeSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(TypeSet)
	for v := range small {
		if large.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Inventory is the Frequency Indexer view of a corpus.
type Inventory struct {
	// Tokens is the number of tokens.
	Tokens int `json:"tokens"`

	// Prefixes holds the distinct prefixes.
	Prefixes TypeSet `json:"-"`

	// Suffixes holds the distinct suffixes.
	Suffixes TypeSet `json:"-"`

	// Constructions holds the distinct prefix_suffix keys.
	Constructions TypeSet `json:"-"`
}

// Types returns the type set for a position.
func (inv Inventory) Types(p Position) TypeSet {
	if p == PositionPrefix {
		return inv.Prefixes
	}
	return inv.Suffixes
}

// FilteredCorpus is a corpus restricted to the vocabulary of another corpus.
// Unlike a Corpus it may be empty.
type FilteredCorpus struct {
	Corpus

	// Against names the reference corpus whose vocabulary was applied.
	Against string
}

// LexicalFilter is the output of the vocabulary filter for a corpus pair.
type LexicalFilter struct {
	// A is the first corpus filtered against the second.
	A FilteredCorpus

	// B is the second corpus filtered against the first.
	B FilteredCorpus

	// SharedPrefixes lists prefixes present in both original corpora, sorted.
	SharedPrefixes []string

	// SharedSuffixes lists suffixes present in both original corpora, sorted.
	SharedSuffixes []string
}

// Shared returns the shared morphemes at a position.
func (f LexicalFilter) Shared(p Position) []string {
	if p == PositionPrefix {
		return f.SharedPrefixes
	}
	return f.SharedSuffixes
}
