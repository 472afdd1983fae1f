// Package domain defines the core business entities for morpho.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Token: A (prefix, suffix) pair forming one construction
//   - Corpus: An ordered sequence of tokens read from one input file
//   - MorphemeRecord: The creativity (CRE) of one morpheme in one sample
//   - AggregateStat: Sample-level CRE and triteness (TRI) figures
//   - Comparison: Everything a two-corpus run produces
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
