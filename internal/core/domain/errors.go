package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Corpus Errors.

	// ErrInputFormat indicates a corpus record is not a single prefix_suffix pair.
	ErrInputFormat = errors.New("malformed corpus record")

	// ErrEmptyCorpus indicates a corpus (or a filtered corpus) has no tokens.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrEmptyTypeSet indicates a position has no morpheme types, so TRI is undefined.
	ErrEmptyTypeSet = errors.New("empty type set")

	// Resampling Signals.

	// ErrEqualSize signals that both filtered corpora have the same number of
	// tokens. No size confound exists and resampling is skipped.
	// It is an early-exit signal, not a failure.
	ErrEqualSize = errors.New("filtered corpora have equal size, no resampling necessary")
)

// InputFormatError describes a malformed record in a corpus file.
type InputFormatError struct {
	// Path is the corpus the record came from. May be empty for streams.
	Path string

	// Line is the 1-based line number of the record.
	Line int

	// Text is the offending record.
	Text string

	// Reason explains what is wrong with the record.
	Reason string
}

// Error implements error.
func (e *InputFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s:%d: %s: %q", e.Path, e.Line, e.Reason, e.Text)
}

// Unwrap lets errors.Is match ErrInputFormat.
func (e *InputFormatError) Unwrap() error {
	return ErrInputFormat
}
