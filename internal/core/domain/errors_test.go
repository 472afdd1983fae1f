package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInputFormat", ErrInputFormat},
		{"ErrEmptyCorpus", ErrEmptyCorpus},
		{"ErrEmptyTypeSet", ErrEmptyTypeSet},
		{"ErrEqualSize", ErrEqualSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{ErrNotFound, ErrInvalidInput, ErrInputFormat, ErrEmptyCorpus, ErrEmptyTypeSet, ErrEqualSize}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("read corpus: %w", ErrEmptyCorpus)
	assert.True(t, errors.Is(wrapped, ErrEmptyCorpus))
	assert.False(t, errors.Is(wrapped, ErrInputFormat))
}

func TestInputFormatError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := &InputFormatError{Path: "a.txt", Line: 3, Text: "ab", Reason: "missing separator"}
		assert.Equal(t, `a.txt:3: missing separator: "ab"`, err.Error())
	})

	t.Run("without path", func(t *testing.T) {
		err := &InputFormatError{Line: 7, Text: "a_b_c", Reason: "more than one separator"}
		assert.Equal(t, `line 7: more than one separator: "a_b_c"`, err.Error())
	})

	t.Run("matches ErrInputFormat", func(t *testing.T) {
		var err error = &InputFormatError{Line: 1}
		wrapped := fmt.Errorf("load: %w", err)
		assert.True(t, errors.Is(wrapped, ErrInputFormat))

		var target *InputFormatError
		assert.True(t, errors.As(wrapped, &target))
		assert.Equal(t, 1, target.Line)
	})
}
