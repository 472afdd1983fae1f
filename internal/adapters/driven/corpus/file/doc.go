// Package file reads and writes corpora in the prefix_suffix line format.
//
// Each non-blank line holds one token: a prefix and a suffix joined by a
// single underscore. Windows line endings are accepted. Underscores inside
// a morpheme cannot be represented.
package file
