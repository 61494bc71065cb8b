// Package tokenize splits document text into normalized word tokens.
//
// Words are separated by space, line feed, and carriage return only; every
// other rune belongs to a word. Each raw word is normalized by dropping
// non-alphanumeric runes, rejecting words with digits or fewer than
// MinWordLength runes, and lowercasing the rest. Classification uses the
// unicode package tables shipped with the Go toolchain so output never
// depends on the host locale.
//
// Token offsets are inclusive rune positions into the original text, which
// lets callers recover the exact source span of any token or chunk.
package tokenize
