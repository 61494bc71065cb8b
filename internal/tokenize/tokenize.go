package tokenize

import (
	"strings"
	"unicode"
)

// MinWordLength is the shortest normalized word, in runes, that survives.
const MinWordLength = 2

// Token is a normalized word with its inclusive rune span in the source text.
type Token struct {
	Word  string
	Start int
	End   int
}

// Normalize strips non-alphanumeric runes from raw and lowercases the result.
// It returns "" when the stripped word contains a decimal digit or is shorter
// than MinWordLength runes.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	count := 0
	for _, r := range raw {
		if !isAlnum(r) {
			continue
		}
		if unicode.IsDigit(r) {
			return ""
		}
		b.WriteRune(unicode.ToLower(r))
		count++
	}
	if count < MinWordLength {
		return ""
	}
	return b.String()
}

// Tokenize splits text into tokens in document order. Raw words that
// normalize to "" are dropped without widening their neighbours' spans.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	var raw strings.Builder
	pos := 0
	for _, r := range text {
		if isSeparator(r) {
			if start >= 0 {
				tokens = appendToken(tokens, raw.String(), start, pos-1)
				raw.Reset()
				start = -1
			}
		} else {
			if start < 0 {
				start = pos
			}
			raw.WriteRune(r)
		}
		pos++
	}
	if start >= 0 {
		tokens = appendToken(tokens, raw.String(), start, pos-1)
	}
	return tokens
}

// Span returns the runes of text between the inclusive offsets start and end.
// Out-of-range offsets are clamped.
func Span(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	var b strings.Builder
	pos := 0
	for _, r := range text {
		if pos > end {
			break
		}
		if pos >= start {
			b.WriteRune(r)
		}
		pos++
	}
	return b.String()
}

func appendToken(tokens []Token, raw string, start, end int) []Token {
	word := Normalize(raw)
	if word == "" {
		return tokens
	}
	return append(tokens, Token{Word: word, Start: start, End: end})
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\n' || r == '\r'
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
