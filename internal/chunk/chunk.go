// Package chunk groups consecutive vocabulary-known tokens into chunks and
// counts the unknown tokens that separate them.
package chunk

import (
	"strings"
	"unicode/utf8"

	"textparser/internal/frequency"
	"textparser/internal/tokenize"
)

// SizeMin is the shortest assembled chunk, in runes, that is emitted. The
// assembled length counts every word plus one trailing space per word.
const SizeMin = 10

// Lookup answers vocabulary membership for a normalized word.
type Lookup interface {
	Contains(word string) bool
}

// Chunk is a maximal run of known words with its inclusive rune span in the
// source text. The span covers any punctuation and separators that
// normalization removed between the words.
type Chunk struct {
	Text  string
	Start int
	End   int
}

// Source returns the original text covered by the chunk.
func (c Chunk) Source(text string) string {
	return tokenize.Span(text, c.Start, c.End)
}

// Words returns the number of words in the chunk.
func (c Chunk) Words() int {
	if c.Text == "" {
		return 0
	}
	return strings.Count(c.Text, " ") + 1
}

type accumulator struct {
	text  strings.Builder
	runes int
	start int
}

func (a *accumulator) reset() {
	a.text.Reset()
	a.runes = 0
}

func (a *accumulator) ready(minSize int) bool {
	return a.runes > 0 && a.runes >= minSize
}

func (a *accumulator) emit(end int) Chunk {
	return Chunk{
		Text:  strings.TrimSuffix(a.text.String(), " "),
		Start: a.start,
		End:   end,
	}
}

// Segment walks tokens in order, adding each unknown word to freq and
// returning every maximal run of known words whose assembled length reaches
// SizeMin. Shorter runs are dropped and never merged across an unknown word.
func Segment(tokens []tokenize.Token, vocab Lookup, freq *frequency.Counter) []Chunk {
	return SegmentMin(tokens, vocab, freq, SizeMin)
}

// SegmentMin is Segment with an explicit minimum assembled length.
func SegmentMin(tokens []tokenize.Token, vocab Lookup, freq *frequency.Counter, minSize int) []Chunk {
	var (
		chunks  []Chunk
		acc     accumulator
		pending = true
		prevEnd int
	)
	for _, tok := range tokens {
		if !vocab.Contains(tok.Word) {
			if freq != nil {
				freq.Add(tok.Word)
			}
			if acc.ready(minSize) {
				chunks = append(chunks, acc.emit(prevEnd))
			}
			acc.reset()
			pending = true
			prevEnd = tok.End
			continue
		}
		if pending {
			acc.start = tok.Start
			pending = false
		}
		acc.text.WriteString(tok.Word)
		acc.text.WriteByte(' ')
		acc.runes += utf8.RuneCountInString(tok.Word) + 1
		prevEnd = tok.End
	}
	if acc.ready(minSize) {
		chunks = append(chunks, acc.emit(prevEnd))
	}
	return chunks
}
