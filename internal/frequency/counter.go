// Package frequency counts unknown words across a corpus and reports the most
// frequent ones to an append-only sink.
package frequency

import "sort"

// Entry is a word with its occurrence count.
type Entry struct {
	Word  string
	Count int
}

// Counter maps words to occurrence counts. Counts only grow. The zero value
// is ready to use. Counter is not safe for concurrent use.
type Counter struct {
	counts map[string]int
	total  int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of word.
func (c *Counter) Add(word string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[word]++
	c.total++
}

// Count returns the occurrences recorded for word.
func (c *Counter) Count(word string) int {
	return c.counts[word]
}

// Len returns the number of distinct words.
func (c *Counter) Len() int {
	return len(c.counts)
}

// Total returns the number of occurrences recorded across all words.
func (c *Counter) Total() int {
	return c.total
}

// Ranked returns every entry sorted by count descending. Equal counts are
// ordered by word ascending so the result is deterministic.
func (c *Counter) Ranked() []Entry {
	entries := make([]Entry, 0, len(c.counts))
	for word, count := range c.counts {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Top returns at most n ranked entries.
func (c *Counter) Top(n int) []Entry {
	if n <= 0 {
		return nil
	}
	ranked := c.Ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
