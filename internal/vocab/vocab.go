// Package vocab loads the reference vocabulary used to classify words as
// known or unknown.
package vocab

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"textparser/internal/logging"
	"textparser/internal/scanerr"
	"textparser/internal/tokenize"
)

// Options controls how source lines become set members.
type Options struct {
	// Normalize passes every line through tokenize.Normalize and drops lines
	// that normalize to "". When false, lines are stored verbatim.
	Normalize bool
	Logger    *slog.Logger
}

// SourceStat reports how many members a single source contributed.
type SourceStat struct {
	Path  string
	Lines int
	Added int
	Err   error
}

// Store is an immutable set of reference words.
type Store struct {
	words   map[string]struct{}
	sources []SourceStat
}

// New builds a store directly from words, stored verbatim.
func New(words ...string) *Store {
	s := &Store{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w != "" {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// Load reads each source in order and merges its lines into one set. A source
// that cannot be read is logged, contributes nothing, and its error is
// returned alongside the store; loading always continues.
func Load(sources []string, opts Options) (*Store, []error) {
	logger := logging.NewComponentLogger(opts.Logger, "vocab")
	s := &Store{words: make(map[string]struct{})}
	var errs []error
	for _, path := range sources {
		stat := s.loadSource(path, opts.Normalize)
		s.sources = append(s.sources, stat)
		if stat.Err != nil {
			errs = append(errs, stat.Err)
			logging.WarnWithContext(logger, "vocabulary source skipped", "vocabulary_source_failed",
				logging.String("source", path),
				logging.Error(stat.Err),
				logging.String(logging.FieldErrorHint, "check vocabulary.sources paths and permissions"),
				logging.String(logging.FieldImpact, "words from this source are treated as unknown"),
			)
			continue
		}
		logger.Debug("vocabulary source loaded",
			logging.String("source", path),
			logging.Int("lines", stat.Lines),
			logging.Int("added", stat.Added),
		)
	}
	logger.Info("vocabulary ready",
		logging.Int("sources", len(sources)),
		logging.Int("failed_sources", len(errs)),
		logging.Int("words", len(s.words)),
	)
	return s, errs
}

func (s *Store) loadSource(path string, normalize bool) SourceStat {
	stat := SourceStat{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		stat.Err = scanerr.Wrap(scanerr.ErrVocabularyLoad, "vocab", "read", path, err)
		return stat
	}
	if !utf8.Valid(data) {
		stat.Err = scanerr.Wrap(scanerr.ErrVocabularyLoad, "vocab", "decode", fmt.Sprintf("%s is not valid UTF-8", path), nil)
		return stat
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		stat.Lines++
		if normalize {
			line = tokenize.Normalize(line)
			if line == "" {
				continue
			}
		}
		if _, exists := s.words[line]; !exists {
			s.words[line] = struct{}{}
			stat.Added++
		}
	}
	return stat
}

// Contains reports whether word is a member of the vocabulary.
func (s *Store) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct members.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Sources returns per-source load statistics in load order.
func (s *Store) Sources() []SourceStat {
	if s == nil {
		return nil
	}
	out := make([]SourceStat, len(s.sources))
	copy(out, s.sources)
	return out
}
