package vocab_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"textparser/internal/scanerr"
	"textparser/internal/vocab"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadMergesSourcesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	lemmas := writeSource(t, dir, "lemmas.txt", "the\ncat\r\nSat\n\n")
	cities := writeSource(t, dir, "cities.txt", "New-York\nx\nRome2\n")

	store, errs := vocab.Load([]string{lemmas, cities}, vocab.Options{Normalize: true})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, w := range []string{"the", "cat", "sat", "newyork"} {
		if !store.Contains(w) {
			t.Fatalf("expected %q in vocabulary", w)
		}
	}
	for _, w := range []string{"Sat", "x", "rome2", "rome", ""} {
		if store.Contains(w) {
			t.Fatalf("did not expect %q in vocabulary", w)
		}
	}
	if store.Len() != 4 {
		t.Fatalf("expected 4 words, got %d", store.Len())
	}
	stats := store.Sources()
	if len(stats) != 2 || stats[0].Added != 3 || stats[1].Added != 1 {
		t.Fatalf("unexpected source stats: %#v", stats)
	}
}

func TestLoadVerbatimKeepsRawLines(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "extra.txt", "Paris\nhello world\r\n")

	store, errs := vocab.Load([]string{src}, vocab.Options{Normalize: false})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !store.Contains("Paris") || !store.Contains("hello world") {
		t.Fatalf("expected verbatim members, got %d words", store.Len())
	}
	if store.Contains("paris") {
		t.Fatal("verbatim load must not lowercase")
	}
}

func TestLoadMissingSourceIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "f_names.txt", "anna\n")
	missing := filepath.Join(dir, "s_names.txt")

	store, errs := vocab.Load([]string{missing, good}, vocab.Options{Normalize: true})
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if !errors.Is(errs[0], scanerr.ErrVocabularyLoad) {
		t.Fatalf("expected vocabulary load error, got %v", errs[0])
	}
	if !store.Contains("anna") {
		t.Fatal("expected words from the readable source")
	}
}

func TestLoadRejectsInvalidUTF8Source(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.txt", "ok\n\xff\xfe\n")

	store, errs := vocab.Load([]string{bad}, vocab.Options{Normalize: true})
	if len(errs) != 1 || !errors.Is(errs[0], scanerr.ErrVocabularyLoad) {
		t.Fatalf("expected vocabulary load error, got %v", errs)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestNilStore(t *testing.T) {
	var store *vocab.Store
	if store.Contains("any") || store.Len() != 0 || store.Sources() != nil {
		t.Fatal("nil store should be empty")
	}
}

func TestNewStoresVerbatim(t *testing.T) {
	store := vocab.New("the", "", "mat")
	if store.Len() != 2 || !store.Contains("mat") {
		t.Fatalf("unexpected store: %d", store.Len())
	}
}
