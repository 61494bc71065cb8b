package corpus_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"textparser/internal/corpus"
	"textparser/internal/scanerr"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWalkVisitsMatchingFilesInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), []byte("b"))
	writeFile(t, filepath.Join(root, "a.TXT"), []byte("a"))
	writeFile(t, filepath.Join(root, "nested", "deep", "c.txt"), []byte("c"))
	writeFile(t, filepath.Join(root, "notes.md"), []byte("skip"))
	writeFile(t, filepath.Join(root, "txt"), []byte("skip"))

	entries, err := corpus.Collect(context.Background(), root, []string{"txt"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	var rels []string
	for _, e := range entries {
		rels = append(rels, e.Rel)
	}
	want := []string{"a.TXT", "b.txt", "nested/deep/c.txt"}
	if !reflect.DeepEqual(rels, want) {
		t.Fatalf("unexpected entries: %v", rels)
	}
	if entries[0].Size != 1 {
		t.Fatalf("expected size recorded, got %d", entries[0].Size)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	err := corpus.Walk(context.Background(), filepath.Join(t.TempDir(), "absent"), nil, nil,
		func(context.Context, corpus.Entry) error { return nil })
	if !errors.Is(err, scanerr.ErrRootMissing) {
		t.Fatalf("expected root missing error, got %v", err)
	}
}

func TestWalkRootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, path, []byte("x"))
	err := corpus.Walk(context.Background(), path, nil, nil,
		func(context.Context, corpus.Entry) error { return nil })
	if !errors.Is(err, scanerr.ErrRootMissing) {
		t.Fatalf("expected root missing error, got %v", err)
	}
}

func TestWalkStopsOnCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(root, "b.txt"), []byte("b"))

	ctx, cancel := context.WithCancel(context.Background())
	visited := 0
	err := corpus.Walk(ctx, root, nil, nil, func(context.Context, corpus.Entry) error {
		visited++
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if visited != 1 {
		t.Fatalf("expected one visit, got %d", visited)
	}
}

func TestReadDocumentStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.txt")
	writeFile(t, path, append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello world")...))

	doc, err := corpus.ReadDocument(path, "")
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if doc.Text != "hello world" || doc.Bytes != 14 {
		t.Fatalf("unexpected document: %#v", doc)
	}
}

func TestReadDocumentRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	writeFile(t, path, []byte("ok \xff bad"))

	_, err := corpus.ReadDocument(path, "utf-8")
	if !errors.Is(err, scanerr.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := corpus.ReadDocument(filepath.Join(t.TempDir(), "none.txt"), "utf-8")
	if !errors.Is(err, scanerr.ErrDocumentRead) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestReadDocumentLegacyEncoding(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("Привет мир")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "cp1251.txt")
	writeFile(t, path, []byte(encoded))

	doc, err := corpus.ReadDocument(path, "windows-1251")
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if doc.Text != "Привет мир" {
		t.Fatalf("unexpected text %q", doc.Text)
	}
}

func TestLookupEncoding(t *testing.T) {
	if _, isUTF8, err := corpus.LookupEncoding("UTF8"); err != nil || !isUTF8 {
		t.Fatalf("expected utf-8 label to resolve, got %v %v", isUTF8, err)
	}
	if _, isUTF8, err := corpus.LookupEncoding("koi8-r"); err != nil || isUTF8 {
		t.Fatalf("expected koi8-r to resolve, got %v %v", isUTF8, err)
	}
	if _, _, err := corpus.LookupEncoding("klingon"); err == nil {
		t.Fatal("expected unsupported encoding error")
	}
}
