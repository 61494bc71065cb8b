package testsupport

import (
	"context"
	"testing"
	"time"

	"textparser/internal/config"
	"textparser/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// BeginRun creates a running run for tests using the provided store.
func BeginRun(t testing.TB, st *store.Store, id, root string) *store.Run {
	t.Helper()

	run, err := st.BeginRun(context.Background(), id, root, time.Now())
	if err != nil {
		t.Fatalf("store.BeginRun: %v", err)
	}
	return run
}
