// Package store persists scan runs in SQLite.
//
// The ledger records one row per run, one row per visited document with its
// outcome, every emitted chunk with its source offsets, and the most recent
// unknown-word frequency snapshot of each run. The CLI reads it back to list
// runs, chunks, and top unknown words after a scan has finished.
//
// Schema changes bump schemaVersion in schema.go; users delete the database
// to adopt the new schema.
package store
