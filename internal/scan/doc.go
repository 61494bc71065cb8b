// Package scan drives a corpus scan end to end.
//
// A Scanner walks the corpus root, decodes and tokenizes each document,
// segments it into known-word chunks while counting unknown words in one
// shared frequency counter, and appends the top unknown words to the report
// sink after every K-th processed document. Each run, its documents, chunks,
// and latest frequency snapshot are written to the ledger when one is
// configured.
//
// Runs are single-threaded. An exclusive file lock keeps two scans from
// appending to the same report file or ledger at once.
package scan
