// Package main hosts the textparser CLI entrypoint and command graph.
//
// The Cobra-based command tree runs corpus scans, inspects single documents,
// reads back the run ledger (runs, chunks, top unknown words), runs preflight
// checks, and scaffolds configuration. It centralizes configuration
// resolution and logger setup so subcommands only wire internal packages
// together and render their results.
package main
