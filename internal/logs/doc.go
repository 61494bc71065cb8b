// Package logs reads the tail of append-only text files.
//
// The CLI uses it to show the last lines of the scan log or the report file
// and to follow either one while a scan is appending to it. Reads are
// bounded: Last keeps only the requested number of lines in memory.
package logs
