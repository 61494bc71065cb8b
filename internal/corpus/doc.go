// Package corpus discovers documents under a root directory and decodes them
// into text.
//
// Walk visits regular files whose extension matches the configured list in
// lexical order. ReadDocument strips a UTF-8 byte order mark and either
// validates UTF-8 strictly or converts from a named legacy encoding resolved
// through golang.org/x/text. Every failure is wrapped with a scanerr marker
// so the scan driver can isolate it to a single document.
package corpus
