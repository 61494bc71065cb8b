// Package preflight provides readiness checks for the filesystem paths and
// settings a scan depends on.
//
// These checks run in two contexts:
//   - The scan command calls RunAll before acquiring the scan lock and
//     refuses to start when the corpus root or report sink is unusable.
//   - The CLI "textparser check" command prints every result as a table.
//
// A missing vocabulary source is reported but never fatal: the scan proceeds
// with a smaller vocabulary.
package preflight
