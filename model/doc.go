// Package model provides the intermediate representation (IR) for parsed
// semi-structured data files.
//
// This package defines the user-facing data structures produced by the
// parsing pipeline. All segmentation, classification, and table
// reconstruction operations ultimately produce these types, making them the
// primary API for consuming parse results.
//
// # Blocks
//
// The [Block] type represents one contiguous run of non-blank lines from the
// source file, together with everything the pipeline derived from it: its
// [BlockType] classification, per-line statistics, extracted or borrowed
// column headers, the chosen [Delimiter], and the reconstructed [Table] when
// one exists.
//
// The closed set of block classifications:
//
//   - [Narrative] - free text, no structured payload
//   - [HeaderOnly] - column names only, no data rows
//   - [Data] - regular data rows with no local headers (headers are borrowed)
//   - [Tabular] - an imperfect or variable-width table
//   - [CompleteTabular] - a perfectly regular table with its own headers
//   - [Error] - classification or construction failed for this block
//
// # Headers and Intervals
//
// A [Header] pairs a column name with the half-open character [Interval] it
// occupied in its source line(s). Intervals are character columns, never
// indices into a split result, and are the basis for the overlap/proximity
// token assignment used to rebuild misaligned tables.
//
// # Tables
//
// The [Table] type holds ordered rows of named string cells. Cells that were
// never assigned a token are explicitly absent rather than empty strings.
// Export methods: ToCSV() and ToMarkdown().
//
// # Errors
//
// Parse failures travel as [ParseError] values carrying an [ErrorKind]. Only
// [MissingDataMarker] aborts a whole parse; every other kind is local to one
// block and is recorded on that block without stopping its siblings.
package model
