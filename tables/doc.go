// Package tables reconstructs tabular data from segmented text blocks.
//
// It classifies each block by its token statistics, picks a column
// delimiter, finds and merges header lines, and builds a table by
// mapping tokens to columns.
//
// # Processing
//
// The [Processor] runs the whole pipeline over raw lines:
//
//	proc := tables.NewProcessor()
//	blocks, err := proc.Process(lines)
//
// Every returned block carries its classification. Blocks that hold
// data also carry a [model.Table], or a block-local error when
// construction failed. Only a missing data descriptor aborts the whole
// run.
//
// # Classification
//
// [Classify] sorts blocks into six types: narrative text, header-only
// blocks, headerless data, imperfect tables, perfectly regular tables,
// and failures. Regularity is judged by the coefficient of variation of
// per-line token counts under each candidate delimiter.
//
// # Construction
//
// Two builders turn lines into tables. [BuildTable] splits rows
// positionally and requires every row to match the header count.
// [AssignByOverlap] is the fallback for misaligned rows: it assigns
// each token to the header whose character interval overlaps it most,
// or failing any overlap, the nearest one.
//
// # Header Borrowing
//
// Data blocks carry no headers of their own. The processor resolves
// them against the nearest preceding block with usable headers and
// records the borrow on the lender's UsedAsHeaderFor list.
package tables
