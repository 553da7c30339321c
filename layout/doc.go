// Package layout segments raw text lines into contiguous blocks and
// computes the statistics that drive delimiter selection and block
// classification.
//
// # Segmentation
//
// The [Segmenter] splits a line sequence into blocks at blank lines:
//
//	seg := layout.NewSegmenter()
//	blocks := seg.Segment(lines)
//
// Each block records its source line range and carries a [model.LineInfo]
// for every line, precomputed by [AnalyzeLine] with token counts and
// numeric ratios under each candidate delimiter.
//
// # Statistics
//
// [ComputeStats] reduces a block's per-line statistics to block-level
// aggregates: mean token count, coefficient of variation, and modal token
// count per delimiter, plus line-count and line-length figures. A block
// whose token counts have zero variation under some delimiter splits into
// the same number of columns on every line, which is the signal the
// classifier uses to recognize well-formed tables.
package layout
