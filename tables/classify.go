package tables

import (
	"github.com/tsawler/paleotext/model"
)

// Classify determines a block's type from its aggregate statistics.
// When a perfectly regular delimiter is found, the headers, header
// extent, and delimiter it yields are recorded on the block.
//
// The decision procedure, in order:
//
//  1. Text-dominated blocks (mean numeric ratio under the single-space
//     delimiter below 0.25) are Narrative when the multi-space mode is
//     exactly 1, or HeaderOnly when a wider delimiter splits them into
//     columns and the block is at most six lines.
//  2. Blocks with no perfectly regular delimiter are Tabular.
//  3. Otherwise headers are extracted with the regular delimiter:
//     headers followed by data rows mean CompleteTabular, headers with
//     no data rows mean HeaderOnly, and data rows with no header lines
//     mean Data.
func Classify(b *model.Block) model.BlockType {
	stats := b.Stats
	if stats.SingleSpace.NumericRatio < 0.25 {
		if stats.MultiSpace.Mode == 1 {
			return model.Narrative
		}
		if (stats.MultiSpace.Mode > 1 || stats.Tab.Mode > 1) && stats.LineCount <= 6 {
			return model.HeaderOnly
		}
	}

	d := ChooseDelimiter(stats, true)
	if d == model.DelimiterNone {
		return model.Tabular
	}

	headers, extent := ExtractHeaders(b, d)
	if len(headers) == 0 {
		b.Delimiter = d
		return model.Data
	}

	b.Headers = headers
	b.HeaderExtent = extent
	b.Delimiter = d
	if extent < stats.LineCount {
		return model.CompleteTabular
	}
	return model.HeaderOnly
}
