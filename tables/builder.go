package tables

import (
	"math"

	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/text"
)

// BuildTable constructs a table by splitting each data line under the
// delimiter and mapping tokens to columns by position. Lines before
// headerExtent are skipped. Every data row must produce exactly one
// token per header; a row with any other count fails with a
// ColumnCountMismatch error so the caller can fall back to
// AssignByOverlap.
func BuildTable(lines []model.LineInfo, d model.Delimiter, headers []model.Header, headerExtent int) (*model.Table, error) {
	if d == model.DelimiterNone {
		return nil, model.NewParseError(model.NoDelimiter, "table construction requires a delimiter")
	}
	if len(headers) == 0 {
		return nil, model.NewParseError(model.NoHeaders, "table construction requires headers")
	}

	table := model.NewTable(headerNames(headers))
	for _, ln := range dataLines(lines, headerExtent) {
		tokens := text.Split(ln.Text, d)
		if len(tokens) != len(headers) {
			return nil, model.NewParseError(model.ColumnCountMismatch,
				"Column count (%d) does not match header count (%d)", len(tokens), len(headers))
		}
		row := make([]model.Cell, len(tokens))
		for i, tok := range tokens {
			row[i] = model.NewCell(tok)
		}
		table.AddRow(row)
	}
	return table, nil
}

// AssignByOverlap constructs a table by assigning each token to the
// header whose character interval overlaps it the most, falling back to
// the nearest header when a token overlaps none. Ties go to the earlier
// header. A token landing in an occupied cell is appended after a
// space, so wrapped fragments rejoin their column.
func AssignByOverlap(lines []model.LineInfo, d model.Delimiter, headers []model.Header, headerExtent int) (*model.Table, error) {
	if d == model.DelimiterNone {
		return nil, model.NewParseError(model.NoDelimiter, "interval assignment requires a delimiter")
	}
	if len(headers) == 0 {
		return nil, model.NewParseError(model.NoHeaders, "interval assignment requires headers")
	}

	table := model.NewTable(headerNames(headers))
	for _, ln := range dataLines(lines, headerExtent) {
		row := make([]model.Cell, len(headers))
		for _, tok := range text.Fields(ln.Text, d) {
			col := bestColumn(tok.Interval, headers)
			if col < 0 {
				continue
			}
			row[col].Append(tok.Text)
		}
		table.AddRow(row)
	}
	return table, nil
}

// bestColumn returns the index of the header with the largest overlap
// with the interval, or, when nothing overlaps, the smallest distance.
// The earlier header wins ties.
func bestColumn(iv model.Interval, headers []model.Header) int {
	best, bestOverlap := -1, 0
	for j, h := range headers {
		if ov := iv.Overlap(h.Interval); ov > bestOverlap {
			best, bestOverlap = j, ov
		}
	}
	if best >= 0 {
		return best
	}

	bestDist := math.MaxInt
	for j, h := range headers {
		if dist := iv.Distance(h.Interval); dist < bestDist {
			best, bestDist = j, dist
		}
	}
	return best
}

func headerNames(headers []model.Header) []string {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.Name
	}
	return names
}

func dataLines(lines []model.LineInfo, extent int) []model.LineInfo {
	if extent < 0 {
		extent = 0
	}
	if extent > len(lines) {
		return nil
	}
	return lines[extent:]
}
