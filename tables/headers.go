package tables

import (
	"sort"

	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/text"
)

// DetectHeaderExtent counts how many leading lines of a block are
// header lines under the given delimiter. It returns the extent
// together with the index of a detected title line within the block, or
// -1 when the block has no title.
//
// The first line is a title when it yields a single non-numeric token.
// Counting starts after any title. A line counts toward the extent when
// every token is non-numeric, or, for the first counted line only, when
// every token is numeric and the following line is all non-numeric.
// That last rule keeps a numeric column-index row stacked above a text
// column-name row inside the header.
func DetectHeaderExtent(b *model.Block, d model.Delimiter) (extent, title int) {
	title = -1
	patterns := make([]string, len(b.Lines))
	for i, ln := range b.Lines {
		patterns[i] = text.Signature(ln.Text, d)
	}
	if len(patterns) > 0 && patterns[0] == "S" {
		title = 0
	}

	start := 0
	if title >= 0 {
		start = 1
	}
	for i := start; i < len(patterns); i++ {
		allS := uniform(patterns[i], 'S')
		allN := uniform(patterns[i], 'N')
		nextAllS := i+1 < len(patterns) && uniform(patterns[i+1], 'S')
		if allS || (i == start && allN && nextAllS) {
			extent++
			continue
		}
		break
	}
	return extent, title
}

// ExtractHeaders identifies the block's header lines under the given
// delimiter and returns one Header per column together with the header
// extent: the number of leading lines consumed as title or header. The
// block's Title and HeaderExtent are recorded as a side effect.
// Multi-line headers are merged by interval overlap.
func ExtractHeaders(b *model.Block, d model.Delimiter) ([]model.Header, int) {
	count, title := DetectHeaderExtent(b, d)
	start := 0
	if title >= 0 {
		start = 1
		b.Title = b.Lines[title].Text
	}
	extent := start + count
	b.HeaderExtent = extent
	if count == 0 {
		return nil, extent
	}

	headerLines := b.Lines[start : start+count]
	if count == 1 {
		fields := text.Fields(headerLines[0].Text, d)
		headers := make([]model.Header, len(fields))
		for i, f := range fields {
			headers[i] = model.Header{Name: f.Text, Interval: f.Interval}
		}
		return headers, extent
	}

	rows := make([][]text.Token, len(headerLines))
	for i, ln := range headerLines {
		rows[i] = text.Fields(ln.Text, d)
	}
	return MergeHeaders(rows), extent
}

// MergeHeaders merges multiple lines of header tokens into one header
// list. The first line's tokens seed the list; each later token joins
// the first header whose interval overlaps it, appending its text and
// widening the interval to the union. A token overlapping nothing
// becomes a new header. The result is sorted by interval start.
func MergeHeaders(rows [][]text.Token) []model.Header {
	if len(rows) == 0 {
		return nil
	}

	headers := make([]model.Header, 0, len(rows[0]))
	for _, tok := range rows[0] {
		headers = append(headers, model.Header{Name: tok.Text, Interval: tok.Interval})
	}

	for _, row := range rows[1:] {
		for _, tok := range row {
			matched := false
			for i := range headers {
				if headers[i].Interval.Overlaps(tok.Interval) {
					headers[i].Name += " " + tok.Text
					headers[i].Interval = headers[i].Interval.Union(tok.Interval)
					matched = true
					break
				}
			}
			if !matched {
				headers = append(headers, model.Header{Name: tok.Text, Interval: tok.Interval})
			}
		}
	}

	sort.SliceStable(headers, func(i, j int) bool {
		return headers[i].Interval.Start < headers[j].Interval.Start
	})
	return headers
}

// uniform reports whether every character of pattern equals c.
func uniform(pattern string, c byte) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != c {
			return false
		}
	}
	return true
}
