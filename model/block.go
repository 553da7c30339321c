package model

import "strings"

// BlockType identifies the classification assigned to a block.
type BlockType int

const (
	// Unclassified is the zero value for blocks not yet processed.
	Unclassified BlockType = iota
	// Narrative marks free text with no structured payload.
	Narrative
	// HeaderOnly marks a block containing column names but no data rows.
	HeaderOnly
	// Data marks regular data rows with no local headers; headers must be
	// borrowed from an earlier block.
	Data
	// Tabular marks an imperfect or variable-width table.
	Tabular
	// CompleteTabular marks a perfectly regular table with its own headers.
	CompleteTabular
	// Error marks a block whose classification or construction failed.
	Error
)

// String returns a human-readable representation of the block type.
func (bt BlockType) String() string {
	switch bt {
	case Narrative:
		return "narrative"
	case HeaderOnly:
		return "header_only"
	case Data:
		return "data"
	case Tabular:
		return "tabular"
	case CompleteTabular:
		return "complete_tabular"
	case Error:
		return "error"
	default:
		return "unclassified"
	}
}

// Delimiter identifies a column-separator convention.
type Delimiter int

const (
	// DelimiterNone means no delimiter has been chosen.
	DelimiterNone Delimiter = iota
	// DelimiterTab splits on a single tab character.
	DelimiterTab
	// DelimiterMultiSpace splits on a run of two or more spaces.
	DelimiterMultiSpace
	// DelimiterSingleSpace splits on any run of whitespace.
	DelimiterSingleSpace
)

// String returns a human-readable representation of the delimiter.
func (d Delimiter) String() string {
	switch d {
	case DelimiterTab:
		return "tab"
	case DelimiterMultiSpace:
		return "multi"
	case DelimiterSingleSpace:
		return "single"
	default:
		return "none"
	}
}

// TokenCount holds the token count and numeric-token fraction of one line
// under one delimiter kind.
type TokenCount struct {
	Count        int
	NumericRatio float64
}

// LineInfo holds the per-line measurements computed during segmentation.
// It is immutable once computed.
type LineInfo struct {
	Index  int    // zero-based line index in the source file
	Text   string // raw line text, newline stripped
	Length int    // character count of Text

	Tab         TokenCount
	MultiSpace  TokenCount
	SingleSpace TokenCount
}

// ForDelimiter returns the token measurements for the given delimiter.
func (li LineInfo) ForDelimiter(d Delimiter) TokenCount {
	switch d {
	case DelimiterTab:
		return li.Tab
	case DelimiterMultiSpace:
		return li.MultiSpace
	default:
		return li.SingleSpace
	}
}

// DelimiterStats aggregates per-line token statistics for one delimiter kind
// across a whole block.
type DelimiterStats struct {
	Mean         float64 // mean token count per line
	CV           float64 // coefficient of variation of token counts
	Mode         int     // most frequent token count, ties broken by larger value
	NumericRatio float64 // mean fraction of numeric tokens
}

// Regular reports whether the block is perfectly regular under this
// delimiter: every line yields the same non-trivial token count.
func (ds DelimiterStats) Regular() bool {
	return ds.CV == 0 && ds.Mode > 1
}

// BlockStats holds aggregate statistics for a block.
type BlockStats struct {
	Tab         DelimiterStats
	MultiSpace  DelimiterStats
	SingleSpace DelimiterStats

	LineCount   int     // number of lines in the block
	MeanLineLen float64 // mean character length of lines
	LineLenCV   float64 // coefficient of variation of line lengths
}

// ForDelimiter returns the aggregate statistics for the given delimiter.
func (bs BlockStats) ForDelimiter(d Delimiter) DelimiterStats {
	switch d {
	case DelimiterTab:
		return bs.Tab
	case DelimiterMultiSpace:
		return bs.MultiSpace
	default:
		return bs.SingleSpace
	}
}

// Block represents one contiguous run of non-blank lines and everything the
// pipeline derived from it. A Block is created once during segmentation and
// mutated in place exactly once during classification and construction; no
// block is revisited after processing completes.
type Block struct {
	Index int // sequential zero-based block index in file order
	Start int // source line index of the first line (inclusive)
	End   int // source line index of the last line (inclusive)

	Lines []LineInfo
	Stats BlockStats

	Type         BlockType
	Title        string // standalone caption line, empty when absent
	Headers      []Header
	HeaderExtent int // leading lines consumed as header/title
	Delimiter    Delimiter

	Table *Table      // reconstructed table, nil when none
	Err   *ParseError // block-local failure, nil when none

	// UsedAsHeaderFor lists the indices of later blocks that borrowed this
	// block's headers. Append-only.
	UsedAsHeaderFor []int
}

// LineCount returns the number of lines in the block.
func (b *Block) LineCount() int {
	if b == nil {
		return 0
	}
	return len(b.Lines)
}

// Text returns the block's raw lines joined with newlines.
func (b *Block) Text() string {
	if b == nil || len(b.Lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, li := range b.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(li.Text)
	}
	return sb.String()
}

// HasHeaders reports whether the block carries at least one header.
func (b *Block) HasHeaders() bool {
	return b != nil && len(b.Headers) > 0
}

// HeaderNames returns the header display names in column order.
func (b *Block) HeaderNames() []string {
	if b == nil || len(b.Headers) == 0 {
		return nil
	}
	names := make([]string, len(b.Headers))
	for i, h := range b.Headers {
		names[i] = h.Name
	}
	return names
}

// DataLines returns the lines following the header extent.
func (b *Block) DataLines() []LineInfo {
	if b == nil || b.HeaderExtent >= len(b.Lines) {
		return nil
	}
	return b.Lines[b.HeaderExtent:]
}

// RecordBorrower appends a borrowing block's index to the back-reference
// list.
func (b *Block) RecordBorrower(index int) {
	b.UsedAsHeaderFor = append(b.UsedAsHeaderFor, index)
}

// SetError records a block-local failure and marks the block as Error.
func (b *Block) SetError(err *ParseError) {
	b.Type = Error
	b.Err = err
}
