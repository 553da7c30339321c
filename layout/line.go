package layout

import (
	"unicode/utf8"

	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/text"
)

// AnalyzeLine computes token statistics for a single line under every
// candidate delimiter. The index records the line's position in the
// source file.
func AnalyzeLine(index int, line string) model.LineInfo {
	return model.LineInfo{
		Index:       index,
		Text:        line,
		Length:      utf8.RuneCountInString(line),
		Tab:         countTokens(line, model.DelimiterTab),
		MultiSpace:  countTokens(line, model.DelimiterMultiSpace),
		SingleSpace: countTokens(line, model.DelimiterSingleSpace),
	}
}

func countTokens(line string, d model.Delimiter) model.TokenCount {
	return model.TokenCount{
		Count:        text.CountTokens(line, d),
		NumericRatio: text.NumericRatio(line, d),
	}
}
