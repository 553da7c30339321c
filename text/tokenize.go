package text

import (
	"strings"
	"unicode"

	"github.com/tsawler/paleotext/model"
)

// Token is one delimited field of a line together with the half-open
// character interval it occupies. Positions are rune columns.
type Token struct {
	Text     string
	Interval model.Interval
}

// Fields splits a line under the given delimiter and reports each token's
// character interval. Intervals cover the trimmed token extent: they start
// at the token's first non-space character and end after its last. Under
// the multi-space delimiter a single interior whitespace character stays
// inside a token; only runs of two or more separate tokens.
func Fields(line string, d model.Delimiter) []Token {
	runes := []rune(line)
	switch d {
	case model.DelimiterTab:
		return fieldsTab(runes)
	case model.DelimiterMultiSpace:
		return fieldsMultiSpace(runes)
	default:
		return fieldsSingleSpace(runes)
	}
}

// Split returns the token texts of Fields.
func Split(line string, d model.Delimiter) []string {
	fields := Fields(line, d)
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Text
	}
	return out
}

// CountTokens returns the number of tokens in the line under the delimiter.
func CountTokens(line string, d model.Delimiter) int {
	return len(Fields(line, d))
}

// NumericRatio returns the fraction of the line's tokens that are numeric,
// 0 for a line with no tokens.
func NumericRatio(line string, d model.Delimiter) float64 {
	tokens := Split(line, d)
	if len(tokens) == 0 {
		return 0
	}
	numeric := 0
	for _, tok := range tokens {
		if IsNumeric(tok) {
			numeric++
		}
	}
	return float64(numeric) / float64(len(tokens))
}

// Pattern returns the 'N'/'S' signature of a token sequence, one letter
// per token, 'N' when the token is numeric.
func Pattern(tokens []string) string {
	var sb strings.Builder
	sb.Grow(len(tokens))
	for _, tok := range tokens {
		if IsNumeric(tok) {
			sb.WriteByte('N')
		} else {
			sb.WriteByte('S')
		}
	}
	return sb.String()
}

// Signature returns the line's Pattern under the given delimiter.
func Signature(line string, d model.Delimiter) string {
	return Pattern(Split(line, d))
}

func fieldsSingleSpace(runes []rune) []Token {
	var tokens []Token
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, Token{
			Text:     string(runes[start:i]),
			Interval: model.Interval{Start: start, End: i},
		})
	}
	return tokens
}

func fieldsMultiSpace(runes []rune) []Token {
	var tokens []Token
	n := len(runes)
	i := 0
	for i < n {
		for i < n && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		lastNonSpace := i
		for i < n {
			if !unicode.IsSpace(runes[i]) {
				lastNonSpace = i
				i++
				continue
			}
			// Measure the whitespace run: a single character stays inside
			// the token, two or more end it.
			j := i
			for j < n && unicode.IsSpace(runes[j]) {
				j++
			}
			if j-i >= 2 || j == n {
				break
			}
			i = j
		}
		tokens = append(tokens, Token{
			Text:     string(runes[start : lastNonSpace+1]),
			Interval: model.Interval{Start: start, End: lastNonSpace + 1},
		})
	}
	return tokens
}

func fieldsTab(runes []rune) []Token {
	var tokens []Token
	segStart := 0
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\t' {
			continue
		}
		if tok, ok := trimSegment(runes, segStart, i); ok {
			tokens = append(tokens, tok)
		}
		segStart = i + 1
	}
	return tokens
}

// trimSegment narrows [start, end) to the segment's non-space extent.
// Whitespace-only segments yield no token.
func trimSegment(runes []rune, start, end int) (Token, bool) {
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if start >= end {
		return Token{}, false
	}
	return Token{
		Text:     string(runes[start:end]),
		Interval: model.Interval{Start: start, End: end},
	}, true
}
