package text

import (
	"regexp"
	"strings"
)

var (
	// Footnote and unit marks commonly appended to numbers in data files.
	trailingMarksRE = regexp.MustCompile(`[†‡*°%‰§#^~+]+$`)

	// Plain signed decimal or exponential number, ASCII digits only.
	numberRE = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

	// Value followed by a trailing parenthetical, e.g. "6.80 (8.98)".
	pairRE = regexp.MustCompile(`^(.*?\S)\s*\(([^()]*)\)\s*$`)

	// Hyphen, non-breaking hyphen, figure dash, en dash, em dash, minus.
	dashReplacer = strings.NewReplacer(
		"‐", "-",
		"‑", "-",
		"‒", "-",
		"–", "-",
		"—", "-",
		"−", "-",
	)
)

// IsNumeric reports whether a token represents a number. It recognizes
// plain signed decimal/exponential values, dash-joined ranges, uncertainty
// pairs ("1.5 ± 0.1", "6.80 (8.98)"), bracket-wrapped values,
// replacement-character clusters from legacy encodings, and
// whitespace-separated clusters of independently numeric tokens. It never
// fails; unrecognized input is simply not numeric.
func IsNumeric(token string) bool {
	t := stripWrappingBrackets(strings.TrimSpace(token))
	if t == "" {
		return false
	}

	tNorm := normalizePiece(t)
	if isPlainNumber(tNorm) {
		return true
	}

	// Value followed by a parenthetical, e.g. "6.80 (8.98)".
	if m := pairRE.FindStringSubmatch(t); m != nil {
		left := normalizePiece(stripWrappingBrackets(m[1]))
		inside := normalizePiece(stripWrappingBrackets(m[2]))
		return (isPlainNumber(left) || IsNumeric(left)) &&
			(isPlainNumber(inside) || IsNumeric(inside))
	}

	// Replacement-character separated cluster, legacy in some archive files.
	if strings.ContainsRune(t, '�') {
		parts := splitNonEmpty(t, "�")
		if len(parts) == 0 {
			return false
		}
		return allNumeric(parts)
	}

	// Standard uncertainty pair.
	if strings.Contains(t, "±") {
		parts := splitNonEmpty(t, "±")
		return len(parts) == 2 && allNumeric(parts)
	}

	// Numeric range joined by a dash after normalization.
	if strings.Contains(tNorm, "-") {
		if pieces := splitNonEmpty(tNorm, "-"); len(pieces) == 2 && allNumeric(pieces) {
			return true
		}
	}

	// Whitespace-separated cluster of independently numeric tokens.
	if parts := strings.Fields(t); len(parts) > 1 && allNumeric(parts) {
		return true
	}

	return isPlainNumber(normalizePiece(stripWrappingBrackets(tNorm)))
}

// stripWrappingBrackets removes wrapping brackets and parentheses
// recursively, trimming whitespace at each step.
func stripWrappingBrackets(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 &&
		strings.IndexByte("([{", s[0]) >= 0 &&
		strings.IndexByte(")]}", s[len(s)-1]) >= 0 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// normalizePiece prepares a string for numeric matching: thousands
// separators removed, trailing marks stripped, dash variants unified.
func normalizePiece(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = trailingMarksRE.ReplaceAllString(strings.TrimSpace(s), "")
	s = dashReplacer.Replace(s)
	return strings.TrimSpace(s)
}

func isPlainNumber(s string) bool {
	return numberRE.MatchString(s)
}

func allNumeric(parts []string) bool {
	for _, p := range parts {
		if !IsNumeric(p) {
			return false
		}
	}
	return true
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
