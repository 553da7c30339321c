// Package text provides token-level analysis of raw data file lines.
//
// This package handles the two leaf concerns everything above it depends
// on: deciding whether a token represents a number, and splitting lines
// into tokens with their character positions.
//
// # Numeric Classification
//
// [IsNumeric] recognizes the notations found in human-authored scientific
// data files:
//
//   - plain signed decimal and exponential numbers
//   - dash-joined ranges ("61-63", including en/em dash variants)
//   - uncertainty pairs ("1.5 ± 0.1", "6.80 (8.98)")
//   - bracket-wrapped values ("(90)", "[12.4]")
//   - values with trailing footnote or unit marks ("12.3°", "100†")
//   - replacement-character clusters left behind by legacy encodings
//   - whitespace-separated clusters of independently numeric tokens
//
// It is pure and never fails; unrecognized input is simply not numeric.
//
// # Tokenization
//
// [Fields] splits a line under one of three delimiter conventions (tab,
// run of two or more spaces, any whitespace run) and reports each token's
// half-open character interval. Positions are rune columns so that
// interval math lines up across lines containing multibyte characters.
// [Split], [CountTokens], [NumericRatio], and [Signature] are convenience
// forms over the same tokenization.
package text
