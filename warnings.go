package paleotext

import (
	"fmt"
	"strings"
)

// WarningCode identifies the category of a non-fatal issue encountered
// during extraction.
type WarningCode int

const (
	// WarnBlockFailed indicates a block could not be classified or its
	// table could not be reconstructed. The block is kept in the
	// results as an error block carrying the failure.
	WarnBlockFailed WarningCode = iota + 1

	// WarnBorrowedHeaders indicates a block had no headers of its own
	// and borrowed them from an earlier block. The reconstruction is
	// usually right, but the pairing is heuristic.
	WarnBorrowedHeaders

	// WarnEncoding indicates the source was not valid UTF-8 and was
	// decoded as Windows-1252, the encoding legacy archive submissions
	// use.
	WarnEncoding

	// WarnNoTables indicates extraction succeeded but no block yielded
	// a table.
	WarnNoTables
)

// String returns a short identifier for the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnBlockFailed:
		return "block-failed"
	case WarnBorrowedHeaders:
		return "borrowed-headers"
	case WarnEncoding:
		return "encoding"
	case WarnNoTables:
		return "no-tables"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue encountered during extraction.
// Extraction succeeded but results may be imperfect.
type Warning struct {
	// Code categorizes the warning.
	Code WarningCode

	// Block is the index of the affected block, or -1 when the warning
	// applies to the whole file.
	Block int

	// Message is a human-readable description.
	Message string
}

// String returns the warning formatted for display.
func (w Warning) String() string {
	if w.Block >= 0 {
		return fmt.Sprintf("[%s] block %d: %s", w.Code, w.Block, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings as a newline-separated string
// suitable for logging. Returns the empty string for no warnings.
//
// Example:
//
//	blocks, warnings, err := paleotext.Open("study.txt").Blocks()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + paleotext.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}

// fileWarning builds a warning that is not tied to a single block.
func fileWarning(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Block: -1, Message: fmt.Sprintf(format, args...)}
}

// blockWarning builds a warning tied to a block index.
func blockWarning(code WarningCode, block int, format string, args ...any) Warning {
	return Warning{Code: code, Block: block, Message: fmt.Sprintf(format, args...)}
}
