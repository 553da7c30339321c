package paleotext

import "github.com/tsawler/paleotext/format"

// markerMode selects how the data descriptor line ("Data:") is
// handled before segmentation.
type markerMode int

const (
	// markerAuto skips to the descriptor only when the content carries
	// the NOAA archive banner, which always precedes one.
	markerAuto markerMode = iota
	// markerSkip requires a descriptor and starts after it.
	markerSkip
	// markerScan processes every line from the top.
	markerScan
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Format override (Unknown means auto-detect)
	format format.Format

	// Data descriptor handling
	marker markerMode

	// Table construction
	strictOnly bool // no interval-overlap fallback for ragged rows

	// Result filtering
	excludeNarrative bool
	excludeErrors    bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		format:           format.Unknown, // auto-detect
		marker:           markerAuto,
		strictOnly:       false,
		excludeNarrative: false,
		excludeErrors:    false,
	}
}

// clone creates a copy of ExtractOptions. All fields are values, so a
// plain copy is a deep copy.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
