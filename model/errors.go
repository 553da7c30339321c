package model

import "fmt"

// ErrorKind identifies the failure category of a ParseError.
type ErrorKind int

const (
	// MissingDataMarker means the caller requested skipping to a data
	// descriptor line and none was found. Fatal: no blocks are produced.
	MissingDataMarker ErrorKind = iota + 1
	// NoDelimiter means no viable column separator could be chosen for a
	// block.
	NoDelimiter
	// NoHeaders means neither local nor borrowed headers were available.
	NoHeaders
	// ColumnCountMismatch means a strict-builder row's token count
	// disagreed with the header count.
	ColumnCountMismatch
	// ConstructionFailure covers any other failure during table assembly.
	ConstructionFailure
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case MissingDataMarker:
		return "missing_data_marker"
	case NoDelimiter:
		return "no_delimiter"
	case NoHeaders:
		return "no_headers"
	case ColumnCountMismatch:
		return "column_count_mismatch"
	case ConstructionFailure:
		return "construction_failure"
	default:
		return "unknown"
	}
}

// ParseError describes a parse failure. Only MissingDataMarker aborts a
// whole parse; every other kind is recorded on its block and processing
// continues with the next block.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

// NewParseError creates a ParseError with a formatted message.
func NewParseError(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// Fatal reports whether the error aborts the whole parse rather than a
// single block.
func (e *ParseError) Fatal() bool {
	return e.Kind == MissingDataMarker
}

// Is matches any ParseError of the same kind, so callers can test against
// the kind sentinels below with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrMissingDataMarker   = &ParseError{Kind: MissingDataMarker, Message: "missing data marker"}
	ErrNoDelimiter         = &ParseError{Kind: NoDelimiter, Message: "no delimiter"}
	ErrNoHeaders           = &ParseError{Kind: NoHeaders, Message: "no headers"}
	ErrColumnCountMismatch = &ParseError{Kind: ColumnCountMismatch, Message: "column count mismatch"}
	ErrConstructionFailure = &ParseError{Kind: ConstructionFailure, Message: "construction failure"}
)
