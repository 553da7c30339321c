// Package paleotext provides a fluent API for recovering tables and
// text from the loosely structured data files in the NOAA
// paleoclimatology archive.
//
// Basic usage:
//
//	blocks, warnings, err := paleotext.Open("study.txt").Blocks()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + paleotext.FormatWarnings(warnings))
//	}
//
// With options:
//
//	tables, _, err := paleotext.Open("study.txt").
//	    SkipToDataMarker().
//	    ExcludeNarrative().
//	    Tables()
//
// For advanced use cases, the lower-level layout and tables packages
// are also available.
package paleotext

import (
	"fmt"

	"github.com/tsawler/paleotext/ocr"
	"github.com/tsawler/paleotext/reader"
)

// Open opens a data file and returns an Extractor for fluent
// configuration. The file format (templated text, legacy text, or
// HTML) is detected automatically and can be forced with WithFormat.
// The returned Extractor must be closed when done, either explicitly
// via Close() or implicitly when calling a terminal operation like
// Blocks().
//
// Example:
//
//	blocks, warnings, err := paleotext.Open("study.txt").Blocks()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened
// reader.Reader. This is useful when you need more control over the
// reader lifecycle, or when the content came from somewhere other
// than a file (use reader.NewFromBytes for in-memory content).
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("study.txt")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	blocks, warnings, err := paleotext.FromReader(r).Blocks()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// FromLines creates an Extractor from decoded text lines. This is the
// programmatic entry point for content that is already split into
// lines. When format detection is inconclusive the lines are treated
// as a legacy study processed from the first line.
//
// Example:
//
//	blocks, warnings, err := paleotext.FromLines(lines).Blocks()
func FromLines(lines []string) *Extractor {
	if lines == nil {
		lines = []string{}
	}
	return &Extractor{
		lines:   lines,
		options: defaultOptions(),
	}
}

// FromScan runs OCR on a scanned data sheet image and returns an
// Extractor over the recognized lines. PNG, JPEG, GIF, TIFF, and BMP
// scans are accepted.
//
// OCR support is compiled in with the "ocr" build tag and needs
// Tesseract installed; without the tag every terminal operation
// reports ocr.ErrOCRNotEnabled.
//
// Example:
//
//	blocks, warnings, err := paleotext.FromScan("sheet.png").Blocks()
func FromScan(filename string) *Extractor {
	client, err := ocr.New()
	if err != nil {
		return &Extractor{err: err, options: defaultOptions()}
	}
	defer client.Close()

	lines, err := client.RecognizeLines(filename)
	if err != nil {
		return &Extractor{
			err:     fmt.Errorf("failed to scan %s: %w", filename, err),
			options: defaultOptions(),
		}
	}
	return FromLines(lines)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := paleotext.Must(paleotext.Open("study.txt").DetectedFormat())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustBlocks is a helper that wraps a call to Blocks(), Tables(), or
// any other terminal operation and panics if the error is non-nil. It
// discards warnings and returns just the value. It is intended for use
// in scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	blocks := paleotext.MustBlocks(paleotext.Open("study.txt").Blocks())
func MustBlocks[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
