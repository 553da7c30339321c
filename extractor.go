package paleotext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tsawler/paleotext/format"
	"github.com/tsawler/paleotext/htmldoc"
	"github.com/tsawler/paleotext/layout"
	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/reader"
	"github.com/tsawler/paleotext/standard"
	"github.com/tsawler/paleotext/tables"
)

// Extractor provides a fluent interface for extracting blocks, tables,
// and text from NOAA study files in templated, legacy, or HTML form.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	format   format.Format
	lines    []string // set when constructed via FromLines

	// Readers (only one will be used based on format)
	reader     *reader.Reader  // plain-text reader
	htmlReader *htmldoc.Reader // HTML reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Parsed template preamble (Standard format only)
	meta *standard.Result

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	newExt := &Extractor{
		filename:     e.filename,
		format:       e.format,
		lines:        e.lines,
		reader:       e.reader,
		htmlReader:   e.htmlReader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		meta:         e.meta,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
	return newExt
}

// ensureReader opens the source if not already open and settles the
// format. Detection runs in two stages: extension first, then content
// once bytes are available.
func (e *Extractor) ensureReader() error {
	if e.readerOpened || e.lines != nil {
		return e.settleFormat()
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f := e.options.format
	if f == format.Unknown {
		f = format.Detect(e.filename)
	}

	switch f {
	case format.Proprietary:
		return fmt.Errorf("%s: proprietary archive formats (.crn, .rwl, .fhx, .lpd) need dedicated software; only text and HTML studies are supported", e.filename)

	case format.HTML:
		hr, err := htmldoc.Open(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open HTML: %w", err)
		}
		e.htmlReader = hr
		e.format = format.HTML
		e.ownsReader = true
		e.readerOpened = true
		return nil

	default:
		r, err := reader.Open(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		e.reader = r
		e.format = f
		e.ownsReader = true
		e.readerOpened = true
		return e.settleFormat()
	}
}

// settleFormat pins down the source format once content is available,
// and prepares the HTML reader when content detection finds markup
// behind a .txt extension.
func (e *Extractor) settleFormat() error {
	if e.options.format != format.Unknown {
		e.format = e.options.format
	}
	if e.format == format.Proprietary {
		return fmt.Errorf("proprietary archive formats need dedicated software; only text and HTML studies are supported")
	}

	if e.format == format.Unknown {
		switch {
		case e.lines != nil:
			e.format = format.DetectLines(e.lines)
			if e.format == format.Unknown {
				// Programmatic lines default to the block pipeline.
				e.format = format.NonStandard
			}
		case e.reader != nil:
			e.format = format.DetectContent(e.reader.Bytes())
		case e.htmlReader != nil:
			e.format = format.HTML
		}
	}

	if e.format == format.Unknown {
		return fmt.Errorf("unable to determine a parser for %s", e.name())
	}
	if e.format == format.HTML && e.htmlReader == nil {
		if e.reader == nil {
			return fmt.Errorf("HTML parsing needs file or reader input")
		}
		hr, err := htmldoc.OpenReader(bytes.NewReader(e.reader.Bytes()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}
		e.htmlReader = hr
	}
	return nil
}

// name returns a label for the source, for error messages.
func (e *Extractor) name() string {
	if e.filename != "" {
		return e.filename
	}
	if e.reader != nil && e.reader.Name() != "" {
		return e.reader.Name()
	}
	return "input"
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if !e.ownsReader {
		return nil
	}
	var err error
	if e.reader != nil {
		err = e.reader.Close()
		e.reader = nil
	}
	if e.htmlReader != nil {
		if cerr := e.htmlReader.Close(); err == nil {
			err = cerr
		}
		e.htmlReader = nil
	}
	e.ownsReader = false
	return err
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithFormat forces the source format instead of auto-detecting it.
// Useful for legacy files that lack the archive banner, or templated
// files whose preamble does not start in the first five lines.
//
// Example:
//
//	blocks, _, err := paleotext.Open("odd.txt").WithFormat(format.NonStandard).Blocks()
func (e *Extractor) WithFormat(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.format = f
	return newExt
}

// SkipToDataMarker requires a data descriptor line ("Data:",
// case-insensitive) and starts processing after it, discarding the
// metadata preamble. Extraction fails when no descriptor exists.
// This is the default for files carrying the NOAA archive banner.
//
// Example:
//
//	blocks, _, err := paleotext.Open("study.txt").SkipToDataMarker().Blocks()
func (e *Extractor) SkipToDataMarker() *Extractor {
	newExt := e.clone()
	newExt.options.marker = markerSkip
	return newExt
}

// ScanFromTop processes every line of the source, even when a data
// descriptor is present. The metadata preamble then segments into
// blocks like everything else (usually as narrative).
//
// Example:
//
//	blocks, _, err := paleotext.Open("study.txt").ScanFromTop().Blocks()
func (e *Extractor) ScanFromTop() *Extractor {
	newExt := e.clone()
	newExt.options.marker = markerScan
	return newExt
}

// StrictOnly disables the interval-overlap fallback for rows whose
// column count disagrees with the headers. Blocks that would have
// needed the fallback become error blocks, so every cell in the
// results came from an exact positional split.
//
// Example:
//
//	blocks, _, err := paleotext.Open("study.txt").StrictOnly().Blocks()
func (e *Extractor) StrictOnly() *Extractor {
	newExt := e.clone()
	newExt.options.strictOnly = true
	return newExt
}

// ExcludeNarrative drops narrative (prose) blocks from the results.
//
// Example:
//
//	blocks, _, err := paleotext.Open("study.txt").ExcludeNarrative().Blocks()
func (e *Extractor) ExcludeNarrative() *Extractor {
	newExt := e.clone()
	newExt.options.excludeNarrative = true
	return newExt
}

// ExcludeErrors drops error blocks from the results. Their warnings
// are still reported.
//
// Example:
//
//	blocks, _, err := paleotext.Open("study.txt").ExcludeErrors().Blocks()
func (e *Extractor) ExcludeErrors() *Extractor {
	newExt := e.clone()
	newExt.options.excludeErrors = true
	return newExt
}

// DetectedFormat reports the format the source was detected (or
// forced) to be.
// Note: This may read the file to make the determination. The reader
// remains open.
//
// Example:
//
//	ext := paleotext.Open("study.txt")
//	defer ext.Close()
//	f, err := ext.DetectedFormat()
func (e *Extractor) DetectedFormat() (format.Format, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	if err := e.ensureReader(); err != nil {
		return format.Unknown, err
	}
	return e.format, nil
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Blocks segments the source into blocks, classifies each one, and
// reconstructs the tables of the tabular ones. Blocks come back in
// file order. This is a terminal operation that closes the underlying
// reader.
//
// Returns the blocks, any warnings encountered during processing, and
// an error if extraction failed. Warnings indicate non-fatal issues
// (e.g., a block whose table could not be reconstructed) where
// extraction succeeded but results may be imperfect.
//
// Example:
//
//	blocks, warnings, err := paleotext.Open("study.txt").Blocks()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + paleotext.FormatWarnings(warnings))
//	}
func (e *Extractor) Blocks() ([]*model.Block, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	blocks, err := e.extract()
	if err != nil {
		return nil, e.warnings, err
	}
	return e.filterBlocks(blocks), e.warnings, nil
}

// Tables extracts just the reconstructed tables, in file order. Blocks
// without a table (narrative, header-only, error) contribute nothing.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	tables, warnings, err := paleotext.Open("study.txt").Tables()
func (e *Extractor) Tables() ([]*model.Table, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	blocks, err := e.extract()
	if err != nil {
		return nil, e.warnings, err
	}

	var result []*model.Table
	for _, b := range blocks {
		if b.Table != nil {
			result = append(result, b.Table)
		}
	}
	if len(result) == 0 {
		e.warnings = append(e.warnings, fileWarning(WarnNoTables, "no tables could be reconstructed from %s", e.name()))
	}
	return result, e.warnings, nil
}

// Text extracts the narrative content: the prose blocks of a legacy or
// HTML study, or the '#' preamble of a templated one, joined with
// blank lines. This is a terminal operation that closes the underlying
// reader.
//
// Example:
//
//	text, warnings, err := paleotext.Open("study.txt").ScanFromTop().Text()
func (e *Extractor) Text() (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return "", nil, err
	}
	defer e.Close()

	blocks, err := e.extract()
	if err != nil {
		return "", e.warnings, err
	}

	if e.format == format.Standard && e.meta != nil {
		return e.metaText(), e.warnings, nil
	}

	var result strings.Builder
	for _, b := range blocks {
		if b.Type != model.Narrative {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(b.Text())
	}
	return result.String(), e.warnings, nil
}

// metaText renders the parsed template preamble as "Key: Value" lines
// followed by the free-form comments.
func (e *Extractor) metaText() string {
	var result strings.Builder
	for _, f := range e.meta.Metadata {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(f.Key)
		result.WriteString(": ")
		result.WriteString(f.Value)
	}
	for _, c := range e.meta.Comments {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(c)
	}
	return result.String()
}

// Report runs a full extraction and returns everything in one place:
// the blocks, the detected format, template metadata when present, and
// the warnings. This is a terminal operation that closes the
// underlying reader.
//
// Example:
//
//	report, warnings, err := paleotext.Open("study.txt").Report()
//	fmt.Println(report.String())
func (e *Extractor) Report() (*Report, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	blocks, err := e.extract()
	if err != nil {
		return nil, e.warnings, err
	}

	r := &Report{
		Filename: e.filename,
		Format:   e.format,
		Blocks:   e.filterBlocks(blocks),
		Warnings: e.warnings,
	}
	if e.meta != nil {
		r.Metadata = e.meta.Metadata
		r.Comments = e.meta.Comments
	}
	if e.htmlReader != nil {
		r.Title = e.htmlReader.Title()
	}
	return r, e.warnings, nil
}

// ============================================================================
// Extraction pipeline
// ============================================================================

// extract dispatches to the parser for the settled format.
func (e *Extractor) extract() ([]*model.Block, error) {
	switch e.format {
	case format.Standard:
		return e.extractStandard()
	case format.HTML:
		return e.extractHTML()
	case format.NonStandard:
		return e.extractNonStandard(e.sourceLines())
	default:
		return nil, fmt.Errorf("unable to determine a parser for %s", e.name())
	}
}

// sourceLines returns the decoded source lines, recording an encoding
// warning when the file was not valid UTF-8.
func (e *Extractor) sourceLines() []string {
	if e.lines != nil {
		return e.lines
	}
	if e.reader == nil {
		return nil
	}
	if e.reader.Encoding() == reader.Windows1252 {
		e.warnings = append(e.warnings, fileWarning(WarnEncoding, "%s is not valid UTF-8; decoded as Windows-1252", e.name()))
	}
	return e.reader.Lines()
}

// extractNonStandard runs the block pipeline: optional skip to the
// data descriptor, segmentation, classification, and table
// construction.
func (e *Extractor) extractNonStandard(lines []string) ([]*model.Block, error) {
	cfg := tables.Config{
		SkipToDataMarker: e.skipToMarker(lines),
		DisableFallback:  e.options.strictOnly,
		Segmenter:        layout.DefaultConfig(),
	}
	proc := tables.NewProcessorWithConfig(cfg)
	blocks, err := proc.Process(lines)
	if err != nil {
		return nil, err
	}
	e.collectBlockWarnings(blocks)
	return blocks, nil
}

// skipToMarker decides whether the block pipeline starts at the data
// descriptor. Auto mode skips only when the content carries the NOAA
// archive banner, which always precedes a descriptor.
func (e *Extractor) skipToMarker(lines []string) bool {
	switch e.options.marker {
	case markerSkip:
		return true
	case markerScan:
		return false
	default:
		return format.DetectLines(lines) == format.NonStandard
	}
}

// extractStandard parses a templated file: '#' preamble into metadata,
// the rest into one tab-separated table wrapped in a single block.
func (e *Extractor) extractStandard() ([]*model.Block, error) {
	lines := e.sourceLines()
	res, err := standard.NewParser().Parse(lines)
	if err != nil {
		return nil, err
	}
	e.meta = res

	if res.Table == nil {
		return nil, nil
	}
	b := &model.Block{
		Index:     0,
		Start:     0,
		End:       len(lines) - 1,
		Type:      model.CompleteTabular,
		Delimiter: model.DelimiterTab,
		Headers:   headersFromColumns(res.Table.Columns),
		Table:     res.Table,
	}
	return []*model.Block{b}, nil
}

// extractHTML runs the block pipeline over the <pre> payloads and
// appends the document's native <table> elements as synthetic blocks.
func (e *Extractor) extractHTML() ([]*model.Block, error) {
	var blocks []*model.Block
	if lines := e.htmlReader.Lines(); len(lines) > 0 {
		var err error
		blocks, err = e.extractNonStandard(lines)
		if err != nil {
			return nil, err
		}
	}
	for _, t := range e.htmlReader.Tables() {
		b := &model.Block{
			// Synthetic block: markup tables have no source line extent.
			Index:     len(blocks),
			Start:     -1,
			End:       -1,
			Type:      model.CompleteTabular,
			Delimiter: model.DelimiterTab,
			Headers:   headersFromColumns(t.Columns),
			Table:     t,
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// headersFromColumns wraps plain column names as headers with empty
// intervals, for tables that never went through positional splitting.
func headersFromColumns(columns []string) []model.Header {
	headers := make([]model.Header, len(columns))
	for i, name := range columns {
		headers[i] = model.Header{Name: name}
	}
	return headers
}

// collectBlockWarnings records a warning for every failed block and
// every header borrow.
func (e *Extractor) collectBlockWarnings(blocks []*model.Block) {
	for _, b := range blocks {
		if b.Err != nil {
			e.warnings = append(e.warnings, blockWarning(WarnBlockFailed, b.Index, "%s", b.Err.Error()))
		}
		for _, borrower := range b.UsedAsHeaderFor {
			e.warnings = append(e.warnings, blockWarning(WarnBorrowedHeaders, borrower, "headers borrowed from block %d", b.Index))
		}
	}
}

// filterBlocks applies the exclusion options. Block indices are left
// untouched so header-borrow references stay valid.
func (e *Extractor) filterBlocks(blocks []*model.Block) []*model.Block {
	if !e.options.excludeNarrative && !e.options.excludeErrors {
		return blocks
	}
	result := make([]*model.Block, 0, len(blocks))
	for _, b := range blocks {
		if e.options.excludeNarrative && b.Type == model.Narrative {
			continue
		}
		if e.options.excludeErrors && b.Type == model.Error {
			continue
		}
		result = append(result, b)
	}
	return result
}
