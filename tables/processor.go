package tables

import (
	"errors"
	"strings"

	"github.com/tsawler/paleotext/layout"
	"github.com/tsawler/paleotext/model"
)

// Config holds configuration options for the Processor.
type Config struct {
	// SkipToDataMarker starts processing after the first line beginning
	// with "data:" (case-insensitive), the descriptor that separates a
	// NOAA file's metadata preamble from its payload. Processing fails
	// when no such line exists.
	SkipToDataMarker bool

	// DisableFallback turns off interval-overlap assignment for rows
	// whose column count disagrees with the headers. Blocks that need
	// the fallback become error blocks instead.
	DisableFallback bool

	// Segmenter configures block segmentation.
	Segmenter layout.Config
}

// DefaultConfig returns the configuration used for NOAA-style files:
// skip to the data descriptor, default segmentation.
func DefaultConfig() Config {
	return Config{
		SkipToDataMarker: true,
		Segmenter:        layout.DefaultConfig(),
	}
}

// Processor classifies segmented blocks and reconstructs their tables.
type Processor struct {
	config Config
}

// NewProcessor creates a Processor with default configuration.
func NewProcessor() *Processor {
	return &Processor{config: DefaultConfig()}
}

// NewProcessorWithConfig creates a Processor with custom configuration.
func NewProcessorWithConfig(config Config) *Processor {
	return &Processor{config: config}
}

// Process runs the pipeline over raw lines: optional skip to the data
// descriptor, segmentation into blocks, then per-block classification
// and table construction. Failures during construction are recorded on
// the affected block and do not stop the run; the only error returned
// is a missing data descriptor.
func (p *Processor) Process(lines []string) ([]*model.Block, error) {
	start := 0
	if p.config.SkipToDataMarker {
		idx := FindDataMarker(lines)
		if idx < 0 {
			return nil, model.NewParseError(model.MissingDataMarker, "No Data Descriptor found in the file.")
		}
		start = idx + 1
	}

	seg := layout.NewSegmenterWithConfig(p.config.Segmenter)
	blocks := seg.SegmentRange(lines, start, len(lines))
	for i, b := range blocks {
		p.processBlock(blocks, b, i)
	}
	return blocks, nil
}

// FindDataMarker returns the index of the first line starting with the
// case-insensitive prefix "data:", or -1 when no line does.
func FindDataMarker(lines []string) int {
	for i, line := range lines {
		if len(line) >= 5 && strings.EqualFold(line[:5], "data:") {
			return i
		}
	}
	return -1
}

// processBlock computes statistics, classifies the block, and
// dispatches to the builder for its type. Narrative blocks need no
// further work.
func (p *Processor) processBlock(blocks []*model.Block, b *model.Block, idx int) {
	b.Stats = layout.ComputeStats(b)
	b.Type = Classify(b)

	switch b.Type {
	case model.CompleteTabular:
		p.parseCompleteTabular(b)
	case model.Tabular:
		p.parseTabular(blocks, b, idx)
	case model.HeaderOnly:
		p.parseHeaderOnly(b)
	case model.Data:
		p.parseData(blocks, b, idx)
	}
}

func (p *Processor) parseCompleteTabular(b *model.Block) {
	table, err := BuildTable(b.Lines, b.Delimiter, b.Headers, b.HeaderExtent)
	if err != nil {
		b.SetError(blockError(err, "Failed to parse complete tabular block"))
		return
	}
	b.Table = table
}

func (p *Processor) parseTabular(blocks []*model.Block, b *model.Block, idx int) {
	if err := p.buildTabular(blocks, b, idx); err != nil {
		b.SetError(blockError(err, "Failed to parse tabular block"))
	}
}

// buildTabular handles imperfect tables: settle a delimiter, find or
// borrow headers, then build with positional splitting and fall back to
// interval assignment when rows disagree with the header count.
func (p *Processor) buildTabular(blocks []*model.Block, b *model.Block, idx int) error {
	if b.Delimiter == model.DelimiterNone {
		b.Delimiter = ChooseDelimiter(b.Stats, false)
	}
	if b.Delimiter == model.DelimiterNone {
		return model.NewParseError(model.NoDelimiter, "Could not determine a suitable delimiter.")
	}

	if len(b.Headers) == 0 {
		headers, extent := ExtractHeaders(b, b.Delimiter)
		b.Headers = headers
		b.HeaderExtent = extent
	}

	if len(b.Headers) == 0 {
		prev := findHeaderSource(blocks, idx)
		if prev == nil {
			return model.NewParseError(model.NoHeaders, "No headers found in block and no preceding headers to borrow.")
		}
		b.Headers = prev.Headers
		b.Delimiter = prev.Delimiter
		b.HeaderExtent = 0
		prev.RecordBorrower(b.Index)
	}

	table, err := p.buildWithFallback(b.Lines, b.Delimiter, b.Headers, b.HeaderExtent)
	if err != nil {
		return err
	}
	b.Table = table
	return nil
}

func (p *Processor) parseHeaderOnly(b *model.Block) {
	if b.Delimiter == model.DelimiterNone {
		b.Delimiter = ChooseDelimiter(b.Stats, false)
	}

	if len(b.Headers) == 0 && b.Delimiter != model.DelimiterNone {
		headers, extent := ExtractHeaders(b, b.Delimiter)
		b.Headers = headers
		b.HeaderExtent = extent
	}

	if len(b.Headers) == 0 {
		err := model.NewParseError(model.NoHeaders, "Could not extract headers from header-only block.")
		b.SetError(blockError(err, "Failed to parse header block"))
	}
}

func (p *Processor) parseData(blocks []*model.Block, b *model.Block, idx int) {
	if err := p.buildData(blocks, b, idx); err != nil {
		b.SetError(blockError(err, "Failed to parse data block"))
	}
}

// buildData handles blocks of data rows with no headers of their own.
// Headers and delimiter are always borrowed; the borrow is recorded on
// the lender only once construction succeeds.
func (p *Processor) buildData(blocks []*model.Block, b *model.Block, idx int) error {
	prev := findHeaderSource(blocks, idx)
	if prev == nil {
		return model.NewParseError(model.NoHeaders, "No preceding headers found for this data block.")
	}

	b.Headers = prev.Headers
	b.Delimiter = prev.Delimiter
	b.HeaderExtent = 0

	table, err := p.buildWithFallback(b.Lines, b.Delimiter, b.Headers, 0)
	if err != nil {
		return err
	}
	b.Table = table
	prev.RecordBorrower(b.Index)
	return nil
}

// buildWithFallback tries the strict positional builder first and falls
// back to overlap assignment when a row's column count disagrees with
// the headers.
func (p *Processor) buildWithFallback(lines []model.LineInfo, d model.Delimiter, headers []model.Header, extent int) (*model.Table, error) {
	table, err := BuildTable(lines, d, headers, extent)
	if err == nil {
		return table, nil
	}
	if p.config.DisableFallback || !errors.Is(err, model.ErrColumnCountMismatch) {
		return nil, err
	}
	return AssignByOverlap(lines, d, headers, extent)
}

// findHeaderSource scans backward from idx for the nearest block able
// to lend headers: a HeaderOnly, CompleteTabular, or Tabular block with
// both headers and a delimiter.
func findHeaderSource(blocks []*model.Block, idx int) *model.Block {
	for i := idx - 1; i >= 0; i-- {
		prev := blocks[i]
		switch prev.Type {
		case model.HeaderOnly, model.CompleteTabular, model.Tabular:
			if prev.HasHeaders() && prev.Delimiter != model.DelimiterNone {
				return prev
			}
		}
	}
	return nil
}

// blockError wraps a construction failure with block context, keeping
// the original error kind when there is one.
func blockError(err error, context string) *model.ParseError {
	kind := model.ConstructionFailure
	var pe *model.ParseError
	if errors.As(err, &pe) {
		kind = pe.Kind
	}
	return model.NewParseError(kind, "%s: %s", context, err)
}
