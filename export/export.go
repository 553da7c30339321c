// Package export renders extracted blocks as CSV, TSV, JSON, JSON
// Lines or Markdown.
//
// Tabular formats write one header-plus-rows section per reconstructed
// table, separated by a blank line. The JSON formats serialize every
// block, keeping narrative text and block-level errors alongside the
// tables.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/paleotext/model"
)

// Format identifies an output encoding.
type Format int

const (
	// CSV writes comma-separated values, one section per table.
	CSV Format = iota
	// TSV writes tab-separated values, one section per table.
	TSV
	// JSON writes a single array of block records.
	JSON
	// JSONL writes one compact block record per line.
	JSONL
	// Markdown writes titles, narrative paragraphs and pipe tables.
	Markdown
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	case JSON:
		return "json"
	case JSONL:
		return "jsonl"
	case Markdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a format name, accepting "md" as an alias for
// Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "tsv":
		return TSV, nil
	case "json":
		return JSON, nil
	case "jsonl":
		return JSONL, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", s)
	}
}

// Config holds the exporter options.
type Config struct {
	// IncludeProvenance prepends a "block" column carrying the block
	// index to every tabular row, so rows from different tables stay
	// attributable after concatenation.
	IncludeProvenance bool

	// Indent pretty-prints JSON output. JSONL is always compact.
	Indent bool
}

// DefaultConfig returns the default exporter options.
func DefaultConfig() Config {
	return Config{Indent: true}
}

// Exporter writes blocks in one output format. It is stateless and
// safe for concurrent use.
type Exporter struct {
	format Format
	config Config
}

// New creates an Exporter with the default configuration.
func New(format Format) *Exporter {
	return NewWithConfig(format, DefaultConfig())
}

// NewWithConfig creates an Exporter with the given configuration.
func NewWithConfig(format Format, config Config) *Exporter {
	return &Exporter{format: format, config: config}
}

// Export writes the blocks to w in the exporter's format.
func (e *Exporter) Export(blocks []*model.Block, w io.Writer) error {
	switch e.format {
	case CSV:
		return e.exportDelimited(blocks, w, ',')
	case TSV:
		return e.exportDelimited(blocks, w, '\t')
	case JSON:
		return e.exportJSON(blocks, w)
	case JSONL:
		return e.exportJSONL(blocks, w)
	case Markdown:
		return e.exportMarkdown(blocks, w)
	default:
		return fmt.Errorf("unsupported export format %d", e.format)
	}
}

// ExportToFile writes the blocks to the named file, creating or
// truncating it.
func (e *Exporter) ExportToFile(blocks []*model.Block, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := e.Export(blocks, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToString renders the blocks to a string.
func (e *Exporter) ExportToString(blocks []*model.Block) (string, error) {
	var sb strings.Builder
	if err := e.Export(blocks, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// exportDelimited writes every block that carries a table as a
// header-plus-rows section, sections separated by a blank line.
func (e *Exporter) exportDelimited(blocks []*model.Block, w io.Writer, comma rune) error {
	first := true
	for _, b := range blocks {
		if b.Table == nil {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		cw := csv.NewWriter(w)
		cw.Comma = comma

		header := b.Table.Columns
		if e.config.IncludeProvenance {
			header = append([]string{"block"}, header...)
		}
		if err := cw.Write(header); err != nil {
			return err
		}

		for _, row := range b.Table.Rows {
			record := make([]string, 0, len(row)+1)
			if e.config.IncludeProvenance {
				record = append(record, strconv.Itoa(b.Index))
			}
			for _, cell := range row {
				record = append(record, cell.Value)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}

// BlockRecord is the JSON shape of one exported block. Narrative and
// error blocks keep their raw text; tabular blocks carry their columns
// and one map per row.
type BlockRecord struct {
	Index     int                 `json:"index"`
	Type      string              `json:"type"`
	Start     int                 `json:"start"`
	End       int                 `json:"end"`
	Title     string              `json:"title,omitempty"`
	Delimiter string              `json:"delimiter,omitempty"`
	Columns   []string            `json:"columns,omitempty"`
	Records   []map[string]string `json:"records,omitempty"`
	Text      string              `json:"text,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// NewBlockRecord converts a block to its export shape.
func NewBlockRecord(b *model.Block) BlockRecord {
	rec := BlockRecord{
		Index: b.Index,
		Type:  b.Type.String(),
		Start: b.Start,
		End:   b.End,
		Title: b.Title,
	}
	if b.Delimiter != model.DelimiterNone {
		rec.Delimiter = b.Delimiter.String()
	}
	if b.Table != nil {
		rec.Columns = b.Table.Columns
		rec.Records = b.Table.Records()
	}
	if b.Type == model.Narrative || b.Type == model.Error {
		rec.Text = b.Text()
	}
	if b.Err != nil {
		rec.Error = b.Err.Message
	}
	return rec
}

func (e *Exporter) exportJSON(blocks []*model.Block, w io.Writer) error {
	records := make([]BlockRecord, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, NewBlockRecord(b))
	}
	enc := json.NewEncoder(w)
	if e.config.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}

func (e *Exporter) exportJSONL(blocks []*model.Block, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, b := range blocks {
		if err := enc.Encode(NewBlockRecord(b)); err != nil {
			return err
		}
	}
	return nil
}

// exportMarkdown writes titles as level-three headings, narrative
// blocks as paragraphs and tables as pipe tables. Error blocks are
// skipped.
func (e *Exporter) exportMarkdown(blocks []*model.Block, w io.Writer) error {
	var chunks []string
	for _, b := range blocks {
		if b.Type == model.Error {
			continue
		}
		if b.Title != "" {
			chunks = append(chunks, "### "+b.Title+"\n")
		}
		switch {
		case b.Table != nil:
			chunks = append(chunks, b.Table.ToMarkdown())
		case b.Type == model.Narrative:
			chunks = append(chunks, b.Text()+"\n")
		}
	}
	_, err := io.WriteString(w, strings.Join(chunks, "\n"))
	return err
}
