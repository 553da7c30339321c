// Package standard parses templated NOAA data files. The template is
// the well-behaved cousin of the legacy archive format: every metadata
// line starts with '#', the first uncommented line names the columns,
// and the rest of the file is tab-separated rows.
package standard

import (
	"strings"

	"github.com/tsawler/paleotext/model"
)

// Field is one parsed metadata entry from a '# Key: Value' line.
type Field struct {
	Key   string
	Value string
}

// Result holds everything a templated file contains: the metadata
// fields and free-form comments from the '#' preamble, and the data
// table. Table is nil when the file has no uncommented lines.
type Result struct {
	Metadata []Field
	Comments []string
	Table    *model.Table
}

// Meta returns the value of the first metadata field with the given
// key, and whether one exists.
func (r *Result) Meta(key string) (string, bool) {
	for _, f := range r.Metadata {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Config holds configuration options for the Parser.
type Config struct {
	// CommentPrefix marks metadata lines. Only lines starting with the
	// prefix in column zero count; an indented '#' is data.
	CommentPrefix string
}

// DefaultConfig returns the configuration for the NOAA template.
func DefaultConfig() Config {
	return Config{CommentPrefix: "#"}
}

// Parser parses templated data files.
type Parser struct {
	config Config
}

// NewParser creates a Parser with default configuration.
func NewParser() *Parser {
	return &Parser{config: DefaultConfig()}
}

// NewParserWithConfig creates a Parser with custom configuration.
func NewParserWithConfig(config Config) *Parser {
	return &Parser{config: config}
}

// Parse splits lines into the '#' preamble and the tab-separated
// table. The first uncommented non-blank line provides the column
// names; every following non-blank line becomes a row. Short rows are
// padded with absent cells and long rows lose their overflow, so a
// stray extra tab never fails the file.
func (p *Parser) Parse(lines []string) (*Result, error) {
	result := &Result{}

	var dataLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, p.config.CommentPrefix) {
			p.parseComment(result, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		dataLines = append(dataLines, line)
	}

	if len(dataLines) == 0 {
		return result, nil
	}

	table := model.NewTable(strings.Split(dataLines[0], "\t"))
	for _, line := range dataLines[1:] {
		pieces := strings.Split(line, "\t")
		cells := make([]model.Cell, len(pieces))
		for i, piece := range pieces {
			cells[i] = model.NewCell(piece)
		}
		table.AddRow(cells)
	}
	result.Table = table
	return result, nil
}

// parseComment files a comment line as a metadata field when it has
// the '# Key: Value' shape, otherwise as a free-form comment.
func (p *Parser) parseComment(result *Result, line string) {
	body := strings.TrimLeft(line, p.config.CommentPrefix)
	body = strings.TrimSpace(body)

	if idx := strings.Index(body, ":"); idx > 0 {
		key := strings.TrimSpace(body[:idx])
		value := strings.TrimSpace(body[idx+1:])
		if key != "" {
			result.Metadata = append(result.Metadata, Field{Key: key, Value: value})
			return
		}
	}
	if body != "" {
		result.Comments = append(result.Comments, body)
	}
}
