package paleotext

import (
	"fmt"
	"strings"

	"github.com/tsawler/paleotext/format"
	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/standard"
)

// Report is the result of a full extraction: every block in file
// order plus the source-level facts discovered along the way.
type Report struct {
	// Filename is the source path, empty for reader or line input.
	Filename string

	// Format is the detected (or forced) source format.
	Format format.Format

	// Title is the document title, HTML sources only.
	Title string

	// Blocks holds the classified blocks in file order.
	Blocks []*model.Block

	// Metadata and Comments hold the parsed '#' preamble, templated
	// sources only.
	Metadata []standard.Field
	Comments []string

	// Warnings accumulated during processing.
	Warnings []Warning
}

// Tables returns the reconstructed tables, in file order.
func (r *Report) Tables() []*model.Table {
	var result []*model.Table
	for _, b := range r.Blocks {
		if b.Table != nil {
			result = append(result, b.Table)
		}
	}
	return result
}

// Errors returns the blocks whose classification or construction
// failed, in file order.
func (r *Report) Errors() []*model.Block {
	var result []*model.Block
	for _, b := range r.Blocks {
		if b.Type == model.Error {
			result = append(result, b)
		}
	}
	return result
}

// Narrative returns the prose blocks' text joined with blank lines.
func (r *Report) Narrative() string {
	var result strings.Builder
	for _, b := range r.Blocks {
		if b.Type != model.Narrative {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(b.Text())
	}
	return result.String()
}

// Counts returns the number of blocks of each type.
func (r *Report) Counts() map[model.BlockType]int {
	counts := make(map[model.BlockType]int)
	for _, b := range r.Blocks {
		counts[b.Type]++
	}
	return counts
}

// Meta returns the value of the first metadata field with the given
// key, and whether one exists. Templated sources only.
func (r *Report) Meta(key string) (string, bool) {
	for _, f := range r.Metadata {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// String returns a one-line summary of the report.
func (r *Report) String() string {
	name := r.Filename
	if name == "" {
		name = "input"
	}
	counts := r.Counts()
	parts := make([]string, 0, len(counts))
	for _, t := range []model.BlockType{
		model.Narrative, model.HeaderOnly, model.Data,
		model.Tabular, model.CompleteTabular, model.Error,
	} {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, t))
		}
	}
	summary := "no blocks"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s (%s): %d blocks (%s), %d tables, %d warnings",
		name, r.Format, len(r.Blocks), summary, len(r.Tables()), len(r.Warnings))
}
