package layout

import (
	"strings"

	"github.com/tsawler/paleotext/model"
)

// Config holds configuration options for the Segmenter.
type Config struct {
	// BlankIsWhitespace treats lines containing only whitespace as block
	// separators. When false, only truly empty lines end a block.
	BlankIsWhitespace bool

	// MinLines is the minimum number of lines for a valid block. Blocks
	// with fewer lines are dropped and the remainder reindexed.
	MinLines int
}

// DefaultConfig returns sensible default configuration: whitespace-only
// lines separate blocks, and every block is kept.
func DefaultConfig() Config {
	return Config{
		BlankIsWhitespace: true,
		MinLines:          1,
	}
}

// Segmenter groups contiguous non-blank lines into blocks.
type Segmenter struct {
	config Config
}

// NewSegmenter creates a Segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewSegmenterWithConfig creates a Segmenter with custom configuration.
func NewSegmenterWithConfig(config Config) *Segmenter {
	return &Segmenter{config: config}
}

// Segment splits lines into blocks at blank lines. Blank lines are
// discarded; each returned block records the range of source line
// indices it covers and per-line statistics from AnalyzeLine.
func (s *Segmenter) Segment(lines []string) []*model.Block {
	return s.SegmentRange(lines, 0, len(lines))
}

// SegmentRange segments only lines[start:end]. Line indices recorded on
// the returned blocks still refer to positions in the full slice.
func (s *Segmenter) SegmentRange(lines []string, start, end int) []*model.Block {
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}

	var blocks []*model.Block
	var current *model.Block
	for i := start; i < end; i++ {
		if s.isBlank(lines[i]) {
			if current != nil {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &model.Block{Start: i, End: i}
		}
		current.Lines = append(current.Lines, AnalyzeLine(i, lines[i]))
		current.End = i
	}
	if current != nil {
		blocks = append(blocks, current)
	}

	return s.validateBlocks(blocks)
}

// validateBlocks drops undersized blocks and assigns sequential indices.
func (s *Segmenter) validateBlocks(blocks []*model.Block) []*model.Block {
	kept := make([]*model.Block, 0, len(blocks))
	for _, b := range blocks {
		if len(b.Lines) < s.config.MinLines {
			continue
		}
		b.Index = len(kept)
		kept = append(kept, b)
	}
	return kept
}

func (s *Segmenter) isBlank(line string) bool {
	if s.config.BlankIsWhitespace {
		return strings.TrimSpace(line) == ""
	}
	return line == ""
}
