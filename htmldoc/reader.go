// Package htmldoc extracts archive payloads served as HTML. Mirror
// sites wrap the original text file in a <pre> element and sometimes
// render its tables as real <table> markup; this package recovers both
// so the text pipeline can run on the payload lines.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/reader"
)

// Reader provides access to the payload of an HTML page.
type Reader struct {
	doc    *html.Node
	title  string
	meta   map[string]string
	pres   []string
	tables []*model.Table
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	hr := &Reader{
		doc:  doc,
		meta: make(map[string]string),
	}
	hr.extractHead(doc)
	hr.extractBody(doc)
	return hr, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string {
	return r.title
}

// Meta returns the content of the named meta tag.
func (r *Reader) Meta(name string) (string, bool) {
	v, ok := r.meta[name]
	return v, ok
}

// PreBlocks returns the raw text of each <pre> element in document
// order. NOAA mirrors serve the entire original file as one such
// block.
func (r *Reader) PreBlocks() []string {
	return r.pres
}

// Lines returns the <pre> payloads split into lines, ready for the
// text pipeline. Multiple blocks are separated by a blank line so they
// segment as separate blocks downstream.
func (r *Reader) Lines() []string {
	var lines []string
	for i, block := range r.pres {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, reader.SplitLines(block)...)
	}
	return lines
}

// Tables returns the <table> elements parsed into tables, in document
// order.
func (r *Reader) Tables() []*model.Table {
	return r.tables
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = collapsedText(c)
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					r.meta[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// extractBody walks the body collecting <pre> payloads and <table>
// elements.
func (r *Reader) extractBody(n *html.Node) {
	body := findElement(n, "body")
	if body == nil {
		body = n
	}
	r.traverse(body)
}

func (r *Reader) traverse(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		switch n.Data {
		case "pre":
			text := preText(n)
			if strings.TrimSpace(text) != "" {
				r.pres = append(r.pres, text)
			}
			return
		case "table":
			if table := parseTable(n); table != nil {
				r.tables = append(r.tables, table)
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.traverse(c)
	}
}

// parseTable converts a <table> element. A <thead> row or a first row
// of <th> cells provides the column names; without one, columns are
// numbered from 1. A colspan widens its row with absent cells so later
// columns stay aligned.
func parseTable(tableNode *html.Node) *model.Table {
	var rows [][]model.Cell
	var columns []string

	var walkRows func(n *html.Node, inHead bool)
	walkRows = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				walkRows(c, true)
			case "tbody", "tfoot":
				walkRows(c, false)
			case "tr":
				cells, header := parseRow(c)
				if len(cells) == 0 {
					continue
				}
				if columns == nil && (inHead || header) {
					columns = make([]string, len(cells))
					for i, cell := range cells {
						columns[i] = cell.Value
					}
					continue
				}
				rows = append(rows, cells)
			}
		}
	}
	walkRows(tableNode, false)

	if columns == nil && len(rows) == 0 {
		return nil
	}
	if columns == nil {
		columns = make([]string, len(rows[0]))
		for i := range columns {
			columns[i] = strconv.Itoa(i + 1)
		}
	}

	table := model.NewTable(columns)
	for _, row := range rows {
		table.AddRow(row)
	}
	return table
}

// parseRow parses one <tr>, reporting whether every cell was a <th>.
func parseRow(tr *html.Node) ([]model.Cell, bool) {
	var cells []model.Cell
	header := true

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		if c.Data == "td" {
			header = false
		}
		cells = append(cells, model.NewCell(collapsedText(c)))

		colspan := 1
		for _, attr := range c.Attr {
			if attr.Key == "colspan" {
				if v, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && v > 1 {
					colspan = v
				}
			}
		}
		for i := 1; i < colspan; i++ {
			cells = append(cells, model.Cell{})
		}
	}

	return cells, header && len(cells) > 0
}

// shouldSkipElement reports elements that never contain payload.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// preText returns the verbatim text of a <pre> element. Text nodes
// keep their whitespace; <br> becomes a newline. The newline that
// immediately follows the opening tag is dropped, matching how
// browsers render it.
func preText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			if shouldSkipElement(n.Data) {
				return
			}
			if n.Data == "br" {
				sb.WriteString("\n")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return strings.TrimPrefix(sb.String(), "\n")
}

// collapsedText extracts text with runs of whitespace collapsed to
// single spaces, the form wanted for titles and table cells.
func collapsedText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
			return
		}
		if n.Type == html.ElementNode && shouldSkipElement(n.Data) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}
