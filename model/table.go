package model

import "strings"

// Cell holds one table cell value. Cells that were never assigned a token
// during construction have Valid false; their Value is always empty.
type Cell struct {
	Value string
	Valid bool
}

// NewCell creates a present cell with the given value.
func NewCell(value string) Cell {
	return Cell{Value: value, Valid: true}
}

// Append concatenates another token onto the cell with a single space,
// preserving source order. Appending to an absent cell makes it present.
func (c *Cell) Append(value string) {
	if !c.Valid {
		c.Value = value
		c.Valid = true
		return
	}
	c.Value = c.Value + " " + value
}

// Table holds reconstructed tabular data: ordered rows of named string
// cells. Column order matches the source header order.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given column names.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]Cell, 0),
	}
}

// AddRow appends a row. Short rows are padded with absent cells; extra
// cells are dropped.
func (t *Table) AddRow(cells []Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// Cell returns the value at (row, col) and whether it is present. Out of
// range coordinates return an absent value.
func (t *Table) Cell(row, col int) (string, bool) {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Columns) {
		return "", false
	}
	c := t.Rows[row][col]
	return c.Value, c.Valid
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order. Absent cells
// yield empty strings. Unknown columns return nil.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx].Value
	}
	return values
}

// Records returns the table as one map per row, keyed by column name.
// Absent cells are omitted from their row's map.
func (t *Table) Records() []map[string]string {
	if t == nil {
		return nil
	}
	records := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for j, cell := range row {
			if cell.Valid {
				rec[t.Columns[j]] = cell.Value
			}
		}
		records[i] = rec
	}
	return records
}

// ToMarkdown converts the table to a Markdown table.
func (t *Table) ToMarkdown() string {
	if t == nil || len(t.Columns) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row
	for j, col := range t.Columns {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(col, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Columns)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range t.Columns {
		sb.WriteString("|---")
		if j == len(t.Columns)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell.Value, "\n", " "))
			sb.WriteString(" ")
			if j == len(row)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToCSV converts the table to CSV format, header row first.
func (t *Table) ToCSV() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	writeRow := func(values []string) {
		for j, v := range values {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(v, ",\"\n") {
				v = "\"" + strings.ReplaceAll(v, "\"", "\"\"") + "\""
			}
			sb.WriteString(v)
			if j < len(values)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Columns)
	values := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for j, cell := range row {
			values[j] = cell.Value
		}
		writeRow(values)
	}
	return sb.String()
}
