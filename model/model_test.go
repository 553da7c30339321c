package model

import (
	"errors"
	"strings"
	"testing"
)

func TestIntervalOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want int
	}{
		{"identical", Interval{0, 5}, Interval{0, 5}, 5},
		{"partial", Interval{0, 5}, Interval{3, 8}, 2},
		{"touching", Interval{0, 5}, Interval{5, 9}, 0},
		{"disjoint", Interval{0, 3}, Interval{7, 9}, 0},
		{"contained", Interval{2, 4}, Interval{0, 10}, 2},
	}

	for _, tt := range tests {
		if got := tt.a.Overlap(tt.b); got != tt.want {
			t.Errorf("%s: Expected overlap %d, got %d", tt.name, tt.want, got)
		}
		if got := tt.b.Overlap(tt.a); got != tt.want {
			t.Errorf("%s (reversed): Expected overlap %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestIntervalDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want int
	}{
		{"overlapping", Interval{0, 5}, Interval{3, 8}, 0},
		{"touching", Interval{0, 5}, Interval{5, 9}, 0},
		{"gap", Interval{0, 3}, Interval{7, 9}, 4},
		{"identical", Interval{2, 6}, Interval{2, 6}, 0},
	}

	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("%s: Expected distance %d, got %d", tt.name, tt.want, got)
		}
		// Distance is symmetric
		if got := tt.b.Distance(tt.a); got != tt.want {
			t.Errorf("%s (reversed): Expected distance %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestIntervalUnion(t *testing.T) {
	u := Interval{2, 5}.Union(Interval{4, 9})
	if u.Start != 2 || u.End != 9 {
		t.Errorf("Expected union [2,9), got [%d,%d)", u.Start, u.End)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	if !(Interval{0, 5}).Overlaps(Interval{4, 8}) {
		t.Error("expected [0,5) to overlap [4,8)")
	}
	// Touching intervals share no position
	if (Interval{0, 5}).Overlaps(Interval{5, 8}) {
		t.Error("expected [0,5) not to overlap [5,8)")
	}
}

func TestTableAddRowPadding(t *testing.T) {
	tbl := NewTable([]string{"a", "b", "c"})
	tbl.AddRow([]Cell{NewCell("1")})

	if tbl.RowCount() != 1 {
		t.Fatalf("Expected 1 row, got %d", tbl.RowCount())
	}
	if _, ok := tbl.Cell(0, 1); ok {
		t.Error("expected padded cell to be absent")
	}
	if v, ok := tbl.Cell(0, 0); !ok || v != "1" {
		t.Errorf("Expected cell (0,0) = %q, got %q (present=%v)", "1", v, ok)
	}
}

func TestTableColumn(t *testing.T) {
	tbl := NewTable([]string{"depth", "age"})
	tbl.AddRow([]Cell{NewCell("0.5"), NewCell("1950")})
	tbl.AddRow([]Cell{NewCell("1.0"), NewCell("1800")})

	ages := tbl.Column("age")
	if len(ages) != 2 || ages[0] != "1950" || ages[1] != "1800" {
		t.Errorf("Expected [1950 1800], got %v", ages)
	}
	if tbl.Column("missing") != nil {
		t.Error("expected nil for unknown column")
	}
}

func TestTableRecords(t *testing.T) {
	tbl := NewTable([]string{"a", "b"})
	tbl.AddRow([]Cell{NewCell("1"), {}})

	recs := tbl.Records()
	if len(recs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(recs))
	}
	if recs[0]["a"] != "1" {
		t.Errorf("Expected a=1, got %q", recs[0]["a"])
	}
	if _, ok := recs[0]["b"]; ok {
		t.Error("expected absent cell to be omitted from record")
	}
}

func TestTableToCSV(t *testing.T) {
	tbl := NewTable([]string{"name", "value"})
	tbl.AddRow([]Cell{NewCell(`say "hi"`), NewCell("1,5")})

	csv := tbl.ToCSV()
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 CSV lines, got %d", len(lines))
	}
	if lines[0] != "name,value" {
		t.Errorf("Expected header line %q, got %q", "name,value", lines[0])
	}
	if lines[1] != `"say ""hi""","1,5"` {
		t.Errorf("unexpected escaping: %q", lines[1])
	}
}

func TestTableToMarkdown(t *testing.T) {
	tbl := NewTable([]string{"a", "b"})
	tbl.AddRow([]Cell{NewCell("1"), NewCell("2")})

	md := tbl.ToMarkdown()
	if !strings.Contains(md, "| a | b |") {
		t.Errorf("expected header row in markdown, got %q", md)
	}
	if !strings.Contains(md, "|---|---|") {
		t.Errorf("expected separator row in markdown, got %q", md)
	}
	if !strings.Contains(md, "| 1 | 2 |") {
		t.Errorf("expected data row in markdown, got %q", md)
	}
}

func TestCellAppend(t *testing.T) {
	var c Cell
	c.Append("8035")
	c.Append("�58")

	if c.Value != "8035 �58" {
		t.Errorf("Expected %q, got %q", "8035 �58", c.Value)
	}
	if !c.Valid {
		t.Error("expected appended cell to be present")
	}
}

func TestBlockHelpers(t *testing.T) {
	b := &Block{
		Lines: []LineInfo{
			{Index: 0, Text: "Depth  Age"},
			{Index: 1, Text: "0.5  1950"},
		},
		Headers:      []Header{{Name: "Depth"}, {Name: "Age"}},
		HeaderExtent: 1,
	}

	if b.LineCount() != 2 {
		t.Errorf("Expected 2 lines, got %d", b.LineCount())
	}
	if got := b.Text(); got != "Depth  Age\n0.5  1950" {
		t.Errorf("unexpected Text: %q", got)
	}
	if names := b.HeaderNames(); len(names) != 2 || names[0] != "Depth" {
		t.Errorf("unexpected header names: %v", names)
	}
	if data := b.DataLines(); len(data) != 1 || data[0].Index != 1 {
		t.Errorf("unexpected data lines: %v", data)
	}

	var nilBlock *Block
	if nilBlock.LineCount() != 0 || nilBlock.Text() != "" || nilBlock.HasHeaders() {
		t.Error("nil block helpers should return zero values")
	}
}

func TestParseErrorIs(t *testing.T) {
	err := NewParseError(NoDelimiter, "Could not determine a suitable delimiter.")

	if !errors.Is(err, ErrNoDelimiter) {
		t.Error("expected errors.Is to match kind sentinel")
	}
	if errors.Is(err, ErrNoHeaders) {
		t.Error("expected errors.Is not to match a different kind")
	}
	if err.Fatal() {
		t.Error("NoDelimiter should not be fatal")
	}
	if !NewParseError(MissingDataMarker, "x").Fatal() {
		t.Error("MissingDataMarker should be fatal")
	}
}

func TestBlockTypeString(t *testing.T) {
	tests := []struct {
		bt   BlockType
		want string
	}{
		{Narrative, "narrative"},
		{HeaderOnly, "header_only"},
		{Data, "data"},
		{Tabular, "tabular"},
		{CompleteTabular, "complete_tabular"},
		{Error, "error"},
		{Unclassified, "unclassified"},
	}
	for _, tt := range tests {
		if got := tt.bt.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestDelimiterString(t *testing.T) {
	if DelimiterTab.String() != "tab" || DelimiterMultiSpace.String() != "multi" ||
		DelimiterSingleSpace.String() != "single" || DelimiterNone.String() != "none" {
		t.Error("unexpected delimiter names")
	}
}
