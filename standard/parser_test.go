package standard

import (
	"reflect"
	"testing"
)

var templateLines = []string{
	"# Wilson Lake Sediment Geochemistry",
	"#-----------------------------------",
	"# World Data Center for Paleoclimatology, Boulder",
	"# NOAA Paleoclimatology Program",
	"#-----------------------------------",
	"# Study_Name: Wilson Lake Sediment Geochemistry",
	"# Investigators: Smith, J.; Jones, A.",
	"# Online_Resource: https://www.ncei.noaa.gov/study/12345",
	"#",
	"depth_cm\tage_AD\tTOC_percent",
	"0.5\t1950\t2.1",
	"1.5\t1932\t2.4",
	"2.5\t1915",
}

func TestParse(t *testing.T) {
	result, err := NewParser().Parse(templateLines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Table == nil {
		t.Fatal("Expected a table")
	}

	wantColumns := []string{"depth_cm", "age_AD", "TOC_percent"}
	if !reflect.DeepEqual(result.Table.Columns, wantColumns) {
		t.Errorf("Expected columns %v, got %v", wantColumns, result.Table.Columns)
	}
	if result.Table.RowCount() != 3 {
		t.Fatalf("Expected 3 rows, got %d", result.Table.RowCount())
	}

	if v, ok := result.Table.Cell(0, 0); !ok || v != "0.5" {
		t.Errorf("Expected cell (0,0) = 0.5, got %q (present %v)", v, ok)
	}
	if v, ok := result.Table.Cell(1, 2); !ok || v != "2.4" {
		t.Errorf("Expected cell (1,2) = 2.4, got %q (present %v)", v, ok)
	}
}

func TestParseShortRowPadded(t *testing.T) {
	result, err := NewParser().Parse(templateLines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// The last row has no TOC value.
	if v, ok := result.Table.Cell(2, 1); !ok || v != "1915" {
		t.Errorf("Expected cell (2,1) = 1915, got %q (present %v)", v, ok)
	}
	if _, ok := result.Table.Cell(2, 2); ok {
		t.Error("Expected absent cell for missing trailing value")
	}
}

func TestParseMetadata(t *testing.T) {
	result, err := NewParser().Parse(templateLines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if v, ok := result.Meta("Study_Name"); !ok || v != "Wilson Lake Sediment Geochemistry" {
		t.Errorf("Expected study name, got %q (present %v)", v, ok)
	}
	if v, ok := result.Meta("Investigators"); !ok || v != "Smith, J.; Jones, A." {
		t.Errorf("Expected investigators, got %q (present %v)", v, ok)
	}
	// The value keeps its own colons.
	if v, _ := result.Meta("Online_Resource"); v != "https://www.ncei.noaa.gov/study/12345" {
		t.Errorf("Expected full URL, got %q", v)
	}
	if _, ok := result.Meta("Missing_Key"); ok {
		t.Error("Expected lookup miss for unknown key")
	}
}

func TestParseComments(t *testing.T) {
	result, err := NewParser().Parse(templateLines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	found := false
	for _, c := range result.Comments {
		if c == "NOAA Paleoclimatology Program" {
			found = true
		}
		if c == "" {
			t.Error("Expected empty comment lines to be dropped")
		}
	}
	if !found {
		t.Errorf("Expected banner comment retained, got %v", result.Comments)
	}
}

func TestParseNoDataLines(t *testing.T) {
	lines := []string{
		"# Study_Name: Empty Study",
		"#",
		"",
	}

	result, err := NewParser().Parse(lines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Table != nil {
		t.Error("Expected no table for a comment-only file")
	}
	if v, _ := result.Meta("Study_Name"); v != "Empty Study" {
		t.Errorf("Expected metadata retained, got %q", v)
	}
}

func TestParseHeaderRowOnly(t *testing.T) {
	result, err := NewParser().Parse([]string{"# x", "depth\tage"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Table == nil {
		t.Fatal("Expected a table")
	}
	if result.Table.RowCount() != 0 || result.Table.ColCount() != 2 {
		t.Errorf("Expected empty 2-column table, got %dx%d",
			result.Table.RowCount(), result.Table.ColCount())
	}
}

func TestParseExtraCellsDropped(t *testing.T) {
	lines := []string{
		"a\tb",
		"1\t2\t3",
	}

	result, err := NewParser().Parse(lines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Table.ColCount() != 2 {
		t.Fatalf("Expected 2 columns, got %d", result.Table.ColCount())
	}
	if v, _ := result.Table.Cell(0, 1); v != "2" {
		t.Errorf("Expected cell (0,1) = 2, got %q", v)
	}
}

func TestParseEmptyCellIsPresent(t *testing.T) {
	lines := []string{
		"a\tb\tc",
		"1\t\t3",
	}

	result, err := NewParser().Parse(lines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v, ok := result.Table.Cell(0, 1); !ok || v != "" {
		t.Errorf("Expected present empty cell, got %q (present %v)", v, ok)
	}
}

func TestParseIndentedCommentIsData(t *testing.T) {
	lines := []string{
		"a\tb",
		"  # note\t1",
	}

	result, err := NewParser().Parse(lines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Table.RowCount() != 1 {
		t.Fatalf("Expected indented '#' line kept as data, got %d rows", result.Table.RowCount())
	}
	if v, _ := result.Table.Cell(0, 0); v != "  # note" {
		t.Errorf("Expected raw cell value, got %q", v)
	}
}

func TestParserWithConfig(t *testing.T) {
	config := Config{CommentPrefix: "//"}
	lines := []string{
		"// Study: Custom",
		"a\tb",
		"1\t2",
	}

	result, err := NewParserWithConfig(config).Parse(lines)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v, _ := result.Meta("Study"); v != "Custom" {
		t.Errorf("Expected custom prefix honored, got %q", v)
	}
	if result.Table.RowCount() != 1 {
		t.Errorf("Expected 1 row, got %d", result.Table.RowCount())
	}
}
