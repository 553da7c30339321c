package paleotext_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/paleotext"
	"github.com/tsawler/paleotext/format"
	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/reader"
)

const (
	nonStandardFile = "testdata/nonstandard_example.txt"
	standardFile    = "testdata/standard_example.txt"
	htmlFile        = "testdata/study_page.html"
)

func TestOpenNonStandard(t *testing.T) {
	blocks, warnings, err := paleotext.Open(nonStandardFile).Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 6 {
		t.Fatalf("Expected 6 blocks, got %d", len(blocks))
	}

	wantTypes := []model.BlockType{
		model.Narrative,
		model.HeaderOnly,
		model.Data,
		model.CompleteTabular,
		model.Tabular,
		model.Narrative,
	}
	for i, want := range wantTypes {
		if blocks[i].Type != want {
			t.Errorf("Block %d: expected type %s, got %s", i, want, blocks[i].Type)
		}
	}

	// The preamble before the data descriptor is skipped.
	if blocks[0].Start != 17 || blocks[0].End != 18 {
		t.Errorf("Block 0: expected lines 17-18, got %d-%d", blocks[0].Start, blocks[0].End)
	}
	if blocks[5].Start != 39 {
		t.Errorf("Block 5: expected start line 39, got %d", blocks[5].Start)
	}

	// Header-only block: title line plus one line of numbered headers.
	ho := blocks[1]
	if ho.Title != "Table 1. U-Th ages of carbonate samples" {
		t.Errorf("Unexpected title: %q", ho.Title)
	}
	wantHeaders := []string{"1 Sample Number", "2 Depth (cm)", "3 U (ppb)", "4 Th Age (yr BP)"}
	if got := ho.HeaderNames(); !reflect.DeepEqual(got, wantHeaders) {
		t.Errorf("Header names: expected %v, got %v", wantHeaders, got)
	}
	if !reflect.DeepEqual(ho.UsedAsHeaderFor, []int{2}) {
		t.Errorf("Expected headers lent to block 2, got %v", ho.UsedAsHeaderFor)
	}

	// Data block borrows those headers.
	data := blocks[2]
	if data.Delimiter != model.DelimiterMultiSpace {
		t.Errorf("Data block: expected multi-space delimiter, got %s", data.Delimiter)
	}
	if data.Table.RowCount() != 3 || data.Table.ColCount() != 4 {
		t.Fatalf("Data block: expected 3x4 table, got %dx%d", data.Table.RowCount(), data.Table.ColCount())
	}
	if !reflect.DeepEqual(data.Table.Columns, wantHeaders) {
		t.Errorf("Data block columns: expected %v, got %v", wantHeaders, data.Table.Columns)
	}
	if v, _ := data.Table.Cell(2, 3); v != "8035" {
		t.Errorf("Data block cell (2,3): expected 8035, got %q", v)
	}

	// Tab-delimited block parses strictly.
	ct := blocks[3]
	if ct.Delimiter != model.DelimiterTab {
		t.Errorf("Complete tabular block: expected tab delimiter, got %s", ct.Delimiter)
	}
	wantColumns := []string{"Depth (cm)", "Age (yr BP)", "d18O (permil)"}
	if !reflect.DeepEqual(ct.Table.Columns, wantColumns) {
		t.Errorf("Columns: expected %v, got %v", wantColumns, ct.Table.Columns)
	}
	if ct.Table.RowCount() != 4 {
		t.Errorf("Expected 4 rows, got %d", ct.Table.RowCount())
	}
	if v, _ := ct.Table.Cell(0, 1); v != "-44" {
		t.Errorf("Cell (0,1): expected -44, got %q", v)
	}

	// Ragged block falls back to interval assignment: the uncertainty
	// pair stays one cell and the missing value stays absent.
	rag := blocks[4]
	if rag.Table.RowCount() != 4 || rag.Table.ColCount() != 3 {
		t.Fatalf("Ragged block: expected 4x3 table, got %dx%d", rag.Table.RowCount(), rag.Table.ColCount())
	}
	if v, _ := rag.Table.Cell(2, 1); v != "8035 ±58" {
		t.Errorf("Ragged cell (2,1): expected %q, got %q", "8035 ±58", v)
	}
	if _, ok := rag.Table.Cell(2, 2); ok {
		t.Error("Ragged cell (2,2): expected absent value")
	}

	// One warning: the header borrow.
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %s", len(warnings), paleotext.FormatWarnings(warnings))
	}
	if warnings[0].Code != paleotext.WarnBorrowedHeaders || warnings[0].Block != 2 {
		t.Errorf("Unexpected warning: %+v", warnings[0])
	}
}

func TestTablesTerminal(t *testing.T) {
	tabs, _, err := paleotext.Open(nonStandardFile).Tables()
	if err != nil {
		t.Fatalf("Tables returned error: %v", err)
	}
	if len(tabs) != 3 {
		t.Fatalf("Expected 3 tables, got %d", len(tabs))
	}
	if tabs[0].ColCount() != 4 || tabs[1].ColCount() != 3 || tabs[2].ColCount() != 3 {
		t.Errorf("Unexpected column counts: %d, %d, %d",
			tabs[0].ColCount(), tabs[1].ColCount(), tabs[2].ColCount())
	}
}

func TestTextTerminal(t *testing.T) {
	text, _, err := paleotext.Open(nonStandardFile).Text()
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	want := "Sediment cores were collected from the deep basin of Lake Vanda.\n" +
		"Ages were determined by radiocarbon dating of algal mats.\n\n" +
		"Analytical uncertainties are reported at the 2-sigma level."
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestScanFromTop(t *testing.T) {
	blocks, _, err := paleotext.Open(nonStandardFile).ScanFromTop().Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 10 {
		t.Fatalf("Expected 10 blocks, got %d", len(blocks))
	}
	// The preamble segments as narrative blocks.
	for i := 0; i < 5; i++ {
		if blocks[i].Type != model.Narrative {
			t.Errorf("Block %d: expected narrative, got %s", i, blocks[i].Type)
		}
	}
	if blocks[0].Start != 0 {
		t.Errorf("Block 0: expected start line 0, got %d", blocks[0].Start)
	}
	// The payload classifies the same as in skip mode, shifted by the
	// preamble blocks.
	if blocks[5].Type != model.HeaderOnly || blocks[6].Type != model.Data {
		t.Errorf("Expected header/data pair at blocks 5-6, got %s/%s", blocks[5].Type, blocks[6].Type)
	}
}

func TestStrictOnly(t *testing.T) {
	blocks, warnings, err := paleotext.Open(nonStandardFile).StrictOnly().Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 6 {
		t.Fatalf("Expected 6 blocks, got %d", len(blocks))
	}

	// The ragged block can no longer fall back.
	rag := blocks[4]
	if rag.Type != model.Error {
		t.Fatalf("Expected error block, got %s", rag.Type)
	}
	if rag.Err == nil || !strings.HasPrefix(rag.Err.Message, "Failed to parse tabular block:") {
		t.Errorf("Unexpected block error: %v", rag.Err)
	}
	if rag.Err.Kind != model.ColumnCountMismatch {
		t.Errorf("Expected column count mismatch, got %v", rag.Err.Kind)
	}

	// The clean blocks are untouched.
	if blocks[3].Type != model.CompleteTabular {
		t.Errorf("Expected complete tabular block, got %s", blocks[3].Type)
	}

	var failed int
	for _, w := range warnings {
		if w.Code == paleotext.WarnBlockFailed {
			failed++
			if w.Block != 4 {
				t.Errorf("Expected failure on block 4, got block %d", w.Block)
			}
		}
	}
	if failed != 1 {
		t.Errorf("Expected 1 block-failed warning, got %d", failed)
	}
}

func TestExcludeNarrative(t *testing.T) {
	blocks, _, err := paleotext.Open(nonStandardFile).ExcludeNarrative().Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("Expected 4 blocks, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Type == model.Narrative {
			t.Errorf("Block %d: narrative block not excluded", b.Index)
		}
	}
	// Indices still refer to positions in the full sequence.
	if blocks[0].Index != 1 {
		t.Errorf("Expected first kept block to keep index 1, got %d", blocks[0].Index)
	}
}

func TestExcludeErrors(t *testing.T) {
	blocks, _, err := paleotext.Open(nonStandardFile).StrictOnly().ExcludeErrors().Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 5 {
		t.Fatalf("Expected 5 blocks, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Type == model.Error {
			t.Errorf("Block %d: error block not excluded", b.Index)
		}
	}
}

func TestOpenStandard(t *testing.T) {
	blocks, warnings, err := paleotext.Open(standardFile).Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %s", paleotext.FormatWarnings(warnings))
	}
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}

	b := blocks[0]
	if b.Type != model.CompleteTabular {
		t.Errorf("Expected complete tabular block, got %s", b.Type)
	}
	wantColumns := []string{"depth_cm", "age_yrBP", "d18O", "notes"}
	if !reflect.DeepEqual(b.Table.Columns, wantColumns) {
		t.Errorf("Columns: expected %v, got %v", wantColumns, b.Table.Columns)
	}
	if b.Table.RowCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", b.Table.RowCount())
	}
	// The short row is padded with an absent cell.
	if _, ok := b.Table.Cell(1, 3); ok {
		t.Error("Cell (1,3): expected absent value")
	}
}

func TestStandardText(t *testing.T) {
	text, _, err := paleotext.Open(standardFile).Text()
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if !strings.Contains(text, "Study_Name: Lake Vanda Sediment Geochemistry") {
		t.Errorf("Missing metadata field in text:\n%s", text)
	}
	if !strings.Contains(text, "Earliest_Year: -9050") {
		t.Errorf("Missing year field in text:\n%s", text)
	}
}

func TestOpenHTML(t *testing.T) {
	report, _, err := paleotext.Open(htmlFile).Report()
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if report.Format != format.HTML {
		t.Errorf("Expected HTML format, got %s", report.Format)
	}
	if report.Title != "Lake Vanda U-Th Ages" {
		t.Errorf("Unexpected title: %q", report.Title)
	}
	if len(report.Blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(report.Blocks))
	}

	// The <pre> payload goes through the block pipeline.
	if report.Blocks[0].Type != model.Narrative {
		t.Errorf("Block 0: expected narrative, got %s", report.Blocks[0].Type)
	}
	pre := report.Blocks[1]
	if pre.Type != model.CompleteTabular || pre.Table.RowCount() != 2 {
		t.Errorf("Block 1: expected complete tabular with 2 rows, got %s with %d", pre.Type, pre.Table.RowCount())
	}

	// Markup tables come last as synthetic blocks.
	native := report.Blocks[2]
	if native.Start != -1 {
		t.Errorf("Expected synthetic block without source extent, got start %d", native.Start)
	}
	if !reflect.DeepEqual(native.Table.Columns, []string{"Sample", "U (ppb)"}) {
		t.Errorf("Unexpected native table columns: %v", native.Table.Columns)
	}
	if v, _ := native.Table.Cell(1, 1); v != "755" {
		t.Errorf("Native cell (1,1): expected 755, got %q", v)
	}
}

func TestReport(t *testing.T) {
	report, _, err := paleotext.Open(nonStandardFile).Report()
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	counts := report.Counts()
	if counts[model.Narrative] != 2 || counts[model.Tabular] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
	if len(report.Tables()) != 3 {
		t.Errorf("Expected 3 tables, got %d", len(report.Tables()))
	}
	if len(report.Errors()) != 0 {
		t.Errorf("Expected no error blocks, got %d", len(report.Errors()))
	}
	if !strings.Contains(report.Narrative(), "radiocarbon dating") {
		t.Errorf("Unexpected narrative: %q", report.Narrative())
	}

	s := report.String()
	if !strings.Contains(s, "(NonStandard)") || !strings.Contains(s, "3 tables") {
		t.Errorf("Unexpected summary: %q", s)
	}
}

func TestFromLines(t *testing.T) {
	lines := []string{
		"alpha  beta",
		"1.0  2.0",
		"3.0  4.0",
	}
	blocks, _, err := paleotext.FromLines(lines).Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Type != model.CompleteTabular {
		t.Errorf("Expected complete tabular block, got %s", blocks[0].Type)
	}
	if !reflect.DeepEqual(blocks[0].Table.Columns, []string{"alpha", "beta"}) {
		t.Errorf("Unexpected columns: %v", blocks[0].Table.Columns)
	}
}

func TestFromLinesMissingMarker(t *testing.T) {
	_, _, err := paleotext.FromLines([]string{"alpha  beta", "1.0  2.0"}).
		SkipToDataMarker().
		Blocks()
	if err == nil {
		t.Fatal("Expected error for missing data descriptor")
	}
	var pe *model.ParseError
	if !errors.As(err, &pe) || pe.Kind != model.MissingDataMarker {
		t.Errorf("Expected missing data descriptor error, got %v", err)
	}
	if err.Error() != "No Data Descriptor found in the file." {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestFromReader(t *testing.T) {
	r, err := reader.Open(nonStandardFile)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer r.Close()

	blocks, _, err := paleotext.FromReader(r).Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) != 6 {
		t.Fatalf("Expected 6 blocks, got %d", len(blocks))
	}

	// The caller owns the reader; it stays usable.
	if len(r.Lines()) != 40 {
		t.Errorf("Expected 40 source lines, got %d", len(r.Lines()))
	}
}

func TestDetectedFormat(t *testing.T) {
	tests := []struct {
		file string
		want format.Format
	}{
		{nonStandardFile, format.NonStandard},
		{standardFile, format.Standard},
		{htmlFile, format.HTML},
	}
	for _, tt := range tests {
		ext := paleotext.Open(tt.file)
		f, err := ext.DetectedFormat()
		if err != nil {
			t.Fatalf("%s: DetectedFormat returned error: %v", tt.file, err)
		}
		if f != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.file, tt.want, f)
		}
		ext.Close()
	}
}

func TestWithFormatOverride(t *testing.T) {
	// Forcing NonStandard on a templated file runs the block pipeline
	// over the '#' preamble instead of the template parser.
	blocks, _, err := paleotext.Open(standardFile).WithFormat(format.NonStandard).Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("Expected blocks from forced format")
	}
	if blocks[0].Type == model.CompleteTabular && blocks[0].Table != nil &&
		reflect.DeepEqual(blocks[0].Table.Columns, []string{"depth_cm", "age_yrBP", "d18O", "notes"}) {
		t.Error("Template parser ran despite format override")
	}
}

func TestOpenProprietary(t *testing.T) {
	_, _, err := paleotext.Open("testdata/ring_widths.crn").Blocks()
	if err == nil {
		t.Fatal("Expected error for proprietary format")
	}
	if !strings.Contains(err.Error(), "dedicated software") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := paleotext.Open("testdata/does_not_exist.txt").Blocks()
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestConfigurationIsImmutable(t *testing.T) {
	base := paleotext.Open(nonStandardFile)
	strict := base.StrictOnly()

	blocks, _, err := base.Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if blocks[4].Type != model.Tabular {
		t.Errorf("Base extractor affected by derived configuration: got %s", blocks[4].Type)
	}

	strictBlocks, _, err := strict.Blocks()
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if strictBlocks[4].Type != model.Error {
		t.Errorf("Derived extractor lost its configuration: got %s", strictBlocks[4].Type)
	}
}

func TestFromScanUnavailable(t *testing.T) {
	// Without the ocr build tag the scan entry point reports that OCR
	// support is not compiled in; with it, the missing file fails.
	_, _, err := paleotext.FromScan("testdata/does_not_exist.png").Blocks()
	if err == nil {
		t.Fatal("Expected error from FromScan")
	}
}
