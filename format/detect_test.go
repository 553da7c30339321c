package format

import (
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Standard, "Standard"},
		{NonStandard, "NonStandard"},
		{HTML, "HTML"},
		{Proprietary, "Proprietary"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Standard, ".txt"},
		{NonStandard, ".txt"},
		{HTML, ".html"},
		{Proprietary, ""},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"chronology.crn", Proprietary},
		{"chronology.CRN", Proprietary},
		{"ringwidth.rwl", Proprietary},
		{"firehistory.fhx", Proprietary},
		{"bundle.lpd", Proprietary},
		{"study.html", HTML},
		{"study.HTML", HTML},
		{"study.htm", HTML},
		{"study.txt", Unknown},
		{"study", Unknown},
		{"", Unknown},
		{"/path/to/file.lpd", Proprietary},
		{"/path/to/file.txt", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Format
	}{
		{
			name: "templated file",
			lines: []string{
				"# Wilson Lake Sediment Study",
				"#-----------------------------",
				"# World Data Center for Paleoclimatology, Boulder",
				"# NOAA Paleoclimatology Program",
				"#-----------------------------",
				"depth\tage",
			},
			want: Standard,
		},
		{
			name: "short templated file",
			lines: []string{
				"# Study",
				"# Notes",
			},
			want: Standard,
		},
		{
			name: "archive banner",
			lines: []string{
				"Wilson Lake Sediment Study",
				"-----------------------------------------------",
				"World Data Center for Paleoclimatology, Boulder",
				"and",
				"NOAA Paleoclimatology Program",
				"-----------------------------------------------",
				"NAME OF DATA SET: Wilson Lake",
			},
			want: NonStandard,
		},
		{
			name: "archive banner with phrases swapped",
			lines: []string{
				"-----------------------------------------------",
				"NOAA Paleoclimatology Program",
				"and",
				"World Data Center for Paleoclimatology, Boulder",
				"-----------------------------------------------",
			},
			want: NonStandard,
		},
		{
			name: "banner split by blank lines",
			lines: []string{
				"",
				"-----------------------------------------------",
				"",
				"World Data Center for Paleoclimatology, Boulder",
				"and",
				"",
				"NOAA Paleoclimatology Program",
				"-----------------------------------------------",
			},
			want: NonStandard,
		},
		{
			name: "banner without dashed borders",
			lines: []string{
				"Wilson Lake Sediment Study",
				"World Data Center for Paleoclimatology, Boulder",
				"and",
				"NOAA Paleoclimatology Program",
				"end of header",
			},
			want: Unknown,
		},
		{
			name: "phrases on adjacent lines",
			lines: []string{
				"-----------------------------------------------",
				"World Data Center for Paleoclimatology, Boulder",
				"NOAA Paleoclimatology Program",
				"and",
				"-----------------------------------------------",
			},
			want: Unknown,
		},
		{
			name: "comment lines interrupted",
			lines: []string{
				"# Study",
				"# Notes",
				"depth\tage",
				"# Stray comment",
				"# Another",
			},
			want: Unknown,
		},
		{
			name:  "plain text",
			lines: []string{"Hello, World!", "This is plain text."},
			want:  Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLines(tt.lines); got != tt.want {
				t.Errorf("DetectLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "HTML with whitespace before DOCTYPE",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "XHTML declaration",
			data: []byte("<?xml version=\"1.0\"?>\n<html xmlns=\"http://www.w3.org/1999/xhtml\">"),
			want: HTML,
		},
		{
			name: "templated text",
			data: []byte("# Study\n# Notes\n# More\n# Context\n# Data\n1\t2\n"),
			want: Standard,
		},
		{
			name: "archive text",
			data: []byte("---\nWorld Data Center for Paleoclimatology, Boulder\nand\nNOAA Paleoclimatology Program\n---\n"),
			want: NonStandard,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Standard,
		},
		{
			name: "plain text",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectContent(tt.data); got != tt.want {
				t.Errorf("DetectContent() = %v, want %v", got, tt.want)
			}
		})
	}
}
