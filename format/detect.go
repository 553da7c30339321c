// Package format provides file format detection for the paleotext library.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a supported data file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Standard indicates a templated NOAA text file whose metadata lines
	// start with '#'.
	Standard
	// NonStandard indicates a legacy NOAA text file with a free-form
	// metadata preamble.
	NonStandard
	// HTML indicates an HTML document.
	HTML
	// Proprietary indicates a format that needs dedicated software
	// (tree-ring .crn/.rwl, fire-history .fhx, LiPD .lpd).
	Proprietary
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Standard:
		return "Standard"
	case NonStandard:
		return "NonStandard"
	case HTML:
		return "HTML"
	case Proprietary:
		return "Proprietary"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Standard, NonStandard:
		return ".txt"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// proprietaryExtensions lists archive formats distributed by NOAA that
// need dedicated software to read.
var proprietaryExtensions = map[string]bool{
	".crn": true,
	".rwl": true,
	".fhx": true,
	".lpd": true,
}

// Detect determines file format from filename extension. Text files
// return Unknown because the two text layouts can only be told apart by
// content; use DetectContent for those.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case proprietaryExtensions[ext]:
		return Proprietary
	case ext == ".html" || ext == ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectContent inspects file content to determine format. HTML is
// recognized by its magic signatures; text content is classified by
// DetectLines.
func DetectContent(data []byte) Format {
	if detectHTMLMagic(data) {
		return HTML
	}
	return DetectLines(strings.Split(string(data), "\n"))
}

// DetectLines classifies decoded text lines as Standard or NonStandard.
//
// A file is Standard when its first five non-blank lines all start with
// '#'. It is NonStandard when it carries the NOAA archive banner: five
// consecutive non-blank lines with dashes in the first and last, "world
// data center for paleoclimatology" in the second and "noaa" in the
// fourth, or those two phrases swapped. Anything else is Unknown.
func DetectLines(lines []string) Format {
	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			trimmed = append(trimmed, s)
		}
	}

	standard := len(trimmed) > 0
	for i := 0; i < len(trimmed) && i < 5; i++ {
		if !strings.HasPrefix(trimmed[i], "#") {
			standard = false
			break
		}
	}
	if standard {
		return Standard
	}

	for i := 0; i+4 < len(trimmed); i++ {
		second := strings.ToLower(trimmed[i+1])
		fourth := strings.ToLower(trimmed[i+3])
		banner := (strings.Contains(second, "world data center for paleoclimatology") && strings.Contains(fourth, "noaa")) ||
			(strings.Contains(second, "noaa") && strings.Contains(fourth, "world data center for paleoclimatology"))
		if banner && strings.Contains(trimmed[i], "-") && strings.Contains(trimmed[i+4], "-") {
			return NonStandard
		}
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}

	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
