package noaa

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordPattern = regexp.MustCompile(`\w+`)

// CitationKey derives a stable BibTeX key for a publication:
// the author's last name, the first significant title word, the year
// and the study identifier, joined by underscores.
func CitationKey(p *Publication, studyID ID) string {
	lastName := "Unknown"
	if fields := strings.Fields(p.Author.Name); len(fields) > 0 {
		lastName = fields[len(fields)-1]
	}

	titleWord := "Untitled"
	for _, w := range wordPattern.FindAllString(p.Title, -1) {
		if len(w) > 2 && !strings.EqualFold(w, "the") {
			titleWord = cases.Title(language.Und).String(w)
			break
		}
	}

	year := p.Year()
	if year == "" {
		year = "nd"
	}

	id := studyID.String()
	if id == "" {
		id = "0"
	}

	key := strings.Join([]string{lastName, titleWord, year, id}, "_")
	return strings.ReplaceAll(key, " ", "")
}

// BibTeX renders every publication in the result as a BibTeX
// bibliography, one @article entry per citation. Empty fields are
// omitted.
func (r *Result) BibTeX() string {
	var sb strings.Builder
	for i := range r.Studies {
		study := &r.Studies[i]
		for j := range study.Publications {
			pub := &study.Publications[j]
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			writeEntry(&sb, CitationKey(pub, study.StudyID), [][2]string{
				{"author", pub.Author.Name},
				{"title", pub.Title},
				{"journal", pub.Journal},
				{"year", pub.Year()},
				{"volume", pub.Volume},
				{"number", pub.Issue},
				{"pages", pub.Pages},
				{"doi", pub.DOI()},
				{"url", pub.URL()},
			})
		}
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, key string, fields [][2]string) {
	sb.WriteString("@article{")
	sb.WriteString(key)
	sb.WriteString(",\n")
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(f[0])
		sb.WriteString(" = {")
		sb.WriteString(f[1])
		sb.WriteString("},\n")
	}
	sb.WriteString("}\n")
}
