package noaa

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a NOAA identifier. The archive serves identifiers as JSON
// numbers in some payloads and strings in others, so it unmarshals
// from either.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("identifier is neither number nor string: %s", data)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// SearchResponse is the top-level payload of the study search
// endpoint.
type SearchResponse struct {
	Studies []Study `json:"study"`
}

// Study is one study record with its sites, publications and funding.
type Study struct {
	StudyID          ID             `json:"NOAAStudyId"`
	XMLID            ID             `json:"xmlId"`
	StudyName        string         `json:"studyName"`
	DataType         string         `json:"dataType"`
	EarliestYearBP   *int           `json:"earliestYearBP"`
	MostRecentYearBP *int           `json:"mostRecentYearBP"`
	EarliestYearCE   *int           `json:"earliestYearCE"`
	MostRecentYearCE *int           `json:"mostRecentYearCE"`
	StudyNotes       string         `json:"studyNotes"`
	ScienceKeywords  []string       `json:"scienceKeywords"`
	Details          []Investigator `json:"investigatorDetails"`
	Publications     []Publication  `json:"publication"`
	Sites            []Site         `json:"site"`
	Funding          []Funding      `json:"funding"`
}

// Investigators joins the investigator names into a single
// comma-separated string.
func (s *Study) Investigators() string {
	names := make([]string, 0, len(s.Details))
	for _, inv := range s.Details {
		name := strings.TrimSpace(inv.FirstName + " " + inv.LastName)
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// Investigator is one contributing researcher.
type Investigator struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Funding names one grant behind a study.
type Funding struct {
	Agency string `json:"fundingAgency"`
	Grant  string `json:"fundingGrant"`
}

// Site is a sampling location with its data tables.
type Site struct {
	SiteID       ID          `json:"NOAASiteId"`
	SiteName     string      `json:"siteName"`
	LocationName string      `json:"locationName"`
	Geo          Geo         `json:"geo"`
	PaleoData    []PaleoData `json:"paleoData"`
}

// Lat returns the site latitude in degrees, if the payload carried
// coordinates.
func (s *Site) Lat() (float64, bool) {
	if len(s.Geo.Geometry.Coordinates) < 2 {
		return 0, false
	}
	return s.Geo.Geometry.Coordinates[0], true
}

// Lon returns the site longitude in degrees, if the payload carried
// coordinates.
func (s *Site) Lon() (float64, bool) {
	if len(s.Geo.Geometry.Coordinates) < 2 {
		return 0, false
	}
	return s.Geo.Geometry.Coordinates[1], true
}

// Geo wraps the GeoJSON-shaped location of a site. Coordinates are
// served latitude first, unlike standard GeoJSON.
type Geo struct {
	Geometry   Geometry      `json:"geometry"`
	Properties GeoProperties `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type GeoProperties struct {
	MinElevationMeters *float64 `json:"minElevationMeters"`
	MaxElevationMeters *float64 `json:"maxElevationMeters"`
}

// PaleoData is one data table of a site, with the files that carry it.
type PaleoData struct {
	DataTableID   ID         `json:"NOAADataTableId"`
	DataTableName string     `json:"dataTableName"`
	TimeUnit      string     `json:"timeUnit"`
	Files         []DataFile `json:"dataFile"`
}

// DataFile is one downloadable rendition of a data table.
type DataFile struct {
	FileURL        string     `json:"fileUrl"`
	URLDescription string     `json:"urlDescription"`
	LinkText       string     `json:"linkText"`
	Variables      []Variable `json:"variables"`
}

// VariableNames returns the short names of the file's variables,
// skipping entries without one.
func (f *DataFile) VariableNames() []string {
	var names []string
	for _, v := range f.Variables {
		if v.CVShortName != "" {
			names = append(names, v.CVShortName)
		}
	}
	return names
}

// Variable is one measured quantity within a data file.
type Variable struct {
	CVShortName   string `json:"cvShortName"`
	CVWhat        string `json:"cvWhat"`
	CVMaterial    string `json:"cvMaterial"`
	CVUnit        string `json:"cvUnit"`
	CVSeasonality string `json:"cvSeasonality"`
}

// Publication is one citation attached to a study.
type Publication struct {
	Author     Author      `json:"author"`
	Title      string      `json:"title"`
	Journal    string      `json:"journal"`
	PubYear    json.Number `json:"pubYear"`
	Volume     string      `json:"volume"`
	Issue      string      `json:"issue"`
	Pages      string      `json:"pages"`
	Type       string      `json:"type"`
	Identifier *Identifier `json:"identifier"`
}

// Year returns the publication year as a string, empty when absent.
func (p *Publication) Year() string { return p.PubYear.String() }

// DOI returns the DOI when the identifier carries one.
func (p *Publication) DOI() string {
	if p.Identifier == nil || !strings.EqualFold(p.Identifier.Type, "doi") {
		return ""
	}
	return p.Identifier.ID
}

// URL returns the identifier's resolver URL, empty when absent.
func (p *Publication) URL() string {
	if p.Identifier == nil {
		return ""
	}
	return p.Identifier.URL
}

// Author holds the citation-style author list of a publication.
type Author struct {
	Name string `json:"name"`
}

// Identifier is a publication identifier such as a DOI.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	URL  string `json:"url"`
}
