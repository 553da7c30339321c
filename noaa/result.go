package noaa

import "fmt"

// Result holds the studies returned by a search together with lookup
// indexes over their data tables.
type Result struct {
	// Studies are the raw study records as returned by the archive.
	Studies []Study

	// Notes are normalization messages produced while building or
	// answering the query, such as the identifier short-circuit or a
	// hit on the result limit.
	Notes []string

	tableIndex map[string]TableRef
	fileIndex  map[string]string
}

// TableRef locates one data table within the search results.
type TableRef struct {
	Study *Study
	Site  *Site
	Paleo *PaleoData
}

func newResult(studies []Study, notes []string) *Result {
	r := &Result{
		Studies:    studies,
		Notes:      notes,
		tableIndex: make(map[string]TableRef),
		fileIndex:  make(map[string]string),
	}
	for i := range r.Studies {
		study := &r.Studies[i]
		for j := range study.Sites {
			site := &study.Sites[j]
			for k := range site.PaleoData {
				paleo := &site.PaleoData[k]
				id := paleo.DataTableID.String()
				if id == "" {
					continue
				}
				r.tableIndex[id] = TableRef{Study: study, Site: site, Paleo: paleo}
				for _, f := range paleo.Files {
					if f.FileURL != "" {
						r.fileIndex[f.FileURL] = id
					}
				}
			}
		}
	}
	return r
}

// Len returns the number of studies in the result.
func (r *Result) Len() int { return len(r.Studies) }

// Table resolves a data table identifier to its study, site and table
// record.
func (r *Result) Table(dataTableID string) (TableRef, bool) {
	ref, ok := r.tableIndex[dataTableID]
	return ref, ok
}

// TableForFile returns the data table identifier a file URL belongs
// to.
func (r *Result) TableForFile(fileURL string) (string, bool) {
	id, ok := r.fileIndex[fileURL]
	return id, ok
}

// TableRow is one flattened study/site/table/file record.
type TableRow struct {
	StudyID       ID
	StudyName     string
	SiteID        ID
	SiteName      string
	DataTableID   ID
	DataTableName string
	TimeUnit      string
	FileURL       string
	Description   string
	Variables     []string
}

// Tables flattens every data file in the result into one row per
// file, in study order.
func (r *Result) Tables() []TableRow {
	var rows []TableRow
	for i := range r.Studies {
		study := &r.Studies[i]
		for j := range study.Sites {
			site := &study.Sites[j]
			for k := range site.PaleoData {
				paleo := &site.PaleoData[k]
				for _, f := range paleo.Files {
					rows = append(rows, TableRow{
						StudyID:       study.StudyID,
						StudyName:     study.StudyName,
						SiteID:        site.SiteID,
						SiteName:      site.SiteName,
						DataTableID:   paleo.DataTableID,
						DataTableName: paleo.DataTableName,
						TimeUnit:      paleo.TimeUnit,
						FileURL:       f.FileURL,
						Description:   f.URLDescription,
						Variables:     f.VariableNames(),
					})
				}
			}
		}
	}
	return rows
}

// SiteRow is one flattened study/site record with its coordinates.
type SiteRow struct {
	StudyID      ID
	StudyName    string
	SiteID       ID
	SiteName     string
	LocationName string
	Lat          *float64
	Lon          *float64
	MinElevation *float64
	MaxElevation *float64
}

// Sites flattens the sites of every study into one row per site.
func (r *Result) Sites() []SiteRow {
	var rows []SiteRow
	for i := range r.Studies {
		study := &r.Studies[i]
		for j := range study.Sites {
			site := &study.Sites[j]
			row := SiteRow{
				StudyID:      study.StudyID,
				StudyName:    study.StudyName,
				SiteID:       site.SiteID,
				SiteName:     site.SiteName,
				LocationName: site.LocationName,
				MinElevation: site.Geo.Properties.MinElevationMeters,
				MaxElevation: site.Geo.Properties.MaxElevationMeters,
			}
			if lat, ok := site.Lat(); ok {
				row.Lat = &lat
			}
			if lon, ok := site.Lon(); ok {
				row.Lon = &lon
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// VariableRow names one variable of one data file.
type VariableRow struct {
	DataTableID ID
	FileURL     string
	Name        string
}

// Variables lists the variables of the given data tables, or of every
// table in the result when no identifier is given.
func (r *Result) Variables(dataTableIDs ...string) ([]VariableRow, error) {
	refs := make([]TableRef, 0, len(dataTableIDs))
	if len(dataTableIDs) == 0 {
		for i := range r.Studies {
			study := &r.Studies[i]
			for j := range study.Sites {
				site := &study.Sites[j]
				for k := range site.PaleoData {
					refs = append(refs, TableRef{Study: study, Site: site, Paleo: &site.PaleoData[k]})
				}
			}
		}
	} else {
		for _, id := range dataTableIDs {
			ref, ok := r.tableIndex[id]
			if !ok {
				return nil, fmt.Errorf("data table %q is not part of this result", id)
			}
			refs = append(refs, ref)
		}
	}

	var rows []VariableRow
	for _, ref := range refs {
		for _, f := range ref.Paleo.Files {
			for _, name := range f.VariableNames() {
				rows = append(rows, VariableRow{
					DataTableID: ref.Paleo.DataTableID,
					FileURL:     f.FileURL,
					Name:        name,
				})
			}
		}
	}
	return rows, nil
}

// PublicationRow is one flattened citation record.
type PublicationRow struct {
	StudyID     ID
	CitationKey string
	Author      string
	Title       string
	Journal     string
	Year        string
	Volume      string
	Issue       string
	Pages       string
	Type        string
	DOI         string
	URL         string
}

// Publications flattens the citations of every study into one row per
// publication.
func (r *Result) Publications() []PublicationRow {
	var rows []PublicationRow
	for i := range r.Studies {
		study := &r.Studies[i]
		for j := range study.Publications {
			pub := &study.Publications[j]
			rows = append(rows, PublicationRow{
				StudyID:     study.StudyID,
				CitationKey: CitationKey(pub, study.StudyID),
				Author:      pub.Author.Name,
				Title:       pub.Title,
				Journal:     pub.Journal,
				Year:        pub.Year(),
				Volume:      pub.Volume,
				Issue:       pub.Issue,
				Pages:       pub.Pages,
				Type:        pub.Type,
				DOI:         pub.DOI(),
				URL:         pub.URL(),
			})
		}
	}
	return rows
}

// FundingRow names one grant behind one study.
type FundingRow struct {
	StudyID ID
	Agency  string
	Grant   string
}

// FundingRows flattens the funding records of every study.
func (r *Result) FundingRows() []FundingRow {
	var rows []FundingRow
	for i := range r.Studies {
		study := &r.Studies[i]
		for _, f := range study.Funding {
			rows = append(rows, FundingRow{
				StudyID: study.StudyID,
				Agency:  f.Agency,
				Grant:   f.Grant,
			})
		}
	}
	return rows
}
