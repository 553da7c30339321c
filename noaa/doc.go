// Package noaa is a client for the NOAA paleoclimatology study
// archive. It searches the study endpoint, navigates the returned
// study/site/table hierarchy, renders publication lists as BibTeX, and
// downloads data files straight into the extraction pipeline.
//
// Basic usage:
//
//	client := noaa.NewClient()
//	result, err := client.Search(ctx, noaa.SearchParams{StudyID: "33213"})
//	if err != nil {
//	    // handle error
//	}
//	for _, row := range result.Tables() {
//	    blocks, err := client.FetchData(ctx, row.FileURL)
//	    // ...
//	}
package noaa
