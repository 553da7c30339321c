package noaa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	cache "github.com/patrickmn/go-cache"

	"github.com/tsawler/paleotext"
	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/reader"
)

// proprietaryTypes are archive formats that need dedicated software
// and cannot be parsed as text.
var proprietaryTypes = map[string]bool{
	"crn": true, // ITRDB standardized chronology
	"rwl": true, // ITRDB ring width
	"fhx": true, // fire history exchange
	"lpd": true, // LiPD container
}

// UnsupportedFileTypeError is returned when a data file URL points at
// something other than a plain text study file.
type UnsupportedFileTypeError struct {
	URL         string
	FileType    string
	Proprietary bool
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Proprietary {
		return fmt.Sprintf("file type %q is a proprietary archive format; only .txt files are supported", e.FileType)
	}
	return fmt.Sprintf("invalid file type %q; only .txt files are supported", e.FileType)
}

// FetchData downloads a study data file and runs it through the
// extraction pipeline, returning its blocks. Results are cached by
// URL, so repeated fetches of the same file hit the network once.
//
// Only .txt files are fetched. Proprietary archive formats such as
// .crn or .lpd are rejected with an UnsupportedFileTypeError before
// any request is made.
func (c *Client) FetchData(ctx context.Context, fileURL string) ([]*model.Block, error) {
	if fileURL == "" {
		return nil, fmt.Errorf("file URL is empty")
	}
	ext, err := fileExt(fileURL)
	if err != nil {
		return nil, err
	}
	if proprietaryTypes[ext] {
		return nil, &UnsupportedFileTypeError{URL: fileURL, FileType: ext, Proprietary: true}
	}
	if ext != "txt" {
		return nil, &UnsupportedFileTypeError{URL: fileURL, FileType: ext}
	}

	if c.cache != nil {
		if v, ok := c.cache.Get(fileURL); ok {
			c.log.Debugf("cache hit for %s", fileURL)
			return v.([]*model.Block), nil
		}
	}

	resp, err := c.get(ctx, fileURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        fileURL,
			Body:       bodyExcerpt(resp.Body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileURL, err)
	}

	r := reader.NewFromBytes(path.Base(fileURL), data)
	blocks, warnings, err := paleotext.FromReader(r).Blocks()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fileURL, err)
	}
	for _, w := range warnings {
		c.log.Warnf("%s: %s", fileURL, w)
	}

	if c.cache != nil {
		ttl := c.cacheTTL
		if ttl <= 0 {
			ttl = cache.DefaultExpiration
		}
		c.cache.Set(fileURL, blocks, ttl)
	}
	return blocks, nil
}

// FetchTables downloads a study data file and returns only the tables
// reconstructed from it.
func (c *Client) FetchTables(ctx context.Context, fileURL string) ([]*model.Table, error) {
	blocks, err := c.FetchData(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	var tables []*model.Table
	for _, b := range blocks {
		if b.Table != nil {
			tables = append(tables, b.Table)
		}
	}
	return tables, nil
}

// fileExt extracts the lowercased extension of a URL's path, without
// the leading dot.
func fileExt(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid file URL %q: %w", fileURL, err)
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	return strings.ToLower(ext), nil
}
