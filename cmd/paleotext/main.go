// Command paleotext extracts structured data from NOAA paleoclimatology
// study files, searches the NOAA study archive, and downloads study
// data files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tsawler/paleotext"
	"github.com/tsawler/paleotext/export"
	"github.com/tsawler/paleotext/format"
	"github.com/tsawler/paleotext/model"
	"github.com/tsawler/paleotext/noaa"
)

const usageText = `paleotext extracts structured data from NOAA paleoclimatology study files.

Usage:

  paleotext <command> [flags] [arguments]

Commands:

  parse    extract blocks from local study files
  search   query the NOAA paleo study archive
  fetch    download study data files and extract their blocks

Configuration is read from flags, from PALEOTEXT_* environment
variables, and from an optional YAML file given with -config.

Use "paleotext <command> -h" for details on a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "fetch":
		err = runFetch(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the viper configuration: defaults first, then an
// optional config file, then PALEOTEXT_* environment variables.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", noaa.DefaultBaseURL)
	v.SetDefault("timeout", "30s")
	v.SetDefault("retries", 2)
	v.SetDefault("cache_ttl", "1h")

	v.SetEnvPrefix("PALEOTEXT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func newNOAAClient(v *viper.Viper, logger *logrus.Logger) *noaa.Client {
	return noaa.NewClient(
		noaa.WithBaseURL(v.GetString("base_url")),
		noaa.WithTimeout(v.GetDuration("timeout")),
		noaa.WithRetries(v.GetInt("retries")),
		noaa.WithCacheTTL(v.GetDuration("cache_ttl")),
		noaa.WithLogger(logger),
	)
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "path to a YAML config file")
		logLevel   = fs.String("log-level", "", "log level (debug, info, warn, error)")
		forced     = fs.String("format", "", "force the input format (standard, nonstandard, html)")
		strict     = fs.Bool("strict", false, "reject rows whose column count disagrees with the headers")
		scanTop    = fs.Bool("scan-from-top", false, "parse from the first line instead of the data descriptor")
		output     = fs.String("output", "", "export blocks to this file instead of printing a report")
		exportName = fs.String("export", "csv", "export format (csv, tsv, json, jsonl, markdown)")
	)
	fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("parse requires at least one file")
	}
	if *output != "" && len(files) > 1 {
		return fmt.Errorf("-output only works with a single input file")
	}

	v, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := setupLogger(pick(*logLevel, v.GetString("log_level")))

	for _, file := range files {
		ex := paleotext.Open(file)
		if *strict {
			ex = ex.StrictOnly()
		}
		if *scanTop {
			ex = ex.ScanFromTop()
		}
		if *forced != "" {
			f, err := parseSourceFormat(*forced)
			if err != nil {
				return err
			}
			ex = ex.WithFormat(f)
		}

		if *output != "" {
			blocks, warnings, err := ex.Blocks()
			if err != nil {
				return err
			}
			logWarnings(logger, warnings)

			ef, err := export.ParseFormat(*exportName)
			if err != nil {
				return err
			}
			if err := export.New(ef).ExportToFile(blocks, *output); err != nil {
				return err
			}
			logger.Infof("wrote %d blocks to %s", len(blocks), *output)
			continue
		}

		report, warnings, err := ex.Report()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		logWarnings(logger, warnings)

		fmt.Println(report.String())
		printBlocks(os.Stdout, report.Blocks)
	}
	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "path to a YAML config file")
		logLevel   = fs.String("log-level", "", "log level (debug, info, warn, error)")

		studyID       = fs.String("study-id", "", "fetch one study by its NOAA study id")
		xmlID         = fs.String("xml-id", "", "fetch one study by its XML id")
		text          = fs.String("text", "", "free-text query")
		investigators = fs.String("investigators", "", "semicolon-separated investigator names (NOAA expects \"LastName, Initials\")")
		locations     = fs.String("locations", "", "semicolon-separated location names")
		keywords      = fs.String("keywords", "", "semicolon-separated keywords")
		species       = fs.String("species", "", "semicolon-separated four-letter species codes")
		cvWhats       = fs.String("cv-whats", "", "semicolon-separated measured-variable terms")
		cvMaterials   = fs.String("cv-materials", "", "semicolon-separated material terms")
		cvSeasons     = fs.String("cv-seasonalities", "", "semicolon-separated seasonality terms")
		match         = fs.String("match", "", "how multi-value filters combine: any (default) or all")
		dataTypeID    = fs.String("data-type-id", "", "numeric data type id")

		timeFormat = fs.String("time-format", "", "CE or BP")
		timeMethod = fs.String("time-method", "", "overAny, entireOver or overEntire")

		reconstructions = fs.Bool("reconstructions", false, "only climate reconstructions")
		recent          = fs.Bool("recent", false, "order by most recently added")
		limit           = fs.Int("limit", 0, "maximum studies to return (default 100)")

		showTables = fs.Bool("tables", false, "list the data files of each study")
		showBibtex = fs.Bool("bibtex", false, "print publications as BibTeX and exit")
		asJSON     = fs.Bool("json", false, "print raw study records as JSON")
	)
	// Read back through Lookup after parsing; empty means unset.
	fs.String("min-lat", "", "minimum latitude in whole degrees")
	fs.String("max-lat", "", "maximum latitude in whole degrees")
	fs.String("min-lon", "", "minimum longitude in whole degrees")
	fs.String("max-lon", "", "maximum longitude in whole degrees")
	fs.String("min-elevation", "", "minimum elevation in meters")
	fs.String("max-elevation", "", "maximum elevation in meters")
	fs.String("earliest-year", "", "earliest year of the range")
	fs.String("latest-year", "", "latest year of the range")
	fs.Parse(args)

	passed := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { passed[f.Name] = true })

	v, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := setupLogger(pick(*logLevel, v.GetString("log_level")))

	join, err := parseMatch(*match)
	if err != nil {
		return err
	}

	params := noaa.SearchParams{
		XMLID:               *xmlID,
		StudyID:             *studyID,
		SearchText:          *text,
		Investigators:       splitList(*investigators),
		InvestigatorsJoin:   join,
		Locations:           splitList(*locations),
		LocationsJoin:       join,
		Keywords:            splitList(*keywords),
		KeywordsJoin:        join,
		Species:             splitList(*species),
		SpeciesJoin:         join,
		CVWhats:             splitList(*cvWhats),
		CVWhatsJoin:         join,
		CVMaterials:         splitList(*cvMaterials),
		CVMaterialsJoin:     join,
		CVSeasonalities:     splitList(*cvSeasons),
		CVSeasonalitiesJoin: join,
		DataTypeID:          *dataTypeID,
		Format:              noaa.TimeFormat(*timeFormat),
		Method:              noaa.TimeMethod(*timeMethod),
		Recent:              *recent,
		Limit:               *limit,
	}
	if passed["reconstructions"] {
		params.ReconstructionsOnly = noaa.Bool(*reconstructions)
	}
	for name, dst := range map[string]**int{
		"min-lat":       &params.MinLat,
		"max-lat":       &params.MaxLat,
		"min-lon":       &params.MinLon,
		"max-lon":       &params.MaxLon,
		"min-elevation": &params.MinElevation,
		"max-elevation": &params.MaxElevation,
		"earliest-year": &params.EarliestYear,
		"latest-year":   &params.LatestYear,
	} {
		val, err := optInt(name, fs.Lookup(name).Value.String())
		if err != nil {
			return err
		}
		*dst = val
	}

	client := newNOAAClient(v, logger)
	result, err := client.Search(context.Background(), params)
	if err != nil {
		return err
	}
	for _, note := range result.Notes {
		logger.Info(note)
	}

	switch {
	case *asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Studies)
	case *showBibtex:
		fmt.Print(result.BibTeX())
		return nil
	}

	if result.Len() == 0 {
		fmt.Println("No studies matched.")
		return nil
	}
	for i := range result.Studies {
		printStudy(os.Stdout, &result.Studies[i])
	}
	if *showTables {
		fmt.Println()
		for _, row := range result.Tables() {
			fmt.Printf("table %s: %s (%s)\n", row.DataTableID, row.DataTableName, row.SiteName)
			if len(row.Variables) > 0 {
				fmt.Printf("  variables: %s\n", strings.Join(row.Variables, ", "))
			}
			fmt.Printf("  %s\n", row.FileURL)
		}
	}
	return nil
}

func runFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "path to a YAML config file")
		logLevel   = fs.String("log-level", "", "log level (debug, info, warn, error)")
		output     = fs.String("output", "", "export blocks to this file instead of printing a summary")
		exportName = fs.String("export", "csv", "export format (csv, tsv, json, jsonl, markdown)")
	)
	fs.Parse(args)

	urls := fs.Args()
	if len(urls) == 0 {
		return fmt.Errorf("fetch requires at least one data file URL")
	}
	if *output != "" && len(urls) > 1 {
		return fmt.Errorf("-output only works with a single URL")
	}

	v, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := setupLogger(pick(*logLevel, v.GetString("log_level")))
	client := newNOAAClient(v, logger)

	for _, u := range urls {
		blocks, err := client.FetchData(context.Background(), u)
		if err != nil {
			return fmt.Errorf("%s: %w", u, err)
		}

		if *output != "" {
			ef, err := export.ParseFormat(*exportName)
			if err != nil {
				return err
			}
			if err := export.New(ef).ExportToFile(blocks, *output); err != nil {
				return err
			}
			logger.Infof("wrote %d blocks to %s", len(blocks), *output)
			continue
		}

		fmt.Printf("%s: %d blocks\n", u, len(blocks))
		printBlocks(os.Stdout, blocks)
	}
	return nil
}

func printStudy(w io.Writer, s *noaa.Study) {
	fmt.Fprintf(w, "%s  %s", s.StudyID, s.StudyName)
	if s.DataType != "" {
		fmt.Fprintf(w, " (%s)", s.DataType)
	}
	fmt.Fprintln(w)
	if inv := s.Investigators(); inv != "" {
		fmt.Fprintf(w, "  investigators: %s\n", inv)
	}
	if s.EarliestYearCE != nil && s.MostRecentYearCE != nil {
		fmt.Fprintf(w, "  coverage: %d to %d CE\n", *s.EarliestYearCE, *s.MostRecentYearCE)
	}
}

func printBlocks(w io.Writer, blocks []*model.Block) {
	for _, b := range blocks {
		line := fmt.Sprintf("block %d: %s", b.Index, b.Type)
		if b.Title != "" {
			line += fmt.Sprintf(" %q", b.Title)
		}
		if b.Table != nil {
			line += fmt.Sprintf(" (%d columns, %d rows)", b.Table.ColCount(), b.Table.RowCount())
		}
		if b.Err != nil {
			line += ": " + b.Err.Message
		}
		fmt.Fprintln(w, line)
	}
}

func logWarnings(logger *logrus.Logger, warnings []paleotext.Warning) {
	for _, w := range warnings {
		logger.Warn(w.String())
	}
}

func parseSourceFormat(s string) (format.Format, error) {
	switch strings.ToLower(s) {
	case "standard":
		return format.Standard, nil
	case "nonstandard":
		return format.NonStandard, nil
	case "html":
		return format.HTML, nil
	default:
		return format.Unknown, fmt.Errorf("unknown format %q (want standard, nonstandard or html)", s)
	}
}

func parseMatch(s string) (noaa.AndOr, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "any", "or":
		return noaa.AndOrOr, nil
	case "all", "and":
		return noaa.AndOrAnd, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want any or all)", s)
	}
}

// splitList splits a semicolon-separated flag value. Semicolons are
// the separator because NOAA investigator names carry interior commas.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func optInt(name, s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be an integer", name, s)
	}
	return &n, nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
