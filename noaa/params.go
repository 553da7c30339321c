package noaa

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// AndOr selects how multiple values of one search filter combine.
type AndOr string

const (
	// AndOrOr matches studies satisfying any of the values.
	AndOrOr AndOr = "or"
	// AndOrAnd matches studies satisfying all of the values.
	AndOrAnd AndOr = "and"
)

// TimeFormat names the calendar a year range is expressed in.
type TimeFormat string

const (
	// TimeCE interprets years as Common Era.
	TimeCE TimeFormat = "CE"
	// TimeBP interprets years as Before Present.
	TimeBP TimeFormat = "BP"
)

// TimeMethod selects how a study's coverage must relate to the
// requested year range.
type TimeMethod string

const (
	// OverAny matches studies overlapping any part of the range.
	OverAny TimeMethod = "overAny"
	// EntireOver matches studies whose entire coverage lies inside the range.
	EntireOver TimeMethod = "entireOver"
	// OverEntire matches studies covering the entire range.
	OverEntire TimeMethod = "overEntire"
)

// SearchParams holds the filters accepted by the study search
// endpoint. The zero value is not a valid search; at least one filter
// must be set.
//
// XMLID and StudyID are direct identifiers: when either is present the
// query carries only the identifiers and every other filter is
// ignored. Multi-value filters join their values with "|" and send a
// companion and/or parameter when two or more values are given.
type SearchParams struct {
	// XMLID and StudyID fetch specific studies by identifier.
	XMLID   string
	StudyID string

	// SearchText is a free-text query. The characters < > & are
	// rejected.
	SearchText string

	Investigators     []string
	InvestigatorsJoin AndOr

	Locations     []string
	LocationsJoin AndOr

	Keywords     []string
	KeywordsJoin AndOr

	// Species are four-letter tree species codes, case-insensitive.
	Species     []string
	SpeciesJoin AndOr

	CVWhats     []string
	CVWhatsJoin AndOr

	CVMaterials     []string
	CVMaterialsJoin AndOr

	CVSeasonalities     []string
	CVSeasonalitiesJoin AndOr

	DataTypeID string

	// Bounding box in whole degrees. Latitudes must lie in [-90, 90],
	// longitudes in [-180, 180].
	MinLat *int
	MaxLat *int
	MinLon *int
	MaxLon *int

	// Elevation bounds in meters.
	MinElevation *int
	MaxElevation *int

	// Year range. When neither Format nor Method is set and a year is
	// given, the format defaults to CE.
	EarliestYear *int
	LatestYear   *int
	Format       TimeFormat
	Method       TimeMethod

	// ReconstructionsOnly restricts results to climate reconstructions.
	ReconstructionsOnly *bool

	// Recent orders results by most recently added.
	Recent bool

	// Limit caps the number of returned studies. Zero means
	// DefaultLimit.
	Limit int
}

// Int returns a pointer to v, for the optional numeric fields of
// SearchParams.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// multiSpec describes one multi-value filter and how to normalize its
// values.
type multiSpec struct {
	param     string
	values    []string
	join      AndOr
	normalize func(string) (string, error)
}

// IsZero reports whether no filter at all is set.
func (p *SearchParams) IsZero() bool {
	return p.XMLID == "" && p.StudyID == "" && p.SearchText == "" &&
		len(p.Investigators) == 0 && len(p.Locations) == 0 && len(p.Keywords) == 0 &&
		len(p.Species) == 0 && len(p.CVWhats) == 0 && len(p.CVMaterials) == 0 &&
		len(p.CVSeasonalities) == 0 && p.DataTypeID == "" &&
		p.MinLat == nil && p.MaxLat == nil && p.MinLon == nil && p.MaxLon == nil &&
		p.MinElevation == nil && p.MaxElevation == nil &&
		p.EarliestYear == nil && p.LatestYear == nil &&
		p.ReconstructionsOnly == nil && !p.Recent
}

// Values validates the parameters and builds the query string for the
// search endpoint. The returned notes describe normalizations worth
// surfacing to the caller, such as the identifier short-circuit.
func (p *SearchParams) Values() (url.Values, []string, error) {
	if p.IsZero() {
		return nil, nil, fmt.Errorf("at least one search parameter is required")
	}

	values := url.Values{}
	values.Set("dataPublisher", "NOAA")
	var notes []string

	// Identifier lookups ignore every other filter.
	if p.XMLID != "" || p.StudyID != "" {
		if p.XMLID != "" {
			if err := validateID("xmlId", p.XMLID); err != nil {
				return nil, nil, err
			}
			values.Set("xmlId", p.XMLID)
		}
		if p.StudyID != "" {
			if err := validateID("NOAAStudyId", p.StudyID); err != nil {
				return nil, nil, err
			}
			values.Set("NOAAStudyId", p.StudyID)
		}
		notes = append(notes, "identifier given; all other search filters are ignored")
		return values, notes, nil
	}

	if p.SearchText != "" {
		if strings.ContainsAny(p.SearchText, "<>&") {
			return nil, nil, fmt.Errorf("search_text must not contain the characters < > &")
		}
		values.Set("searchText", p.SearchText)
	}

	specs := []multiSpec{
		{"investigators", p.Investigators, p.InvestigatorsJoin, nil},
		{"locations", p.Locations, p.LocationsJoin, nil},
		{"keywords", p.Keywords, p.KeywordsJoin, nil},
		{"species", p.Species, p.SpeciesJoin, normalizeSpecies},
		{"cvWhats", p.CVWhats, p.CVWhatsJoin, nil},
		{"cvMaterials", p.CVMaterials, p.CVMaterialsJoin, nil},
		{"cvSeasonalities", p.CVSeasonalities, p.CVSeasonalitiesJoin, nil},
	}
	for _, spec := range specs {
		if err := spec.apply(values); err != nil {
			return nil, nil, err
		}
	}

	if p.DataTypeID != "" {
		if err := validateID("dataTypeId", p.DataTypeID); err != nil {
			return nil, nil, err
		}
		values.Set("dataTypeId", p.DataTypeID)
	}

	if err := setBounded(values, "minLat", p.MinLat, -90, 90); err != nil {
		return nil, nil, err
	}
	if err := setBounded(values, "maxLat", p.MaxLat, -90, 90); err != nil {
		return nil, nil, err
	}
	if err := setBounded(values, "minLon", p.MinLon, -180, 180); err != nil {
		return nil, nil, err
	}
	if err := setBounded(values, "maxLon", p.MaxLon, -180, 180); err != nil {
		return nil, nil, err
	}
	if p.MinElevation != nil {
		values.Set("minElevation", strconv.Itoa(*p.MinElevation))
	}
	if p.MaxElevation != nil {
		values.Set("maxElevation", strconv.Itoa(*p.MaxElevation))
	}

	if err := p.applyTimeRange(values, &notes); err != nil {
		return nil, nil, err
	}

	if p.ReconstructionsOnly != nil {
		values.Set("reconstructionsOnly", toYN(*p.ReconstructionsOnly))
	}
	if p.Recent {
		values.Set("recent", "true")
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	values.Set("limit", strconv.Itoa(limit))

	return values, notes, nil
}

// apply joins the values with "|" and sets the companion and/or
// parameter when there are at least two of them.
func (s *multiSpec) apply(values url.Values) error {
	var kept []string
	for _, raw := range s.values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if s.normalize != nil {
			norm, err := s.normalize(v)
			if err != nil {
				return fmt.Errorf("%s: %w", s.param, err)
			}
			v = norm
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return nil
	}
	values.Set(s.param, strings.Join(kept, "|"))
	if len(kept) >= 2 {
		join := s.join
		if join == "" {
			join = AndOrOr
		}
		if join != AndOrOr && join != AndOrAnd {
			return fmt.Errorf("%s: join must be %q or %q, got %q", s.param, AndOrAnd, AndOrOr, join)
		}
		values.Set(s.param+"AndOr", string(join))
	}
	return nil
}

func (p *SearchParams) applyTimeRange(values url.Values, notes *[]string) error {
	hasYears := p.EarliestYear != nil || p.LatestYear != nil
	if p.EarliestYear != nil {
		values.Set("earliestYear", strconv.Itoa(*p.EarliestYear))
	}
	if p.LatestYear != nil {
		values.Set("latestYear", strconv.Itoa(*p.LatestYear))
	}

	format := p.Format
	if hasYears && format == "" && p.Method == "" {
		format = TimeCE
		*notes = append(*notes, `no time format given; defaulting to "CE"`)
	}
	if format != "" {
		if format != TimeCE && format != TimeBP {
			return fmt.Errorf("time_format must be %q or %q, got %q", TimeCE, TimeBP, format)
		}
		values.Set("timeFormat", string(format))
	}
	if p.Method != "" {
		switch p.Method {
		case OverAny, EntireOver, OverEntire:
			values.Set("timeMethod", string(p.Method))
		default:
			return fmt.Errorf("time_method must be one of %q, %q, %q, got %q",
				OverAny, EntireOver, OverEntire, p.Method)
		}
	}
	return nil
}

// normalizeSpecies enforces the four-letter species code convention
// and uppercases it.
func normalizeSpecies(v string) (string, error) {
	if len(v) != 4 {
		return "", fmt.Errorf("species code must be exactly 4 letters, got %q", v)
	}
	for _, r := range v {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", fmt.Errorf("species code must be alphabetic, got %q", v)
		}
	}
	return strings.ToUpper(v), nil
}

func validateID(name, v string) error {
	if v == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return fmt.Errorf("%s must be a non-negative integer, got %q", name, v)
		}
	}
	return nil
}

func setBounded(values url.Values, name string, v *int, lo, hi int) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, *v)
	}
	values.Set(name, strconv.Itoa(*v))
	return nil
}

func toYN(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
