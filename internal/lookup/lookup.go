// Package lookup loads the reference tables the renamer resolves names
// against: photographers, dive sites, species, activities and the label
// abbreviation sets. Tables are plain CSV and JSON files shipped next to
// the binary so field teams can extend them without a release.
package lookup

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/stedavkle/fish-renamer/internal/errors"
	"github.com/stedavkle/fish-renamer/internal/logging"
)

// Paths names the table files to load. Empty entries are skipped.
type Paths struct {
	Species       string
	Photographers string
	Divesites     string
	Activities    string
	Labels        string
}

// SpeciesRow is one taxonomy entry. Extra columns in the CSV mark
// per-location presence and are kept for filtering.
type SpeciesRow struct {
	Family         string
	Genus          string
	Species        string
	SpeciesEnglish string
	Locations      map[string]string
}

// AuthorRow maps a photographer's full name to their 5-letter code.
type AuthorRow struct {
	FullName string
	Code     string
}

// SiteRow is one dive site with its compact site code and coordinates.
type SiteRow struct {
	Area       string
	Site       string
	SiteString string
	Latitude   string
	Longitude  string
	Locations  map[string]string
}

// Tables holds all loaded reference data. Lookup methods never fail;
// unknown input resolves to the zero value so callers can treat "not
// found" as missing data rather than an error.
type Tables struct {
	speciesRaw []SpeciesRow
	sitesRaw   []SiteRow

	species    []SpeciesRow
	authors    []AuthorRow
	sites      []SiteRow
	activities []string
	labels     map[string]map[string]string

	location string
	logger   *slog.Logger
}

const (
	colFamily         = "Family"
	colGenus          = "Genus"
	colSpecies        = "Species"
	colSpeciesEnglish = "Species English"
	colArea           = "Area"
	colSite           = "Site"
	colSiteString     = "Site string"
	colLatitude       = "latitude"
	colLongitude      = "longitude"
	colFullName       = "Full name"
	colNamecode       = "Namecode"
	colActivity       = "Activity"

	// CategoryCamera keys the camera abbreviation set in the labels file.
	CategoryCamera = "Camera"
)

// Load reads all tables named in paths. Missing files are logged and
// skipped so a partial data directory still yields a usable instance;
// a malformed file is an error.
func Load(paths Paths) (*Tables, error) {
	t := &Tables{
		labels: map[string]map[string]string{},
		logger: logging.ForService("lookup"),
	}

	type loader struct {
		name string
		path string
		load func(string) error
	}
	for _, l := range []loader{
		{"species", paths.Species, t.loadSpecies},
		{"photographers", paths.Photographers, t.loadAuthors},
		{"divesites", paths.Divesites, t.loadSites},
		{"activities", paths.Activities, t.loadActivities},
		{"labels", paths.Labels, t.loadLabels},
	} {
		if l.path == "" {
			continue
		}
		if _, err := os.Stat(l.path); err != nil {
			t.logger.Warn("lookup table not found", "table", l.name, "path", l.path)
			continue
		}
		if err := l.load(l.path); err != nil {
			return nil, errors.New(err).
				Component("lookup").
				Category(errors.CategoryFileIO).
				FileContext(l.path).
				Context("table", l.name).
				Build()
		}
		t.logger.Debug("loaded lookup table", "table", l.name, "path", l.path)
	}

	t.FilterByLocation("")
	return t, nil
}

// readRecords parses a semicolon-delimited CSV into header-keyed rows.
// A UTF-8 byte order mark on the first line is tolerated because the
// tables are commonly edited in spreadsheet software that writes one.
func readRecords(path string) ([]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func extraColumns(row map[string]string, known ...string) map[string]string {
	skip := make(map[string]struct{}, len(known))
	for _, k := range known {
		skip[k] = struct{}{}
	}
	extra := map[string]string{}
	for col, v := range row {
		if _, ok := skip[col]; !ok {
			extra[col] = v
		}
	}
	return extra
}

func (t *Tables) loadSpecies(path string) error {
	rows, err := readRecords(path)
	if err != nil {
		return err
	}
	t.speciesRaw = t.speciesRaw[:0]
	for _, row := range rows {
		t.speciesRaw = append(t.speciesRaw, SpeciesRow{
			Family:         row[colFamily],
			Genus:          row[colGenus],
			Species:        row[colSpecies],
			SpeciesEnglish: row[colSpeciesEnglish],
			Locations:      extraColumns(row, colFamily, colGenus, colSpecies, colSpeciesEnglish),
		})
	}
	return nil
}

func (t *Tables) loadAuthors(path string) error {
	rows, err := readRecords(path)
	if err != nil {
		return err
	}
	t.authors = t.authors[:0]
	for _, row := range rows {
		t.authors = append(t.authors, AuthorRow{
			FullName: row[colFullName],
			Code:     row[colNamecode],
		})
	}
	return nil
}

func (t *Tables) loadSites(path string) error {
	rows, err := readRecords(path)
	if err != nil {
		return err
	}
	t.sitesRaw = t.sitesRaw[:0]
	for _, row := range rows {
		t.sitesRaw = append(t.sitesRaw, SiteRow{
			Area:       row[colArea],
			Site:       row[colSite],
			SiteString: row[colSiteString],
			Latitude:   row[colLatitude],
			Longitude:  row[colLongitude],
			Locations:  extraColumns(row, colArea, colSite, colSiteString, colLatitude, colLongitude),
		})
	}
	return nil
}

func (t *Tables) loadActivities(path string) error {
	rows, err := readRecords(path)
	if err != nil {
		return err
	}
	t.activities = t.activities[:0]
	for _, row := range rows {
		if v := row[colActivity]; v != "" {
			t.activities = append(t.activities, v)
		}
	}
	return nil
}

func (t *Tables) loadLabels(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, &t.labels)
}

// AvailableLocations lists the per-location columns of the species table.
func (t *Tables) AvailableLocations() []string {
	if len(t.speciesRaw) == 0 {
		return nil
	}
	locations := make([]string, 0, len(t.speciesRaw[0].Locations))
	for col := range t.speciesRaw[0].Locations {
		locations = append(locations, col)
	}
	sort.Strings(locations)
	return locations
}

// FilterByLocation narrows species and sites to rows flagged for the
// given location column. An empty location restores the full tables.
func (t *Tables) FilterByLocation(location string) {
	t.location = location

	t.species = filterRows(t.speciesRaw, location, func(r SpeciesRow) map[string]string { return r.Locations })
	t.sites = filterRows(t.sitesRaw, location, func(r SiteRow) map[string]string { return r.Locations })
}

func filterRows[T any](raw []T, location string, locs func(T) map[string]string) []T {
	if location == "" || len(raw) == 0 {
		return append([]T(nil), raw...)
	}
	if _, ok := locs(raw[0])[location]; !ok {
		return append([]T(nil), raw...)
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		if locs(r)[location] == "1" {
			out = append(out, r)
		}
	}
	return out
}

// AuthorCode resolves a photographer's full name to their code.
func (t *Tables) AuthorCode(fullName string) string {
	for _, a := range t.authors {
		if a.FullName == fullName {
			return a.Code
		}
	}
	return ""
}

// AuthorName resolves a photographer code back to the full name.
func (t *Tables) AuthorName(code string) string {
	for _, a := range t.authors {
		if a.Code == code {
			return a.FullName
		}
	}
	return ""
}

// SiteString resolves an (area, site) pair to the compact site code.
func (t *Tables) SiteString(area, site string) string {
	for _, s := range t.sites {
		if s.Area == area && s.Site == site {
			return s.SiteString
		}
	}
	return ""
}

// AreaSite resolves a site code back to its area and site names.
func (t *Tables) AreaSite(siteString string) (area, site string, ok bool) {
	for _, s := range t.sites {
		if s.SiteString == siteString {
			return s.Area, s.Site, true
		}
	}
	return "", "", false
}

// Coordinates returns the latitude and longitude recorded for a site code.
func (t *Tables) Coordinates(siteString string) (lat, lon float64, err error) {
	for _, s := range t.sites {
		if s.SiteString != siteString {
			continue
		}
		lat, latErr := strconv.ParseFloat(s.Latitude, 64)
		lon, lonErr := strconv.ParseFloat(s.Longitude, 64)
		if latErr != nil || lonErr != nil {
			return 0, 0, errors.Newf("site %s has unparseable coordinates %q, %q", siteString, s.Latitude, s.Longitude).
				Component("lookup").
				Category(errors.CategoryValidation).
				Build()
		}
		return lat, lon, nil
	}
	return 0, 0, errors.Newf("unknown site code: %s", siteString).
		Component("lookup").
		Category(errors.CategoryNotFound).
		Build()
}

// Sites returns the filtered dive sites sorted by area then site name.
func (t *Tables) Sites() []SiteRow {
	out := append([]SiteRow(nil), t.sites...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Area != out[j].Area {
			return out[i].Area < out[j].Area
		}
		return out[i].Site < out[j].Site
	})
	return out
}

// Activities returns the known activity values in table order.
func (t *Tables) Activities() []string {
	return append([]string(nil), t.activities...)
}

// Label resolves an abbreviation within a label category to its display
// label. Categories include Confidence, Phase, Colour, Behaviour, Camera.
func (t *Tables) Label(category, abbrev string) string {
	return t.labels[category][abbrev]
}

// Abbreviation resolves a display label back to its abbreviation.
func (t *Tables) Abbreviation(category, label string) string {
	for abbrev, l := range t.labels[category] {
		if l == label {
			return abbrev
		}
	}
	return ""
}

// Abbreviations lists the abbreviation keys of a label category, sorted.
func (t *Tables) Abbreviations(category string) []string {
	out := make([]string, 0, len(t.labels[category]))
	for abbrev := range t.labels[category] {
		out = append(out, abbrev)
	}
	sort.Strings(out)
	return out
}

// CameraAbbrev resolves a full camera name to its encoded abbreviation.
func (t *Tables) CameraAbbrev(fullName string) string {
	return t.Abbreviation(CategoryCamera, fullName)
}

// CameraName resolves a camera abbreviation to the full model name.
func (t *Tables) CameraName(abbrev string) string {
	return t.Label(CategoryCamera, abbrev)
}

// SearchSpecies returns taxonomy rows where every whitespace-separated
// term of query occurs in some column, case-insensitively. An empty
// query returns all rows. Results are sorted by taxonomy.
func (t *Tables) SearchSpecies(query string) []SpeciesRow {
	terms := strings.Fields(strings.ToLower(query))

	matched := make([]SpeciesRow, 0, len(t.species))
	for _, row := range t.species {
		haystack := strings.ToLower(strings.Join([]string{
			row.Family, row.Genus, row.Species, row.SpeciesEnglish,
		}, " "))
		all := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, row)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Family != matched[j].Family {
			return matched[i].Family < matched[j].Family
		}
		if matched[i].Genus != matched[j].Genus {
			return matched[i].Genus < matched[j].Genus
		}
		return matched[i].Species < matched[j].Species
	})
	return matched
}
