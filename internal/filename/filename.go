// Package filename defines the encoding grammar for observation media filenames.
// A filename is the persistent record: photographer, dive site, timestamp,
// activity, camera and (once identified) taxonomy are all encoded into the
// name itself, separated by underscores. This file holds the stage grammars
// and the pure parse functions; assembly lives in assembler.go.
package filename

import (
	"regexp"
	"strings"
)

// Stage is the grammar a filename currently satisfies.
type Stage int

const (
	StageUnclassified Stage = iota // no recognized structure
	StageBasic                     // author, site, date, time, activity, camera, original name, marker
	StageIdentified                // taxonomy block prefixed to the Basic payload
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageBasic:
		return "basic"
	case StageIdentified:
		return "identified"
	default:
		return "unclassified"
	}
}

const (
	// Separator joins encoded fields. It is stripped from the original
	// name before first encoding so field positions stay unambiguous.
	Separator = "_"

	// MarkerNoGPS and MarkerGPS are the trailing GPS marker values.
	MarkerNoGPS = "N"
	MarkerGPS   = "G"

	// IdentityTag is the literal token inserted between the taxonomy
	// block and the Basic payload. Its presence makes the Basic and
	// Identified grammars mutually exclusive.
	IdentityTag = "B"
)

// Sub-grammars for individual fields. These are reused by the stage
// patterns below and by field validation during assembly.
const (
	patAuthor     = `[A-Za-z]{5}`
	patSiteString = `[A-Z]{3}-[A-Za-z]+-[A-Z0-9]{3}`
	patDate       = `\d{4}-\d{2}-\d{2}`
	patTime       = `\d{2}-\d{2}-\d{2}`
	patActivity   = `[A-Za-z]+`
	patCamera     = `[A-Z]-[A-Za-z0-9]+`
	patOriginal   = `[^_]+`
	patFamily     = `0?-?[A-Za-z]+`
	patGenus      = `[A-Za-z]+`
	patSpecies    = `[a-z]+`
	patConfidence = `[a-z]{2}`
	patPhase      = `[A-Za-z]+`
	patColour     = `[A-Za-z]+(?:-[A-Za-z]+)*`
	patBehaviour  = `[A-Za-z]+(?:-[A-Za-z]+)*`
	patMarker     = `[NG]`
)

// basicPayload is the AuthorCode..Marker portion shared by both stages.
// The marker group is optional so names encoded before GPS tracking was
// added still parse.
const basicPayload = `(?P<author>` + patAuthor + `)_` +
	`(?P<site>` + patSiteString + `)_` +
	`(?P<date>` + patDate + `)_` +
	`(?P<time>` + patTime + `)_` +
	`(?P<activity>` + patActivity + `)_` +
	`(?P<camera>` + patCamera + `)_` +
	`(?P<original>` + patOriginal + `?)` +
	`(?:_(?P<marker>` + patMarker + `))?`

var (
	basicRe = regexp.MustCompile(`^` + basicPayload + `$`)

	identifiedRe = regexp.MustCompile(`^(?P<family>` + patFamily + `)_` +
		`(?P<genus>` + patGenus + `)_` +
		`(?P<species>` + patSpecies + `)_` +
		IdentityTag + `_` +
		`(?P<confidence>` + patConfidence + `)_` +
		`(?P<phase>` + patPhase + `)_` +
		`(?P<colour>` + patColour + `)_` +
		`(?P<behaviour>` + patBehaviour + `)_` +
		basicPayload + `$`)

	siteStringRe = regexp.MustCompile(`^` + patSiteString + `$`)
)

// BasicFields holds the decoded fields of a Basic-stage filename.
type BasicFields struct {
	AuthorCode   string // 5-letter photographer code
	SiteString   string // compact dive site identifier, e.g. IDN-Bangka-BTI
	Date         string // YYYY-MM-DD
	Time         string // HH-MM-SS
	Activity     string
	CameraCode   string // uppercase letter, dash, alphanumerics, e.g. S-A7IV
	OriginalName string // sanitized original filename, no separators
	GPSMarker    string // MarkerNoGPS, MarkerGPS, or empty on legacy names
}

// Encode serializes the fields back into a Basic-stage filename.
// An empty marker is omitted so legacy names round-trip byte for byte.
func (f *BasicFields) Encode() string {
	parts := []string{f.AuthorCode, f.SiteString, f.Date, f.Time, f.Activity, f.CameraCode, f.OriginalName}
	if f.GPSMarker != "" {
		parts = append(parts, f.GPSMarker)
	}
	return strings.Join(parts, Separator)
}

// IdentifiedFields holds the decoded fields of an Identified-stage filename:
// the taxonomy block plus the embedded Basic payload.
type IdentifiedFields struct {
	Family     string
	Genus      string
	Species    string
	Confidence string
	Phase      string
	Colour     string
	Behaviour  string
	BasicFields
}

// Encode serializes the fields back into an Identified-stage filename.
func (f *IdentifiedFields) Encode() string {
	taxonomy := strings.Join([]string{f.Family, f.Genus, f.Species, IdentityTag,
		f.Confidence, f.Phase, f.Colour, f.Behaviour}, Separator)
	return taxonomy + Separator + f.BasicFields.Encode()
}

// MatchBasic parses name against the Basic grammar. Matching is anchored
// and total: a partial match is a non-match, never an error.
func MatchBasic(name string) (BasicFields, bool) {
	m := basicRe.FindStringSubmatch(name)
	if m == nil {
		return BasicFields{}, false
	}
	return basicFieldsFrom(basicRe, m), true
}

// MatchIdentified parses name against the Identified grammar.
func MatchIdentified(name string) (IdentifiedFields, bool) {
	m := identifiedRe.FindStringSubmatch(name)
	if m == nil {
		return IdentifiedFields{}, false
	}
	f := IdentifiedFields{
		Family:      m[identifiedRe.SubexpIndex("family")],
		Genus:       m[identifiedRe.SubexpIndex("genus")],
		Species:     m[identifiedRe.SubexpIndex("species")],
		Confidence:  m[identifiedRe.SubexpIndex("confidence")],
		Phase:       m[identifiedRe.SubexpIndex("phase")],
		Colour:      m[identifiedRe.SubexpIndex("colour")],
		Behaviour:   m[identifiedRe.SubexpIndex("behaviour")],
		BasicFields: basicFieldsFrom(identifiedRe, m),
	}
	return f, true
}

func basicFieldsFrom(re *regexp.Regexp, m []string) BasicFields {
	return BasicFields{
		AuthorCode:   m[re.SubexpIndex("author")],
		SiteString:   m[re.SubexpIndex("site")],
		Date:         m[re.SubexpIndex("date")],
		Time:         m[re.SubexpIndex("time")],
		Activity:     m[re.SubexpIndex("activity")],
		CameraCode:   m[re.SubexpIndex("camera")],
		OriginalName: m[re.SubexpIndex("original")],
		GPSMarker:    m[re.SubexpIndex("marker")],
	}
}

// DetectStage classifies a filename. The grammars are mutually exclusive
// by field count and the literal identity tag, so at most one matches.
func DetectStage(name string) Stage {
	if _, ok := MatchIdentified(name); ok {
		return StageIdentified
	}
	if _, ok := MatchBasic(name); ok {
		return StageBasic
	}
	return StageUnclassified
}

// MatchesAnyStage reports whether name matches the Basic or Identified grammar.
func MatchesAnyStage(name string) bool {
	return DetectStage(name) != StageUnclassified
}

// ExtractSiteString returns the site code embedded in an encoded filename.
// It tries the Identified grammar first, then Basic, and validates the
// site-code sub-grammar before accepting the guess.
func ExtractSiteString(name string) (string, bool) {
	var site string
	if f, ok := MatchIdentified(name); ok {
		site = f.SiteString
	} else if f, ok := MatchBasic(name); ok {
		site = f.SiteString
	}
	if site == "" || !siteStringRe.MatchString(site) {
		return "", false
	}
	return site, true
}

// ValidSiteString reports whether s satisfies the site-code sub-grammar.
func ValidSiteString(s string) bool {
	return siteStringRe.MatchString(s)
}
