package filename

import (
	"regexp"
	"strings"

	"github.com/stedavkle/fish-renamer/internal/errors"
)

// Sentinel errors describing why an assembly was rejected. The renaming
// orchestrator maps these onto per-file skip reasons.
var (
	// ErrAlreadyProcessed means the input name already matches the target
	// stage (or a later one); a name may enter each stage only once.
	ErrAlreadyProcessed = errors.NewStd("already processed")

	// ErrInvalidFormat means the input name does not match the stage the
	// operation requires.
	ErrInvalidFormat = errors.NewStd("invalid format")

	// ErrMissingData means a required input was empty or a lookup
	// resolved to nothing.
	ErrMissingData = errors.NewStd("missing data")
)

// Lookups is the read-only lookup-table surface the assembler depends on.
// Implementations return empty strings for unknown input rather than errors.
type Lookups interface {
	// AuthorCode resolves a photographer's full name to their 5-letter code.
	AuthorCode(fullName string) string
	// SiteString resolves an (area, site) pair to the compact site code.
	SiteString(area, site string) string
}

// Assembler builds new encoded filenames from records and edited fields,
// enforcing stage-transition legality and idempotence.
type Assembler struct {
	lookups Lookups
}

// NewAssembler returns an Assembler backed by the given lookup tables.
func NewAssembler(lookups Lookups) *Assembler {
	return &Assembler{lookups: lookups}
}

var fieldValidators = map[string]*regexp.Regexp{
	"date":       regexp.MustCompile(`^` + patDate + `$`),
	"time":       regexp.MustCompile(`^` + patTime + `$`),
	"activity":   regexp.MustCompile(`^` + patActivity + `$`),
	"camera":     regexp.MustCompile(`^` + patCamera + `$`),
	"author":     regexp.MustCompile(`^` + patAuthor + `$`),
	"family":     regexp.MustCompile(`^` + patFamily + `$`),
	"genus":      regexp.MustCompile(`^` + patGenus + `$`),
	"species":    regexp.MustCompile(`^` + patSpecies + `$`),
	"confidence": regexp.MustCompile(`^` + patConfidence + `$`),
	"phase":      regexp.MustCompile(`^` + patPhase + `$`),
	"colour":     regexp.MustCompile(`^` + patColour + `$`),
	"behaviour":  regexp.MustCompile(`^` + patBehaviour + `$`),
}

func validField(kind, value string) bool {
	return fieldValidators[kind].MatchString(value)
}

// SanitizeOriginal strips separator characters from an original filename
// so the encoded name keeps unambiguous field positions.
func SanitizeOriginal(name string) string {
	return strings.ReplaceAll(name, Separator, "")
}

// ToBasic builds a Basic-stage filename from a raw original name plus the
// capture metadata. The date argument is the combined capture timestamp in
// YYYY-MM-DD_HH-MM-SS form as produced by the exiftool session.
//
// It returns ErrAlreadyProcessed if originalName already matches the Basic
// or Identified grammar, and ErrMissingData if any input is empty or a
// lookup resolves to nothing. The new name carries the MarkerNoGPS marker.
func (a *Assembler) ToBasic(originalName, dateTime, authorName, area, site, activity, cameraAbbrev string) (string, error) {
	if MatchesAnyStage(originalName) {
		return "", ErrAlreadyProcessed
	}

	authorCode := a.lookups.AuthorCode(authorName)
	siteString := a.lookups.SiteString(area, site)

	date, timeOfDay, ok := strings.Cut(dateTime, Separator)
	if !ok {
		return "", ErrMissingData
	}

	sanitized := SanitizeOriginal(originalName)
	if authorCode == "" || siteString == "" || activity == "" || cameraAbbrev == "" || sanitized == "" {
		return "", ErrMissingData
	}
	if !validField("author", authorCode) || !ValidSiteString(siteString) ||
		!validField("date", date) || !validField("time", timeOfDay) ||
		!validField("activity", activity) || !validField("camera", cameraAbbrev) {
		return "", ErrInvalidFormat
	}

	f := BasicFields{
		AuthorCode:   authorCode,
		SiteString:   siteString,
		Date:         date,
		Time:         timeOfDay,
		Activity:     activity,
		CameraCode:   cameraAbbrev,
		OriginalName: sanitized,
		GPSMarker:    MarkerNoGPS,
	}
	return f.Encode(), nil
}

// ToIdentified prefixes the taxonomy block to an existing Basic-stage name.
// The Basic payload is carried verbatim, marker included; no stage may be
// skipped or re-entered.
func (a *Assembler) ToIdentified(existingName, family, genus, species, confidence, phase, colour, behaviour string) (string, error) {
	if _, ok := MatchIdentified(existingName); ok {
		return "", ErrAlreadyProcessed
	}
	if _, ok := MatchBasic(existingName); !ok {
		return "", ErrInvalidFormat
	}

	for _, v := range []string{family, genus, species, confidence, phase, colour, behaviour} {
		if v == "" {
			return "", ErrMissingData
		}
	}
	if !validField("family", family) || !validField("genus", genus) ||
		!validField("species", species) || !validField("confidence", confidence) ||
		!validField("phase", phase) || !validField("colour", colour) ||
		!validField("behaviour", behaviour) {
		return "", ErrInvalidFormat
	}

	taxonomy := strings.Join([]string{family, genus, species, IdentityTag,
		confidence, phase, colour, behaviour}, Separator)
	return taxonomy + Separator + existingName, nil
}

// EditMask selects which fields an edit replaces. Date, time and the
// original name are never editable and have no mask entry.
type EditMask struct {
	Family     bool
	Genus      bool
	Species    bool
	Confidence bool
	Phase      bool
	Colour     bool
	Behaviour  bool
	Author     bool
	Site       bool
	Activity   bool
	Camera     bool
}

// EditValues carries the replacement values for masked fields, already in
// their encoded form (codes and abbreviations, not display labels).
type EditValues struct {
	Family     string
	Genus      string
	Species    string
	Confidence string
	Phase      string
	Colour     string
	Behaviour  string
	Author     string
	Site       string
	Activity   string
	Camera     string
}

// ApplyEdits rewrites selected fields of a parsed record in place at a
// fixed stage. It is not a stage transition, so there is no idempotence
// check. For StageBasic the taxonomy entries of mask and values are
// ignored.
func ApplyEdits(stage Stage, rec IdentifiedFields, mask EditMask, values EditValues) (string, error) {
	pick := func(edited bool, value, original string) string {
		if edited {
			return value
		}
		return original
	}

	rec.AuthorCode = pick(mask.Author, values.Author, rec.AuthorCode)
	rec.SiteString = pick(mask.Site, values.Site, rec.SiteString)
	rec.Activity = pick(mask.Activity, values.Activity, rec.Activity)
	rec.CameraCode = pick(mask.Camera, values.Camera, rec.CameraCode)

	switch stage {
	case StageBasic:
		return rec.BasicFields.Encode(), nil
	case StageIdentified:
		rec.Family = pick(mask.Family, values.Family, rec.Family)
		rec.Genus = pick(mask.Genus, values.Genus, rec.Genus)
		rec.Species = pick(mask.Species, values.Species, rec.Species)
		rec.Confidence = pick(mask.Confidence, values.Confidence, rec.Confidence)
		rec.Phase = pick(mask.Phase, values.Phase, rec.Phase)
		rec.Colour = pick(mask.Colour, values.Colour, rec.Colour)
		rec.Behaviour = pick(mask.Behaviour, values.Behaviour, rec.Behaviour)
		return rec.Encode(), nil
	default:
		return "", ErrInvalidFormat
	}
}

// FlipGPSMarker advances the GPS marker after a successful coordinate
// write. A trailing MarkerNoGPS becomes MarkerGPS, an existing MarkerGPS
// is returned unchanged, and a legacy name lacking a marker gets one
// appended. Names matching no stage grammar are rejected.
func FlipGPSMarker(name string) (string, error) {
	stage := DetectStage(name)
	if stage == StageUnclassified {
		return "", ErrInvalidFormat
	}

	switch {
	case strings.HasSuffix(name, Separator+MarkerGPS):
		return name, nil
	case strings.HasSuffix(name, Separator+MarkerNoGPS):
		return name[:len(name)-1] + MarkerGPS, nil
	default:
		return name + Separator + MarkerGPS, nil
	}
}
