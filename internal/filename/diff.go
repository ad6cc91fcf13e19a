package filename

import (
	"github.com/stedavkle/fish-renamer/internal/errors"
)

// Agreement records, field by field, whether every record in a selection
// carries a byte-identical value. It mirrors the record field names so the
// edit mask can be derived from it directly. Date, time, original name and
// marker are reported for completeness but are never editable.
type Agreement struct {
	Family       bool
	Genus        bool
	Species      bool
	Confidence   bool
	Phase        bool
	Colour       bool
	Behaviour    bool
	Author       bool
	Site         bool
	Date         bool
	Time         bool
	Activity     bool
	Camera       bool
	OriginalName bool
	Marker       bool
}

// EditableMask converts the agreement into an edit mask covering only the
// fields a bulk edit may touch: a field is offered for editing exactly when
// it agrees across the whole selection.
func (a Agreement) EditableMask() EditMask {
	return EditMask{
		Family:     a.Family,
		Genus:      a.Genus,
		Species:    a.Species,
		Confidence: a.Confidence,
		Phase:      a.Phase,
		Colour:     a.Colour,
		Behaviour:  a.Behaviour,
		Author:     a.Author,
		Site:       a.Site,
		Activity:   a.Activity,
		Camera:     a.Camera,
	}
}

// BatchSelection is the result of analyzing a multi-file edit selection:
// the detected stage, the parsed records, the per-field agreement and a
// representative record. Representative values are only meaningful for
// fields whose agreement flag is set; disagreeing fields are left empty.
type BatchSelection struct {
	Stage          Stage
	Records        []IdentifiedFields
	Agreement      Agreement
	Representative IdentifiedFields
}

// Analyze parses a set of encoded filenames and computes which fields are
// identical across all of them. Analysis is all-or-nothing: every name
// must match the same stage grammar or the whole selection is rejected,
// so a bulk edit can never silently cover a partial parse.
func Analyze(names []string) (*BatchSelection, error) {
	if len(names) == 0 {
		return nil, errors.Newf("empty selection").
			Category(errors.CategoryValidation).
			Build()
	}

	stage := DetectStage(names[0])
	if stage == StageUnclassified {
		return nil, errors.Newf("name matches no stage grammar: %s", names[0]).
			Category(errors.CategoryValidation).
			Build()
	}

	records := make([]IdentifiedFields, 0, len(names))
	for _, name := range names {
		if got := DetectStage(name); got != stage {
			return nil, errors.Newf("mixed stages in selection: %s is %s, expected %s", name, got, stage).
				Category(errors.CategoryValidation).
				Build()
		}
		records = append(records, parseAtStage(name, stage))
	}

	first := records[0]
	agreement := Agreement{
		Family: true, Genus: true, Species: true, Confidence: true,
		Phase: true, Colour: true, Behaviour: true,
		Author: true, Site: true, Date: true, Time: true,
		Activity: true, Camera: true, OriginalName: true, Marker: true,
	}

	// Agreement is byte identity, case preserved, no normalization.
	for _, rec := range records[1:] {
		agreement.Family = agreement.Family && rec.Family == first.Family
		agreement.Genus = agreement.Genus && rec.Genus == first.Genus
		agreement.Species = agreement.Species && rec.Species == first.Species
		agreement.Confidence = agreement.Confidence && rec.Confidence == first.Confidence
		agreement.Phase = agreement.Phase && rec.Phase == first.Phase
		agreement.Colour = agreement.Colour && rec.Colour == first.Colour
		agreement.Behaviour = agreement.Behaviour && rec.Behaviour == first.Behaviour
		agreement.Author = agreement.Author && rec.AuthorCode == first.AuthorCode
		agreement.Site = agreement.Site && rec.SiteString == first.SiteString
		agreement.Date = agreement.Date && rec.Date == first.Date
		agreement.Time = agreement.Time && rec.Time == first.Time
		agreement.Activity = agreement.Activity && rec.Activity == first.Activity
		agreement.Camera = agreement.Camera && rec.CameraCode == first.CameraCode
		agreement.OriginalName = agreement.OriginalName && rec.OriginalName == first.OriginalName
		agreement.Marker = agreement.Marker && rec.GPSMarker == first.GPSMarker
	}

	return &BatchSelection{
		Stage:          stage,
		Records:        records,
		Agreement:      agreement,
		Representative: representative(first, agreement),
	}, nil
}

func parseAtStage(name string, stage Stage) IdentifiedFields {
	if stage == StageIdentified {
		f, _ := MatchIdentified(name)
		return f
	}
	f, _ := MatchBasic(name)
	return IdentifiedFields{BasicFields: f}
}

// representative keeps the common value for agreeing fields and blanks the
// rest, the explicit "no common value" marker for callers.
func representative(first IdentifiedFields, a Agreement) IdentifiedFields {
	keep := func(agrees bool, v string) string {
		if agrees {
			return v
		}
		return ""
	}
	return IdentifiedFields{
		Family:     keep(a.Family, first.Family),
		Genus:      keep(a.Genus, first.Genus),
		Species:    keep(a.Species, first.Species),
		Confidence: keep(a.Confidence, first.Confidence),
		Phase:      keep(a.Phase, first.Phase),
		Colour:     keep(a.Colour, first.Colour),
		Behaviour:  keep(a.Behaviour, first.Behaviour),
		BasicFields: BasicFields{
			AuthorCode:   keep(a.Author, first.AuthorCode),
			SiteString:   keep(a.Site, first.SiteString),
			Date:         keep(a.Date, first.Date),
			Time:         keep(a.Time, first.Time),
			Activity:     keep(a.Activity, first.Activity),
			CameraCode:   keep(a.Camera, first.CameraCode),
			OriginalName: keep(a.OriginalName, first.OriginalName),
			GPSMarker:    keep(a.Marker, first.GPSMarker),
		},
	}
}
