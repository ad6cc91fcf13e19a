// Package renamer orchestrates batch renames: it walks a caller-ordered
// file list, asks the assembler for each candidate name, performs the
// crash-safe rename, tallies per-file outcomes and keeps the undo log.
package renamer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/stedavkle/fish-renamer/internal/errors"
	"github.com/stedavkle/fish-renamer/internal/exiftool"
	"github.com/stedavkle/fish-renamer/internal/filename"
	"github.com/stedavkle/fish-renamer/internal/logging"
)

// Tables is the lookup surface the orchestrator needs beyond what the
// assembler already consumes.
type Tables interface {
	filename.Lookups
	CameraAbbrev(fullName string) string
	Coordinates(siteString string) (lat, lon float64, err error)
}

// MetadataSession is the external tool surface: batch date reads and
// in-place GPS writes.
type MetadataSession interface {
	IsAvailable() bool
	BatchReadDates(paths []string, progress exiftool.ProgressFunc) (map[string]string, error)
	WriteGPS(path string, lat, lon float64) error
}

// ProgressFunc is invoked after each file of a batch. It must not block;
// it is the only yield point inside a batch loop.
type ProgressFunc func(done, total int, path string)

// Orchestrator runs batches sequentially. A busy flag rejects new
// batches while one is running; there is no mid-batch cancellation.
type Orchestrator struct {
	assembler *filename.Assembler
	tables    Tables
	session   MetadataSession
	undo      *UndoLog
	busy      atomic.Bool
	logger    *slog.Logger
}

// New builds an orchestrator around its collaborators.
func New(assembler *filename.Assembler, tables Tables, session MetadataSession) *Orchestrator {
	return &Orchestrator{
		assembler: assembler,
		tables:    tables,
		session:   session,
		undo:      NewUndoLog(),
		logger:    logging.ForService("renamer"),
	}
}

// UndoLog exposes the log for inspection.
func (o *Orchestrator) UndoLog() *UndoLog {
	return o.undo
}

var errBusy = errors.NewStd("a batch is already running")

// acquire flips the busy flag or reports the conflict.
func (o *Orchestrator) acquire() error {
	if !o.busy.CompareAndSwap(false, true) {
		return errors.New(errBusy).
			Component("renamer").
			Category(errors.CategoryState).
			Build()
	}
	return nil
}

func (o *Orchestrator) release() {
	o.busy.Store(false)
}

// splitName separates a path into directory, name stem and extension.
func splitName(path string) (dir, stem, ext string) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return dir, strings.TrimSuffix(base, ext), ext
}

// skipReason maps assembler sentinel errors onto skip reasons. A nil
// second return means the error is not a skip but a hard failure.
func skipReason(err error) (string, bool) {
	switch {
	case errors.Is(err, filename.ErrAlreadyProcessed):
		return ReasonAlreadyProcessed, true
	case errors.Is(err, filename.ErrInvalidFormat):
		return ReasonInvalidFormat, true
	case errors.Is(err, filename.ErrMissingData):
		return ReasonMissingData, true
	default:
		return "", false
	}
}

// renameTo runs the per-file tail of the state machine: collision
// check, crash-safe rename, undo log entry.
func (o *Orchestrator) renameTo(result *Result, path, dir, candidate, ext string) {
	newPath := filepath.Join(dir, candidate+ext)
	if _, err := os.Stat(newPath); err == nil {
		o.logger.Warn("target already exists", "target", candidate+ext)
		result.record(FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonTargetExists})
		return
	}

	if err := renameWithBackup(path, newPath); err != nil {
		o.logger.Error("rename failed", "file", filepath.Base(path), "error", err)
		result.record(FileStatus{Path: path, Status: StatusFailed, Err: err})
		return
	}

	o.undo.Record(path, newPath)
	o.logger.Info("renamed", "from", filepath.Base(path), "to", candidate+ext)
	result.record(FileStatus{Path: path, NewName: candidate + ext, Status: StatusRenamed})
}

// RenameBasic renames raw files into the Basic stage. Capture dates are
// read from metadata in one batched pass before the rename loop starts;
// files without a usable date are skipped as missing data.
func (o *Orchestrator) RenameBasic(files []string, authorName, area, site, activity, cameraName string, progress ProgressFunc) (*Result, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	batchID := o.undo.Begin()
	o.logger.Info("basic rename batch started", "batch_id", batchID.String(), "files", len(files))

	dates, err := o.session.BatchReadDates(files, nil)
	if err != nil {
		o.logger.Warn("batch date read incomplete", "error", err)
	}
	cameraAbbrev := o.tables.CameraAbbrev(cameraName)

	result := &Result{Total: len(files)}
	for i, path := range files {
		dir, stem, ext := splitName(path)

		dateTime, ok := dates[path]
		if !ok {
			result.record(FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonMissingData})
		} else if candidate, err := o.assembler.ToBasic(stem, dateTime, authorName, area, site, activity, cameraAbbrev); err != nil {
			reason, isSkip := skipReason(err)
			if !isSkip {
				result.record(FileStatus{Path: path, Status: StatusFailed, Err: err})
			} else {
				result.record(FileStatus{Path: path, Status: StatusSkipped, Reason: reason})
			}
		} else {
			o.renameTo(result, path, dir, candidate, ext)
		}

		if progress != nil {
			progress(i+1, len(files), path)
		}
	}

	o.logger.Info("basic rename batch finished", "batch_id", batchID.String(), "summary", result.Summary())
	return result, nil
}

// RenameIdentified advances Basic-stage files to the Identified stage by
// prefixing the given taxonomy block.
func (o *Orchestrator) RenameIdentified(files []string, family, genus, species, confidence, phase, colour, behaviour string, progress ProgressFunc) (*Result, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	batchID := o.undo.Begin()
	o.logger.Info("identify batch started", "batch_id", batchID.String(), "files", len(files))

	result := &Result{Total: len(files)}
	for i, path := range files {
		dir, stem, ext := splitName(path)

		candidate, err := o.assembler.ToIdentified(stem, family, genus, species, confidence, phase, colour, behaviour)
		if err != nil {
			reason, isSkip := skipReason(err)
			if !isSkip {
				result.record(FileStatus{Path: path, Status: StatusFailed, Err: err})
			} else {
				result.record(FileStatus{Path: path, Status: StatusSkipped, Reason: reason})
			}
		} else {
			o.renameTo(result, path, dir, candidate, ext)
		}

		if progress != nil {
			progress(i+1, len(files), path)
		}
	}

	o.logger.Info("identify batch finished", "batch_id", batchID.String(), "summary", result.Summary())
	return result, nil
}

// maskedDisagreement reports the first masked field the selection does
// not agree on. Editing such a field would overwrite distinct values.
func maskedDisagreement(mask, editable filename.EditMask) (string, bool) {
	checks := []struct {
		name            string
		masked, allowed bool
	}{
		{"family", mask.Family, editable.Family},
		{"genus", mask.Genus, editable.Genus},
		{"species", mask.Species, editable.Species},
		{"confidence", mask.Confidence, editable.Confidence},
		{"phase", mask.Phase, editable.Phase},
		{"colour", mask.Colour, editable.Colour},
		{"behaviour", mask.Behaviour, editable.Behaviour},
		{"author", mask.Author, editable.Author},
		{"site", mask.Site, editable.Site},
		{"activity", mask.Activity, editable.Activity},
		{"camera", mask.Camera, editable.Camera},
	}
	for _, c := range checks {
		if c.masked && !c.allowed {
			return c.name, true
		}
	}
	return "", false
}

// ApplyEdits rewrites selected fields across a same-stage selection.
// The selection is analyzed first so the edit can never touch a field
// the grammar check did not cover, and disagreeing fields in the mask
// are rejected up front.
func (o *Orchestrator) ApplyEdits(files []string, mask filename.EditMask, values filename.EditValues, progress ProgressFunc) (*Result, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	stems := make([]string, len(files))
	for i, path := range files {
		_, stem, _ := splitName(path)
		stems[i] = stem
	}
	selection, err := filename.Analyze(stems)
	if err != nil {
		return nil, err
	}
	if field, ok := maskedDisagreement(mask, selection.Agreement.EditableMask()); ok {
		return nil, errors.Newf("field %s does not agree across the selection", field).
			Component("renamer").
			Category(errors.CategoryValidation).
			Build()
	}

	batchID := o.undo.Begin()
	o.logger.Info("edit batch started", "batch_id", batchID.String(), "files", len(files), "stage", selection.Stage.String())

	result := &Result{Total: len(files)}
	for i, path := range files {
		dir, _, ext := splitName(path)

		candidate, err := filename.ApplyEdits(selection.Stage, selection.Records[i], mask, values)
		if err != nil {
			reason, isSkip := skipReason(err)
			if !isSkip {
				result.record(FileStatus{Path: path, Status: StatusFailed, Err: err})
			} else {
				result.record(FileStatus{Path: path, Status: StatusSkipped, Reason: reason})
			}
		} else if candidate == stems[i] {
			result.record(FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonAlreadyProcessed})
		} else {
			o.renameTo(result, path, dir, candidate, ext)
		}

		if progress != nil {
			progress(i+1, len(files), path)
		}
	}

	o.logger.Info("edit batch finished", "batch_id", batchID.String(), "summary", result.Summary())
	return result, nil
}

// Geotag embeds the dive site coordinates of each encoded filename into
// the file's metadata, then flips the GPS marker. The whole feature
// soft-disables when the external tool is missing.
func (o *Orchestrator) Geotag(files []string, progress ProgressFunc) (*Result, error) {
	if !o.session.IsAvailable() {
		return nil, errors.New(exiftool.ErrUnavailable).
			Component("renamer").
			Category(errors.CategoryExifTool).
			Build()
	}
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	batchID := o.undo.Begin()
	o.logger.Info("geotag batch started", "batch_id", batchID.String(), "files", len(files))

	result := &Result{Total: len(files)}
	for i, path := range files {
		dir, stem, ext := splitName(path)

		st := o.geotagOne(path, dir, stem, ext)
		if st.Status == StatusRenamed {
			o.undo.Record(path, filepath.Join(dir, st.NewName))
			o.logger.Info("geotagged", "from", filepath.Base(path), "to", st.NewName)
		}
		result.record(st)

		if progress != nil {
			progress(i+1, len(files), path)
		}
	}

	o.logger.Info("geotag batch finished", "batch_id", batchID.String(), "summary", result.Summary())
	return result, nil
}

func (o *Orchestrator) geotagOne(path, dir, stem, ext string) FileStatus {
	siteString, ok := filename.ExtractSiteString(stem)
	if !ok {
		return FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonInvalidFormat}
	}
	if strings.HasSuffix(stem, filename.Separator+filename.MarkerGPS) {
		return FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonAlreadyProcessed}
	}

	lat, lon, err := o.tables.Coordinates(siteString)
	if err != nil {
		return FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonMissingData}
	}

	if err := o.session.WriteGPS(path, lat, lon); err != nil {
		return FileStatus{Path: path, Status: StatusFailed, Err: err}
	}

	// The marker flip happens only after the metadata write succeeded,
	// so a G suffix always means coordinates are present in the file.
	candidate, err := filename.FlipGPSMarker(stem)
	if err != nil {
		return FileStatus{Path: path, Status: StatusFailed, Err: err}
	}
	if candidate == stem {
		return FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonAlreadyProcessed}
	}

	newPath := filepath.Join(dir, candidate+ext)
	if _, err := os.Stat(newPath); err == nil {
		return FileStatus{Path: path, Status: StatusSkipped, Reason: ReasonTargetExists}
	}
	if err := renameWithBackup(path, newPath); err != nil {
		return FileStatus{Path: path, Status: StatusFailed, Err: err}
	}
	return FileStatus{Path: path, NewName: candidate + ext, Status: StatusRenamed}
}

// Undo reverses the most recent batch.
func (o *Orchestrator) Undo() (*Result, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()
	return o.undo.Undo(), nil
}
