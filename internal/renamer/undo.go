package renamer

import (
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/stedavkle/fish-renamer/internal/errors"
	"github.com/stedavkle/fish-renamer/internal/logging"
)

// UndoEntry records one completed rename.
type UndoEntry struct {
	OldPath string `yaml:"old"`
	NewPath string `yaml:"new"`
}

// UndoLog remembers the renames of the most recent batch so they can be
// reversed. Begin clears the log, so only the latest batch is undoable.
type UndoLog struct {
	mu      sync.Mutex
	batchID uuid.UUID
	entries []UndoEntry
	logger  *slog.Logger
}

// NewUndoLog returns an empty undo log.
func NewUndoLog() *UndoLog {
	return &UndoLog{logger: logging.ForService("renamer")}
}

// Begin starts a new batch: previous entries are discarded and a fresh
// batch ID is minted for log correlation.
func (u *UndoLog) Begin() uuid.UUID {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.batchID = uuid.New()
	u.entries = u.entries[:0]
	return u.batchID
}

// Record appends one completed rename to the current batch.
func (u *UndoLog) Record(oldPath, newPath string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = append(u.entries, UndoEntry{OldPath: oldPath, NewPath: newPath})
}

// Len reports how many renames the current batch holds.
func (u *UndoLog) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.entries)
}

// Undo reverses the current batch in strict LIFO order. Each entry is
// reversed only when the new path still exists and the old path does
// not, so a double undo or an overwrite of unrelated files is
// impossible. The log is drained regardless of per-entry outcome.
func (u *UndoLog) Undo() *Result {
	u.mu.Lock()
	entries := u.entries
	u.entries = nil
	batchID := u.batchID
	u.mu.Unlock()

	result := &Result{Total: len(entries)}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		st := FileStatus{Path: e.NewPath}

		_, newErr := os.Stat(e.NewPath)
		_, oldErr := os.Stat(e.OldPath)
		switch {
		case newErr != nil:
			st.Status = StatusSkipped
			st.Reason = "renamed file no longer exists"
		case oldErr == nil:
			st.Status = StatusSkipped
			st.Reason = ReasonTargetExists
		default:
			if err := os.Rename(e.NewPath, e.OldPath); err != nil {
				st.Status = StatusFailed
				st.Err = errors.New(err).
					Component("renamer").
					Category(errors.CategoryFileIO).
					Context("batch_id", batchID.String()).
					Build()
			} else {
				st.Status = StatusRenamed
			}
		}
		result.record(st)
	}

	u.logger.Info("undo complete", "batch_id", batchID.String(),
		"total", result.Total, "reversed", result.Succeeded)
	return result
}

// undoLogFile is the on-disk shape of a persisted batch.
type undoLogFile struct {
	BatchID string      `yaml:"batch_id"`
	Entries []UndoEntry `yaml:"entries"`
}

// Save persists the current batch so a later process can reverse it.
// An empty log removes the file instead.
func (u *UndoLog) Save(path string) error {
	u.mu.Lock()
	file := undoLogFile{
		BatchID: u.batchID.String(),
		Entries: append([]UndoEntry(nil), u.entries...),
	}
	u.mu.Unlock()

	if len(file.Entries) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadUndoLog reads a persisted batch. A missing file yields an empty
// log so undo simply has nothing to reverse.
func LoadUndoLog(path string) (*UndoLog, error) {
	u := NewUndoLog()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return u, nil
	}
	if err != nil {
		return nil, err
	}

	var file undoLogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.New(err).
			Component("renamer").
			Category(errors.CategoryFileParsing).
			FileContext(path).
			Build()
	}
	if id, err := uuid.Parse(file.BatchID); err == nil {
		u.batchID = id
	}
	u.entries = file.Entries
	return u, nil
}
