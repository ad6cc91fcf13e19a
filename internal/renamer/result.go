package renamer

import (
	"fmt"
	"io"
	"path/filepath"
)

// Status is the terminal state of one file in a batch.
type Status int

const (
	StatusRenamed Status = iota
	StatusSkipped
	StatusFailed
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Skip reasons distinguish why a file was left untouched.
const (
	ReasonAlreadyProcessed = "already processed"
	ReasonInvalidFormat    = "invalid format"
	ReasonMissingData      = "missing data"
	ReasonTargetExists     = "target exists"
)

// FileStatus records the outcome for a single file.
type FileStatus struct {
	Path    string // original path
	NewName string // new filename, set only when renamed
	Status  Status
	Reason  string // skip reason, set only when skipped
	Err     error  // failure cause, set only when failed
}

// Result tallies a batch operation. Failures carry filenames only so
// status text shown to the user never leaks directory paths.
type Result struct {
	Total     int
	Succeeded int
	Failures  []string
	Statuses  []FileStatus
}

// Summary returns the ratio line shown after every batch.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d/%d files renamed successfully", r.Succeeded, r.Total)
}

// Print writes the summary line and, when verbose, the per-file status
// list. Only filenames appear, never full paths.
func (r *Result) Print(w io.Writer, verbose bool) {
	fmt.Fprintln(w, r.Summary())
	if !verbose {
		return
	}
	for _, st := range r.Statuses {
		name := filepath.Base(st.Path)
		switch st.Status {
		case StatusRenamed:
			fmt.Fprintf(w, "  renamed  %s -> %s\n", name, st.NewName)
		case StatusSkipped:
			fmt.Fprintf(w, "  skipped  %s (%s)\n", name, st.Reason)
		case StatusFailed:
			fmt.Fprintf(w, "  failed   %s: %v\n", name, st.Err)
		}
	}
}

func (r *Result) record(st FileStatus) {
	r.Statuses = append(r.Statuses, st)
	switch st.Status {
	case StatusRenamed:
		r.Succeeded++
	case StatusFailed:
		r.Failures = append(r.Failures, filepath.Base(st.Path))
	case StatusSkipped:
	}
}
