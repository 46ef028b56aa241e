// Package report accumulates per-file outcomes of a rename run into the
// summary the run prints, returns in the JSON envelope, or writes to a
// report file.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/slrename/slrename/internal/fsutil"
)

// Status classifies what happened to one candidate file.
type Status string

const (
	StatusRenamed Status = "renamed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Warning codes attached to per-file outcomes. These are stable and can
// be relied upon by agents.
const (
	WarnUpdateSkipped      = "UPDATE_SKIPPED"
	WarnUpdateUnsupported  = "UPDATE_UNSUPPORTED"
	WarnTargetExists       = "TARGET_EXISTS"
	WarnMembershipRestored = "MEMBERSHIP_RESTORED"
	WarnTextFallback       = "TEXT_FALLBACK"
	WarnNameNotIdentifier  = "NAME_NOT_IDENTIFIER"
	WarnVCSUnavailable     = "VCS_UNAVAILABLE"
	WarnSaveFailed         = "SAVE_FAILED"
)

// Warning is a non-fatal issue hit while processing one file.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// RefUpdate is the outcome of updating one referencing file.
type RefUpdate struct {
	Path     string   `json:"path"`
	Mentions int      `json:"mentions,omitempty"`
	Parts    []string `json:"parts,omitempty"`
	Fallback bool     `json:"text_fallback,omitempty"`
	Skipped  bool     `json:"skipped,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// FileResult is the outcome for one candidate file.
type FileResult struct {
	OldPath  string      `json:"old_path"`
	NewPath  string      `json:"new_path,omitempty"`
	Status   Status      `json:"status"`
	Reason   string      `json:"reason,omitempty"`
	VCSMove  bool        `json:"vcs_move,omitempty"`
	Restored bool        `json:"restored,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Refs     []RefUpdate `json:"refs,omitempty"`
}

// Summary is the roll-up across all files in a run.
type Summary struct {
	Renamed     int `json:"renamed"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	RefsUpdated int `json:"refs_updated"`
	RefsSkipped int `json:"refs_skipped"`
}

// Run collects results as the engine works through candidates.
type Run struct {
	Op      string       `json:"op"`
	Project string       `json:"project"`
	DryRun  bool         `json:"dry_run,omitempty"`
	Started time.Time    `json:"started"`
	Files   []FileResult `json:"files"`

	// OnRecord, when set, observes each outcome as it lands. The CLI
	// drives batch progress output through it.
	OnRecord func(FileResult) `json:"-"`
}

// NewRun starts an empty run record.
func NewRun(op, projectName string, dryRun bool) *Run {
	return &Run{
		Op:      op,
		Project: projectName,
		DryRun:  dryRun,
		Started: time.Now().UTC(),
	}
}

// Record appends one file outcome.
func (r *Run) Record(fr FileResult) {
	r.Files = append(r.Files, fr)
	if r.OnRecord != nil {
		r.OnRecord(fr)
	}
}

// Summary rolls up the recorded outcomes.
func (r *Run) Summary() Summary {
	var s Summary
	for _, f := range r.Files {
		switch f.Status {
		case StatusRenamed:
			s.Renamed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
		for _, ref := range f.Refs {
			if ref.Skipped {
				s.RefsSkipped++
			} else {
				s.RefsUpdated++
			}
		}
	}
	return s
}

// runDocument is the on-disk shape of a written report.
type runDocument struct {
	Op        string       `json:"op"`
	Project   string       `json:"project"`
	DryRun    bool         `json:"dry_run,omitempty"`
	Started   time.Time    `json:"started"`
	ElapsedMs int64        `json:"elapsed_ms"`
	Summary   Summary      `json:"summary"`
	Files     []FileResult `json:"files"`
}

// WriteFile writes the run as indented JSON to path.
func (r *Run) WriteFile(path string) error {
	doc := runDocument{
		Op:        r.Op,
		Project:   r.Project,
		DryRun:    r.DryRun,
		Started:   r.Started,
		ElapsedMs: time.Since(r.Started).Milliseconds(),
		Summary:   r.Summary(),
		Files:     r.Files,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
