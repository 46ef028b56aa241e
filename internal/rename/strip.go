package rename

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/report"
)

// Strip renames every tracked file whose base name ends in postfix,
// removing the postfix and propagating the new name. Files whose target
// name is already taken are skipped with a warning; everything else runs
// through the single-file flow, recording each outcome on run.
//
// Rerunning with the same postfix matches nothing and is a no-op.
func (e *Engine) Strip(postfix string, run *report.Run) error {
	if postfix == "" {
		return fmt.Errorf("postfix is required")
	}

	for _, entry := range e.proj.Entries() {
		if entry.Kind == "" {
			continue
		}
		base := project.BaseName(entry.Path)
		if !strings.HasSuffix(base, postfix) {
			continue
		}
		newBase := strings.TrimSuffix(base, postfix)
		if newBase == "" {
			run.Record(report.FileResult{
				OldPath: entry.Path,
				Status:  report.StatusSkipped,
				Reason:  "stripping the postfix leaves an empty name",
			})
			continue
		}

		newRel := project.WithBaseName(entry.Path, newBase)
		if skipped, fr := e.targetTaken(entry.Path, newRel); skipped {
			run.Record(fr)
			continue
		}

		log.Debug().Msgf("strip: %s -> %s", entry.Path, newRel)
		run.Record(e.RenameFile(entry.Path, newRel))
	}
	return nil
}

// targetTaken reports a skip outcome when the destination already exists
// on disk or in the manifest. Batch runs leave such files untouched rather
// than failing them.
func (e *Engine) targetTaken(oldRel, newRel string) (bool, report.FileResult) {
	var reason string
	switch {
	case e.proj.Contains(newRel):
		reason = fmt.Sprintf("target already tracked: %s", newRel)
	default:
		if _, err := os.Lstat(e.proj.AbsPath(newRel)); err == nil {
			reason = fmt.Sprintf("target exists on disk: %s", newRel)
		}
	}
	if reason == "" {
		return false, report.FileResult{}
	}
	return true, report.FileResult{
		OldPath: oldRel,
		NewPath: newRel,
		Status:  report.StatusSkipped,
		Reason:  reason,
		Warnings: []report.Warning{{
			Code:    report.WarnTargetExists,
			Message: fmt.Sprintf("%s not renamed: %s", oldRel, reason),
			Path:    newRel,
		}},
	}
}
