package cli

import (
	"fmt"
	"strings"

	"github.com/slrename/slrename/internal/report"
	"github.com/slrename/slrename/internal/ui"
)

// RunData is the JSON payload for commands that execute a rename run.
type RunData struct {
	Op      string              `json:"op"`
	Project string              `json:"project"`
	DryRun  bool                `json:"dry_run,omitempty"`
	Summary report.Summary      `json:"summary"`
	Files   []report.FileResult `json:"files"`
}

func newRunData(run *report.Run) RunData {
	return RunData{
		Op:      run.Op,
		Project: run.Project,
		DryRun:  run.DryRun,
		Summary: run.Summary(),
		Files:   run.Files,
	}
}

// runWarnings flattens per-file warnings for the response envelope.
func runWarnings(run *report.Run) []Warning {
	var out []Warning
	for _, f := range run.Files {
		out = append(out, convertWarnings(f.Warnings)...)
	}
	return out
}

// printRun renders a run's per-file outcomes and summary for humans.
func printRun(run *report.Run) {
	for _, f := range run.Files {
		printFileResult(f, run.DryRun)
	}
	if len(run.Files) > 0 {
		fmt.Println()
	}
	printRunSummary(run)
}

func printFileResult(f report.FileResult, dryRun bool) {
	switch f.Status {
	case report.StatusRenamed:
		verb := "Renamed"
		if dryRun {
			verb = "Would rename"
		}
		line := fmt.Sprintf("%s %s", ui.Success(verb), ui.Rename(f.OldPath, f.NewPath))
		if f.VCSMove {
			line += " " + ui.Hint("(git)")
		}
		fmt.Println(line)
	case report.StatusSkipped:
		fmt.Printf("%s %s: %s\n", ui.Warning("Skipped"), ui.FilePath(f.OldPath), f.Reason)
	case report.StatusFailed:
		fmt.Printf("%s %s: %s\n", ui.Error("Failed"), ui.FilePath(f.OldPath), f.Reason)
		if f.Restored {
			fmt.Printf("  project membership restored\n")
		}
	}

	for _, ref := range f.Refs {
		printRefUpdate(ref, dryRun)
	}
	for _, w := range f.Warnings {
		if w.Code == report.WarnNameNotIdentifier {
			fmt.Printf("  %s\n", ui.Warningf("%s", w.Message))
		}
	}
}

func printRefUpdate(ref report.RefUpdate, dryRun bool) {
	switch {
	case ref.Skipped:
		fmt.Printf("  %s %s: %s\n", ui.Warning("stale"), ui.FilePath(ref.Path), ref.Reason)
	case dryRun:
		fmt.Printf("  would update %s %s\n", ui.FilePath(ref.Path), mentionDetail(ref))
	default:
		fmt.Printf("  updated %s %s\n", ui.FilePath(ref.Path), mentionDetail(ref))
	}
}

// mentionDetail describes what an update touched: mention count plus the
// inner parts for packaged formats.
func mentionDetail(ref report.RefUpdate) string {
	detail := fmt.Sprintf("(%s", countNoun(ref.Mentions, "mention", "mentions"))
	if len(ref.Parts) > 0 {
		detail += " in " + strings.Join(ref.Parts, ", ")
	}
	if ref.Fallback {
		detail += ", text fallback"
	}
	return detail + ")"
}

func printRunSummary(run *report.Run) {
	s := run.Summary()
	if len(run.Files) == 0 {
		fmt.Println(ui.Info("Nothing to rename"))
		return
	}

	verb := "renamed"
	if run.DryRun {
		verb = "would rename"
	}
	parts := []string{fmt.Sprintf("%s %s", verb, countNoun(s.Renamed, "file", "files"))}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d", s.Skipped))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("failed %d", s.Failed))
	}
	if s.RefsUpdated > 0 || s.RefsSkipped > 0 {
		refPart := fmt.Sprintf("%s updated", countNoun(s.RefsUpdated, "reference", "references"))
		if s.RefsSkipped > 0 {
			refPart += fmt.Sprintf(", %d left stale", s.RefsSkipped)
		}
		parts = append(parts, refPart)
	}

	line := strings.Join(parts, ", ")
	if s.Failed > 0 {
		fmt.Println(ui.Warningf("%s", line))
	} else {
		fmt.Println(ui.Successf("%s", line))
	}
}

// writeReportFile writes the run summary JSON when --report was given.
// A write failure after a successful run is a warning, not an abort.
func writeReportFile(run *report.Run, path string) *Warning {
	if path == "" {
		return nil
	}
	if err := run.WriteFile(path); err != nil {
		return &Warning{
			Code:    ErrReportWriteFailed,
			Message: fmt.Sprintf("run completed but report was not written: %v", err),
			Ref:     path,
		}
	}
	if !isJSONOutput() {
		fmt.Println(ui.Infof("report written to %s", ui.FilePath(path)))
	}
	return nil
}
