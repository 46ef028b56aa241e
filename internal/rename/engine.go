// Package rename implements the rename flow: resolve a tracked file,
// validate the destination, discover every artifact referencing the old
// base name, move the file through version control or the filesystem,
// keep project membership consistent, and rewrite the references.
//
// Failures are per-file. A failed move restores the manifest entry; a
// failed reference update leaves that one reference stale with a warning.
// Batch entry points keep going with the next file either way.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/slrename/slrename/internal/fsutil"
	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/refs"
	"github.com/slrename/slrename/internal/report"
	"github.com/slrename/slrename/internal/vcs"
)

// identifierKinds are the kinds the host tooling loads by bare name, so a
// base name outside the identifier rules draws a warning.
var identifierKinds = map[project.Kind]bool{
	project.KindModel:      true,
	project.KindLibrary:    true,
	project.KindDictionary: true,
}

// IdentifierKind reports whether files of this kind are loaded by bare
// name, so renaming one to a non-identifier deserves a warning up front.
func IdentifierKind(kind project.Kind) bool {
	return identifierKinds[kind]
}

// Options configures an Engine.
type Options struct {
	// Git enables version-control moves and staging. nil means plain
	// filesystem moves only.
	Git *vcs.Git

	// DryRun previews the full flow without touching disk or manifest.
	DryRun bool

	// NoRefs skips reference discovery and updates.
	NoRefs bool
}

// Engine performs renames against one loaded project.
type Engine struct {
	proj   *project.Project
	git    *vcs.Git
	dryRun bool
	noRefs bool
}

// New creates an engine for the given project.
func New(proj *project.Project, opts Options) *Engine {
	return &Engine{
		proj:   proj,
		git:    opts.Git,
		dryRun: opts.DryRun,
		noRefs: opts.NoRefs,
	}
}

// TargetRel derives the destination path when renaming oldRel to newName.
// A bare name keeps the old directory and extension; a path keeps only the
// extension, which may not change either way.
func TargetRel(oldRel, newName string) (string, error) {
	oldRel = project.NormalizeRel(oldRel)
	oldExt := path.Ext(oldRel)

	if !strings.ContainsAny(newName, "/\\") {
		base := newName
		if ext := path.Ext(newName); ext != "" {
			if !strings.EqualFold(ext, oldExt) {
				return "", fmt.Errorf("extension must stay %s", oldExt)
			}
			base = strings.TrimSuffix(newName, ext)
		}
		return project.WithBaseName(oldRel, base), nil
	}

	newRel := project.NormalizeRel(newName)
	if !strings.EqualFold(path.Ext(newRel), oldExt) {
		return "", fmt.Errorf("extension must stay %s", oldExt)
	}
	return newRel, nil
}

// refHit is one file found to mention the old base name, scanned before
// anything moves.
type refHit struct {
	rel     string
	kind    project.Kind
	handler refs.Handler
	scan    *refs.ScanResult
}

// RenameFile renames one tracked file and propagates the new base name.
// The outcome is reported, not returned as an error, so batch callers can
// record it and continue.
func (e *Engine) RenameFile(oldRel, newRel string) report.FileResult {
	oldRel = project.NormalizeRel(oldRel)
	newRel = project.NormalizeRel(newRel)
	res := report.FileResult{OldPath: oldRel, NewPath: newRel, Status: report.StatusFailed}

	entry, ok := e.proj.Entry(oldRel)
	if !ok {
		res.Reason = fmt.Sprintf("not in project: %s", oldRel)
		return res
	}

	if newRel == oldRel {
		res.Status = report.StatusSkipped
		res.Reason = "source and destination are the same"
		return res
	}
	if !strings.EqualFold(path.Ext(newRel), path.Ext(oldRel)) {
		res.Reason = fmt.Sprintf("extension must stay %s", path.Ext(oldRel))
		return res
	}

	oldAbs := e.proj.AbsPath(oldRel)
	newAbs := e.proj.AbsPath(newRel)
	if err := project.EnsureWithin(e.proj.Root, newAbs); err != nil {
		res.Reason = err.Error()
		return res
	}
	if e.proj.Contains(newRel) {
		res.Reason = fmt.Sprintf("already tracked: %s", newRel)
		return res
	}
	if _, err := os.Lstat(newAbs); err == nil {
		res.Reason = fmt.Sprintf("destination exists: %s", newRel)
		return res
	}

	oldBase := project.BaseName(oldRel)
	newBase := project.BaseName(newRel)
	if identifierKinds[entry.Kind] && !project.ValidBaseName(newBase) {
		res.Warnings = append(res.Warnings, report.Warning{
			Code:    report.WarnNameNotIdentifier,
			Message: fmt.Sprintf("%q is not a valid identifier; the host tooling may refuse to load it", newBase),
			Path:    newRel,
		})
	}

	// References are discovered before anything moves, so a failed move
	// leaves nothing half-scanned.
	var hits []refHit
	if !e.noRefs && oldBase != newBase {
		hits = e.discoverRefs(oldBase)
	}

	useGit := e.git != nil && e.git.Tracks(oldAbs)

	if e.dryRun {
		res.Status = report.StatusRenamed
		res.VCSMove = useGit
		for _, hit := range hits {
			res.Refs = append(res.Refs, report.RefUpdate{
				Path:     previewPath(hit.rel, oldRel, newRel),
				Mentions: len(hit.scan.Mentions),
				Parts:    partNames(hit.scan.Mentions),
				Fallback: hit.scan.TextFallback,
			})
		}
		return res
	}

	idx, err := e.proj.Remove(oldRel)
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	if err := e.moveFile(oldAbs, newAbs, useGit); err != nil {
		res.Reason = fmt.Sprintf("move failed: %v", err)
		e.restoreMembership(&res, oldRel, idx)
		return res
	}

	// Re-add under the new path, with a bounded single retry.
	addErr := e.proj.AddAt(newRel, idx)
	if addErr != nil {
		log.Debug().Msgf("re-add %s failed, retrying once: %v", newRel, addErr)
		addErr = e.proj.AddAt(newRel, idx)
	}
	if addErr != nil {
		res.Reason = fmt.Sprintf("re-add failed: %v", addErr)
		if mvErr := e.moveFile(newAbs, oldAbs, useGit); mvErr != nil {
			log.Debug().Msgf("move-back of %s failed: %v", newRel, mvErr)
			res.Reason = fmt.Sprintf("re-add failed: %v (file left at %s)", addErr, newRel)
			return res
		}
		e.restoreMembership(&res, oldRel, idx)
		return res
	}

	res.Status = report.StatusRenamed
	res.VCSMove = useGit

	var staged []string
	for _, hit := range hits {
		ref := e.updateRef(&res, hit, oldRel, newRel, oldBase, newBase)
		res.Refs = append(res.Refs, ref)
		if !ref.Skipped && ref.Mentions > 0 && hit.rel != oldRel {
			staged = append(staged, e.proj.AbsPath(hit.rel))
		}
	}

	if err := e.proj.Save(); err != nil {
		res.Warnings = append(res.Warnings, report.Warning{
			Code:    report.WarnSaveFailed,
			Message: fmt.Sprintf("file renamed on disk but manifest not saved: %v", err),
			Path:    e.proj.ManifestPath,
		})
		return res
	}

	if e.git != nil {
		staged = append(staged, e.proj.ManifestPath)
		if useGit {
			staged = append(staged, newAbs)
		}
		if err := e.git.Add(staged...); err != nil {
			log.Debug().Msgf("staging modified files failed: %v", err)
		}
	}

	return res
}

// discoverRefs scans every tracked file for mentions of name.
func (e *Engine) discoverRefs(name string) []refHit {
	var hits []refHit
	for _, fr := range References(e.proj, name) {
		h, _ := refs.HandlerFor(fr.Kind)
		hits = append(hits, refHit{rel: fr.Path, kind: fr.Kind, handler: h, scan: fr.Scan})
	}
	return hits
}

// updateRef rewrites one referencing file, folding the outcome and any
// warnings into the result. The renamed file's own references are updated
// at its new location.
func (e *Engine) updateRef(res *report.FileResult, hit refHit, oldRel, newRel, oldBase, newBase string) report.RefUpdate {
	target := hit.rel
	abs := e.proj.AbsPath(hit.rel)
	if hit.rel == oldRel {
		target = newRel
		abs = e.proj.AbsPath(newRel)
	}
	ref := report.RefUpdate{Path: target}

	ur, err := hit.handler.Update(abs, oldBase, newBase)
	switch {
	case errors.Is(err, refs.ErrUpdateUnsupported):
		ref.Skipped = true
		ref.Reason = fmt.Sprintf("%s files cannot be rewritten", hit.kind)
		res.Warnings = append(res.Warnings, report.Warning{
			Code:    report.WarnUpdateUnsupported,
			Message: fmt.Sprintf("reference in %s left stale: %s files cannot be rewritten", target, hit.kind),
			Path:    target,
		})
	case err != nil:
		ref.Skipped = true
		ref.Reason = err.Error()
		res.Warnings = append(res.Warnings, report.Warning{
			Code:    report.WarnUpdateSkipped,
			Message: fmt.Sprintf("reference in %s left stale: %v", target, err),
			Path:    target,
		})
	default:
		ref.Mentions = ur.Mentions
		ref.Parts = ur.Parts
		ref.Fallback = ur.TextFallback
		if ur.TextFallback {
			res.Warnings = append(res.Warnings, report.Warning{
				Code:    report.WarnTextFallback,
				Message: fmt.Sprintf("%s did not parse; fell back to text substitution", target),
				Path:    target,
			})
		}
	}
	return ref
}

func (e *Engine) moveFile(oldAbs, newAbs string, useGit bool) error {
	if err := os.MkdirAll(filepath.Dir(newAbs), 0o755); err != nil {
		return err
	}
	if useGit {
		return e.git.Move(oldAbs, newAbs)
	}
	return fsutil.Move(oldAbs, newAbs)
}

func (e *Engine) restoreMembership(res *report.FileResult, oldRel string, idx int) {
	if err := e.proj.AddAt(oldRel, idx); err != nil {
		log.Debug().Msgf("membership restore of %s failed: %v", oldRel, err)
		res.Reason += fmt.Sprintf(" (membership not restored: %v)", err)
		return
	}
	res.Restored = true
	res.Warnings = append(res.Warnings, report.Warning{
		Code:    report.WarnMembershipRestored,
		Message: fmt.Sprintf("project membership restored for %s", oldRel),
		Path:    oldRel,
	})
}

// previewPath reports where a referencing file will live after the rename,
// for dry-run output.
func previewPath(rel, oldRel, newRel string) string {
	if rel == oldRel {
		return newRel
	}
	return rel
}

func partNames(mentions []refs.Mention) []string {
	var parts []string
	seen := map[string]bool{}
	for _, m := range mentions {
		if m.Part == "" || seen[m.Part] {
			continue
		}
		seen[m.Part] = true
		parts = append(parts, m.Part)
	}
	return parts
}
