package project

import (
	"path/filepath"
	"strings"
)

// ResolveResult represents the result of resolving a user-supplied file
// reference against the manifest.
type ResolveResult struct {
	// Entry is the resolved entry (zero if unresolved).
	Entry Entry

	// Ambiguous is true if a bare name matched multiple entries.
	Ambiguous bool

	// Matches contains all matching paths (for ambiguous names).
	Matches []string

	// Error message if resolution failed.
	Error string
}

// Resolve maps ref to a tracked entry. ref may be:
//   - a project-relative path ("models/fuelsys.slx")
//   - a path with an extension but no directory ("fuelsys.slx")
//   - a bare base name ("fuelsys"), matched against entry base names
//
// Bare names that match more than one entry come back Ambiguous with the
// candidate paths listed, so the caller can tell the user what to type.
func (p *Project) Resolve(ref string) ResolveResult {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ResolveResult{Error: "empty file reference"}
	}

	// Anything with a separator or a known extension is a path.
	if strings.ContainsAny(ref, `/\`) || filepath.Ext(ref) != "" {
		rel := NormalizeRel(ref)
		if e, ok := p.Entry(rel); ok {
			return ResolveResult{Entry: e}
		}
		// A bare "name.ext" may live in a subdirectory; fall through to
		// base-plus-extension matching before giving up.
		if !strings.ContainsAny(ref, `/\`) {
			if res := p.matchByFileName(rel); res.Error == "" || res.Ambiguous {
				return res
			}
		}
		return ResolveResult{Error: "file not tracked by project: " + rel}
	}

	// Bare name: match against base names.
	var matches []string
	for _, e := range p.entries {
		if BaseName(e.Path) == ref {
			matches = append(matches, e.Path)
		}
	}
	if len(matches) == 0 {
		// Case-insensitive fallback for shells and typos.
		for _, e := range p.entries {
			if strings.EqualFold(BaseName(e.Path), ref) {
				matches = append(matches, e.Path)
			}
		}
	}

	switch len(matches) {
	case 0:
		return ResolveResult{Error: "no tracked file named " + ref}
	case 1:
		e, _ := p.Entry(matches[0])
		return ResolveResult{Entry: e}
	default:
		return ResolveResult{
			Ambiguous: true,
			Matches:   matches,
			Error:     "ambiguous name, multiple tracked files match",
		}
	}
}

// matchByFileName matches "name.ext" against the file-name component of
// every entry.
func (p *Project) matchByFileName(fileName string) ResolveResult {
	var matches []string
	for _, e := range p.entries {
		if lastSegment(e.Path) == fileName {
			matches = append(matches, e.Path)
		}
	}
	switch len(matches) {
	case 0:
		return ResolveResult{Error: "file not tracked by project: " + fileName}
	case 1:
		e, _ := p.Entry(matches[0])
		return ResolveResult{Entry: e}
	default:
		return ResolveResult{
			Ambiguous: true,
			Matches:   matches,
			Error:     "ambiguous name, multiple tracked files match",
		}
	}
}

func lastSegment(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
