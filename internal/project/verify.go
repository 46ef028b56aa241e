package project

import (
	"fmt"
	"os"
	"strings"
)

// IssueLevel indicates the severity of a verification issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a project consistency problem found by Verify.
type Issue struct {
	Level   IssueLevel `json:"-"`
	Code    string     `json:"code"`
	Path    string     `json:"path,omitempty"`
	Message string     `json:"message"`
}

// Verification issue codes.
const (
	IssueMissingFile   = "missing_file"
	IssueDuplicate     = "duplicate_entry"
	IssueEscapesRoot   = "escapes_root"
	IssueUnknownKind   = "unknown_kind"
	IssueNameCollision = "name_collision"
	IssueUntracked     = "untracked_file"
)

// Verify checks the manifest against the tree on disk. ign (may be nil)
// scopes the untracked-file scan the same way discovery is scoped.
//
// Errors are states a rename run cannot work around (a tracked file that is
// gone, an entry escaping the root). Warnings are survivable but worth
// fixing: duplicate or colliding entries, extensions nothing can scan, and
// trackable files the manifest doesn't know about.
func (p *Project) Verify(ign Ignorer) []Issue {
	var issues []Issue

	seen := make(map[string]bool, len(p.entries))
	baseOwner := make(map[string]string, len(p.entries))

	for _, e := range p.entries {
		if seen[e.Path] {
			issues = append(issues, Issue{
				Level:   LevelWarning,
				Code:    IssueDuplicate,
				Path:    e.Path,
				Message: "listed more than once in the manifest",
			})
			continue
		}
		seen[e.Path] = true

		if e.Path == ".." || strings.HasPrefix(e.Path, "../") || strings.Contains(e.Path, "/../") {
			issues = append(issues, Issue{
				Level:   LevelError,
				Code:    IssueEscapesRoot,
				Path:    e.Path,
				Message: "entry path escapes the project root",
			})
			continue
		}

		if _, err := os.Stat(p.AbsPath(e.Path)); err != nil {
			issues = append(issues, Issue{
				Level:   LevelError,
				Code:    IssueMissingFile,
				Path:    e.Path,
				Message: "tracked file does not exist on disk",
			})
		}

		if e.Kind == "" {
			issues = append(issues, Issue{
				Level:   LevelWarning,
				Code:    IssueUnknownKind,
				Path:    e.Path,
				Message: "extension is outside the tracked set; file will never be scanned or updated",
			})
			continue
		}

		base := BaseName(e.Path)
		if other, ok := baseOwner[base]; ok {
			issues = append(issues, Issue{
				Level:   LevelWarning,
				Code:    IssueNameCollision,
				Path:    e.Path,
				Message: fmt.Sprintf("base name %q collides with %s; references by name are ambiguous", base, other),
			})
		} else {
			baseOwner[base] = e.Path
		}
	}

	// Trackable files on disk that the manifest doesn't list.
	_ = Discover(p.Root, ign, func(hit WalkHit) error {
		if hit.Path == p.ManifestPath {
			return nil
		}
		if !seen[hit.Rel] {
			issues = append(issues, Issue{
				Level:   LevelWarning,
				Code:    IssueUntracked,
				Path:    hit.Rel,
				Message: "trackable file is not listed in the manifest",
			})
		}
		return nil
	})

	return issues
}
