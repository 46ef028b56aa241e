package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrOutsideProject is returned when a path escapes the project root.
var ErrOutsideProject = errors.New("path is outside the project")

// NormalizeRel normalizes a project-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func NormalizeRel(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// BaseName returns the file name without its directory or extension.
// This is the identifier other project files use to reference it.
func BaseName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WithBaseName returns path with its base name replaced, keeping the
// directory and extension.
func WithBaseName(path, newBase string) string {
	p := NormalizeRel(path)
	dir := ""
	if i := strings.LastIndex(p, "/"); i >= 0 {
		dir = p[:i+1]
		p = p[i+1:]
	}
	return dir + newBase + filepath.Ext(p)
}

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidBaseName reports whether name is usable as a file base name that
// other artifacts can reference: a letter followed by letters, digits, or
// underscores. This matches the identifier rules of the host tooling, which
// resolves models and scripts by bare name.
func ValidBaseName(name string) bool {
	return identRe.MatchString(name)
}

// EnsureWithin verifies that target resolves to a location inside root.
// Symlinks are resolved first so a link pointing outside the tree can't
// smuggle edits past the check.
func EnsureWithin(root, target string) error {
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	// The target may not exist yet (rename destinations, possibly in new
	// subdirectories); resolve the nearest existing ancestor instead.
	resolvedTarget := target
	if _, err := os.Lstat(target); err == nil {
		resolvedTarget, err = filepath.EvalSymlinks(target)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
	} else {
		ancestor := filepath.Dir(target)
		tail := []string{filepath.Base(target)}
		for {
			if _, err := os.Lstat(ancestor); err == nil {
				break
			}
			next := filepath.Dir(ancestor)
			if next == ancestor {
				break
			}
			tail = append(tail, filepath.Base(ancestor))
			ancestor = next
		}
		resolved, err := filepath.EvalSymlinks(ancestor)
		if err != nil {
			return fmt.Errorf("resolve parent: %w", err)
		}
		resolvedTarget = resolved
		for i := len(tail) - 1; i >= 0; i-- {
			resolvedTarget = filepath.Join(resolvedTarget, tail[i])
		}
	}

	rel, err := filepath.Rel(resolvedRoot, resolvedTarget)
	if err != nil {
		return fmt.Errorf("relativize path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: %w", target, ErrOutsideProject)
	}
	return nil
}
