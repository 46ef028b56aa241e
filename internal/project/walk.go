package project

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Ignorer filters discovery by project-relative path. The concrete matcher
// is compiled from the exclude patterns in the project options file.
type Ignorer interface {
	MatchesPath(path string) bool
}

// WalkHit is one trackable file found by Discover.
type WalkHit struct {
	Path string // absolute
	Rel  string // project-relative, '/' separators
	Kind Kind
}

// Discover walks the tree under root and reports every file whose extension
// is on the allow-list, in lexical order. Hidden directories are always
// skipped; ignore (may be nil) prunes further. Unreadable entries are
// skipped rather than aborting the walk.
func Discover(root string, ign Ignorer, fn func(hit WalkHit) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr
		}
		rel = NormalizeRel(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if ign != nil && ign.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		kind, ok := KindForPath(path)
		if !ok {
			return nil
		}
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}

		return fn(WalkHit{Path: path, Rel: rel, Kind: kind})
	})
}

// DiscoverAll collects every hit from Discover.
func DiscoverAll(root string, ign Ignorer) ([]WalkHit, error) {
	var hits []WalkHit
	err := Discover(root, ign, func(hit WalkHit) error {
		hits = append(hits, hit)
		return nil
	})
	return hits, err
}
