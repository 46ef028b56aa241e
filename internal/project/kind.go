// Package project loads, edits, and saves Simulink-style project manifests
// and answers questions about the files they track.
//
// A project is a directory tree rooted at the manifest (a single *.prj file).
// The manifest lists member files as project-relative paths; everything else
// about a member (its kind, how references to it are found) is derived from
// its file extension.
package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind classifies a tracked file by what its extension says it contains.
type Kind string

const (
	KindModel        Kind = "model"                // .slx (packaged binary model)
	KindLibrary      Kind = "library"              // .mdl (legacy text model/library)
	KindScript       Kind = "script"               // .m
	KindDictionary   Kind = "data-dictionary"      // .sldd
	KindLinkMap      Kind = "model-reference-link" // .slmx
	KindRequirements Kind = "requirements"         // .slreqx
	KindSpreadsheet  Kind = "spreadsheet"          // .xlsx
	KindArchive      Kind = "data-archive"         // .mat
)

// kindByExt is the extension allow-list. Files outside it are never tracked.
var kindByExt = map[string]Kind{
	".slx":    KindModel,
	".mdl":    KindLibrary,
	".m":      KindScript,
	".sldd":   KindDictionary,
	".slmx":   KindLinkMap,
	".slreqx": KindRequirements,
	".xlsx":   KindSpreadsheet,
	".mat":    KindArchive,
}

// Kinds returns all kinds in a stable display order.
func Kinds() []Kind {
	return []Kind{
		KindModel,
		KindLibrary,
		KindScript,
		KindDictionary,
		KindLinkMap,
		KindRequirements,
		KindSpreadsheet,
		KindArchive,
	}
}

// KindForExt maps a file extension (with or without the leading dot, any
// case) to its kind. ok is false for extensions outside the allow-list.
func KindForExt(ext string) (Kind, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	k, ok := kindByExt[ext]
	return k, ok
}

// KindForPath classifies a path by its extension.
func KindForPath(path string) (Kind, bool) {
	return KindForExt(filepath.Ext(path))
}

// Tracked reports whether path has an extension the project tracks.
func Tracked(path string) bool {
	_, ok := KindForPath(path)
	return ok
}

// ParseKind validates a user-supplied kind tag (e.g. from a --kind flag).
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q (valid: %s)", s, strings.Join(kindNames(), ", "))
}

// Ext returns the canonical extension for a kind, with the leading dot.
func (k Kind) Ext() string {
	for ext, kk := range kindByExt {
		if kk == k {
			return ext
		}
	}
	return ""
}

func (k Kind) String() string {
	return string(k)
}

func kindNames() []string {
	names := make([]string, 0, len(kindByExt))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return names
}
