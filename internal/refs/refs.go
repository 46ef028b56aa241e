// Package refs discovers and rewrites mentions of file base names across
// the artifact formats a project tracks.
//
// A mention is an occurrence of a base name bounded on both sides by
// non-identifier bytes, so "ctrl" never matches inside "ctrl_model" but
// "ctrl_model" matches in load_system('ctrl_model'), ctrl_model.slx, and
// block paths like ctrl_model/Gain.
//
// Each file kind gets its own Handler: plain text for scripts and legacy
// libraries, structured XML for requirements and link maps, zip part
// scan/rewrite for packaged formats, and raw byte scan for data archives.
// Spreadsheets and archives are scan-only; asking them to update returns
// ErrUpdateUnsupported so callers can warn and move on.
package refs

import (
	"errors"

	"github.com/slrename/slrename/internal/project"
)

// ErrUpdateUnsupported is returned by Update for kinds whose on-disk format
// cannot be rewritten safely (spreadsheets, data archives). The reference
// stays stale; callers surface a warning.
var ErrUpdateUnsupported = errors.New("update not supported for this file kind")

// Mention is one bounded occurrence of a base name.
type Mention struct {
	// Part is the inner part path for packaged (zip) kinds, empty otherwise.
	Part string `json:"part,omitempty"`

	// Line is the 1-indexed line within the file or part, 0 when the
	// content has no line structure (binary archives).
	Line int `json:"line,omitempty"`

	// Context is the surrounding line, trimmed. Empty for binary content.
	Context string `json:"context,omitempty"`
}

// ScanResult reports every mention of a name in one file.
type ScanResult struct {
	Mentions []Mention `json:"mentions"`

	// TextFallback is set when a structured (XML) scan failed to parse and
	// the raw text scanner took over.
	TextFallback bool `json:"text_fallback,omitempty"`
}

// Found reports whether the scan hit at least one mention.
func (r *ScanResult) Found() bool {
	return r != nil && len(r.Mentions) > 0
}

// UpdateResult reports what an update rewrote in one file.
type UpdateResult struct {
	// Changed is false when no mention survived to rewrite; the file was
	// not written in that case.
	Changed bool `json:"changed"`

	// Mentions is the number of occurrences rewritten.
	Mentions int `json:"mentions"`

	// Parts lists the inner parts rewritten (packaged kinds only).
	Parts []string `json:"parts,omitempty"`

	// TextFallback is set when a structured rewrite fell back to text
	// substitution because the document would not parse.
	TextFallback bool `json:"text_fallback,omitempty"`
}

// Handler implements kind-specific reference scanning and updating.
//
// Scan reports mentions of name in the file at path. Update rewrites
// mentions of oldName to newName, writing atomically; it must skip the
// write entirely when nothing matches.
type Handler interface {
	Scan(path, name string) (*ScanResult, error)
	Update(path, oldName, newName string) (*UpdateResult, error)
}

var handlers = map[project.Kind]Handler{
	project.KindModel:        pkgHandler{},
	project.KindLibrary:      textHandler{},
	project.KindScript:       textHandler{},
	project.KindDictionary:   pkgHandler{},
	project.KindLinkMap:      linkMapHandler{},
	project.KindRequirements: xmlHandler{},
	project.KindSpreadsheet:  scanOnly{pkgHandler{}},
	project.KindArchive:      scanOnly{binaryHandler{}},
}

// HandlerFor returns the strategy for a kind. ok is false for the empty
// kind (entries outside the allow-list), which has no strategy.
func HandlerFor(kind project.Kind) (Handler, bool) {
	h, ok := handlers[kind]
	return h, ok
}

type scanner interface {
	Scan(path, name string) (*ScanResult, error)
}

// scanOnly exposes a scanner as a Handler whose Update always refuses.
type scanOnly struct {
	scanner
}

func (s scanOnly) Update(path, oldName, newName string) (*UpdateResult, error) {
	return nil, ErrUpdateUnsupported
}
