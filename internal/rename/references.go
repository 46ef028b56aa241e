package rename

import (
	"github.com/rs/zerolog/log"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/refs"
)

// FileReference is one tracked file that mentions a base name.
type FileReference struct {
	Path string
	Kind project.Kind
	Scan *refs.ScanResult
}

// References scans every tracked file for bounded mentions of name and
// returns the hits in manifest order. Unreadable or unparseable files are
// logged and skipped; a missing file is just a file with no mentions.
func References(proj *project.Project, name string) []FileReference {
	var out []FileReference
	for _, entry := range proj.Entries() {
		h, ok := refs.HandlerFor(entry.Kind)
		if !ok {
			continue
		}
		sr, err := h.Scan(proj.AbsPath(entry.Path), name)
		if err != nil {
			log.Debug().Msgf("scan %s: %v", entry.Path, err)
			continue
		}
		if !sr.Found() {
			continue
		}
		out = append(out, FileReference{Path: entry.Path, Kind: entry.Kind, Scan: sr})
	}
	return out
}
