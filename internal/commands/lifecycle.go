package commands

import "strings"

// Commands that change the project tree, the manifest, or configuration.
// Everything else is read-only and safe for agents to call speculatively.
var mutatingCommandIDs = map[string]struct{}{
	"strip": {},
	"mv":    {},
	"apply": {},
	"init":  {},
}

func init() {
	for id := range mutatingCommandIDs {
		if meta, ok := Registry[id]; ok {
			meta.MutatesProject = true
			Registry[id] = meta
		}
	}
}

// ResolveCommandID maps a CLI command path to its registry ID. Subcommand
// paths join with underscores: "docs search" resolves to "docs_search".
func ResolveCommandID(path string) (string, bool) {
	id := strings.TrimSpace(path)
	if id == "" {
		return "", false
	}
	if _, ok := Registry[id]; !ok {
		id = strings.ReplaceAll(id, " ", "_")
		if _, ok := Registry[id]; !ok {
			return "", false
		}
	}
	return id, true
}

// LookupMetaByPath resolves a CLI command path and returns the registry
// metadata.
func LookupMetaByPath(path string) (string, Meta, bool) {
	id, ok := ResolveCommandID(path)
	if !ok {
		return "", Meta{}, false
	}
	return id, Registry[id], true
}
