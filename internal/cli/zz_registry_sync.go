package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/commands"
)

// syncRegistryMetadata overlays registry descriptions onto the cobra tree
// so help text and the machine-readable command registry cannot drift.
func syncRegistryMetadata(root *cobra.Command) {
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		if cmd != root {
			applyRegistryMetadata(cmd, registryPath(root, cmd))
		}
		for _, child := range cmd.Commands() {
			walk(child)
		}
	}
	walk(root)
}

// registryPath is the command's path below the root ("docs search").
func registryPath(root, cmd *cobra.Command) string {
	return strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), root.Name()))
}

func applyRegistryMetadata(cmd *cobra.Command, path string) {
	meta, ok := lookupRegistryMeta(path)
	if !ok {
		return
	}

	// Use strings stay in the CLI; the registry does not model variadic
	// or conditional usage.
	if meta.Description != "" {
		cmd.Short = meta.Description
	}
	if meta.LongDesc == "" && len(meta.Examples) == 0 {
		return
	}
	if meta.LongDesc != "" || cmd.Long == "" {
		cmd.Long = buildLongDesc(meta)
	}
}

func lookupRegistryMeta(path string) (commands.Meta, bool) {
	_, meta, ok := commands.LookupMetaByPath(path)
	return meta, ok
}

func buildLongDesc(meta commands.Meta) string {
	long := meta.Description
	if meta.LongDesc != "" {
		long = meta.LongDesc
	}
	if len(meta.Examples) == 0 {
		return long
	}

	var b strings.Builder
	b.WriteString(long)
	b.WriteString("\n\nExamples:\n")
	for _, ex := range meta.Examples {
		b.WriteString("  " + ex + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
