package commands

import (
	"strings"
	"testing"
)

// TestRegistryHasRequiredCommands verifies that essential commands exist.
func TestRegistryHasRequiredCommands(t *testing.T) {
	requiredCommands := []string{
		"strip", "mv", "apply", "refs", "files",
		"check", "init", "projects", "docs", "version",
	}

	for _, cmd := range requiredCommands {
		if _, ok := Registry[cmd]; !ok {
			t.Errorf("Registry missing required command %q", cmd)
		}
	}
}

// TestRegistryMetadataComplete verifies all commands have required metadata.
func TestRegistryMetadataComplete(t *testing.T) {
	for name, meta := range Registry {
		t.Run(name, func(t *testing.T) {
			if meta.Name == "" {
				t.Error("Command has empty Name")
			}
			if meta.Description == "" {
				t.Error("Command has empty Description")
			}

			for i, arg := range meta.Args {
				if arg.Name == "" {
					t.Errorf("Arg %d has empty Name", i)
				}
				if arg.Description == "" {
					t.Errorf("Arg %q has empty Description", arg.Name)
				}
			}

			for i, flag := range meta.Flags {
				if flag.Name == "" {
					t.Errorf("Flag %d has empty Name", i)
				}
				if flag.Description == "" {
					t.Errorf("Flag %q has empty Description", flag.Name)
				}
				if flag.Type == "" {
					t.Errorf("Flag %q has empty Type", flag.Name)
				}
				if len(flag.Short) > 1 {
					t.Errorf("Flag %q shorthand %q is not a single letter", flag.Name, flag.Short)
				}
			}
		})
	}
}

// TestRegistryExamplesUseBinaryName verifies examples are runnable as
// written.
func TestRegistryExamplesUseBinaryName(t *testing.T) {
	for name, meta := range Registry {
		for _, ex := range meta.Examples {
			if !strings.HasPrefix(ex, "slrename ") {
				t.Errorf("%s example %q does not start with the binary name", name, ex)
			}
		}
	}
}

// TestRenameCommandsShareToleranceFlags verifies the batch and single
// rename commands expose the same preview and confirmation controls.
func TestRenameCommandsShareToleranceFlags(t *testing.T) {
	for _, id := range []string{"strip", "mv", "apply"} {
		meta, ok := Registry[id]
		if !ok {
			t.Fatalf("Registry missing %q", id)
		}
		flags := make(map[string]struct{}, len(meta.Flags))
		for _, f := range meta.Flags {
			flags[f.Name] = struct{}{}
		}
		for _, want := range []string{"dry-run", "force", "no-refs"} {
			if _, ok := flags[want]; !ok {
				t.Errorf("%s is missing the %q flag", id, want)
			}
		}
	}
}
