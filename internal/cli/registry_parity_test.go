package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/slrename/slrename/internal/commands"
)

func TestCommandFlagsMatchRegistry(t *testing.T) {
	for id, meta := range commands.Registry {
		path := strings.ReplaceAll(id, "_", " ")
		cmd, ok := findCommandByPath(rootCmd, path)
		if !ok {
			t.Errorf("registry command %q is missing from CLI tree", id)
			continue
		}

		cliFlags := make(map[string]*pflag.Flag)
		cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
			if flag.Name == "help" {
				return
			}
			cliFlags[flag.Name] = flag
		})

		registryFlags := make(map[string]commands.FlagMeta, len(meta.Flags))
		for _, flag := range meta.Flags {
			registryFlags[flag.Name] = flag
		}

		for name := range cliFlags {
			if _, ok := registryFlags[name]; !ok {
				t.Errorf("%s: CLI flag %q is missing from registry metadata", id, name)
			}
		}
		for name, regFlag := range registryFlags {
			cliFlag, ok := cliFlags[name]
			if !ok {
				t.Errorf("%s: registry flag %q is missing from CLI command", id, name)
				continue
			}
			if cliFlag.Shorthand != regFlag.Short {
				t.Errorf("%s: flag %q shorthand is %q, registry says %q", id, name, cliFlag.Shorthand, regFlag.Short)
			}
			if cliFlag.Value.Type() != string(regFlag.Type) {
				t.Errorf("%s: flag %q type is %q, registry says %q", id, name, cliFlag.Value.Type(), regFlag.Type)
			}
			if regFlag.Default != "" && cliFlag.DefValue != regFlag.Default {
				t.Errorf("%s: flag %q default is %q, registry says %q", id, name, cliFlag.DefValue, regFlag.Default)
			}
		}
	}
}

func TestEveryRunnableCommandHasRegistryMetadata(t *testing.T) {
	for _, path := range commandPaths(rootCmd) {
		cmd, ok := findCommandByPath(rootCmd, path)
		if !ok {
			t.Errorf("failed to locate command for path %q", path)
			continue
		}
		if !cmd.Runnable() {
			continue
		}
		if _, ok := lookupRegistryMeta(path); !ok {
			t.Errorf("CLI command %q is missing registry metadata", path)
		}
	}
}

func commandPaths(root *cobra.Command) []string {
	var out []string
	var walk func(cmd *cobra.Command, prefix string)

	walk = func(cmd *cobra.Command, prefix string) {
		for _, child := range cmd.Commands() {
			path := child.Name()
			if prefix != "" {
				path = strings.TrimSpace(prefix + " " + child.Name())
			}
			out = append(out, path)
			walk(child, path)
		}
	}

	walk(root, "")
	return out
}

func findCommandByPath(root *cobra.Command, path string) (*cobra.Command, bool) {
	parts := strings.Fields(path)
	cur := root
	for _, part := range parts {
		var next *cobra.Command
		for _, child := range cur.Commands() {
			if child.Name() == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
