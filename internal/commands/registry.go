// Package commands is the central registry of slrename CLI commands.
// The registry is the machine-readable description of the command
// surface: agents discover arguments and flags from it, the CLI keeps
// its help text aligned with it, and parity tests hold the cobra tree
// to it.
package commands

// Meta describes one CLI command.
type Meta struct {
	Name        string     // Command name (e.g. "strip", "mv")
	Description string     // Short description
	LongDesc    string     // Long description (empty keeps the CLI's own)
	Args        []ArgMeta  // Positional arguments
	Flags       []FlagMeta // Command flags
	Examples    []string   // Usage examples

	// MutatesProject marks commands that change the tree, the manifest,
	// or configuration. Set by the lifecycle table, not here.
	MutatesProject bool
}

// ArgMeta describes a positional argument.
type ArgMeta struct {
	Name        string
	Description string
	Required    bool
}

// FlagMeta describes a command flag.
type FlagMeta struct {
	Name        string
	Short       string // Single-letter shorthand, if any
	Description string
	Type        FlagType
	Default     string
}

// FlagType is the value type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
	FlagTypeInt    FlagType = "int"
)

// Flag sets shared by the rename commands. Per-file tolerance means all
// three take the same preview and confirmation controls.
func renameFlags(reportFlag bool) []FlagMeta {
	flags := []FlagMeta{
		{Name: "dry-run", Description: "Preview renames without changing anything", Type: FlagTypeBool, Default: "false"},
		{Name: "force", Description: "Skip confirmation prompts", Type: FlagTypeBool, Default: "false"},
		{Name: "no-refs", Description: "Rename files only, leave references untouched", Type: FlagTypeBool, Default: "false"},
	}
	if reportFlag {
		flags = append(flags, FlagMeta{Name: "report", Description: "Write the JSON run summary to a file", Type: FlagTypeString})
	}
	return flags
}

// Registry holds all registered commands, keyed by command ID. Subcommand
// IDs join the path with underscores ("docs_search" for "docs search").
var Registry = map[string]Meta{
	"strip": {
		Name:        "strip",
		Description: "Remove a postfix from every tracked file name that carries it",
		Args: []ArgMeta{
			{Name: "postfix", Description: "Name postfix to remove (e.g. _backup)", Required: true},
		},
		Flags: renameFlags(true),
		Examples: []string{
			"slrename strip _backup",
			"slrename strip _old --dry-run",
			"slrename strip _v2 --report strip-run.json",
		},
	},
	"mv": {
		Name:        "mv",
		Description: "Rename one tracked file and update its references",
		Args: []ArgMeta{
			{Name: "file", Description: "Tracked file, as a project-relative path or unique base name", Required: true},
			{Name: "new-name", Description: "New base name, file name, or project-relative path", Required: true},
		},
		Flags: renameFlags(false),
		Examples: []string{
			"slrename mv fuelsys_v2 fuelsys",
			"slrename mv models/ctrl.slx governor",
			"slrename mv lib/valves.mdl lib/legacy/valves.mdl",
		},
	},
	"apply": {
		Name:        "apply",
		Description: "Run a batch of renames from a rules file",
		Args: []ArgMeta{
			{Name: "rules-file", Description: "YAML mapping of old names to new names", Required: true},
		},
		Flags: renameFlags(true),
		Examples: []string{
			"slrename apply renames.yaml",
			"slrename apply renames.yaml --dry-run --report preview.json",
		},
	},
	"refs": {
		Name:        "refs",
		Description: "Show every tracked file that references a file's base name",
		Args: []ArgMeta{
			{Name: "file", Description: "Tracked file, as a project-relative path or unique base name", Required: true},
		},
		Examples: []string{
			"slrename refs fuelsys",
			"slrename refs models/ctrl.slx --json",
		},
	},
	"files": {
		Name:        "files",
		Description: "List the files the project tracks",
		Flags: []FlagMeta{
			{Name: "kind", Description: "Only list files of this kind (e.g. model, script)", Type: FlagTypeString},
		},
		Examples: []string{
			"slrename files",
			"slrename files --kind model",
		},
	},
	"check": {
		Name:        "check",
		Description: "Validate the project",
		Flags: []FlagMeta{
			{Name: "strict", Description: "Treat warnings as errors", Type: FlagTypeBool, Default: "false"},
			{Name: "refs", Description: "Also scan for stale references", Type: FlagTypeBool, Default: "false"},
		},
		Examples: []string{
			"slrename check",
			"slrename check --refs --strict",
		},
	},
	"init": {
		Name:        "init",
		Description: "Initialize a project",
		Args: []ArgMeta{
			{Name: "path", Description: "Directory to initialize (created if missing)", Required: true},
		},
		Flags: []FlagMeta{
			{Name: "name", Description: "Project name (defaults to the directory name)", Type: FlagTypeString},
			{Name: "register", Description: "Register the project in the global config", Type: FlagTypeBool, Default: "false"},
		},
		Examples: []string{
			"slrename init .",
			"slrename init /work/fuelsys --name fuelsys --register",
		},
	},
	"projects": {
		Name:        "projects",
		Description: "List configured projects",
		Examples: []string{
			"slrename projects",
		},
	},
	"docs": {
		Name:        "docs",
		Description: "Browse the bundled documentation",
		Args: []ArgMeta{
			{Name: "topic", Description: "Topic to display (omit to list topics)", Required: false},
		},
		Examples: []string{
			"slrename docs",
			"slrename docs renaming",
		},
	},
	"docs_search": {
		Name:        "search",
		Description: "Search the bundled documentation",
		Args: []ArgMeta{
			{Name: "query", Description: "Text to search for", Required: true},
		},
		Flags: []FlagMeta{
			{Name: "limit", Short: "n", Description: "Maximum number of matches", Type: FlagTypeInt, Default: "20"},
		},
		Examples: []string{
			`slrename docs search "link map"`,
		},
	},
	"version": {
		Name:        "version",
		Description: "Show slrename version and build information",
		Examples: []string{
			"slrename version --json",
		},
	},
}
