package config

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
	"gopkg.in/yaml.v3"

	"github.com/slrename/slrename/internal/fsutil"
)

// OptionsFileName is the per-project options file, stored at the project
// root next to the manifest.
const OptionsFileName = "slrename.yaml"

// DefaultExcludes are always excluded from discovery regardless of
// per-project options. Simulink simulation and code-generation caches
// hold throwaway copies of project files that must never be scanned or
// reported as untracked.
var DefaultExcludes = []string{
	".git/",
	"slprj/",
	"sccprj/",
	"*.autosave",
}

// ProjectOptions represents per-project options loaded from slrename.yaml.
type ProjectOptions struct {
	// Exclude lists gitignore-style patterns for files and directories
	// that discovery should skip, in addition to the built-in excludes.
	Exclude []string `yaml:"exclude,omitempty"`

	// VCS overrides git integration for this project: "auto" (default)
	// detects a repository, "off" forces plain filesystem moves.
	VCS string `yaml:"vcs,omitempty"`
}

// VCSDisabled reports whether this project forces git integration off.
func (o *ProjectOptions) VCSDisabled() bool {
	return o.VCS == "off"
}

// Ignorer compiles the built-in and per-project exclude patterns into a
// matcher usable during discovery.
func (o *ProjectOptions) Ignorer() *ignore.GitIgnore {
	lines := make([]string, 0, len(DefaultExcludes)+len(o.Exclude))
	lines = append(lines, DefaultExcludes...)
	lines = append(lines, o.Exclude...)
	return ignore.CompileIgnoreLines(lines...)
}

// LoadProjectOptions loads options from slrename.yaml at the project root.
// Returns defaults if the file doesn't exist.
func LoadProjectOptions(root string) (*ProjectOptions, error) {
	optionsPath := filepath.Join(root, OptionsFileName)

	if _, err := os.Stat(optionsPath); os.IsNotExist(err) {
		return &ProjectOptions{}, nil
	}

	data, err := os.ReadFile(optionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project options: %w", err)
	}

	var options ProjectOptions
	if err := yaml.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", OptionsFileName, err)
	}

	if options.VCS != "" && options.VCS != "auto" && options.VCS != "off" {
		return nil, fmt.Errorf("invalid vcs option %q in %s (expected \"auto\" or \"off\")", options.VCS, OptionsFileName)
	}

	return &options, nil
}

// CreateDefaultOptions creates a default slrename.yaml at the project root
// if one doesn't exist. Returns true if the file was created.
func CreateDefaultOptions(root string) (bool, error) {
	optionsPath := filepath.Join(root, OptionsFileName)

	if _, err := os.Stat(optionsPath); err == nil {
		return false, nil
	}

	defaultOptions := `# slrename project options

# Additional exclude patterns for discovery (gitignore syntax).
# Simulation caches (slprj/, sccprj/) and *.autosave files are always
# excluded.
# exclude:
#   - "work/"
#   - "*.bak"

# Version-control integration for this project: "auto" or "off".
# vcs: auto
`

	if err := fsutil.WriteFile(optionsPath, []byte(defaultOptions), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", OptionsFileName, err)
	}

	return true, nil
}
