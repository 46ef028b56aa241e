// Package config handles global slrename configuration and per-project
// options.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global slrename configuration.
type Config struct {
	// DefaultProject is the name of the default project (from Projects map).
	DefaultProject string `toml:"default_project"`

	// Projects is a map of project names to root directories.
	Projects map[string]string `toml:"projects"`

	// VCS controls version-control integration.
	VCS VCSConfig `toml:"vcs"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// VCSConfig controls git integration.
type VCSConfig struct {
	// Enabled turns git integration on or off globally (default: on).
	// Per-project options and --no-vcs can still override it.
	Enabled *bool `toml:"enabled"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and docs rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors
	// ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme selects the syntax highlighting theme for code blocks in
	// rendered docs (a chroma style name, e.g. "monokai" or "dracula").
	CodeTheme string `toml:"code_theme"`
}

// GetProjectPath returns the root directory for a named project.
// If name is empty, returns the default project's root.
func (c *Config) GetProjectPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultProject
	}
	if name == "" {
		return "", fmt.Errorf("no default project configured")
	}
	if c.Projects != nil {
		if path, ok := c.Projects[name]; ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("project '%s' not found in config", name)
}

// HasDefaultProject reports whether a usable default project is configured.
func (c *Config) HasDefaultProject() bool {
	_, err := c.GetProjectPath("")
	return err == nil
}

// ListProjects returns all configured projects with their roots.
func (c *Config) ListProjects() map[string]string {
	result := make(map[string]string, len(c.Projects))
	for name, path := range c.Projects {
		result[name] = path
	}
	return result
}

// VCSEnabled reports whether git integration is globally enabled
// (default: true).
func (c *Config) VCSEnabled() bool {
	if c.VCS.Enabled == nil {
		return true
	}
	return *c.VCS.Enabled
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/slrename/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "slrename", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/slrename/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slrename", "config.toml"), nil
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# slrename configuration

# Default project name (must exist in [projects] below)
# default_project = "fuelsys"

# Named projects (name = project root directory)
# [projects]
# fuelsys = "/work/fuelsys"
# autopilot = "/work/autopilot"

# Version-control integration. When enabled and the project lives inside
# a git repository, renames go through 'git mv' and modified files are
# staged. Disable to always use plain filesystem moves.
# [vcs]
# enabled = true

# Optional UI theming for terminal output.
# accent supports ANSI color codes (0-255) or hex (#RRGGBB);
# code_theme is a chroma style name used when rendering docs.
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
