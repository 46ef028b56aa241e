package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/slrename/slrename/internal/fsutil"
)

type persistedConfig struct {
	DefaultProject *string              `toml:"default_project,omitempty"`
	Projects       map[string]string    `toml:"projects,omitempty"`
	VCS            *persistedVCSConfig  `toml:"vcs,omitempty"`
	UI             *persistedUISettings `toml:"ui,omitempty"`
}

type persistedVCSConfig struct {
	Enabled *bool `toml:"enabled,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultProject: nonEmptyPtr(cfg.DefaultProject),
	}
	if len(cfg.Projects) > 0 {
		out.Projects = cfg.Projects
	}
	if cfg.VCS.Enabled != nil {
		out.VCS = &persistedVCSConfig{Enabled: cfg.VCS.Enabled}
	}
	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := fsutil.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// RegisterProject adds or updates a named project in the config file at
// path and persists it. The first registered project becomes the default.
func RegisterProject(path, name, root string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name is required")
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		loaded, err := LoadFrom(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cfg.Projects == nil {
		cfg.Projects = make(map[string]string)
	}
	cfg.Projects[name] = root
	if cfg.DefaultProject == "" && len(cfg.Projects) == 1 {
		cfg.DefaultProject = name
	}

	return SaveTo(path, cfg)
}
