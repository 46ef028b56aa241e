// Package cli implements the slrename command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/config"
	"github.com/slrename/slrename/internal/ui"
)

var (
	// Global flags
	projectName     string // Named project from config
	projectPathFlag string // Explicit path
	configPath      string
	verbose         bool
	noVCS           bool

	// Resolved values
	resolvedProjectRoot string
	cfg                 *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slrename",
	Short: "slrename - rename project files and fix what references them",
	Long: `slrename renames files tracked by a Simulink-style project and rewrites
every other project artifact that references the old name: models,
libraries, data dictionaries, requirements, link maps, and scripts.

Renames go through git when the project is a repository, so history
follows the file. Failures are contained per file; a failed rename
restores the project membership it touched.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging()

		// Commands that work without a current project.
		switch cmd.Name() {
		case "init", "projects", "docs", "version", "completion", "help":
			return nil
		}
		if parent := cmd.Parent(); parent != nil {
			switch parent.Name() {
			case "docs", "completion":
				return nil
			}
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		resolvedProjectRoot, err = resolveProjectRoot()
		if err != nil {
			return err
		}
		log.Debug().Msgf("project root: %s", resolvedProjectRoot)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	syncRegistryMetadata(rootCmd)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "Named project from config")
	rootCmd.PersistentFlags().StringVar(&projectPathFlag, "project-path", "", "Explicit path to the project root or manifest")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&noVCS, "no-vcs", false, "Never touch version control, even inside a repository")
}

// configureLogging silences the diagnostic stream unless --verbose asked
// for it. User-facing output never goes through the logger.
func configureLogging() {
	if !verbose {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// resolveProjectRoot picks the project to operate on:
// explicit path > named project > walk up from CWD > configured default.
// Failure here is the only error that aborts a run outright.
func resolveProjectRoot() (string, error) {
	if projectPathFlag != "" {
		if _, err := os.Stat(projectPathFlag); err != nil {
			return "", fmt.Errorf("project not found: %s", projectPathFlag)
		}
		return projectPathFlag, nil
	}

	if projectName != "" {
		root, err := cfg.GetProjectPath(projectName)
		if err != nil {
			return "", fmt.Errorf("project '%s' not found in config\n\nRun 'slrename projects' to see configured projects", projectName)
		}
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := findRootFrom(cwd); err == nil {
		return root, nil
	} else if !isNoProject(err) {
		return "", err
	}

	if cfg.HasDefaultProject() {
		root, err := cfg.GetProjectPath("")
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(root); err != nil {
			return "", fmt.Errorf("default project not found: %s", root)
		}
		return root, nil
	}

	return "", fmt.Errorf(`no project found

Either:
  1. Run from inside a project directory (one holding a .prj manifest)
  2. Use --project-path /path/to/project
  3. Use --project <name> (from config)
  4. Set default_project in %s
  5. Run 'slrename init /path/to/project' to create one`, config.DefaultPath())
}

func loadGlobalConfig() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return loaded, nil
}

// getProjectRoot returns the resolved project root.
func getProjectRoot() string {
	return resolvedProjectRoot
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// resolvedConfigPath returns the config file path in effect.
func resolvedConfigPath() string {
	if strings.TrimSpace(configPath) != "" {
		return configPath
	}
	return config.DefaultPath()
}
