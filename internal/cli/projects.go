package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/config"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List configured projects",
	Long: `Lists all projects configured in ~/.config/slrename/config.toml.

Example config:
  default_project = "fuelsys"

  [projects]
  fuelsys = "/work/fuelsys"
  autopilot = "/work/autopilot"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load config directly (not using cfg since we skip PreRun)
		var loadedCfg *config.Config
		var err error

		if configPath != "" {
			loadedCfg, err = config.LoadFrom(configPath)
		} else {
			loadedCfg, err = config.Load()
		}
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		projects := loadedCfg.ListProjects()

		if isJSONOutput() {
			result := ProjectsResult{Default: loadedCfg.DefaultProject}
			for _, name := range sortedNames(projects) {
				result.Projects = append(result.Projects, ProjectEntry{
					Name:    name,
					Path:    projects[name],
					Default: name == loadedCfg.DefaultProject,
				})
			}
			outputSuccess(result, &Meta{Count: len(projects)})
			return nil
		}

		if len(projects) == 0 {
			fmt.Println("No projects configured.")
			fmt.Println()
			fmt.Println("Add projects to ~/.config/slrename/config.toml:")
			fmt.Println()
			fmt.Println("  default_project = \"fuelsys\"")
			fmt.Println()
			fmt.Println("  [projects]")
			fmt.Println("  fuelsys = \"/work/fuelsys\"")
			fmt.Println()
			fmt.Println("Or run 'slrename init <path> --register'.")
			return nil
		}

		defaultName := loadedCfg.DefaultProject
		for _, name := range sortedNames(projects) {
			marker := "  "
			if name == defaultName {
				marker = "* "
			}
			fmt.Printf("%s%-12s -> %s\n", marker, name, projects[name])
		}

		if defaultName != "" {
			fmt.Println()
			fmt.Println("* = default project")
		}

		return nil
	},
}

// ProjectsResult is the JSON payload for the projects command.
type ProjectsResult struct {
	Default  string         `json:"default,omitempty"`
	Projects []ProjectEntry `json:"projects"`
}

// ProjectEntry is one configured project.
type ProjectEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Default bool   `json:"default,omitempty"`
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
