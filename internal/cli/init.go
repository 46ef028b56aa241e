package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/config"
	"github.com/slrename/slrename/internal/project"
)

var (
	initName     string
	initRegister bool
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a project",
	Long: `Create a project at the specified path. Trackable files already in the
tree are discovered and listed in the manifest.

Creates:
  - <name>.prj     (project manifest)
  - slrename.yaml  (project options)
  - .gitignore     (ignores derived directories)

Existing manifests and options files are kept as they are.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		if !isJSONOutput() {
			fmt.Printf("Initializing project at: %s\n", path)
		}

		if err := os.MkdirAll(path, 0755); err != nil {
			return handleError(ErrInternal, fmt.Errorf("failed to create project directory: %w", err), "")
		}

		name := strings.TrimSpace(initName)
		if name == "" {
			name = filepath.Base(path)
		}
		manifestName := slug.Make(name) + project.ManifestExt

		// An existing manifest wins; init never replaces one.
		existing, _ := filepath.Glob(filepath.Join(path, "*"+project.ManifestExt))
		createdManifest := len(existing) == 0

		var proj *project.Project
		var tracked int
		if createdManifest {
			hits, err := project.DiscoverAll(path, (&config.ProjectOptions{}).Ignorer())
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			paths := make([]string, 0, len(hits))
			for _, hit := range hits {
				paths = append(paths, hit.Rel)
			}
			proj, err = project.Create(path, name, manifestName, paths)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			tracked = len(paths)
		} else {
			manifestName = filepath.Base(existing[0])
			proj, err = project.Load(path)
			if err != nil {
				return handleError(ErrManifestInvalid, err, "")
			}
			tracked = len(proj.Entries())
		}

		createdOptions, err := config.CreateDefaultOptions(path)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		gitignoreStatus, err := ensureGitignore(path)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		registeredAs := ""
		if initRegister {
			regName := slug.Make(name)
			if err := config.RegisterProject(resolvedConfigPath(), regName, path); err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
			registeredAs = regName
		}

		if isJSONOutput() {
			outputSuccess(InitResult{
				Path:       path,
				Manifest:   manifestName,
				Files:      tracked,
				Created:    createdManifest,
				Registered: registeredAs,
			}, &Meta{Count: tracked})
			return nil
		}

		if createdManifest {
			fmt.Printf("✓ Created %s tracking %s\n", manifestName, countNoun(tracked, "file", "files"))
		} else {
			fmt.Printf("• %s already exists (kept, %s)\n", manifestName, countNoun(tracked, "file", "files"))
		}

		if createdOptions {
			fmt.Println("✓ Created slrename.yaml (project options)")
		} else {
			fmt.Println("• slrename.yaml already exists (kept)")
		}

		switch gitignoreStatus {
		case "created":
			fmt.Println("✓ Created .gitignore")
		case "updated":
			fmt.Println("✓ Updated .gitignore (added derived directories)")
		default:
			fmt.Println("• .gitignore already ignores derived directories")
		}

		if registeredAs != "" {
			fmt.Printf("✓ Registered as '%s' in %s\n", registeredAs, resolvedConfigPath())
		}

		if createdManifest {
			fmt.Println("\nProject initialized.")
		} else {
			fmt.Println("\nExisting project detected. Manifest preserved.")
		}
		return nil
	},
}

// InitResult is the JSON payload for the init command.
type InitResult struct {
	Path       string `json:"path"`
	Manifest   string `json:"manifest"`
	Files      int    `json:"files"`
	Created    bool   `json:"created"`
	Registered string `json:"registered,omitempty"`
}

// ensureGitignore adds ignore entries for the derived directories the
// simulation tooling writes next to project files.
func ensureGitignore(root string) (string, error) {
	gitignorePath := filepath.Join(root, ".gitignore")
	entries := []string{"slprj/", "sccprj/", "*.autosave"}

	existingContent := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existingContent = string(data)
	}

	var missing []string
	for _, entry := range entries {
		if !strings.Contains(existingContent, entry) {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		return "already present", nil
	}

	var newContent string
	status := "created"
	if existingContent == "" {
		newContent = `# Simulink derived files (safe to regenerate)

# Simulation and code generation caches
slprj/
sccprj/

# Editor autosaves
*.autosave
`
	} else {
		status = "updated"
		addition := "\n# Simulink derived files\n"
		for _, entry := range missing {
			addition += entry + "\n"
		}
		newContent = strings.TrimRight(existingContent, "\n") + "\n" + addition
	}
	if err := os.WriteFile(gitignorePath, []byte(newContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Project name (defaults to the directory name)")
	initCmd.Flags().BoolVar(&initRegister, "register", false, "Register the project in the global config")
	rootCmd.AddCommand(initCmd)
}
