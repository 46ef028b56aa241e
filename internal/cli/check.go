package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/refs"
	"github.com/slrename/slrename/internal/rename"
	"github.com/slrename/slrename/internal/ui"
)

var (
	checkStrict bool
	checkRefs   bool
)

// Check issue codes for problems only the reference scan can find.
const (
	issueStaleReference = "stale_reference"
	issueStaleRegistry  = "stale_registry_path"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the project",
	Long: `Check the manifest against the tree on disk: tracked files must exist,
entries must stay inside the root, base names should not collide, and
trackable files on disk should be listed.

With --refs, also scan for stale references: mentions of tracked files
that are gone from disk, and link-map registrations of untracked paths.

Exits 1 when errors are found, or with --strict when warnings are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		proj, err := openProject()
		if err != nil {
			return handleError(ErrManifestInvalid, err, "")
		}
		options, err := loadProjectOptionsSafe(proj)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		issues := proj.Verify(options.Ignorer())
		if checkRefs {
			issues = append(issues, scanStaleReferences(proj)...)
		}

		var errorCount, warningCount int
		for _, issue := range issues {
			if issue.Level == project.LevelError {
				errorCount++
			} else {
				warningCount++
			}
		}
		fileCount := len(proj.Entries())

		if isJSONOutput() {
			result := CheckResult{
				Project:  projectLabel(proj),
				Files:    fileCount,
				Errors:   errorCount,
				Warnings: warningCount,
				Clean:    len(issues) == 0,
			}
			for _, issue := range issues {
				result.Issues = append(result.Issues, CheckIssue{
					Level:   issue.Level.String(),
					Code:    issue.Code,
					Path:    issue.Path,
					Message: issue.Message,
				})
			}
			outputSuccess(result, &Meta{Count: len(issues), ElapsedMs: time.Since(start).Milliseconds()})
		} else {
			fmt.Printf("Checking project: %s\n", proj.Root)
			for _, issue := range issues {
				fmt.Printf("%s: %s - %s\n", issue.Level, issue.Path, issue.Message)
			}

			fmt.Println()
			if len(issues) == 0 {
				fmt.Println(ui.Successf("No issues found in %s.", countNoun(fileCount, "tracked file", "tracked files")))
			} else {
				fmt.Printf("Found %s in %s.\n", ui.ErrorWarningCounts(errorCount, warningCount), countNoun(fileCount, "tracked file", "tracked files"))
			}
		}

		if errorCount > 0 || (checkStrict && warningCount > 0) {
			os.Exit(1)
		}
		return nil
	},
}

// CheckResult is the JSON payload for the check command.
type CheckResult struct {
	Project  string       `json:"project"`
	Files    int          `json:"files"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Clean    bool         `json:"clean"`
	Issues   []CheckIssue `json:"issues,omitempty"`
}

// CheckIssue is one issue in a check listing.
type CheckIssue struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// scanStaleReferences runs the reference scan behind a spinner. The scan
// rereads every tracked file, which takes a moment on large projects.
func scanStaleReferences(proj *project.Project) []project.Issue {
	if isJSONOutput() {
		return staleReferenceIssues(proj)
	}
	spin := ui.NewSpinner("Scanning references")
	spin.Start()
	defer spin.Stop()
	return staleReferenceIssues(proj)
}

// staleReferenceIssues finds references pointing at nothing: mentions of
// tracked files missing from disk, and link-map registry paths the project
// does not track. Both survive a rename done behind the tool's back.
func staleReferenceIssues(proj *project.Project) []project.Issue {
	var issues []project.Issue

	for _, entry := range proj.Entries() {
		if entry.Kind == "" {
			continue
		}
		if _, err := os.Stat(proj.AbsPath(entry.Path)); err == nil {
			continue
		}
		base := project.BaseName(entry.Path)
		for _, hit := range rename.References(proj, base) {
			if hit.Path == entry.Path {
				continue
			}
			issues = append(issues, project.Issue{
				Level:   project.LevelWarning,
				Code:    issueStaleReference,
				Path:    hit.Path,
				Message: fmt.Sprintf("references %q, whose file %s is missing", base, entry.Path),
			})
		}
	}

	for _, entry := range proj.Entries() {
		if entry.Kind != project.KindLinkMap {
			continue
		}
		paths, err := refs.RegistryPaths(proj.AbsPath(entry.Path))
		if err != nil {
			continue
		}
		for _, p := range paths {
			rel := project.NormalizeRel(p)
			if proj.Contains(rel) {
				continue
			}
			issues = append(issues, project.Issue{
				Level:   project.LevelWarning,
				Code:    issueStaleRegistry,
				Path:    entry.Path,
				Message: fmt.Sprintf("registers %s, which the project does not track", p),
			})
		}
	}

	return issues
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	checkCmd.Flags().BoolVar(&checkRefs, "refs", false, "Also scan for stale references")
	rootCmd.AddCommand(checkCmd)
}
