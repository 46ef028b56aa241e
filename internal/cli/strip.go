package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/rename"
	"github.com/slrename/slrename/internal/report"
	"github.com/slrename/slrename/internal/ui"
)

var (
	stripDryRun     bool
	stripForce      bool
	stripNoRefs     bool
	stripReportPath string
)

var stripCmd = &cobra.Command{
	Use:   "strip <postfix>",
	Short: "Remove a postfix from every tracked file name that carries it",
	Long: `Strip a postfix from the base name of every tracked file and rewrite
the references in every other project artifact.

Each matching file is renamed independently: a file whose target name is
already taken, or whose rename fails, is reported and the run moves on.
References in spreadsheets and data archives cannot be rewritten; they
are reported so the stale mentions can be fixed by hand.

Examples:
  slrename strip _v2                 # fuelsys_v2.slx -> fuelsys.slx
  slrename strip _old --dry-run      # preview without touching anything
  slrename strip _bak --report run.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		postfix := args[0]
		if strings.TrimSpace(postfix) == "" {
			return handleErrorMsg(ErrMissingArgument,
				"postfix is required",
				"Pass the postfix to strip, e.g. 'slrename strip _v2'")
		}

		proj, err := openProject()
		if err != nil {
			return handleError(ErrManifestInvalid, err, "")
		}
		options, err := loadProjectOptionsSafe(proj)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		git, vcsWarnings := resolveGit(proj, options)

		candidates := stripCandidates(proj, postfix)
		if len(candidates) == 0 {
			run := report.NewRun("strip", projectLabel(proj), stripDryRun)
			if isJSONOutput() {
				outputSuccessWithWarnings(newRunData(run), vcsWarnings, &Meta{ElapsedMs: time.Since(start).Milliseconds()})
				return nil
			}
			fmt.Println(ui.Infof("no tracked file name ends in '%s'", postfix))
			return nil
		}

		if !stripForce && !stripDryRun && shouldPromptForConfirm() {
			msg := fmt.Sprintf("Strip '%s' from %s?", postfix, countNoun(len(candidates), "file", "files"))
			if !promptForConfirm(msg) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		engine := rename.New(proj, rename.Options{Git: git, DryRun: stripDryRun, NoRefs: stripNoRefs})
		run := report.NewRun("strip", projectLabel(proj), stripDryRun)
		var prog *ui.Progress
		if !isJSONOutput() && !stripDryRun {
			prog = ui.NewProgress("Renaming", len(candidates))
			run.OnRecord = func(report.FileResult) { prog.Increment() }
		}
		err = engine.Strip(postfix, run)
		if prog != nil {
			prog.Done()
		}
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		warnings := append(vcsWarnings, runWarnings(run)...)
		if w := writeReportFile(run, stripReportPath); w != nil {
			warnings = append(warnings, *w)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(newRunData(run), warnings, &Meta{
				Count:     len(run.Files),
				ElapsedMs: time.Since(start).Milliseconds(),
			})
			return nil
		}

		printRun(run)
		return nil
	},
}

// stripCandidates counts the files a postfix matches, for the confirm
// prompt. The engine re-derives the set itself when it runs.
func stripCandidates(proj *project.Project, postfix string) []string {
	var matches []string
	for _, entry := range proj.Entries() {
		if entry.Kind == "" {
			continue
		}
		if strings.HasSuffix(project.BaseName(entry.Path), postfix) {
			matches = append(matches, entry.Path)
		}
	}
	return matches
}

func init() {
	stripCmd.Flags().BoolVar(&stripDryRun, "dry-run", false, "Preview renames without changing anything")
	stripCmd.Flags().BoolVar(&stripForce, "force", false, "Skip confirmation prompts")
	stripCmd.Flags().BoolVar(&stripNoRefs, "no-refs", false, "Rename files only, leave references untouched")
	stripCmd.Flags().StringVar(&stripReportPath, "report", "", "Write the JSON run summary to a file")
	rootCmd.AddCommand(stripCmd)
}
