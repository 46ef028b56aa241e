package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/rename"
	"github.com/slrename/slrename/internal/report"
	"github.com/slrename/slrename/internal/ui"
)

var (
	applyDryRun     bool
	applyForce      bool
	applyNoRefs     bool
	applyReportPath string
)

var applyCmd = &cobra.Command{
	Use:   "apply <rules.yaml>",
	Short: "Run a batch of renames from a rules file",
	Long: `Apply renames from a YAML rules file of 'old: new' pairs, in file order:

  fuelsys_v2: fuelsys
  press_ctrl: pressure_ctrl
  models/legacy.slx: archive

Old names follow the same resolution as 'slrename mv': bare base names or
project-relative paths. Each rule runs independently; a rule that fails
is recorded and the rest still run. Rules are applied in order, so a later
rule sees the renames of earlier ones.

Examples:
  slrename apply renames.yaml
  slrename apply renames.yaml --dry-run --report preview.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		rules, err := rename.LoadRules(args[0])
		if err != nil {
			return handleError(ErrRulesInvalid, err,
				"Rules files are YAML mappings of old name to new name")
		}
		if len(rules) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"rules": 0}, nil)
				return nil
			}
			fmt.Println(ui.Infof("no rules in %s", args[0]))
			return nil
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

		if !applyForce && !applyDryRun && shouldPromptForConfirm() {
			msg := fmt.Sprintf("Apply %s from %s?", countNoun(len(rules), "rename", "renames"), args[0])
			if !promptForConfirm(msg) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		engine := rename.New(proj, rename.Options{Git: git, DryRun: applyDryRun, NoRefs: applyNoRefs})
		run := report.NewRun("apply", projectLabel(proj), applyDryRun)
		var prog *ui.Progress
		if !isJSONOutput() && !applyDryRun {
			prog = ui.NewProgress("Renaming", len(rules))
			run.OnRecord = func(report.FileResult) { prog.Increment() }
		}
		engine.Apply(rules, run)
		if prog != nil {
			prog.Done()
		}

		warnings := append(vcsWarnings, runWarnings(run)...)
		if w := writeReportFile(run, applyReportPath); w != nil {
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

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Preview renames without changing anything")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "Skip confirmation prompts")
	applyCmd.Flags().BoolVar(&applyNoRefs, "no-refs", false, "Rename files only, leave references untouched")
	applyCmd.Flags().StringVar(&applyReportPath, "report", "", "Write the JSON run summary to a file")
	rootCmd.AddCommand(applyCmd)
}
