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
	mvDryRun bool
	mvForce  bool
	mvNoRefs bool
)

var mvCmd = &cobra.Command{
	Use:   "mv <file> <new-name>",
	Short: "Rename one tracked file and update its references",
	Long: `Rename a single tracked file. The file may be given as a project-relative
path or a bare base name; bare names that match more than one entry are
rejected with the candidates listed.

The new name may be a bare name (keeps the directory and extension), a
file name, or a project-relative path (moves the file). The extension
can never change.

Examples:
  slrename mv fuelsys_v2 fuelsys
  slrename mv models/ctrl.slx governor
  slrename mv lib/valves.mdl lib/legacy/valves.mdl`,
	Args: cobra.ExactArgs(2),
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
		git, vcsWarnings := resolveGit(proj, options)

		res := proj.Resolve(args[0])
		if res.Ambiguous {
			return handleErrorWithDetails(ErrRefAmbiguous,
				fmt.Sprintf("'%s' matches %s", args[0], countNoun(len(res.Matches), "tracked file", "tracked files")),
				"Use the project-relative path instead",
				map[string]interface{}{"matches": res.Matches})
		}
		if res.Error != "" {
			return handleErrorMsg(ErrFileNotInProject, res.Error,
				"Run 'slrename files' to list tracked files")
		}
		entry := res.Entry

		newRel, err := rename.TargetRel(entry.Path, args[1])
		if err != nil {
			return handleError(ErrInvalidInput, err,
				"The extension identifies the file kind and cannot change")
		}

		// Models, libraries, and dictionaries load by bare name; an
		// unloadable name deserves a gate, not just a warning.
		newBase := project.BaseName(newRel)
		if rename.IdentifierKind(entry.Kind) && !project.ValidBaseName(newBase) && !mvForce {
			msg := fmt.Sprintf("%q is not a valid identifier; the host tooling may refuse to load a %s by that name", newBase, entry.Kind)
			if isJSONOutput() {
				outputSuccessWithWarnings(MvResult{
					Source:       entry.Path,
					Destination:  newRel,
					NeedsConfirm: true,
					Reason:       msg,
				}, []Warning{{Code: report.WarnNameNotIdentifier, Message: msg, Ref: newRel}}, nil)
				return nil
			}
			if shouldPromptForConfirm() {
				fmt.Println(ui.Warningf("%s", msg))
				if !promptForConfirm("Rename anyway?") {
					fmt.Println("Cancelled.")
					return nil
				}
			}
		}

		engine := rename.New(proj, rename.Options{Git: git, DryRun: mvDryRun, NoRefs: mvNoRefs})
		run := report.NewRun("mv", projectLabel(proj), mvDryRun)
		fr := engine.RenameFile(entry.Path, newRel)
		run.Record(fr)

		if fr.Status == report.StatusFailed {
			return handleErrorWithDetails(renameFailureCode(fr.Reason),
				fmt.Sprintf("rename %s: %s", fr.OldPath, fr.Reason),
				renameFailureSuggestion(fr.Reason),
				fr)
		}

		warnings := append(vcsWarnings, runWarnings(run)...)
		if isJSONOutput() {
			outputSuccessWithWarnings(newRunData(run), warnings, &Meta{
				Count:     len(fr.Refs),
				ElapsedMs: time.Since(start).Milliseconds(),
			})
			return nil
		}

		printRun(run)
		return nil
	},
}

// MvResult is returned in JSON mode when a rename needs confirmation.
type MvResult struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	NeedsConfirm bool   `json:"needs_confirm,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// renameFailureCode maps an engine failure reason to a stable error code.
func renameFailureCode(reason string) string {
	switch {
	case strings.HasPrefix(reason, "not in project"):
		return ErrFileNotInProject
	case strings.HasPrefix(reason, "already tracked"), strings.HasPrefix(reason, "destination exists"):
		return ErrFileExists
	case strings.Contains(reason, "outside the project"):
		return ErrFileOutsideProject
	case strings.HasPrefix(reason, "extension must stay"):
		return ErrInvalidInput
	default:
		return ErrRenameFailed
	}
}

func renameFailureSuggestion(reason string) string {
	switch {
	case strings.HasPrefix(reason, "already tracked"), strings.HasPrefix(reason, "destination exists"):
		return "Choose a different name or remove the existing file first"
	case strings.Contains(reason, "outside the project"):
		return "Destinations must stay inside the project root"
	default:
		return ""
	}
}

func init() {
	mvCmd.Flags().BoolVar(&mvDryRun, "dry-run", false, "Preview the rename without changing anything")
	mvCmd.Flags().BoolVar(&mvForce, "force", false, "Skip confirmation prompts")
	mvCmd.Flags().BoolVar(&mvNoRefs, "no-refs", false, "Rename the file only, leave references untouched")
	rootCmd.AddCommand(mvCmd)
}
