package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/refs"
	"github.com/slrename/slrename/internal/rename"
	"github.com/slrename/slrename/internal/ui"
)

var refsCmd = &cobra.Command{
	Use:   "refs <file>",
	Short: "Show every tracked file that references a file's base name",
	Long: `Scan the project for references to a tracked file's base name, the same
discovery a rename performs. Text formats show line numbers and context,
packaged formats show the inner parts, data archives show raw matches.

Examples:
  slrename refs fuelsys
  slrename refs models/ctrl.slx --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		proj, err := openProject()
		if err != nil {
			return handleError(ErrManifestInvalid, err, "")
		}

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
		base := project.BaseName(entry.Path)

		hits := rename.References(proj, base)

		if isJSONOutput() {
			result := RefsResult{File: entry.Path, Base: base, Kind: entry.Kind.String()}
			mentions := 0
			for _, h := range hits {
				result.Refs = append(result.Refs, RefsEntry{
					Path:         h.Path,
					Kind:         h.Kind.String(),
					Self:         h.Path == entry.Path,
					Mentions:     h.Scan.Mentions,
					TextFallback: h.Scan.TextFallback,
				})
				mentions += len(h.Scan.Mentions)
			}
			outputSuccess(result, &Meta{Count: len(hits), ElapsedMs: time.Since(start).Milliseconds()})
			return nil
		}

		if len(hits) == 0 {
			fmt.Println(ui.Infof("nothing references %s", base))
			return nil
		}

		fmt.Printf("%s\n\n", ui.Header(fmt.Sprintf("References to %s (%s)", base, entry.Path)))
		total := 0
		for _, h := range hits {
			printRefHit(h, entry.Path)
			total += len(h.Scan.Mentions)
		}
		fmt.Printf("\n%s\n", ui.Successf("%s %s",
			countNoun(len(hits), "referencing file", "referencing files"),
			ui.Count(total, "mention", "mentions")))
		return nil
	},
}

// RefsResult is the JSON payload for the refs command.
type RefsResult struct {
	File string      `json:"file"`
	Base string      `json:"base"`
	Kind string      `json:"kind"`
	Refs []RefsEntry `json:"refs"`
}

// RefsEntry is one referencing file with its mentions.
type RefsEntry struct {
	Path         string         `json:"path"`
	Kind         string         `json:"kind"`
	Self         bool           `json:"self,omitempty"`
	Mentions     []refs.Mention `json:"mentions"`
	TextFallback bool           `json:"text_fallback,omitempty"`
}

func printRefHit(h rename.FileReference, selfPath string) {
	label := fmt.Sprintf("  %s %s", ui.FilePath(h.Path), ui.KindTag(h.Kind.String()))
	if h.Path == selfPath {
		label += " " + ui.Hint("(self)")
	}
	if h.Scan.TextFallback {
		label += " " + ui.Hint("(text fallback)")
	}
	fmt.Println(label)

	width := 0
	for _, m := range h.Scan.Mentions {
		if n := len(fmt.Sprintf("%d", m.Line)); m.Line > 0 && n > width {
			width = n
		}
	}
	for _, m := range h.Scan.Mentions {
		switch {
		case m.Part != "" && m.Line > 0:
			fmt.Printf("    %s %s  %s\n", ui.Hint(m.Part+":"), ui.LineNumPadded(m.Line, width), m.Context)
		case m.Line > 0:
			fmt.Printf("    %s  %s\n", ui.LineNumPadded(m.Line, width), m.Context)
		case m.Context != "":
			fmt.Printf("    %s\n", m.Context)
		default:
			fmt.Printf("    %s\n", ui.Hint("binary match"))
		}
	}
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
