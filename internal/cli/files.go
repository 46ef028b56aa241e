package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/ui"
)

var filesKind string

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the files the project tracks",
	Long: `List every file in the project manifest with its kind, in manifest
order. Entries whose extension is outside the allow-list show no kind;
entries whose file is missing on disk are flagged.

Examples:
  slrename files
  slrename files --kind model
  slrename files --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		proj, err := openProject()
		if err != nil {
			return handleError(ErrManifestInvalid, err, "")
		}

		var filter project.Kind
		if filesKind != "" {
			filter, err = project.ParseKind(filesKind)
			if err != nil {
				return handleError(ErrKindUnknown, err, "")
			}
		}

		var listed []FileEntry
		for _, entry := range proj.Entries() {
			if filter != "" && entry.Kind != filter {
				continue
			}
			fe := FileEntry{Path: entry.Path, Kind: entry.Kind.String()}
			if _, err := os.Lstat(proj.AbsPath(entry.Path)); err != nil {
				fe.Missing = true
			}
			listed = append(listed, fe)
		}

		if isJSONOutput() {
			outputSuccess(FilesResult{Project: projectLabel(proj), Files: listed}, &Meta{
				Count:     len(listed),
				ElapsedMs: time.Since(start).Milliseconds(),
			})
			return nil
		}

		if len(listed) == 0 {
			if filter != "" {
				fmt.Println(ui.Infof("no tracked files of kind %s", filter))
			} else {
				fmt.Println(ui.Info("the project tracks no files"))
			}
			return nil
		}

		fmt.Printf("%s\n\n", ui.Header(fmt.Sprintf("%s %s", projectLabel(proj), ui.Count(len(listed), "file", "files"))))
		table := ui.NewTable(2)
		for _, fe := range listed {
			path := ui.FilePath(fe.Path)
			if fe.Missing {
				path += " " + ui.Error("missing")
			}
			kind := ""
			if fe.Kind != "" {
				kind = ui.KindTag(fe.Kind)
			}
			table.AddRow("  "+path, kind)
		}
		fmt.Print(table.String())
		return nil
	},
}

// FilesResult is the JSON payload for the files command.
type FilesResult struct {
	Project string      `json:"project"`
	Files   []FileEntry `json:"files"`
}

// FileEntry is one manifest entry in a files listing.
type FileEntry struct {
	Path    string `json:"path"`
	Kind    string `json:"kind,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

func init() {
	filesCmd.Flags().StringVar(&filesKind, "kind", "", "Only list files of this kind (e.g. model, script)")
	rootCmd.AddCommand(filesCmd)
}
