package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/slrename/slrename/docs"
	"github.com/slrename/slrename/internal/ui"
)

var (
	docsSearchLimit int

	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

// docsTopicOrder puts the topics in reading order; anything not listed
// sorts alphabetically after them.
var docsTopicOrder = []string{
	"getting-started",
	"renaming",
	"references",
	"configuration",
	"vcs",
}

type docsTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

type docsSearchMatch struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled documentation",
	Long: `Browse long-form documentation bundled into the slrename binary.

For command-level usage, use 'slrename help <command>'.

Examples:
  slrename docs
  slrename docs renaming
  slrename docs search "link map"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Docs render without a current project; theme straight from config.
		if loadedCfg, err := loadGlobalConfig(); err == nil {
			ui.ConfigureTheme(loadedCfg.UI.Accent)
			ui.ConfigureMarkdownCodeTheme(loadedCfg.UI.CodeTheme)
		}

		topics, err := listDocsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild slrename so bundled docs are available")
		}

		if len(args) == 0 {
			return outputDocsTopics(topics)
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			return docsTopicNotFound(args[0], topics)
		}
		return outputDocsTopicContent(topic)
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bundled documentation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a search query", "Usage: slrename docs search <query>")
		}
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}

		matches, err := searchDocs(query, docsSearchLimit)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"matches": matches,
			}, &Meta{Count: len(matches)})
			return nil
		}

		if len(matches) == 0 {
			fmt.Printf("No docs matched %q.\n", query)
			return nil
		}

		fmt.Printf("Matches for %q (%d):\n", query, len(matches))
		for _, m := range matches {
			fmt.Printf("- %s:%d %s\n", m.Topic, m.Line, m.Snippet)
		}
		return nil
	},
}

func outputDocsTopics(topics []docsTopic) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topics":       topics,
			"command_docs": "slrename help <command>",
		}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println("Documentation topics:")
	for _, t := range topics {
		fmt.Printf("  %-36s %s\n", fmt.Sprintf("slrename docs %s", t.ID), t.Title)
	}
	fmt.Println()
	fmt.Println("For command usage, run 'slrename help <command>'.")
	return nil
}

func outputDocsTopicContent(topic docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"content": string(content),
		}, nil)
		return nil
	}

	rendered := string(content)
	display := docsDisplayContext()
	if display.IsTTY {
		if out, renderErr := docsMarkdownRender(string(content), display.TermWidth); renderErr == nil {
			rendered = out
		}
	}

	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return nil
}

func docsTopicNotFound(input string, topics []docsTopic) error {
	available := make([]string, 0, len(topics))
	for _, t := range topics {
		available = append(available, t.ID)
	}
	return handleErrorMsg(
		ErrInvalidInput,
		fmt.Sprintf("unknown docs topic: %s", input),
		fmt.Sprintf("Run 'slrename docs' to list topics (available: %s)", strings.Join(available, ", ")),
	)
}

func listDocsTopics() ([]docsTopic, error) {
	entries, err := fs.ReadDir(builtindocs.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read bundled docs: %w", err)
	}

	var topics []docsTopic
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		topics = append(topics, docsTopic{
			ID:    id,
			Title: extractDocsTitle(name, id),
			Path:  name,
		})
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("no bundled docs topics")
	}

	sort.Slice(topics, func(i, j int) bool {
		oi, oj := docsSortOrder(topics[i].ID), docsSortOrder(topics[j].ID)
		if oi != oj {
			return oi < oj
		}
		return topics[i].ID < topics[j].ID
	})
	return topics, nil
}

func docsSortOrder(id string) int {
	for i, known := range docsTopicOrder {
		if known == id {
			return i
		}
	}
	return len(docsTopicOrder)
}

func findDocsTopic(topics []docsTopic, raw string) (docsTopic, bool) {
	needle := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(raw, ".md")))
	needle = strings.ReplaceAll(needle, "_", "-")
	for _, t := range topics {
		if t.ID == needle {
			return t, true
		}
	}
	return docsTopic{}, false
}

func searchDocs(query string, limit int) ([]docsSearchMatch, error) {
	topics, err := listDocsTopics()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	matches := make([]docsSearchMatch, 0, limit)
	for _, topic := range topics {
		content, err := fs.ReadFile(builtindocs.FS, topic.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", topic.Path, err)
		}
		for i, line := range strings.Split(string(content), "\n") {
			if !strings.Contains(strings.ToLower(line), queryLower) {
				continue
			}
			matches = append(matches, docsSearchMatch{
				Topic:   topic.ID,
				Title:   topic.Title,
				Line:    i + 1,
				Snippet: shortenDocsSnippet(line),
			})
			if len(matches) >= limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}

func shortenDocsSnippet(line string) string {
	const maxLen = 160
	snippet := strings.TrimSpace(line)
	if snippet == "" {
		return "(blank line)"
	}
	if len(snippet) <= maxLen {
		return snippet
	}
	return snippet[:maxLen-3] + "..."
}

func extractDocsTitle(path, fallback string) string {
	f, err := builtindocs.FS.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			if title := strings.TrimSpace(strings.TrimPrefix(line, "# ")); title != "" {
				return title
			}
		}
	}
	return fallback
}

func init() {
	docsSearchCmd.Flags().IntVarP(&docsSearchLimit, "limit", "n", 20, "Maximum number of matches")
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
