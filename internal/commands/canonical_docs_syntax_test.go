package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Spellings retired during development must not creep back into the
// bundled docs or the registry examples.
func TestDocsDoNotUseLegacyCommandSyntax(t *testing.T) {
	t.Parallel()

	legacyTokens := []string{
		"--no-git",
		"slrename move ",
		"slrename rename ",
		"slrename batch ",
		"slrename.yml",
	}

	root := repoRoot(t)

	var files []string
	entries, err := os.ReadDir(filepath.Join(root, "docs"))
	if err != nil {
		t.Fatalf("read docs dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, filepath.Join("docs", entry.Name()))
		}
	}
	files = append(files, filepath.Join("internal", "commands", "registry.go"))

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		for _, token := range legacyTokens {
			if strings.Contains(string(data), token) {
				t.Errorf("%s contains legacy token %q", rel, token)
			}
		}
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to resolve caller path")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
}
