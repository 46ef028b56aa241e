package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists checks that a file exists in the project.
func AssertFileExists(t *testing.T, p *TestProject, relPath string) {
	t.Helper()
	if !p.FileExists(relPath) {
		t.Errorf("expected file %s to exist", relPath)
	}
}

// AssertFileNotExists checks that a file does not exist in the project.
func AssertFileNotExists(t *testing.T, p *TestProject, relPath string) {
	t.Helper()
	if p.FileExists(relPath) {
		t.Errorf("expected file %s to not exist", relPath)
	}
}

// AssertFileContains checks that a file contains a substring.
func AssertFileContains(t *testing.T, p *TestProject, relPath, substr string) {
	t.Helper()
	content := p.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		t.Errorf("expected file %s to contain %q\ncontent: %s", relPath, substr, content)
	}
}

// AssertFileNotContains checks that a file does not contain a substring.
func AssertFileNotContains(t *testing.T, p *TestProject, relPath, substr string) {
	t.Helper()
	content := p.ReadFile(relPath)
	if strings.Contains(content, substr) {
		t.Errorf("expected file %s to not contain %q\ncontent: %s", relPath, substr, content)
	}
}

// AssertDirExists checks that a directory exists in the project.
func AssertDirExists(t *testing.T, p *TestProject, relPath string) {
	t.Helper()
	info, err := os.Stat(filepath.Join(p.Path, filepath.FromSlash(relPath)))
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", relPath, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", relPath)
	}
}

// AssertHasWarning checks that the result carries a warning with the code.
func AssertHasWarning(t *testing.T, r *CLIResult, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning %s, got %v", code, r.Warnings)
}

// AssertNoWarnings checks that the result carries no warnings.
func AssertNoWarnings(t *testing.T, r *CLIResult) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

// AssertResultCount checks the meta count of a result.
func AssertResultCount(t *testing.T, r *CLIResult, want int) {
	t.Helper()
	if r.Meta == nil {
		t.Fatalf("expected meta with count %d, got no meta", want)
	}
	if r.Meta.Count != want {
		t.Errorf("expected count %d, got %d", want, r.Meta.Count)
	}
}
