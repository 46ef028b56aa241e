// Package vcs wraps the version-control side of a rename: moving tracked
// files with history intact and staging what the run modified. Git is the
// only backend and is driven as an external process, so the tool behaves
// exactly like the git the user has installed.
package vcs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/slrename/slrename/internal/shellquote"
)

// Git is a handle on the repository containing the project.
type Git struct {
	root string
}

// Detect walks up from dir looking for a .git directory and verifies the
// git binary is on PATH. ok is false when either is missing; callers fall
// back to plain filesystem operations.
func Detect(dir string) (*Git, bool) {
	if _, err := exec.LookPath("git"); err != nil {
		log.Debug().Msgf("git binary not found: %v", err)
		return nil, false
	}

	cur, err := filepath.Abs(dir)
	if err != nil {
		return nil, false
	}
	for {
		info, err := os.Stat(filepath.Join(cur, ".git"))
		if err == nil && info.IsDir() {
			log.Debug().Msgf("git repository at %s", cur)
			return &Git{root: cur}, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, false
		}
		cur = parent
	}
}

// Root returns the repository work-tree root.
func (g *Git) Root() string {
	return g.root
}

// Tracks reports whether path is known to the index. Untracked files get
// plain filesystem moves; git mv would refuse them.
func (g *Git) Tracks(path string) bool {
	err := g.run("ls-files", "--error-unmatch", "--", path)
	return err == nil
}

// Move renames oldPath to newPath with git mv, staging the rename.
func (g *Git) Move(oldPath, newPath string) error {
	if err := g.run("mv", "--", oldPath, newPath); err != nil {
		return fmt.Errorf("git mv: %w", err)
	}
	return nil
}

// Add stages the given paths.
func (g *Git) Add(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if err := g.run(args...); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

// Status returns porcelain status lines for the given paths (repo-wide
// when none are given).
func (g *Git) Status(paths ...string) ([]string, error) {
	args := []string{"status", "--porcelain"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	out, err := g.output(args...)
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (g *Git) run(args ...string) error {
	_, err := g.output(args...)
	return err
}

func (g *Git) output(args ...string) (string, error) {
	log.Debug().Msgf("exec: git %s", shellquote.Join(args))

	cmd := exec.Command("git", args...)
	cmd.Dir = g.root
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %s: %w", args[0], strings.TrimSpace(string(output)), err)
	}
	return string(output), nil
}
