package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v: %s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "ci@example.com")
	run("config", "user.name", "ci")
	return dir
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, args := range [][]string{{"add", name}, {"commit", "-q", "-m", "add " + name}} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v: %s", args, err, out)
		}
	}
}

func TestDetect(t *testing.T) {
	dir := newTestRepo(t)

	sub := filepath.Join(dir, "models")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	g, ok := Detect(sub)
	if !ok {
		t.Fatal("Detect failed inside a repository")
	}
	wantRoot, _ := filepath.EvalSymlinks(dir)
	gotRoot, _ := filepath.EvalSymlinks(g.Root())
	if gotRoot != wantRoot {
		t.Errorf("Root = %q, want %q", g.Root(), dir)
	}

	if _, ok := Detect(t.TempDir()); ok {
		t.Error("Detect succeeded outside a repository")
	}
}

func TestTracks(t *testing.T) {
	dir := newTestRepo(t)
	commitFile(t, dir, "fuelsys.slx", "model")

	if err := os.WriteFile(filepath.Join(dir, "loose.m"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	g, _ := Detect(dir)
	if !g.Tracks("fuelsys.slx") {
		t.Error("Tracks(committed) = false")
	}
	if g.Tracks("loose.m") {
		t.Error("Tracks(untracked) = true")
	}
	if g.Tracks("ghost.m") {
		t.Error("Tracks(nonexistent) = true")
	}
}

func TestMoveAndStatus(t *testing.T) {
	dir := newTestRepo(t)
	commitFile(t, dir, "models/fuelsys.slx", "model")

	g, _ := Detect(dir)
	if err := g.Move("models/fuelsys.slx", "models/engine.slx"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "models", "engine.slx")); err != nil {
		t.Errorf("moved file missing on disk: %v", err)
	}

	lines, err := g.Status("models")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	var renamed bool
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "R") {
			renamed = true
		}
	}
	if !renamed {
		t.Errorf("status does not show a staged rename: %v", lines)
	}
}

func TestAdd(t *testing.T) {
	dir := newTestRepo(t)
	commitFile(t, dir, "init.m", "x")

	if err := os.WriteFile(filepath.Join(dir, "init.m"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	g, _ := Detect(dir)
	if err := g.Add("init.m"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	lines, err := g.Status("init.m")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "M ") {
		t.Errorf("status = %v, want staged modification", lines)
	}

	if err := g.Add(); err != nil {
		t.Errorf("Add with no paths = %v, want nil", err)
	}
}
