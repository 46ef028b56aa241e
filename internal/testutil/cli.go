package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// BuildCLI builds the slrename binary once and returns its path.
// The binary is shared across all tests in the package run.
func BuildCLI(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "slrename-test-bin-*")
		if err != nil {
			buildErr = fmt.Errorf("failed to create temp dir: %w", err)
			return
		}
		binaryPath = filepath.Join(dir, "slrename")

		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/slrename")
		cmd.Dir = root
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			buildErr = fmt.Errorf("failed to build slrename: %v\n%s", err, stderr.String())
		}
	})
	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}
	return binaryPath
}

// moduleRoot walks up from the working directory to the go.mod root.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// CLIError is the error payload of a failed command.
type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// CLIWarning is one warning attached to an otherwise successful command.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// CLIMeta carries counts and timing for a command.
type CLIMeta struct {
	Count     int   `json:"count,omitempty"`
	ElapsedMs int64 `json:"elapsed_ms,omitempty"`
}

// CLIResult is the parsed outcome of a CLI invocation.
type CLIResult struct {
	OK       bool         `json:"ok"`
	Data     interface{}  `json:"data,omitempty"`
	Error    *CLIError    `json:"error,omitempty"`
	Warnings []CLIWarning `json:"warnings,omitempty"`
	Meta     *CLIMeta     `json:"meta,omitempty"`

	RawJSON  string `json:"-"`
	Stderr   string `json:"-"`
	ExitCode int    `json:"-"`
}

// RunCLI runs the slrename binary against a project with --json output.
func RunCLI(t *testing.T, projectPath string, args ...string) *CLIResult {
	t.Helper()
	return RunCLIWithStdin(t, projectPath, "", args...)
}

// RunCLI runs the built binary against this project with --json output.
func (p *TestProject) RunCLI(args ...string) *CLIResult {
	p.t.Helper()
	return RunCLI(p.t, p.Path, args...)
}

// RunCLIRaw runs the binary from dir with exactly the given args. No
// project or output flags are added, so it exercises root resolution.
func RunCLIRaw(t *testing.T, dir string, args ...string) *CLIResult {
	t.Helper()
	binary := BuildCLI(t)

	cmd := exec.Command(binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("failed to run slrename %s: %v", strings.Join(args, " "), err)
	}

	result := &CLIResult{
		RawJSON:  stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
	if raw := strings.TrimSpace(result.RawJSON); strings.HasPrefix(raw, "{") {
		if err := json.Unmarshal([]byte(raw), result); err != nil {
			t.Fatalf("failed to parse CLI output as JSON: %v\noutput: %s", err, raw)
		}
	}
	return result
}

// RunCLIWithStdin runs the binary with the given stdin content.
func RunCLIWithStdin(t *testing.T, projectPath, stdin string, args ...string) *CLIResult {
	t.Helper()
	binary := BuildCLI(t)

	fullArgs := append([]string{"--project-path", projectPath, "--json"}, args...)
	cmd := exec.Command(binary, fullArgs...)
	// Run from the project so relative file arguments (rules files, report
	// paths) land where a user would expect them.
	cmd.Dir = projectPath
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("failed to run slrename %s: %v", strings.Join(args, " "), err)
	}

	result := &CLIResult{
		RawJSON:  stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
	if raw := strings.TrimSpace(result.RawJSON); raw != "" {
		if err := json.Unmarshal([]byte(raw), result); err != nil {
			t.Fatalf("failed to parse CLI output as JSON: %v\noutput: %s", err, raw)
		}
	}
	return result
}

// MustSucceed fails the test if the command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		msg := "command failed"
		if r.Error != nil {
			msg = fmt.Sprintf("command failed with %s: %s", r.Error.Code, r.Error.Message)
		}
		t.Fatalf("%s\noutput: %s\nstderr: %s", msg, r.RawJSON, r.Stderr)
	}
	return r
}

// MustFail fails the test unless the command failed with the given code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with %s, but it succeeded\noutput: %s", code, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error %s, but error payload is missing\noutput: %s", code, r.RawJSON)
	}
	if r.Error.Code != code {
		t.Fatalf("expected error code %s, got %s: %s", code, r.Error.Code, r.Error.Message)
	}
	return r
}

// MustFailWithMessage additionally checks the error message substring.
func (r *CLIResult) MustFailWithMessage(t *testing.T, code, substr string) *CLIResult {
	t.Helper()
	r.MustFail(t, code)
	if !strings.Contains(r.Error.Message, substr) {
		t.Fatalf("expected error message to contain %q, got %q", substr, r.Error.Message)
	}
	return r
}

// DataList returns Data as a list of objects.
func (r *CLIResult) DataList(t *testing.T) []map[string]interface{} {
	t.Helper()
	list, ok := r.Data.([]interface{})
	if !ok {
		t.Fatalf("expected data to be a list, got %T", r.Data)
	}
	out := make([]map[string]interface{}, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("expected data[%d] to be an object, got %T", i, item)
		}
		out = append(out, obj)
	}
	return out
}

// DataObject returns Data as a single object.
func (r *CLIResult) DataObject(t *testing.T) map[string]interface{} {
	t.Helper()
	obj, ok := r.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data to be an object, got %T", r.Data)
	}
	return obj
}

// DataString returns Data as a string.
func (r *CLIResult) DataString(t *testing.T) string {
	t.Helper()
	s, ok := r.Data.(string)
	if !ok {
		t.Fatalf("expected data to be a string, got %T", r.Data)
	}
	return s
}
