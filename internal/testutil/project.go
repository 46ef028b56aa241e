// Package testutil provides reusable test utilities for integration tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ZipPart is one part of a packaged (zip) fixture file.
type ZipPart struct {
	Name string
	Data []byte
	// Store disables compression, as binary parts inside real packages are
	// often stored raw.
	Store bool
}

// TestProject represents a temporary project tree for testing.
type TestProject struct {
	Path string

	t            *testing.T
	manifestName string
	entries      []string
	files        map[string][]byte
	packages     map[string][]ZipPart
}

// NewTestProject creates a new test project builder.
// Call Build() to create the actual directory tree.
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()
	return &TestProject{
		t:            t,
		manifestName: "testproj.prj",
		files:        make(map[string][]byte),
		packages:     make(map[string][]ZipPart),
	}
}

// WithManifestName overrides the manifest file name (default testproj.prj).
func (p *TestProject) WithManifestName(name string) *TestProject {
	p.manifestName = name
	return p
}

// WithEntry tracks a file in the manifest and writes its content.
func (p *TestProject) WithEntry(relPath, content string) *TestProject {
	p.entries = append(p.entries, relPath)
	p.files[relPath] = []byte(content)
	return p
}

// WithEntryBytes tracks a file in the manifest with binary content.
func (p *TestProject) WithEntryBytes(relPath string, content []byte) *TestProject {
	p.entries = append(p.entries, relPath)
	p.files[relPath] = content
	return p
}

// WithEntryOnly tracks a file in the manifest without creating it on disk.
func (p *TestProject) WithEntryOnly(relPath string) *TestProject {
	p.entries = append(p.entries, relPath)
	return p
}

// WithFile writes a file without tracking it in the manifest.
func (p *TestProject) WithFile(relPath, content string) *TestProject {
	p.files[relPath] = []byte(content)
	return p
}

// WithPackage tracks a zip-packaged file built from the given parts.
func (p *TestProject) WithPackage(relPath string, parts ...ZipPart) *TestProject {
	p.entries = append(p.entries, relPath)
	p.packages[relPath] = parts
	return p
}

// WithOptions sets the slrename.yaml content for the project.
func (p *TestProject) WithOptions(yaml string) *TestProject {
	p.files["slrename.yaml"] = []byte(yaml)
	return p
}

// Build creates the project directory, manifest, and all configured files.
func (p *TestProject) Build() *TestProject {
	p.t.Helper()

	p.Path = p.t.TempDir()

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	name := strings.TrimSuffix(p.manifestName, filepath.Ext(p.manifestName))
	fmt.Fprintf(&sb, "<Project name=\"%s\" version=\"1\">\n  <Files>\n", name)
	for _, rel := range p.entries {
		fmt.Fprintf(&sb, "    <File path=\"%s\"/>\n", rel)
	}
	sb.WriteString("  </Files>\n</Project>\n")
	p.writeFile(p.manifestName, []byte(sb.String()))

	for rel, content := range p.files {
		p.writeFile(rel, content)
	}
	for rel, parts := range p.packages {
		p.writeFile(rel, buildZip(p.t, parts))
	}

	return p
}

// ManifestName returns the manifest file name.
func (p *TestProject) ManifestName() string {
	return p.manifestName
}

func (p *TestProject) writeFile(relPath string, content []byte) {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		p.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

func buildZip(t *testing.T, parts []ZipPart) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		hdr := &zip.FileHeader{Name: part.Name, Method: zip.Deflate}
		if part.Store {
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("failed to create zip part %s: %v", part.Name, err)
		}
		if _, err := w.Write(part.Data); err != nil {
			t.Fatalf("failed to write zip part %s: %v", part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
	return buf.Bytes()
}

// ReadFile reads a file from the project as a string.
func (p *TestProject) ReadFile(relPath string) string {
	return string(p.ReadBytes(relPath))
}

// ReadBytes reads a file from the project.
func (p *TestProject) ReadBytes(relPath string) []byte {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		p.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return content
}

// FileExists checks if a file exists in the project.
func (p *TestProject) FileExists(relPath string) bool {
	p.t.Helper()
	_, err := os.Stat(filepath.Join(p.Path, filepath.FromSlash(relPath)))
	return err == nil
}

// ZipPartContent reads one part out of a packaged file.
func (p *TestProject) ZipPartContent(relPath, partName string) []byte {
	p.t.Helper()
	zr, err := zip.OpenReader(filepath.Join(p.Path, filepath.FromSlash(relPath)))
	if err != nil {
		p.t.Fatalf("failed to open package %s: %v", relPath, err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != partName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			p.t.Fatalf("failed to open part %s: %v", partName, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			p.t.Fatalf("failed to read part %s: %v", partName, err)
		}
		return buf.Bytes()
	}
	p.t.Fatalf("package %s has no part %s", relPath, partName)
	return nil
}
