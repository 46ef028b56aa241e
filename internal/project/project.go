package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/slrename/slrename/internal/fsutil"
)

// ErrNoProject is returned when no manifest can be located.
var ErrNoProject = errors.New("no project manifest found")

// ManifestExt is the extension of project manifest files.
const ManifestExt = ".prj"

// Entry is one tracked file in the manifest, in manifest order.
// Kind is derived from the extension; it is empty for entries whose
// extension falls outside the allow-list (those are preserved verbatim
// and flagged by verification, but never scanned or updated).
type Entry struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind,omitempty"`
}

// Project is a loaded manifest plus its location on disk. The underlying
// XML document is retained so foreign elements, comments, and attribute
// order survive a load/save round trip.
type Project struct {
	Root         string
	ManifestPath string
	Name         string

	doc     *etree.Document
	entries []Entry
}

// FindRoot walks up from startDir looking for a directory that contains
// exactly one *.prj file. It returns the absolute directory path, or
// ErrNoProject if it reaches the filesystem root without a hit. A directory
// holding more than one manifest is an error, not a match.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		matches, err := manifestsIn(dir)
		if err != nil {
			return "", err
		}
		switch len(matches) {
		case 0:
			// keep walking
		case 1:
			return dir, nil
		default:
			return "", fmt.Errorf("multiple project manifests in %s: %s", dir, strings.Join(matches, ", "))
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

func manifestsIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ManifestExt) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Load opens the project at path. path may be the project root directory
// (which must hold exactly one manifest) or a direct path to a *.prj file.
func Load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoProject)
		}
		return nil, err
	}

	manifestPath := abs
	if st.IsDir() {
		matches, err := manifestsIn(abs)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%s: %w", path, ErrNoProject)
		case 1:
			manifestPath = filepath.Join(abs, matches[0])
		default:
			return nil, fmt.Errorf("multiple project manifests in %s: %s", abs, strings.Join(matches, ", "))
		}
	} else if !strings.EqualFold(filepath.Ext(abs), ManifestExt) {
		return nil, fmt.Errorf("%s is not a %s file", path, ManifestExt)
	}

	return loadManifest(manifestPath)
}

// Open resolves the project containing startDir (walking up) and loads it.
func Open(startDir string) (*Project, error) {
	root, err := FindRoot(startDir)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

func loadManifest(manifestPath string) (*Project, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(manifestPath); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filepath.Base(manifestPath), err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Project" {
		return nil, fmt.Errorf("manifest %s: root element is not <Project>", filepath.Base(manifestPath))
	}

	p := &Project{
		Root:         filepath.Dir(manifestPath),
		ManifestPath: manifestPath,
		Name:         root.SelectAttrValue("name", ""),
		doc:          doc,
	}
	if p.Name == "" {
		p.Name = BaseName(manifestPath)
	}

	for _, el := range p.fileElements() {
		rel := NormalizeRel(el.SelectAttrValue("path", ""))
		if rel == "" {
			continue
		}
		kind, _ := KindForPath(rel)
		p.entries = append(p.entries, Entry{Path: rel, Kind: kind})
	}
	return p, nil
}

// Create writes a fresh manifest at root/<name>.prj tracking the given
// project-relative paths, and returns the loaded project. Used by init.
func Create(root, name, manifestName string, paths []string) (*Project, error) {
	manifestPath := filepath.Join(root, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("manifest already exists: %s", manifestName)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	proj := doc.CreateElement("Project")
	proj.CreateAttr("name", name)
	proj.CreateAttr("version", "1")
	files := proj.CreateElement("Files")
	for _, rel := range paths {
		f := files.CreateElement("File")
		f.CreateAttr("path", NormalizeRel(rel))
	}
	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	if err := fsutil.WriteFile(manifestPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return loadManifest(manifestPath)
}

// Entries returns the tracked files in manifest order. The slice is a copy.
func (p *Project) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Entry looks up a tracked file by its project-relative path.
func (p *Project) Entry(rel string) (Entry, bool) {
	rel = NormalizeRel(rel)
	for _, e := range p.entries {
		if e.Path == rel {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether rel is tracked.
func (p *Project) Contains(rel string) bool {
	_, ok := p.Entry(rel)
	return ok
}

// AbsPath converts a project-relative path to an absolute one.
func (p *Project) AbsPath(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(NormalizeRel(rel)))
}

// RelPath converts an absolute or CWD-relative path to a project-relative
// one, verifying it falls inside the project.
func (p *Project) RelPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := EnsureWithin(p.Root, abs); err != nil {
		return "", err
	}
	rel, err := filepath.Rel(p.Root, abs)
	if err != nil {
		return "", err
	}
	return NormalizeRel(rel), nil
}

// Add appends rel to the manifest. It fails if the path is already tracked
// or its extension is outside the allow-list.
func (p *Project) Add(rel string) error {
	return p.AddAt(rel, -1)
}

// AddAt inserts rel at the given position among the tracked entries, or
// appends when index is out of range. Restoring a removed entry into its
// former slot keeps manifest order stable across a rename.
func (p *Project) AddAt(rel string, index int) error {
	rel = NormalizeRel(rel)
	if p.Contains(rel) {
		return fmt.Errorf("already tracked: %s", rel)
	}
	kind, ok := KindForPath(rel)
	if !ok {
		return fmt.Errorf("extension not tracked by projects: %s", rel)
	}

	files := p.filesElement()
	el := etree.NewElement("File")
	el.CreateAttr("path", rel)

	tokIdx := -1
	if index >= 0 && index < len(p.entries) {
		seen := 0
		for i, tok := range files.Child {
			if child, ok := tok.(*etree.Element); ok && child.Tag == "File" {
				if seen == index {
					tokIdx = i
					break
				}
				seen++
			}
		}
	}
	if tokIdx < 0 {
		files.AddChild(el)
		p.entries = append(p.entries, Entry{Path: rel, Kind: kind})
		return nil
	}
	files.InsertChildAt(tokIdx, el)

	p.entries = append(p.entries, Entry{})
	copy(p.entries[index+1:], p.entries[index:])
	p.entries[index] = Entry{Path: rel, Kind: kind}
	return nil
}

// Remove drops rel from the manifest, returning the position it held so a
// later AddAt can restore it. It fails if the path is not tracked.
func (p *Project) Remove(rel string) (int, error) {
	rel = NormalizeRel(rel)
	el := p.findFileElement(rel)
	if el == nil {
		return -1, fmt.Errorf("not tracked: %s", rel)
	}
	el.Parent().RemoveChild(el)

	for i, e := range p.entries {
		if e.Path == rel {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return i, nil
		}
	}
	return -1, fmt.Errorf("not tracked: %s", rel)
}

// Save writes the manifest back to disk atomically. Whitespace is
// normalized; elements, comments, and attribute order are preserved.
func (p *Project) Save() error {
	p.doc.Indent(2)
	data, err := p.doc.WriteToBytes()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(p.ManifestPath, data, 0); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	return nil
}

func (p *Project) filesElement() *etree.Element {
	root := p.doc.Root()
	if files := root.SelectElement("Files"); files != nil {
		return files
	}
	return root.CreateElement("Files")
}

func (p *Project) fileElements() []*etree.Element {
	root := p.doc.Root()
	files := root.SelectElement("Files")
	if files == nil {
		return nil
	}
	return files.SelectElements("File")
}

func (p *Project) findFileElement(rel string) *etree.Element {
	for _, el := range p.fileElements() {
		if NormalizeRel(el.SelectAttrValue("path", "")) == rel {
			return el
		}
	}
	return nil
}
