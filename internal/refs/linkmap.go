package refs

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/slrename/slrename/internal/fsutil"
	"github.com/slrename/slrename/internal/project"
)

// linkMapHandler handles model-reference-link documents: a doc registry of
// file paths plus links whose endpoints are item paths rooted at a base
// name ("fuelsys/Controller/Gain").
//
// It rewrites with path semantics rather than blind substitution: registry
// paths are renamed only when their base name matches exactly, and link
// endpoints only when their first segment does. Malformed documents fall
// back to the text strategy.
type linkMapHandler struct{}

func (linkMapHandler) Scan(path, name string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return &ScanResult{Mentions: textMentions(data, name), TextFallback: true}, nil
	}

	var mentions []Mention
	visitLinkMap(doc.Root(), name, func(loc, value string) string {
		mentions = append(mentions, Mention{Context: loc + ": " + truncateValue(value)})
		return ""
	})
	return &ScanResult{Mentions: mentions}, nil
}

func (linkMapHandler) Update(path, oldName, newName string) (*UpdateResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return textFallbackUpdate(path, data, oldName, newName)
	}

	total := 0
	visitLinkMap(doc.Root(), oldName, func(loc, value string) string {
		total++
		if strings.HasSuffix(loc, "/@path") {
			return project.WithBaseName(value, newName)
		}
		return rewriteItemPath(value, newName)
	})
	if total == 0 {
		return &UpdateResult{}, nil
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", path, err)
	}
	if err := fsutil.WriteFile(path, out, 0); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &UpdateResult{Changed: true, Mentions: total}, nil
}

// visitLinkMap finds every attribute that references name: file path
// attributes ("path") whose base name matches, and item path attributes
// ("src", "dst", "item") whose first segment matches. fn returns the
// replacement value, or "" to leave the attribute as is.
func visitLinkMap(el *etree.Element, name string, fn func(loc, value string) string) {
	for i := range el.Attr {
		attr := &el.Attr[i]
		var hit bool
		switch attr.Key {
		case "path":
			hit = project.BaseName(attr.Value) == name
		case "src", "dst", "item":
			hit = itemBase(attr.Value) == name
		}
		if !hit {
			continue
		}
		loc := el.GetPath() + "/@" + attr.Key
		if v := fn(loc, attr.Value); v != "" {
			attr.Value = v
		}
	}
	for _, tok := range el.Child {
		if child, ok := tok.(*etree.Element); ok {
			visitLinkMap(child, name, fn)
		}
	}
}

// RegistryPaths lists every file path a link-map document registers, in
// document order. An unparseable document yields no paths and no error;
// the caller cannot do better than the text scanner already does.
func RegistryPaths(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return nil, nil
	}

	var paths []string
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if v := el.SelectAttrValue("path", ""); v != "" {
			paths = append(paths, v)
		}
		for _, tok := range el.Child {
			if child, ok := tok.(*etree.Element); ok {
				walk(child)
			}
		}
	}
	walk(doc.Root())
	return paths, nil
}

// itemBase returns the first segment of an item path ("fuelsys" for
// "fuelsys/Controller/Gain").
func itemBase(item string) string {
	if i := strings.IndexByte(item, '/'); i >= 0 {
		return item[:i]
	}
	return item
}

// rewriteItemPath replaces the first segment of an item path.
func rewriteItemPath(item, newBase string) string {
	if i := strings.IndexByte(item, '/'); i >= 0 {
		return newBase + item[i:]
	}
	return newBase
}
