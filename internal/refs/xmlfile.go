package refs

import (
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/slrename/slrename/internal/fsutil"
)

// xmlHandler scans and rewrites structured XML (requirements files). It
// visits attribute values and character-data nodes; comments are left
// alone. Documents that fail to parse fall back to the raw text strategy,
// flagged on the result.
type xmlHandler struct{}

func (xmlHandler) Scan(path, name string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return &ScanResult{Mentions: textMentions(data, name), TextFallback: true}, nil
	}

	var mentions []Mention
	visitStrings(doc.Root(), func(loc, value string) (string, bool) {
		if n := len(findBounded([]byte(value), name)); n > 0 {
			for i := 0; i < n; i++ {
				mentions = append(mentions, Mention{Context: loc + ": " + truncateValue(value)})
			}
		}
		return value, false
	})
	return &ScanResult{Mentions: mentions}, nil
}

func (xmlHandler) Update(path, oldName, newName string) (*UpdateResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return textFallbackUpdate(path, data, oldName, newName)
	}

	total := 0
	visitStrings(doc.Root(), func(loc, value string) (string, bool) {
		replaced, n := replaceBoundedString(value, oldName, newName)
		if n == 0 {
			return value, false
		}
		total += n
		return replaced, true
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

// textFallbackUpdate applies the text strategy to already-read bytes and
// marks the result as a fallback.
func textFallbackUpdate(path string, data []byte, oldName, newName string) (*UpdateResult, error) {
	updated, n := replaceBounded(data, oldName, newName)
	if n == 0 {
		return &UpdateResult{TextFallback: true}, nil
	}
	if err := fsutil.WriteFile(path, updated, 0); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &UpdateResult{Changed: true, Mentions: n, TextFallback: true}, nil
}

// visitStrings walks el's subtree depth-first, invoking fn for every
// attribute value (loc "path/@key") and character-data node (loc
// "path/text()"). When fn reports a change the new value is stored back.
func visitStrings(el *etree.Element, fn func(loc, value string) (string, bool)) {
	for i := range el.Attr {
		loc := el.GetPath() + "/@" + el.Attr[i].Key
		if v, changed := fn(loc, el.Attr[i].Value); changed {
			el.Attr[i].Value = v
		}
	}
	for _, tok := range el.Child {
		switch node := tok.(type) {
		case *etree.CharData:
			if v, changed := fn(el.GetPath()+"/text()", node.Data); changed {
				node.Data = v
			}
		case *etree.Element:
			visitStrings(node, fn)
		}
	}
}

const maxValueContext = 120

func truncateValue(s string) string {
	if len(s) <= maxValueContext {
		return s
	}
	return s[:maxValueContext] + "..."
}
