package refs

import (
	"bytes"
	"strings"
)

// identByte reports whether b can appear inside an identifier. Anything
// else is a boundary.
func identByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}

// findBounded returns the byte offset of every occurrence of name in data
// that is bounded on both sides by non-identifier bytes (or the ends of
// data), in order.
func findBounded(data []byte, name string) []int {
	if name == "" {
		return nil
	}
	needle := []byte(name)

	var offs []int
	for i := 0; ; {
		j := bytes.Index(data[i:], needle)
		if j < 0 {
			break
		}
		off := i + j
		end := off + len(needle)

		leftOK := off == 0 || !identByte(data[off-1])
		rightOK := end == len(data) || !identByte(data[end])
		if leftOK && rightOK {
			offs = append(offs, off)
			i = end
		} else {
			i = off + 1
		}
	}
	return offs
}

// containsBounded reports whether data holds at least one bounded
// occurrence of name.
func containsBounded(data []byte, name string) bool {
	return len(findBounded(data, name)) > 0
}

// textMentions builds Mentions with line numbers and trimmed context for
// line-structured content.
func textMentions(data []byte, name string) []Mention {
	offs := findBounded(data, name)
	if len(offs) == 0 {
		return nil
	}

	mentions := make([]Mention, 0, len(offs))
	line := 1
	prev := 0
	for _, off := range offs {
		line += bytes.Count(data[prev:off], []byte{'\n'})
		prev = off
		mentions = append(mentions, Mention{
			Line:    line,
			Context: lineContext(data, off, len(name)),
		})
	}
	return mentions
}

// byteMentions builds context-free Mentions for content without line
// structure.
func byteMentions(data []byte, name string) []Mention {
	offs := findBounded(data, name)
	if len(offs) == 0 {
		return nil
	}
	return make([]Mention, len(offs))
}

const contextWindow = 60

// lineContext extracts the line containing the mention at off, windowed
// around the mention when the line is very long (single-line XML).
func lineContext(data []byte, off, nameLen int) string {
	start := bytes.LastIndexByte(data[:off], '\n') + 1
	end := off + nameLen
	if i := bytes.IndexByte(data[end:], '\n'); i >= 0 {
		end += i
	} else {
		end = len(data)
	}

	if off-start > contextWindow {
		start = off - contextWindow
	}
	if end-(off+nameLen) > contextWindow {
		end = off + nameLen + contextWindow
	}
	return strings.TrimSpace(string(data[start:end]))
}

// replaceBounded rewrites every bounded occurrence of oldName to newName.
// It returns the original slice untouched when nothing matches.
func replaceBounded(data []byte, oldName, newName string) ([]byte, int) {
	offs := findBounded(data, oldName)
	if len(offs) == 0 {
		return data, 0
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + len(offs)*(len(newName)-len(oldName)))

	prev := 0
	for _, off := range offs {
		buf.Write(data[prev:off])
		buf.WriteString(newName)
		prev = off + len(oldName)
	}
	buf.Write(data[prev:])
	return buf.Bytes(), len(offs)
}

// replaceBoundedString is replaceBounded for string values (XML attributes
// and text nodes).
func replaceBoundedString(s, oldName, newName string) (string, int) {
	out, n := replaceBounded([]byte(s), oldName, newName)
	if n == 0 {
		return s, 0
	}
	return string(out), n
}
