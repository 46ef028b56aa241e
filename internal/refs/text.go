package refs

import (
	"fmt"
	"os"

	"github.com/slrename/slrename/internal/fsutil"
)

// textHandler scans and rewrites line-structured text: scripts and legacy
// ASCII library files.
type textHandler struct{}

func (textHandler) Scan(path, name string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &ScanResult{Mentions: textMentions(data, name)}, nil
}

func (textHandler) Update(path, oldName, newName string) (*UpdateResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	updated, n := replaceBounded(data, oldName, newName)
	if n == 0 {
		return &UpdateResult{}, nil
	}

	if err := fsutil.WriteFile(path, updated, 0); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &UpdateResult{Changed: true, Mentions: n}, nil
}

// binaryHandler scans raw bytes. Data archives have no line structure, so
// mentions carry neither lines nor context.
type binaryHandler struct{}

func (binaryHandler) Scan(path, name string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &ScanResult{Mentions: byteMentions(data, name)}, nil
}
