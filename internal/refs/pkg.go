package refs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/slrename/slrename/internal/fsutil"
)

// pkgHandler handles OPC packages: zip containers of XML parts (models,
// data dictionaries, spreadsheets). Only text parts are scanned; binary
// parts ride along untouched.
type pkgHandler struct{}

// textPart reports whether a package part holds text worth scanning.
func textPart(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml", ".rels", ".json", ".txt", ".m":
		return true
	}
	return false
}

func (pkgHandler) Scan(path, name string) (*ScanResult, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open package %s: %w", path, err)
	}
	defer r.Close()

	var mentions []Mention
	for _, f := range r.File {
		if !textPart(f.Name) {
			continue
		}
		data, err := readPart(f)
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		for _, m := range textMentions(data, name) {
			m.Part = f.Name
			mentions = append(mentions, m)
		}
	}
	return &ScanResult{Mentions: mentions}, nil
}

func (pkgHandler) Update(path, oldName, newName string) (*UpdateResult, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open package %s: %w", path, err)
	}
	defer r.Close()

	// First pass: find the parts that mention the old name.
	changed := make(map[string][]byte)
	total := 0
	for _, f := range r.File {
		if !textPart(f.Name) {
			continue
		}
		data, err := readPart(f)
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		updated, n := replaceBounded(data, oldName, newName)
		if n > 0 {
			changed[f.Name] = updated
			total += n
		}
	}
	if len(changed) == 0 {
		return &UpdateResult{}, nil
	}

	// Second pass: rebuild. Untouched parts are copied raw, compressed
	// bytes and all; only changed parts are re-deflated.
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if r.Comment != "" {
		if err := w.SetComment(r.Comment); err != nil {
			return nil, err
		}
	}

	parts := make([]string, 0, len(changed))
	for _, f := range r.File {
		if data, ok := changed[f.Name]; ok {
			fh := f.FileHeader
			fh.CRC32 = 0
			fh.CompressedSize = 0
			fh.CompressedSize64 = 0
			fh.UncompressedSize = 0
			fh.UncompressedSize64 = 0
			pw, err := w.CreateHeader(&fh)
			if err != nil {
				return nil, fmt.Errorf("rewrite part %s: %w", f.Name, err)
			}
			if _, err := pw.Write(data); err != nil {
				return nil, fmt.Errorf("rewrite part %s: %w", f.Name, err)
			}
			parts = append(parts, f.Name)
			continue
		}

		raw, err := f.OpenRaw()
		if err != nil {
			return nil, fmt.Errorf("copy part %s: %w", f.Name, err)
		}
		pw, err := w.CreateRaw(&f.FileHeader)
		if err != nil {
			return nil, fmt.Errorf("copy part %s: %w", f.Name, err)
		}
		if _, err := io.Copy(pw, raw); err != nil {
			return nil, fmt.Errorf("copy part %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize package: %w", err)
	}

	if err := fsutil.WriteFile(path, buf.Bytes(), 0); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &UpdateResult{Changed: true, Mentions: total, Parts: parts}, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
