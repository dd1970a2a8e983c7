// Package archive unpacks exported chat bundles and partitions their entries
// into the transcript text file and the ordered image asset catalog.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"chat2pdf/domain"
	apperrors "chat2pdf/errors"
)

// Extract reads a zip archive into a name to bytes map. Entry names are
// flattened to their last path segment; exports nest everything under a
// single folder and the folder name carries no information.
func Extract(data []byte) (map[string][]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	files := make(map[string][]byte, len(reader.File))
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %q: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive entry %q: %w", entry.Name, err)
		}
		files[path.Base(entry.Name)] = content
	}
	return files, nil
}

// PickTranscript returns the first text entry by name.
func PickTranscript(files map[string][]byte) (string, []byte, error) {
	var names []string
	for name := range files {
		if strings.HasSuffix(strings.ToLower(name), ".txt") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil, apperrors.ErrNoTextEntry
	}
	sort.Strings(names)
	return names[0], files[names[0]], nil
}

// PickImages returns the image entries ordered by name. Export archives
// number attachments in send order, so name order is catalog order.
func PickImages(files map[string][]byte) []domain.Asset {
	var names []string
	for name := range files {
		if domain.IsImageName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	assets := make([]domain.Asset, 0, len(names))
	for _, name := range names {
		assets = append(assets, domain.Asset{Name: name, Data: files[name]})
	}
	return assets
}
