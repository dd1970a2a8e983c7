// Package merge concatenates PDF documents. Corrupt members are skipped so
// one bad upload cannot poison a whole merge request.
package merge

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	apperrors "chat2pdf/errors"
)

type Merger struct {
	log  *slog.Logger
	conf *model.Configuration
}

func NewMerger(log *slog.Logger) *Merger {
	return &Merger{log: log, conf: model.NewDefaultConfiguration()}
}

// Merge validates each buffer, drops the ones pdfcpu rejects, and merges
// the survivors in their original order. It fails only when nothing valid
// remains.
func (m *Merger) Merge(docs [][]byte) ([]byte, error) {
	var readers []io.ReadSeeker
	for i, doc := range docs {
		if len(doc) == 0 {
			m.log.Warn("skipping empty document during merge", "position", i)
			continue
		}
		rs := bytes.NewReader(doc)
		if err := api.Validate(rs, m.conf); err != nil {
			m.log.Warn("skipping invalid document during merge", "position", i, "err", err)
			continue
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		readers = append(readers, rs)
	}
	if len(readers) == 0 {
		return nil, apperrors.ErrNoValidDocuments
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, m.conf); err != nil {
		return nil, fmt.Errorf("merging %d documents: %w", len(readers), err)
	}
	return out.Bytes(), nil
}
