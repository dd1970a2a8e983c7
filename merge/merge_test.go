package merge

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"

	apperrors "chat2pdf/errors"
)

// minimalPDF assembles a one-page document with a correct xref table so the
// fixture passes validation without any binary test data checked in.
func minimalPDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>\nendobj\n",
	}
	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

func TestMerge_SkipsCorruptDocuments(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	merger := NewMerger(log)

	valid := minimalPDF(t)
	merged, err := merger.Merge([][]byte{valid, []byte("corrupt bytes"), valid})
	req.NoError(err)

	// Only the two valid documents contribute pages.
	count, err := api.PageCount(bytes.NewReader(merged), model.NewDefaultConfiguration())
	req.NoError(err)
	req.Equal(2, count)
}

func TestMerge_AllInvalid(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	merger := NewMerger(log)

	_, err := merger.Merge([][]byte{[]byte("junk"), nil})
	req.ErrorIs(err, apperrors.ErrNoValidDocuments)
}

func TestMerge_NoInput(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	merger := NewMerger(log)

	_, err := merger.Merge(nil)
	req.ErrorIs(err, apperrors.ErrNoValidDocuments)
}

func TestMerge_SingleDocument(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	merger := NewMerger(log)

	merged, err := merger.Merge([][]byte{minimalPDF(t)})
	req.NoError(err)
	req.True(bytes.HasPrefix(merged, []byte("%PDF")))
}
