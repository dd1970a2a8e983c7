package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "chat2pdf/errors"
)

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtract_FlattensNames(t *testing.T) {
	req := require.New(t)

	data := buildZip(t, map[string][]byte{
		"WhatsApp Chat/chat.txt":     []byte("text"),
		"WhatsApp Chat/IMG-0001.jpg": []byte("jpeg"),
	})
	files, err := Extract(data)
	req.NoError(err)
	req.Equal([]byte("text"), files["chat.txt"])
	req.Equal([]byte("jpeg"), files["IMG-0001.jpg"])
}

func TestExtract_Corrupt(t *testing.T) {
	req := require.New(t)

	_, err := Extract([]byte("this is not a zip"))
	req.Error(err)
}

func TestPickTranscript_FirstTextEntryByName(t *testing.T) {
	req := require.New(t)

	files := map[string][]byte{
		"b.txt":    []byte("second"),
		"a.txt":    []byte("first"),
		"note.pdf": []byte("pdf"),
	}
	name, content, err := PickTranscript(files)
	req.NoError(err)
	req.Equal("a.txt", name)
	req.Equal([]byte("first"), content)
}

func TestPickTranscript_NoTextEntry(t *testing.T) {
	req := require.New(t)

	_, _, err := PickTranscript(map[string][]byte{"a.jpg": []byte("x")})
	req.ErrorIs(err, apperrors.ErrNoTextEntry)
}

func TestPickImages_OrderedByName(t *testing.T) {
	req := require.New(t)

	files := map[string][]byte{
		"IMG-0002.jpg": []byte("b"),
		"IMG-0001.jpg": []byte("a"),
		"chat.txt":     []byte("text"),
		"clip.webp":    []byte("c"),
	}
	assets := PickImages(files)
	req.Len(assets, 3)
	req.Equal("IMG-0001.jpg", assets[0].Name)
	req.Equal("IMG-0002.jpg", assets[1].Name)
	req.Equal("clip.webp", assets[2].Name)
}
