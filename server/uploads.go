package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"chat2pdf/archive"
	"chat2pdf/domain"
)

// upload is one request's worth of collected input, already partitioned.
type upload struct {
	transcript string
	assets     []domain.Asset
	documents  [][]byte
	form       url.Values
}

// value returns a non-file field sent alongside the uploaded files.
func (u upload) value(key string) string { return u.form.Get(key) }

// collectUpload streams the multipart body part by part, enforcing the
// configured size cap on the whole request, and partitions files by
// extension: the first .txt becomes the transcript, a .zip is extracted and
// mined for a transcript plus its image catalog, loose images are appended
// after the archive's (matching the order the original tool consumed them
// in), PDFs queue for merging. Parts keep their arrival order so positional
// attachment binding is stable no matter how clients name their form fields.
// Declared types are sniffed, mislabeled files are skipped with a log line
// instead of failing the request.
func (s *Server) collectUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	reader, err := r.MultipartReader()
	if err != nil {
		return upload{}, fmt.Errorf("reading multipart body: %w", err)
	}

	up := upload{form: url.Values{}}
	var looseImages []domain.Asset

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return upload{}, fmt.Errorf("reading multipart body: %w", err)
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return upload{}, fmt.Errorf("reading upload %q: %w", part.FormName(), err)
		}

		name := part.FileName()
		if name == "" {
			up.form.Add(part.FormName(), string(data))
			continue
		}

		switch {
		case strings.HasSuffix(strings.ToLower(name), ".txt"):
			if up.transcript == "" {
				up.transcript = string(data)
			}

		case strings.HasSuffix(strings.ToLower(name), ".zip"):
			files, err := archive.Extract(data)
			if err != nil {
				return upload{}, fmt.Errorf("extracting %q: %w", name, err)
			}
			if _, text, err := archive.PickTranscript(files); err == nil && up.transcript == "" {
				up.transcript = string(text)
			}
			up.assets = append(up.assets, archive.PickImages(files)...)

		case domain.IsImageName(name):
			if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
				s.log.Warn("skipping mislabeled image upload", "name", name)
				continue
			}
			looseImages = append(looseImages, domain.Asset{Name: name, Data: data})

		case strings.HasSuffix(strings.ToLower(name), ".pdf"):
			if !mimetype.Detect(data).Is("application/pdf") {
				s.log.Warn("skipping mislabeled pdf upload", "name", name)
				continue
			}
			up.documents = append(up.documents, data)

		default:
			s.log.Debug("ignoring unrecognized upload", "name", name)
		}
	}

	up.assets = append(up.assets, looseImages...)
	return up, nil
}
