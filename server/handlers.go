package server

import (
	"encoding/base64"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"chat2pdf/domain"
	apperrors "chat2pdf/errors"
	"chat2pdf/parser"
	"chat2pdf/render"
	"chat2pdf/repositories"
	"chat2pdf/search"
)

type dateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type imageInfo struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

type previewResponse struct {
	Preview      []domain.Message `json:"preview"`
	Total        int              `json:"total"`
	Participants []string         `json:"participants"`
	DateRange    dateRange        `json:"dateRange"`
	Images       []imageInfo      `json:"images"`
	Matches      *int             `json:"matches,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"engine": "chromedp",
		"stats":  s.monitor.Snapshot(),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	up, err := s.collectUpload(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if up.transcript == "" {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrNoTranscript)
		return
	}

	transcript := parser.Parse(up.transcript)
	messages := transcript.Messages
	resp := previewResponse{
		Preview:      make([]domain.Message, 0, previewSize),
		Total:        len(messages),
		Participants: transcript.Participants,
		Images:       make([]imageInfo, 0, len(up.assets)),
	}
	resp.DateRange.Start, resp.DateRange.End = dateRangeOrNA(transcript)

	if q := up.value("q"); q != "" {
		filtered, err := filterMessages(r, transcript, q)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		messages = filtered
		matches := len(filtered)
		resp.Matches = &matches
	}

	for i, m := range messages {
		if i == previewSize {
			break
		}
		resp.Preview = append(resp.Preview, m)
	}
	for _, a := range up.assets {
		resp.Images = append(resp.Images, imageInfo{
			Name:    a.Name,
			DataURL: "data:" + domain.ImageMIME(a.Name) + ";base64," + base64.StdEncoding.EncodeToString(a.Data),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	up, err := s.collectUpload(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if up.transcript == "" {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrNoTranscript)
		return
	}

	opts := render.Options{
		IncludeWatermark: up.value("includeWatermark") != "false",
		UserEmail:        up.value("userEmail"),
	}
	if err := s.validate.Struct(opts); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	transcript := parser.Parse(up.transcript)
	pdf, err := s.renderer.RenderTranscript(r.Context(), transcript, up.assets, opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.monitor.IncrGenerated(len(pdf))
	s.recordJob(repositories.JobGenerate, len(transcript.Messages), len(up.assets), len(pdf), started)
	s.writePDF(w, "chat.pdf", pdf)
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	up, err := s.collectUpload(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(up.assets) == 0 {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrNoImages)
		return
	}

	pdf, err := s.renderer.RenderImages(r.Context(), up.assets)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.monitor.IncrImages(len(pdf))
	s.recordJob(repositories.JobImages, 0, len(up.assets), len(pdf), started)
	s.writePDF(w, "images.pdf", pdf)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	up, err := s.collectUpload(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(up.documents) == 0 {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrNoDocuments)
		return
	}

	merged, err := s.merger.Merge(up.documents)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrNoValidDocuments) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err)
		return
	}

	s.monitor.IncrMerged(len(merged))
	s.recordJob(repositories.JobMerge, 0, len(up.documents), len(merged), started)
	s.writePDF(w, "merged.pdf", merged)
}

func (s *Server) handleJobs(w http.ResponseWriter, _ *http.Request) {
	records, err := s.jobs.Recent(20)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []repositories.JobRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

// filterMessages narrows the preview to messages matching the q form value,
// preserving transcript order.
func filterMessages(r *http.Request, t domain.Transcript, q string) ([]domain.Message, error) {
	idx, err := search.NewIndex(t)
	if err != nil {
		return nil, err
	}
	defer func() { _ = idx.Close() }()

	ordinals, err := idx.Query(r.Context(), q, len(t.Messages))
	if err != nil {
		return nil, err
	}
	sort.Ints(ordinals)

	filtered := make([]domain.Message, 0, len(ordinals))
	for _, n := range ordinals {
		if n >= 0 && n < len(t.Messages) {
			filtered = append(filtered, t.Messages[n])
		}
	}
	return filtered, nil
}

func (s *Server) recordJob(kind repositories.JobKind, messages, assets, bytes int, started time.Time) {
	record := repositories.JobRecord{
		ID:       uuid.New(),
		Kind:     kind,
		Messages: messages,
		Assets:   assets,
		Bytes:    bytes,
		Duration: time.Since(started),
		At:       time.Now(),
	}
	if err := s.jobs.StoreJob(record); err != nil {
		s.log.Error("storing job record", "kind", kind, "err", err)
	}
}

func dateRangeOrNA(t domain.Transcript) (string, string) {
	start, end := t.DateRange()
	if start == "" {
		return "N/A", "N/A"
	}
	return start, end
}
