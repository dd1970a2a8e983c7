// Package server is the HTTP boundary: multipart uploads in, JSON previews
// or PDF payloads out. All transcript logic lives in the core packages;
// handlers only collect inputs and map failures to status codes.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"chat2pdf/merge"
	"chat2pdf/observability"
	"chat2pdf/render"
	"chat2pdf/repositories"
)

const previewSize = 10

type Server struct {
	log       *slog.Logger
	renderer  *render.Renderer
	merger    *merge.Merger
	jobs      repositories.IJobRepository
	monitor   *observability.Monitor
	validate  *validator.Validate
	maxUpload int64
}

func New(
	log *slog.Logger,
	renderer *render.Renderer,
	merger *merge.Merger,
	jobs repositories.IJobRepository,
	monitor *observability.Monitor,
	maxUpload int64,
) *Server {
	return &Server{
		log:       log,
		renderer:  renderer,
		merger:    merger,
		jobs:      jobs,
		monitor:   monitor,
		validate:  validator.New(),
		maxUpload: maxUpload,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/images", s.handleImages)
	mux.HandleFunc("POST /api/merge", s.handleMerge)
	mux.HandleFunc("GET /api/jobs", s.handleJobs)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("writing response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.monitor.IncrFailures()
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(pdf); err != nil {
		s.log.Error("writing pdf response", "err", err)
	}
}
