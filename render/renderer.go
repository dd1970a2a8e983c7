package render

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"chat2pdf/domain"
	"chat2pdf/resolver"
)

// Renderer composes attachment resolution, layout and the engine call.
// It is stateless and safe for concurrent use; per-request state (the
// positional cursor) lives in the resolver catalog created per call.
type Renderer struct {
	log    *slog.Logger
	engine Engine
}

func NewRenderer(log *slog.Logger, engine Engine) *Renderer {
	return &Renderer{log: log, engine: engine}
}

// RenderTranscript resolves every message against the asset catalog in
// document order and paginates the result. An empty transcript renders an
// empty but valid document rather than failing.
func (r *Renderer) RenderTranscript(ctx context.Context, t domain.Transcript, assets []domain.Asset, opts Options) ([]byte, error) {
	catalog, err := resolver.NewCatalog(assets)
	if err != nil {
		return nil, fmt.Errorf("building asset catalog: %w", err)
	}

	contents := make([]template.HTML, len(t.Messages))
	for i, m := range t.Messages {
		contents[i] = catalog.Resolve(m.Text)
	}

	html := BuildHTML(t, contents, opts)
	r.log.Debug("document markup built",
		"messages", len(t.Messages),
		"assets", len(assets),
		"markup_bytes", len(html))
	return r.engine.RenderPDF(ctx, html)
}

// RenderImages paginates a plain image bundle, one centered image per page.
func (r *Renderer) RenderImages(ctx context.Context, assets []domain.Asset) ([]byte, error) {
	html := BuildImagesHTML(assets)
	r.log.Debug("image bundle markup built", "images", len(assets))
	return r.engine.RenderPDF(ctx, html)
}
