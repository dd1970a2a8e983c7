package render

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat2pdf/domain"
	"chat2pdf/mocks"
)

func TestRenderer_RenderTranscript(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	renderer := NewRenderer(log, engine)

	transcript := domain.Transcript{
		Messages: []domain.Message{
			{Date: "1/1/24", Time: "10:00", Sender: "Alice", Text: "photo <Media omitted>"},
		},
		Participants: []string{"Alice"},
	}
	assets := []domain.Asset{{Name: "WA0001.jpg", Data: []byte("JPEG")}}

	var captured string
	engine.EXPECT().
		RenderPDF(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, html string) ([]byte, error) {
			captured = html
			return []byte("%PDF"), nil
		})

	pdf, err := renderer.RenderTranscript(ctx, transcript, assets, Options{IncludeWatermark: true})
	req.NoError(err)
	req.Equal([]byte("%PDF"), pdf)
	// Resolved attachment markup must reach the engine inline.
	req.Contains(captured, "embedded-image")
	req.Contains(captured, "Alice")
}

func TestRenderer_EmptyTranscriptStillRenders(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	renderer := NewRenderer(log, engine)

	engine.EXPECT().
		RenderPDF(gomock.Any(), gomock.Any()).
		Return([]byte("%PDF"), nil)

	pdf, err := renderer.RenderTranscript(ctx, domain.Transcript{}, nil, Options{})
	req.NoError(err)
	req.NotEmpty(pdf)
}

func TestRenderer_RenderImages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	renderer := NewRenderer(log, engine)

	var captured string
	engine.EXPECT().
		RenderPDF(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, html string) ([]byte, error) {
			captured = html
			return []byte("%PDF"), nil
		})

	pdf, err := renderer.RenderImages(ctx, []domain.Asset{{Name: "a.jpg", Data: []byte("A")}})
	req.NoError(err)
	req.NotEmpty(pdf)
	req.Contains(captured, "imgPage")
}
