//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=../mocks/mock_engine.go -package=mocks
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	apperrors "chat2pdf/errors"
)

// A4 paper and the fixed document margins, in inches as CDP expects them.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69

	marginTopMm    = 20.0
	marginBottomMm = 20.0
	marginLeftMm   = 15.0
	marginRightMm  = 15.0

	// Large documents with many embedded images paginate slowly; a hung
	// browser must not take unrelated requests down with it, hence a
	// generous per-invocation timeout instead of retries.
	DefaultTimeout = 5 * time.Minute
)

// Engine turns finished document markup into final document bytes. It is the
// only blocking collaborator of the render pipeline.
type Engine interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeEngine paginates markup with a headless Chrome instance. Every
// invocation launches its own browser process: instances are never shared,
// so one stuck render cannot block another.
type ChromeEngine struct {
	timeout time.Duration
}

func NewChromeEngine(timeout time.Duration) *ChromeEngine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeEngine{timeout: timeout}
}

func (e *ChromeEngine) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(mmToInch(marginTopMm)).
				WithMarginBottom(mmToInch(marginBottomMm)).
				WithMarginLeft(mmToInch(marginLeftMm)).
				WithMarginRight(mmToInch(marginRightMm)).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("paginating document: %w", err)
	}
	if len(pdf) == 0 {
		return nil, apperrors.ErrEmptyRender
	}
	return pdf, nil
}

func mmToInch(mm float64) float64 {
	return mm / 25.4
}
