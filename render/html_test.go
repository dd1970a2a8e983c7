package render

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chat2pdf/domain"
)

func sampleTranscript() domain.Transcript {
	return domain.Transcript{
		Messages: []domain.Message{
			{Date: "1/1/24", Time: "10:00", Sender: "Alice", Text: "hello"},
			{Date: "1/1/24", Time: "10:01", Sender: "Bob", Text: "hi"},
			{Date: "2/1/24", Time: "09:30", Sender: "Alice", Text: "bye"},
		},
		Participants: []string{"Alice", "Bob"},
	}
}

func contentsFor(t domain.Transcript) []template.HTML {
	contents := make([]template.HTML, len(t.Messages))
	for i, m := range t.Messages {
		contents[i] = template.HTML(m.Text)
	}
	return contents
}

func TestBuildHTML_HeaderMetadata(t *testing.T) {
	req := require.New(t)

	transcript := sampleTranscript()
	html := BuildHTML(transcript, contentsFor(transcript), Options{})

	req.Contains(html, "<strong>Total Messages:</strong> 3")
	req.Contains(html, "Alice, Bob")
	req.Contains(html, "1/1/24 - 2/1/24")
}

func TestBuildHTML_SingleDatePill(t *testing.T) {
	req := require.New(t)

	transcript := sampleTranscript()
	html := BuildHTML(transcript, contentsFor(transcript), Options{})

	// Only the opening date is surfaced, not every date change.
	req.Equal(1, strings.Count(html, `class="datePill"`))
	req.Contains(html, `<div class="datePill">1/1/24</div>`)
}

func TestBuildHTML_Alignment(t *testing.T) {
	req := require.New(t)

	transcript := sampleTranscript()
	html := BuildHTML(transcript, contentsFor(transcript), Options{})

	// Bob is the last first-seen participant, so Bob aligns right.
	req.Equal(1, strings.Count(html, `"message right"`))
	req.Equal(2, strings.Count(html, `"message left"`))
}

func TestBuildHTML_WatermarkToggle(t *testing.T) {
	req := require.New(t)

	transcript := sampleTranscript()
	with := BuildHTML(transcript, contentsFor(transcript), Options{IncludeWatermark: true})
	without := BuildHTML(transcript, contentsFor(transcript), Options{})

	req.Contains(with, `class="watermark"`)
	req.NotContains(without, `class="watermark"`)
}

func TestBuildHTML_PageBreakRule(t *testing.T) {
	req := require.New(t)

	transcript := sampleTranscript()
	html := BuildHTML(transcript, contentsFor(transcript), Options{})
	req.Contains(html, "page-break-inside: avoid")
}

func TestBuildHTML_EmptyTranscript(t *testing.T) {
	req := require.New(t)

	html := BuildHTML(domain.Transcript{}, nil, Options{})
	req.Contains(html, "<strong>Total Messages:</strong> 0")
	req.Contains(html, "N/A - N/A")
	req.NotContains(html, `class="message `)
}

func TestBuildHTML_SenderEscaped(t *testing.T) {
	req := require.New(t)

	transcript := domain.Transcript{
		Messages:     []domain.Message{{Date: "1/1/24", Time: "10:00", Sender: "<script>", Text: "x"}},
		Participants: []string{"<script>"},
	}
	html := BuildHTML(transcript, contentsFor(transcript), Options{})
	req.NotContains(html, "<script>")
	req.Contains(html, "&lt;script&gt;")
}

func TestBuildImagesHTML_OnePagePerImage(t *testing.T) {
	req := require.New(t)

	html := BuildImagesHTML([]domain.Asset{
		{Name: "a.jpg", Data: []byte("A")},
		{Name: "b.png", Data: []byte("B")},
	})
	req.Equal(2, strings.Count(html, `class="imgPage"`))
	req.Contains(html, "data:image/jpeg;base64,")
	req.Contains(html, "data:image/png;base64,")
}

func TestFontStack_Detection(t *testing.T) {
	req := require.New(t)

	bengali := domain.Transcript{Messages: []domain.Message{
		{Text: "আমি তোমাকে ভালোবাসি, কেমন আছো আজকে?"},
	}}
	css, href := fontStack(bengali)
	req.Contains(string(css), "Noto Sans Bengali")
	req.Contains(string(href), "Noto+Sans+Bengali")

	english := domain.Transcript{Messages: []domain.Message{
		{Text: "see you tomorrow at the usual place"},
	}}
	css, _ = fontStack(english)
	req.Empty(string(css))
}
