// Package render lays the normalized message sequence out as a paginated
// document: an HTML+CSS description of the layout, handed to a headless
// Chrome engine for pagination at a fixed page size.
package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"

	"chat2pdf/domain"
)

// Options are the caller-supplied rendering switches.
type Options struct {
	IncludeWatermark bool
	UserEmail        string `validate:"omitempty,email"`
}

type bubble struct {
	Sender  string
	Time    string
	Right   bool
	Content template.HTML
}

type documentData struct {
	TotalMessages int
	Participants  string
	DateStart     string
	DateEnd       string
	DatePill      string
	ExtraFont     template.CSS
	FontsHref     template.URL
	Messages      []bubble
	GeneratedOn   string
	Watermark     bool
}

// BuildHTML produces the document markup. Layout rules the engine must keep:
// bubbles never split across pages, the current user (last participant)
// aligns right, one date pill ahead of the message list, header with totals
// and the first/last message dates.
func BuildHTML(t domain.Transcript, contents []template.HTML, opts Options) string {
	currentUser := t.CurrentUser()
	start, end := t.DateRange()
	if start == "" {
		start, end = "N/A", "N/A"
	}

	data := documentData{
		TotalMessages: len(t.Messages),
		Participants:  strings.Join(t.Participants, ", "),
		DateStart:     start,
		DateEnd:       end,
		GeneratedOn:   time.Now().Format("2 Jan 2006"),
		Watermark:     opts.IncludeWatermark,
	}
	if !t.Empty() {
		data.DatePill = t.Messages[0].Date
	}
	data.ExtraFont, data.FontsHref = fontStack(t)

	for i, m := range t.Messages {
		var content template.HTML
		if i < len(contents) {
			content = contents[i]
		}
		data.Messages = append(data.Messages, bubble{
			Sender:  m.Sender,
			Time:    m.Time,
			Right:   currentUser != "" && m.Sender == currentUser,
			Content: content,
		})
	}

	var b strings.Builder
	// Template and data are fully under our control.
	_ = documentTemplate.Execute(&b, data)
	return b.String()
}

// fontStack picks an additional Noto family when the transcript is written
// in a script the base stack cannot shape. The original tool shipped with
// Bengali hardcoded; language detection generalises that.
func fontStack(t domain.Transcript) (template.CSS, template.URL) {
	const base = "https://fonts.googleapis.com/css2?family=Noto+Sans:wght@400;600&family=Noto+Emoji:wght@400"

	var sample strings.Builder
	for i, m := range t.Messages {
		if i == 64 || sample.Len() > 4096 {
			break
		}
		sample.WriteString(m.Text)
		sample.WriteByte('\n')
	}

	family := ""
	switch whatlanggo.Detect(sample.String()).Lang {
	case whatlanggo.Ben:
		family = "Noto Sans Bengali"
	case whatlanggo.Arb:
		family = "Noto Sans Arabic"
	case whatlanggo.Hin:
		family = "Noto Sans Devanagari"
	}
	if family == "" {
		return "", template.URL(base + "&display=swap")
	}
	css := template.CSS("'" + family + "', ")
	href := base + "&family=" + strings.ReplaceAll(family, " ", "+") + ":wght@400;600&display=swap"
	return css, template.URL(href)
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Chat Export</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="{{.FontsHref}}" rel="stylesheet">
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }

    body {
      font-family: {{.ExtraFont}}'Noto Sans', 'Noto Emoji', sans-serif;
      font-size: 10pt;
      line-height: 1.5;
      color: #000;
      background: #fff;
    }

    .header {
      margin-bottom: 30px;
      padding-bottom: 20px;
      border-bottom: 2px solid #000;
    }

    .title { font-size: 18pt; font-weight: 600; margin-bottom: 10px; }

    .metadata { font-size: 9pt; color: #333; margin-top: 5px; }

    .message {
      margin-bottom: 12px;
      page-break-inside: avoid;
      display: flex;
    }

    .left { justify-content: flex-start; }
    .right { justify-content: flex-end; }

    .bubble {
      max-width: 78%;
      padding: 10px 12px;
      border-radius: 12px;
      background: #f7fafc;
      border-left: 3px solid #4299e1;
      box-shadow: 0 1px 0 rgba(0,0,0,0.02);
      font-size: 10pt;
      color: #000;
      overflow: hidden;
    }

    .right .bubble {
      background: #dff6dd;
      border-left: none;
      border-radius: 12px 12px 8px 12px;
    }

    .bubbleHeader {
      display: flex;
      justify-content: space-between;
      align-items: center;
      margin-bottom: 6px;
      font-size: 9pt;
      color: #555;
    }

    .sender { font-weight: 600; color: #2d3748; }
    .time { font-size: 8.5pt; color: #718096; }

    .message-content {
      white-space: pre-wrap;
      word-wrap: break-word;
      font-size: 10pt;
      color: #000;
    }

    .embedded-image img {
      display: block;
      width: 100%;
      max-width: 320px;
      height: auto;
      max-height: 320px;
      margin-top: 8px;
      border-radius: 8px;
      border: 1px solid #ddd;
    }

    .datePill {
      display: inline-block;
      margin: 8px 0 12px 0;
      padding: 6px 12px;
      background: #edf2f7;
      color: #4a5568;
      border-radius: 999px;
      font-size: 9pt;
      text-align: center;
    }

    .footer {
      margin-top: 40px;
      padding-top: 15px;
      border-top: 1px solid #ccc;
      font-size: 8pt;
      color: #666;
      text-align: center;
    }

    .watermark { color: #999; font-style: italic; }

    @page { margin: 20mm 15mm; }
  </style>
</head>
<body>
  <div class="header">
    <div class="title">Chat Export</div>
    <div class="metadata">
      <div><strong>Total Messages:</strong> {{.TotalMessages}}</div>
      <div><strong>Participants:</strong> {{.Participants}}</div>
      <div><strong>Date Range:</strong> {{.DateStart}} - {{.DateEnd}}</div>
    </div>
  </div>

  <div class="messages">
    <div class="datePill">{{.DatePill}}</div>
    {{range .Messages}}
    <div class="message {{if .Right}}right{{else}}left{{end}}">
      <div class="bubble">
        <div class="bubbleHeader">
          <div class="sender">{{.Sender}}</div>
          <div class="time">{{.Time}}</div>
        </div>
        <div class="message-content">{{.Content}}</div>
      </div>
    </div>
    {{end}}
  </div>

  <div class="footer">
    <div>Generated on {{.GeneratedOn}}</div>
    {{if .Watermark}}<div class="watermark">Generated by chat2pdf</div>{{end}}
  </div>
</body>
</html>
`))
