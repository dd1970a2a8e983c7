package render

import (
	"encoding/base64"
	"html/template"
	"strings"

	"chat2pdf/domain"
)

type imagePage struct {
	// template.URL keeps the data: scheme out of the template URL filter.
	Src template.URL
}

// BuildImagesHTML places each image centered on its own page.
func BuildImagesHTML(assets []domain.Asset) string {
	pages := make([]imagePage, 0, len(assets))
	for _, a := range assets {
		src := "data:" + domain.ImageMIME(a.Name) + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
		pages = append(pages, imagePage{Src: template.URL(src)})
	}

	var b strings.Builder
	_ = imagesTemplate.Execute(&b, pages)
	return b.String()
}

var imagesTemplate = template.Must(template.New("images").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <style>
    @page { size: A4; margin: 15mm; }
    html,body { height: 100%; margin: 0; padding: 0; }
    .imgPage { page-break-after: always; width: 100%; height: 100%; display: flex; align-items: center; justify-content: center; }
    .imgPage img { max-width: 100%; max-height: 100%; object-fit: contain; border-radius: 8px; }
  </style>
</head>
<body>
  {{range .}}
  <div class="imgPage">
    <img src="{{.Src}}" />
  </div>
  {{end}}
</body>
</html>
`))
