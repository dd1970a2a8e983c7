// Package resolver binds attachment references found in message text to the
// binary assets that shipped with the export. Two addressing modes exist:
// explicit filenames are looked up by name, generic media placeholders
// consume assets positionally in transcript order.
package resolver

import (
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"chat2pdf/domain"
)

// placeholderSpellings are the literal placeholder tokens emitted by the
// known export dialects. Matching is case-insensitive.
var placeholderSpellings = []string{
	"<media omitted>",
	"[media omitted]",
}

var filenamePattern = regexp.MustCompile(`(?i)[\w\-.() ]+\.(?:jpg|jpeg|png|gif|webp)`)

// Catalog holds the ordered assets of one request together with the shared
// positional cursor. A Catalog must not be reused across requests: the
// cursor and the used set carry state across every message of one document.
type Catalog struct {
	assets  []domain.Asset
	byName  map[string]int
	used    []bool
	cursor  int
	matcher *goahocorasick.Machine
}

// NewCatalog indexes the assets by exact name and builds the placeholder
// automaton for this request.
func NewCatalog(assets []domain.Asset) (*Catalog, error) {
	patterns := make([][]rune, len(placeholderSpellings))
	for i, spelling := range placeholderSpellings {
		patterns[i] = []rune(spelling)
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("building placeholder matcher: %w", err)
	}

	byName := make(map[string]int, len(assets))
	for i, a := range assets {
		byName[a.Name] = i
	}
	return &Catalog{
		assets:  assets,
		byName:  byName,
		used:    make([]bool, len(assets)),
		matcher: m,
	}, nil
}

// span is one attachment reference found in a message, already resolved to
// its replacement markup.
type span struct {
	start int
	end   int
	html  string
}

// Resolve escapes one message body for HTML embedding and replaces every
// attachment reference in it. Filename references bind by name and never
// move the positional cursor; placeholder references consume the next
// unused asset each, left to right. Misses degrade to inert labels.
func (c *Catalog) Resolve(text string) template.HTML {
	spans := c.filenameSpans(text)
	spans = append(spans, c.placeholderSpans(text)...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.start < last {
			continue
		}
		writeEscaped(&b, text[last:s.start])
		b.WriteString(s.html)
		last = s.end
	}
	writeEscaped(&b, text[last:])
	return template.HTML(b.String())
}

// filenameSpans binds explicit image filenames. Lookup tries the token as
// written, then with its whitespace stripped, because some exports wrap
// long filenames across spaces.
func (c *Catalog) filenameSpans(text string) []span {
	var spans []span
	for _, loc := range filenamePattern.FindAllStringIndex(text, -1) {
		name := strings.TrimSpace(text[loc[0]:loc[1]])
		idx, ok := c.byName[name]
		if !ok {
			idx, ok = c.byName[stripSpace(name)]
		}
		replacement := attachmentLabel(name)
		if ok {
			c.used[idx] = true
			replacement = embeddedImage(c.assets[idx])
		}
		spans = append(spans, span{start: loc[0], end: loc[1], html: replacement})
	}
	return spans
}

// placeholderSpans consumes catalog assets positionally, one per placeholder
// occurrence. Assets already bound by filename are skipped by the cursor.
func (c *Catalog) placeholderSpans(text string) []span {
	runes := []rune(text)
	lowered := make([]rune, len(runes))
	byteOffset := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
		byteOffset[i] = offset
		offset += len(string(r))
	}
	byteOffset[len(runes)] = offset

	terms := c.matcher.MultiPatternSearch(lowered, false)
	// Sort matches before consuming so the cursor advances in document
	// order, never in matcher-internal order.
	sort.Slice(terms, func(i, j int) bool { return terms[i].Pos < terms[j].Pos })

	spans := make([]span, 0, len(terms))
	for _, term := range terms {
		spans = append(spans, span{
			start: byteOffset[term.Pos],
			end:   byteOffset[term.Pos+len(term.Word)],
			html:  c.consumeNext(),
		})
	}
	return spans
}

func (c *Catalog) consumeNext() string {
	for c.cursor < len(c.assets) && c.used[c.cursor] {
		c.cursor++
	}
	if c.cursor >= len(c.assets) {
		return attachmentLabel("<Media omitted>")
	}
	a := c.assets[c.cursor]
	c.used[c.cursor] = true
	c.cursor++
	return embeddedImage(a)
}

func embeddedImage(a domain.Asset) string {
	return fmt.Sprintf(`<div class="embedded-image"><img src="data:%s;base64,%s" /></div>`,
		domain.ImageMIME(a.Name), base64.StdEncoding.EncodeToString(a.Data))
}

func attachmentLabel(name string) string {
	return `<span class="attachment">` + html.EscapeString(name) + `</span>`
}

// writeEscaped emits an escaped text segment, turning the newlines that
// continuation lines introduced into explicit breaks.
func writeEscaped(b *strings.Builder, segment string) {
	b.WriteString(strings.ReplaceAll(html.EscapeString(segment), "\n", "<br>"))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
