package parser

import "regexp"

// headerMatch is the structured result of classifying one physical line as
// the start of a new message.
type headerMatch struct {
	date      string
	time      string
	sender    string
	remainder string
}

// Exports differ by originating device and locale, so two grammars are tried
// in a fixed order and the first match wins. Variant A is the
// "separator-colon" dialect with a dash between the timestamp and the
// sender; variant B is the "bracket-colon" dialect that omits the dash.
// The sender is matched non-greedily up to the first colon.
var headerGrammars = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\[?(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?)\]?\s*[-–]\s*([^:]+?):\s*(.*)$`),
	regexp.MustCompile(`(?i)^\[?(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?)\]?\s*([^:]+?):\s*(.*)$`),
}

// classifyHeader reports whether a trimmed, non-empty line opens a new
// message. A line that matches no grammar is a continuation of the
// previous message.
func classifyHeader(line string) (headerMatch, bool) {
	for _, grammar := range headerGrammars {
		groups := grammar.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		return headerMatch{
			date:      groups[1],
			time:      groups[2],
			sender:    groups[3],
			remainder: groups[4],
		}, true
	}
	return headerMatch{}, false
}
