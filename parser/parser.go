// Package parser turns loosely structured chat export text into a normalized
// message sequence. It never fails: inputs with no recognizable header lines
// simply parse to an empty transcript and callers decide what that means.
package parser

import (
	"strings"

	"github.com/samber/lo"

	"chat2pdf/domain"
)

// Parse consumes the full export text and accumulates messages line by line.
// Blank lines are skipped, header lines start a new message, anything else
// extends the message in progress. Lines seen before the first header are
// noise from the export preamble and are dropped.
func Parse(text string) domain.Transcript {
	var messages []domain.Message
	var current *domain.Message

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		match, ok := classifyHeader(line)
		if !ok {
			if current != nil {
				current.Text += "\n" + line
			}
			continue
		}

		if current != nil {
			messages = append(messages, *current)
		}
		current = &domain.Message{
			Date:   match.date,
			Time:   match.time,
			Sender: strings.TrimSpace(match.sender),
			Text:   strings.TrimSpace(match.remainder),
		}
	}
	if current != nil {
		messages = append(messages, *current)
	}

	return domain.Transcript{
		Messages:     messages,
		Participants: participants(messages),
	}
}

// participants keeps the first-seen order of senders, duplicates removed.
func participants(messages []domain.Message) []string {
	return lo.Uniq(lo.Map(messages, func(m domain.Message, _ int) string {
		return m.Sender
	}))
}
