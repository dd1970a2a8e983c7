// Package domain contains core concepts of the chat export system.
// This file defines Message and Transcript and their invariants.
// No parsing, network, or rendering logic should be added here.
package domain

// Message is one logical utterance from an exported chat.
// Date and Time are kept as the string tokens found in the source so the
// original locale formatting survives into the rendered document.
type Message struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Sender string `json:"sender"`
	Text   string `json:"message"`
}

// Transcript is the result of parsing one export. Messages keep input order,
// Participants keep first-seen order with duplicates removed.
type Transcript struct {
	Messages     []Message `json:"messages"`
	Participants []string  `json:"participants"`
}

func (t Transcript) Empty() bool {
	return len(t.Messages) == 0
}

// DateRange returns the date tokens of the first and last message.
// Input order is trusted, this is not a chronological min/max.
func (t Transcript) DateRange() (string, string) {
	if t.Empty() {
		return "", ""
	}
	return t.Messages[0].Date, t.Messages[len(t.Messages)-1].Date
}

// CurrentUser returns the participant whose messages align to the right
// side of the document. The export carries no identity information, so the
// last entry of the first-seen participant list is used as a heuristic.
func (t Transcript) CurrentUser() string {
	if len(t.Participants) == 0 {
		return ""
	}
	return t.Participants[len(t.Participants)-1]
}
