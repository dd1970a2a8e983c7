package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat2pdf/domain"
)

func TestParse_ContinuationAccumulation(t *testing.T) {
	req := require.New(t)

	transcript := Parse("1/1/24, 10:00 - Alice: hello\nworld")
	req.Len(transcript.Messages, 1)
	req.Equal("hello\nworld", transcript.Messages[0].Text)
	req.Equal("Alice", transcript.Messages[0].Sender)
}

func TestParse_ParticipantOrdering(t *testing.T) {
	req := require.New(t)

	text := "1/1/24, 10:00 - Alice: a\n" +
		"1/1/24, 10:01 - Bob: b\n" +
		"1/1/24, 10:02 - Alice: c\n" +
		"1/1/24, 10:03 - Carol: d\n"
	transcript := Parse(text)
	req.Equal([]string{"Alice", "Bob", "Carol"}, transcript.Participants)
}

func TestParse_SkipsBlankAndPreHeaderLines(t *testing.T) {
	req := require.New(t)

	text := "Messages to this chat are encrypted\n" +
		"\n" +
		"1/1/24, 10:00 - Alice: hello\n" +
		"\n" +
		"wrapped line\n"
	transcript := Parse(text)
	req.Len(transcript.Messages, 1)
	// The blank line is dropped entirely, not preserved inside the body.
	req.Equal("hello\nwrapped line", transcript.Messages[0].Text)
}

func TestParse_Empty(t *testing.T) {
	req := require.New(t)

	transcript := Parse("")
	req.Empty(transcript.Messages)
	req.Empty(transcript.Participants)
	req.True(transcript.Empty())
}

func TestParse_NoRecognizableHeaders(t *testing.T) {
	req := require.New(t)

	transcript := Parse("line one\nline two\nline three")
	req.Empty(transcript.Messages)
}

func TestParse_Idempotence(t *testing.T) {
	req := require.New(t)

	text := "1/1/24, 10:00 - Alice: hello\nworld\n[2/1/24, 11:00] Bob: reply\n"
	first := Parse(text)
	second := Parse(text)
	req.Equal(first, second)
}

func TestParse_MixedDialects(t *testing.T) {
	req := require.New(t)

	text := "1/1/24, 10:00 - Alice: android style\n" +
		"[1/1/24, 10:05:30] Bob: iphone style\n"
	transcript := Parse(text)
	req.Equal([]domain.Message{
		{Date: "1/1/24", Time: "10:00", Sender: "Alice", Text: "android style"},
		{Date: "1/1/24", Time: "10:05:30", Sender: "Bob", Text: "iphone style"},
	}, transcript.Messages)
}
