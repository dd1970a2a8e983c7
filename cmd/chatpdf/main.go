// chatpdf is a terminal preview for exported chats: it parses a .txt or .zip
// export and prints the transcript summary without rendering anything.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"chat2pdf/archive"
	"chat2pdf/domain"
	"chat2pdf/parser"
)

type Config struct {
	PreviewRows int `envconfig:"PREVIEW_ROWS" default:"10"`
	TextWidth   int `envconfig:"TEXT_WIDTH" default:"60"`
}

func main() {
	if err := run(); err != nil {
		color.Error.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var config Config
	if err := envconfig.Process("chatpdf", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	rows := flag.Int("n", config.PreviewRows, "number of messages to preview")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: chatpdf [-n rows] <export.txt|export.zip>")
	}

	transcript, assets, err := load(flag.Arg(0))
	if err != nil {
		return err
	}

	start, end := transcript.DateRange()
	color.Bold.Println("Chat export summary")
	color.Info.Printf("Messages:     %d\n", len(transcript.Messages))
	color.Info.Printf("Participants: %s\n", strings.Join(transcript.Participants, ", "))
	color.Info.Printf("Date range:   %s - %s\n", start, end)
	color.Info.Printf("Images:       %d\n", len(assets))

	if transcript.Empty() {
		color.Warn.Println("No recognizable message headers found")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Time", "Sender", "Message"})
	table.SetColWidth(config.TextWidth)
	for i, m := range transcript.Messages {
		if i == *rows {
			break
		}
		table.Append([]string{m.Date, m.Time, m.Sender, truncate(m.Text, config.TextWidth)})
	}
	table.Render()
	return nil
}

func load(path string) (domain.Transcript, []domain.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Transcript{}, nil, err
	}

	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		files, err := archive.Extract(data)
		if err != nil {
			return domain.Transcript{}, nil, err
		}
		_, text, err := archive.PickTranscript(files)
		if err != nil {
			return domain.Transcript{}, nil, err
		}
		return parser.Parse(string(text)), archive.PickImages(files), nil
	}
	return parser.Parse(string(data)), nil, nil
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
