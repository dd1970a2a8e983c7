// Package search builds a throwaway in-memory full-text index over one
// parsed transcript so preview requests can filter messages by content.
package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blugelabs/bluge"

	"chat2pdf/domain"
)

// Index is a per-request message index. It is not persisted anywhere:
// uploads are transient and so is the index built over them.
type Index struct {
	writer *bluge.Writer
}

// NewIndex indexes every message of the transcript under its ordinal.
func NewIndex(t domain.Transcript) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("opening in-memory index: %w", err)
	}

	batch := bluge.NewBatch()
	for i, m := range t.Messages {
		doc := bluge.NewDocument(strconv.Itoa(i)).
			AddField(bluge.NewTextField("sender", m.Sender)).
			AddField(bluge.NewTextField("text", m.Text))
		batch.Update(doc.ID(), doc)
	}
	if err := writer.Batch(batch); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("indexing messages: %w", err)
	}
	return &Index{writer: writer}, nil
}

func (idx *Index) Close() error {
	return idx.writer.Close()
}

// Query returns the ordinals of the best matching messages, text and sender
// fields combined, capped at limit.
func (idx *Index) Query(ctx context.Context, query string, limit int) ([]int, error) {
	reader, err := idx.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	q := bluge.NewBooleanQuery().AddShould(
		bluge.NewMatchQuery(query).SetField("text"),
		bluge.NewMatchQuery(query).SetField("sender"),
	)
	it, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	var ordinals []int
	for {
		match, err := it.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if n, convErr := strconv.Atoi(string(value)); convErr == nil {
					ordinals = append(ordinals, n)
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ordinals, nil
}
