//go:generate go run go.uber.org/mock/mockgen -source=jobs.go -destination=../mocks/mock_job_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// JobKind identifies which operation produced a record.
type JobKind string

const (
	JobGenerate JobKind = "generate"
	JobImages   JobKind = "images"
	JobMerge    JobKind = "merge"
)

// JobRecord is per-request metadata kept for the history endpoint. Uploaded
// content itself is never stored.
type JobRecord struct {
	ID       uuid.UUID     `json:"id"`
	Kind     JobKind       `json:"kind"`
	Messages int           `json:"messages"`
	Assets   int           `json:"assets"`
	Bytes    int           `json:"bytes"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}

type IJobRepository interface {
	StoreJob(record JobRecord) error
	Recent(limit int) ([]JobRecord, error)
}

type JobRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewJobRepository(db *badger.DB, log *slog.Logger) JobRepository {
	return JobRepository{db: db, log: log}
}

// StoreJob persists a record under "job:{timestamp_padded}:{uuid}" so that:
//  1. Records sort chronologically by key (19-digit zero padding keeps
//     lexicographical and numeric order aligned).
//  2. Two records landing in the same nanosecond cannot collide, the UUID
//     disambiguates.
func (r JobRepository) StoreJob(record JobRecord) error {
	key := fmt.Sprintf("job:%019d:%s", record.At.UnixNano(), record.ID)
	value, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Recent walks the key space backwards and returns up to limit records,
// newest first.
func (r JobRepository) Recent(limit int) ([]JobRecord, error) {
	var records []JobRecord
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("job:")
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key, then walk back.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(records) == limit {
				break
			}
			item := it.Item()
			err := item.Value(func(value []byte) error {
				var record JobRecord
				if err := json.Unmarshal(value, &record); err != nil {
					r.log.Warn("skipping undecodable job record", "key", string(item.Key()), "err", err)
					return nil
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
