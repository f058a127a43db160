package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/neekrasov/gate/pkg/gob"
	"github.com/neekrasov/gate/pkg/logger"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	runsBucket = []byte("runs")

	ErrEmptyPath = errors.New("empty journal path")
)

const defaultOpenTimeout = time.Second

// Entry - outcome of one task run.
type Entry struct {
	ID          uint64
	Task        string
	Command     string
	Args        []string
	StartedAt   time.Time
	FinishedAt  time.Time
	ExitCode    int
	Output      []byte
	Compression string
	Error       string
}

// Duration - wall time the task spent holding its permit.
func (e Entry) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}

// Journal - bbolt-backed history of task runs, ordered by insertion.
type Journal struct {
	db *bbolt.DB
}

// Open - opens or creates the journal file at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: defaultOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("open journal %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	logger.Debug("journal opened", zap.String("path", path))

	return &Journal{db: db}, nil
}

// Record - appends an entry and returns the id assigned to it.
func (j *Journal) Record(entry Entry) (uint64, error) {
	err := j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(runsBucket)

		id, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		entry.ID = id

		value, err := gob.Encode(entry)
		if err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}

		return bucket.Put(itob(id), value)
	})
	if err != nil {
		return 0, fmt.Errorf("record %q: %w", entry.Task, err)
	}

	return entry.ID, nil
}

// List - returns all entries in the order they were recorded.
func (j *Journal) List() ([]Entry, error) {
	var entries []Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, value []byte) error {
			entry, err := gob.Decode[Entry](value)
			if err != nil {
				return fmt.Errorf("decode entry: %w", err)
			}

			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Close - closes the underlying database. Safe on a nil Journal.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}

	return j.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
