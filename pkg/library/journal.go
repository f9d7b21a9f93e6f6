package library

import (
	"os"
	"sync"

	"github.com/kjk/common/siser"
	"github.com/segmentio/ksuid"
)

// Journal is an append-only operations log. Every mutating operation on the
// catalog writes one structured record with a unique entry ID, the operation
// name, and its key fields. The journal is observability, not state: nothing
// reads it back at runtime.
type Journal struct {
	file *os.File
	w    *siser.Writer
	mu   sync.Mutex
}

// NewJournal opens (or creates) the journal file for appending.
func NewJournal(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	return &Journal{file: f, w: siser.NewWriter(f)}, nil
}

// Record appends one journal entry. args are alternating key/value pairs.
// A nil journal is a no-op, so callers never have to guard.
func (j *Journal) Record(op string, args ...any) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	rec := &siser.Record{Name: op}
	if err := rec.Write("entry", ksuid.New().String()); err != nil {
		return err
	}
	if len(args) > 0 {
		if err := rec.Write(args...); err != nil {
			return err
		}
	}
	_, err := j.w.WriteRecord(rec)
	return err
}

// Close flushes and closes the journal file.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
