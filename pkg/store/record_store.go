package store

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// RecordStore is a file of back-to-back fixed-size slots for one entity
// type. It supports append, read-by-ordinal, overwrite-by-ordinal, and
// sequential scan. The file never shrinks; deletion is a flag flip inside
// the slot, handled by the layer above.
//
// A single writer is assumed. No locking is performed.
type RecordStore struct {
	config RecordStoreConfig
}

// NewRecordStore creates a record store over the configured file, creating
// the file empty (and its parent directory) if it does not exist yet.
func NewRecordStore(config RecordStoreConfig) (*RecordStore, error) {
	if config.SlotSize <= 0 {
		return nil, ErrSlotSize
	}
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &RecordStore{config: config}, nil
}

// SlotSize returns the fixed slot width in bytes.
func (s *RecordStore) SlotSize() int {
	return s.config.SlotSize
}

// Path returns the data file path.
func (s *RecordStore) Path() string {
	return s.config.FilePath
}

// Count returns the number of whole slots in the file. A trailing partial
// slot (from a crashed write) is not counted.
func (s *RecordStore) Count() (int64, error) {
	stat, err := os.Stat(s.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return stat.Size() / int64(s.config.SlotSize), nil
}

// Append writes one encoded record to the end of the file and returns its
// zero-based ordinal. The write is forced durable before returning.
func (s *RecordStore) Append(rec []byte) (int64, error) {
	if len(rec) != s.config.SlotSize {
		return 0, ErrSlotSize
	}
	f, err := os.OpenFile(s.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return 0, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, err
	}
	ordinal := stat.Size() / int64(s.config.SlotSize)
	if _, err := f.Write(rec); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return 0, err
	}
	return ordinal, f.Close()
}

// ReadAt reads the slot at the given ordinal. ErrNotFound is returned when
// the file is missing or holds fewer than ordinal+1 whole slots.
func (s *RecordStore) ReadAt(ordinal int64) ([]byte, error) {
	if ordinal < 0 {
		return nil, ErrNotFound
	}
	f, err := os.Open(s.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, s.config.SlotSize)
	if _, err := f.ReadAt(buf, ordinal*int64(s.config.SlotSize)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return buf, nil
}

// WriteAt overwrites the slot at the given ordinal in place and forces the
// write durable before returning. Writing past the end of the file is
// ErrNotFound; slots only come into existence through Append.
func (s *RecordStore) WriteAt(ordinal int64, rec []byte) error {
	if len(rec) != s.config.SlotSize {
		return ErrSlotSize
	}
	count, err := s.Count()
	if err != nil {
		return err
	}
	if ordinal < 0 || ordinal >= count {
		return ErrNotFound
	}
	f, err := os.OpenFile(s.config.FilePath, os.O_WRONLY, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	if _, err := f.WriteAt(rec, ordinal*int64(s.config.SlotSize)); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Scan returns an iterator over (ordinal, slot) pairs from the start of the
// file. A final chunk shorter than the slot width ends the scan early; it is
// treated as end-of-valid-data, not an error, which silently discards a
// trailing partial write left by a crash.
func (s *RecordStore) Scan() (SlotIterator, error) {
	f, err := os.Open(s.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &slotIterator{done: true}, nil
		}
		return nil, err
	}
	return &slotIterator{
		file:    f,
		reader:  bufio.NewReader(f),
		size:    s.config.SlotSize,
		ordinal: -1,
	}, nil
}

type slotIterator struct {
	file    *os.File
	reader  *bufio.Reader
	size    int
	ordinal int64
	slot    []byte
	err     error
	done    bool
}

func (it *slotIterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	buf := make([]byte, it.size)
	_, err := io.ReadFull(it.reader, buf)
	if err != nil {
		// Short final chunk: end of valid data.
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			it.done = true
		} else {
			it.err = err
		}
		return false
	}
	it.ordinal++
	it.slot = buf
	return true
}

func (it *slotIterator) Ordinal() int64 {
	return it.ordinal
}

func (it *slotIterator) Slot() []byte {
	return it.slot
}

func (it *slotIterator) Err() error {
	return it.err
}

func (it *slotIterator) Close() error {
	if it.file == nil {
		return nil
	}
	return it.file.Close()
}
