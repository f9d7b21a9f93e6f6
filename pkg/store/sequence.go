package store

import (
	"fmt"
	"strconv"

	"github.com/ssargent/shelfdb/pkg/codec"
)

// Sequence allocates the next record identifier for a store by reading the
// ID field of the last whole slot. IDs are zero-padded decimal text of a
// fixed width, strictly increasing, never reused. Each store instance owns
// its own sequence; there is no shared allocator state.
type Sequence struct {
	store  *RecordStore
	config SequenceConfig
}

// NewSequence creates a sequence over the given store. The ID field is
// assumed to be the first Width bytes of every slot.
func NewSequence(store *RecordStore, config SequenceConfig) *Sequence {
	if config.Width <= 0 {
		config.Width = codec.IDWidth
	}
	if config.Start <= 0 {
		config.Start = 1
	}
	return &Sequence{store: store, config: config}
}

// Next returns the next identifier, formatted to the ID width. An empty
// store yields the configured start value. A last slot whose ID field does
// not parse as an integer, or an increment that no longer fits the field
// width, is ErrCorruptState; the operation requesting the ID fails and no
// recovery is attempted.
func (s *Sequence) Next() (string, error) {
	count, err := s.store.Count()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return s.format(s.config.Start), nil
	}
	last, err := s.store.ReadAt(count - 1)
	if err != nil {
		return "", err
	}
	field, err := codec.DecodeField(last[:s.config.Width])
	if err != nil {
		return "", ErrCorruptState
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return "", ErrCorruptState
	}
	next := n + 1
	if len(strconv.Itoa(next)) > s.config.Width {
		return "", ErrCorruptState
	}
	return s.format(next), nil
}

func (s *Sequence) format(n int) string {
	return fmt.Sprintf("%0*d", s.config.Width, n)
}
