package store

import (
	"path/filepath"
	"testing"

	"github.com/ssargent/shelfdb/pkg/codec"
)

func newSequenceFixture(t *testing.T) (*RecordStore, *Sequence) {
	t.Helper()
	s, err := NewRecordStore(RecordStoreConfig{
		FilePath: filepath.Join(t.TempDir(), "records.dat"),
		SlotSize: 16,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s, NewSequence(s, SequenceConfig{})
}

func idSlot(id string, size int) []byte {
	buf := make([]byte, size)
	copy(buf, id)
	return buf
}

func TestSequence_EmptyStoreStartsAtOne(t *testing.T) {
	_, seq := newSequenceFixture(t)
	id, err := seq.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if id != "0001" {
		t.Errorf("first id: got %q, want %q", id, "0001")
	}
}

func TestSequence_IncrementsFromLastSlot(t *testing.T) {
	s, seq := newSequenceFixture(t)
	for _, id := range []string{"0001", "0002", "0003"} {
		if _, err := s.Append(idSlot(id, 16)); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	id, err := seq.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if id != "0004" {
		t.Errorf("next id: got %q, want %q", id, "0004")
	}
}

func TestSequence_NeverReusesAfterDelete(t *testing.T) {
	// The allocator only looks at the last slot, so IDs keep climbing even
	// when earlier records carry the deleted flag. Deletion never frees an ID
	// because slots are never removed from the file.
	s, seq := newSequenceFixture(t)
	if _, err := s.Append(idSlot("0007", 16)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	id, err := seq.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if id != "0008" {
		t.Errorf("next id: got %q, want %q", id, "0008")
	}
}

func TestSequence_ZeroPadding(t *testing.T) {
	s, seq := newSequenceFixture(t)
	if _, err := s.Append(idSlot("0099", 16)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	id, err := seq.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if id != "0100" {
		t.Errorf("next id: got %q, want %q", id, "0100")
	}
}

func TestSequence_CorruptLastSlot(t *testing.T) {
	s, seq := newSequenceFixture(t)
	if _, err := s.Append(idSlot("junk", 16)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := seq.Next(); err != ErrCorruptState {
		t.Errorf("unparseable id: expected ErrCorruptState, got %v", err)
	}
}

func TestSequence_Overflow(t *testing.T) {
	s, seq := newSequenceFixture(t)
	if _, err := s.Append(idSlot("9999", 16)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := seq.Next(); err != ErrCorruptState {
		t.Errorf("id space exhausted: expected ErrCorruptState, got %v", err)
	}
}

func TestSequence_DefaultsFromCodec(t *testing.T) {
	seq := NewSequence(nil, SequenceConfig{})
	if seq.config.Width != codec.IDWidth {
		t.Errorf("default width: got %d, want %d", seq.config.Width, codec.IDWidth)
	}
	if seq.config.Start != 1 {
		t.Errorf("default start: got %d, want 1", seq.config.Start)
	}
}
