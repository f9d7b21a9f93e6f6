package store

// RecordStoreConfig holds configuration for a fixed-slot record store.
type RecordStoreConfig struct {
	FilePath string // Path to the data file
	SlotSize int    // Width of one record slot in bytes
}

// SequenceConfig holds configuration for an ID sequence.
type SequenceConfig struct {
	Width int // ID field width in digits
	Start int // First ID handed out on an empty store
}

// SlotIterator provides streaming access to slots in ordinal order.
type SlotIterator interface {
	Next() bool
	Ordinal() int64
	Slot() []byte
	Err() error
	Close() error
}

// Errors
var (
	ErrNotFound     = &StoreError{"record not found"}
	ErrCorruptState = &StoreError{"store state is corrupt"}
	ErrSlotSize     = &StoreError{"record does not match slot size"}
)

// StoreError represents a record store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
