package library

import (
	"sort"
	"time"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/store"
)

// BorrowLedger provides CRUD and lookup over borrow records, layered on a
// fixed-slot record store. It never touches books or members; cross-entity
// consistency is the workflow's job.
type BorrowLedger struct {
	store *store.RecordStore
	seq   *store.Sequence
	codec *codec.BorrowCodec
	log   Logger
}

// NewBorrowLedger creates a ledger over the given record store.
func NewBorrowLedger(rs *store.RecordStore, log Logger) *BorrowLedger {
	return &BorrowLedger{
		store: rs,
		seq:   store.NewSequence(rs, store.SequenceConfig{Width: codec.IDWidth, Start: 1}),
		codec: codec.NewBorrowCodec(),
		log:   log,
	}
}

// Open appends an active borrow record with an empty return date and
// returns its ID.
func (l *BorrowLedger) Open(bookID, memberID string, borrowDate time.Time) (string, error) {
	id, err := l.seq.Next()
	if err != nil {
		return "", err
	}
	rec, _ := l.codec.Encode(&codec.Borrow{
		ID:         id,
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: dateOnly(borrowDate),
		Status:     codec.BorrowActive,
	})
	if _, err := l.store.Append(rec); err != nil {
		return "", err
	}
	l.log.Debug("borrow opened", "id", id, "book", bookID, "member", memberID)
	return id, nil
}

// FindActiveByBook returns the ordinal and record of the first live active
// borrow referencing the book, or ErrNoActiveBorrow.
func (l *BorrowLedger) FindActiveByBook(bookID string) (int64, *codec.Borrow, error) {
	var (
		found   *codec.Borrow
		ordinal int64
	)
	err := l.scan(func(ord int64, b *codec.Borrow) bool {
		if b.BookID == bookID && b.Status == codec.BorrowActive {
			found, ordinal = b, ord
			return false
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	if found == nil {
		return 0, nil, ErrNoActiveBorrow
	}
	return ordinal, found, nil
}

// Close rewrites the borrow at the given ordinal as returned, filling in
// the return date.
func (l *BorrowLedger) Close(ordinal int64, returnDate time.Time) error {
	slot, err := l.store.ReadAt(ordinal)
	if err != nil {
		if err == store.ErrNotFound {
			return ErrBorrowNotFound
		}
		return err
	}
	b, err := l.codec.Decode(slot)
	if err != nil {
		return err
	}
	b.Status = codec.BorrowReturned
	b.ReturnDate = dateOnly(returnDate)
	rec, _ := l.codec.Encode(b)
	if err := l.store.WriteAt(ordinal, rec); err != nil {
		return err
	}
	l.log.Debug("borrow closed", "id", b.ID, "book", b.BookID)
	return nil
}

// CountActiveByMember returns the number of live active borrows held by the
// member.
func (l *BorrowLedger) CountActiveByMember(memberID string) (int, error) {
	n := 0
	err := l.scan(func(_ int64, b *codec.Borrow) bool {
		if b.MemberID == memberID && b.Status == codec.BorrowActive {
			n++
		}
		return true
	})
	return n, err
}

// FindByID returns the live borrow with the given ID.
func (l *BorrowLedger) FindByID(id string) (*codec.Borrow, error) {
	var found *codec.Borrow
	err := l.scan(func(_ int64, b *codec.Borrow) bool {
		if b.ID == id {
			found = b
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrBorrowNotFound
	}
	return found, nil
}

// SoftDelete flips the borrow's deleted flag and returns the record as it
// was. If the target was still active the caller must revert the book's
// status to available; the ledger does not reach into the catalog.
func (l *BorrowLedger) SoftDelete(id string) (*codec.Borrow, error) {
	var (
		found   *codec.Borrow
		ordinal int64
	)
	err := l.scan(func(ord int64, b *codec.Borrow) bool {
		if b.ID == id {
			found, ordinal = b, ord
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrBorrowNotFound
	}
	was := *found
	found.Deleted = true
	rec, _ := l.codec.Encode(found)
	if err := l.store.WriteAt(ordinal, rec); err != nil {
		return nil, err
	}
	l.log.Debug("borrow deleted", "id", id)
	return &was, nil
}

// ListActive returns all live active borrows in store order.
func (l *BorrowLedger) ListActive() ([]*codec.Borrow, error) {
	var out []*codec.Borrow
	err := l.scan(func(_ int64, b *codec.Borrow) bool {
		if b.Status == codec.BorrowActive {
			out = append(out, b)
		}
		return true
	})
	return out, err
}

// List returns all live borrows in store order.
func (l *BorrowLedger) List() ([]*codec.Borrow, error) {
	var out []*codec.Borrow
	err := l.scan(func(_ int64, b *codec.Borrow) bool {
		out = append(out, b)
		return true
	})
	return out, err
}

// MemberHistory returns all live borrows for a member, oldest first by
// borrow date.
func (l *BorrowLedger) MemberHistory(memberID string) ([]*codec.Borrow, error) {
	var out []*codec.Borrow
	err := l.scan(func(_ int64, b *codec.Borrow) bool {
		if b.MemberID == memberID {
			out = append(out, b)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BorrowDate.Before(out[j].BorrowDate)
	})
	return out, nil
}

func (l *BorrowLedger) scan(fn func(ordinal int64, b *codec.Borrow) bool) error {
	it, err := l.store.Scan()
	if err != nil {
		return err
	}
	defer it.Close()
	for it.Next() {
		b, err := l.codec.Decode(it.Slot())
		if err != nil {
			return err
		}
		if b.Deleted {
			continue
		}
		if !fn(it.Ordinal(), b) {
			break
		}
	}
	return it.Err()
}
