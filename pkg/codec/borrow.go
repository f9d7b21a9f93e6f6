package codec

import "time"

// BorrowSize is the fixed slot width of a borrow record:
// ID(4) BookID(4) MemberID(4) BorrowDate(10) ReturnDate(10) Status(1) Deleted(1).
const BorrowSize = IDWidth + IDWidth + IDWidth + DateWidth + DateWidth + 2

// BorrowStatus is the lifecycle flag stored in a borrow record.
type BorrowStatus byte

const (
	BorrowActive   BorrowStatus = 'B'
	BorrowReturned BorrowStatus = 'R'
)

// Borrow is a ledger record. BookID and MemberID reference records in the
// other stores by value; ReturnDate stays zero while the borrow is active.
type Borrow struct {
	ID         string
	BookID     string
	MemberID   string
	BorrowDate time.Time
	ReturnDate time.Time
	Status     BorrowStatus
	Deleted    bool
}

// BorrowCodec converts borrows to and from their fixed-width binary layout.
type BorrowCodec struct{}

// NewBorrowCodec creates a new borrow codec instance.
func NewBorrowCodec() *BorrowCodec {
	return &BorrowCodec{}
}

// Encode serializes a borrow into a BorrowSize slot. The returned bool
// reports whether any field value was truncated to fit its width.
func (c *BorrowCodec) Encode(b *Borrow) ([]byte, bool) {
	buf := make([]byte, BorrowSize)
	truncated := false
	off := 0
	put := func(text string, width int) {
		if EncodeField(buf[off:off+width], text) {
			truncated = true
		}
		off += width
	}
	put(b.ID, IDWidth)
	put(b.BookID, IDWidth)
	put(b.MemberID, IDWidth)
	encodeDate(buf[off:off+DateWidth], b.BorrowDate)
	off += DateWidth
	encodeDate(buf[off:off+DateWidth], b.ReturnDate)
	off += DateWidth
	buf[off] = byte(b.Status)
	buf[off+1] = encodeDeleted(b.Deleted)
	return buf, truncated
}

// Decode deserializes a BorrowSize slot back into a borrow.
func (c *BorrowCodec) Decode(data []byte) (*Borrow, error) {
	if len(data) != BorrowSize {
		return nil, ErrMalformedRecord
	}
	b := &Borrow{}
	var err error
	off := 0
	get := func(width int) string {
		if err != nil {
			return ""
		}
		var s string
		s, err = DecodeField(data[off : off+width])
		off += width
		return s
	}
	b.ID = get(IDWidth)
	b.BookID = get(IDWidth)
	b.MemberID = get(IDWidth)
	if err != nil {
		return nil, err
	}
	if b.BorrowDate, err = decodeDate(data[off : off+DateWidth]); err != nil {
		return nil, err
	}
	off += DateWidth
	if b.ReturnDate, err = decodeDate(data[off : off+DateWidth]); err != nil {
		return nil, err
	}
	off += DateWidth
	switch BorrowStatus(data[off]) {
	case BorrowActive, BorrowReturned:
		b.Status = BorrowStatus(data[off])
	default:
		return nil, ErrMalformedRecord
	}
	b.Deleted, err = decodeDeleted(data[off+1])
	if err != nil {
		return nil, err
	}
	return b, nil
}
