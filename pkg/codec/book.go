package codec

// Book field widths. The slot is the sum of the parts; there is no header.
const (
	bookTitleWidth  = 100
	bookAuthorWidth = 50
	bookISBNWidth   = 20
	bookYearWidth   = 4

	// BookSize is the fixed slot width of a book record.
	BookSize = IDWidth + bookTitleWidth + bookAuthorWidth + bookISBNWidth + bookYearWidth + 2
)

// BookStatus is the availability flag stored in a book record.
type BookStatus byte

const (
	BookAvailable BookStatus = 'A'
	BookBorrowed  BookStatus = 'B'
)

// Book is a catalog record.
type Book struct {
	ID      string
	Title   string
	Author  string
	ISBN    string // optional
	Year    string
	Status  BookStatus
	Deleted bool
}

// BookCodec converts books to and from their fixed-width binary layout:
// ID(4) Title(100) Author(50) ISBN(20) Year(4) Status(1) Deleted(1).
type BookCodec struct{}

// NewBookCodec creates a new book codec instance.
func NewBookCodec() *BookCodec {
	return &BookCodec{}
}

// Encode serializes a book into a BookSize slot. The returned bool reports
// whether any field value was truncated to fit its width.
func (c *BookCodec) Encode(b *Book) ([]byte, bool) {
	buf := make([]byte, BookSize)
	truncated := false
	off := 0
	put := func(text string, width int) {
		if EncodeField(buf[off:off+width], text) {
			truncated = true
		}
		off += width
	}
	put(b.ID, IDWidth)
	put(b.Title, bookTitleWidth)
	put(b.Author, bookAuthorWidth)
	put(b.ISBN, bookISBNWidth)
	put(b.Year, bookYearWidth)
	buf[off] = byte(b.Status)
	buf[off+1] = encodeDeleted(b.Deleted)
	return buf, truncated
}

// Decode deserializes a BookSize slot back into a book.
func (c *BookCodec) Decode(data []byte) (*Book, error) {
	if len(data) != BookSize {
		return nil, ErrMalformedRecord
	}
	b := &Book{}
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
	b.Title = get(bookTitleWidth)
	b.Author = get(bookAuthorWidth)
	b.ISBN = get(bookISBNWidth)
	b.Year = get(bookYearWidth)
	if err != nil {
		return nil, err
	}
	switch BookStatus(data[off]) {
	case BookAvailable, BookBorrowed:
		b.Status = BookStatus(data[off])
	default:
		return nil, ErrMalformedRecord
	}
	b.Deleted, err = decodeDeleted(data[off+1])
	if err != nil {
		return nil, err
	}
	return b, nil
}
