package library

import (
	"strings"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/store"
)

// AddResult reports a successful insert. Truncated is set when any field
// value was cut to fit its fixed width on disk; the record is stored anyway
// (documented lossy behavior) and the caller may warn.
type AddResult struct {
	ID        string
	Truncated bool
}

// BookCatalog provides CRUD and lookup over book records, layered on a
// fixed-slot record store. All lookups are linear scans; deleted records
// are excluded everywhere.
type BookCatalog struct {
	store *store.RecordStore
	seq   *store.Sequence
	codec *codec.BookCodec
	log   Logger
}

// NewBookCatalog creates a catalog over the given record store.
func NewBookCatalog(rs *store.RecordStore, log Logger) *BookCatalog {
	return &BookCatalog{
		store: rs,
		seq:   store.NewSequence(rs, store.SequenceConfig{Width: codec.IDWidth, Start: 1}),
		codec: codec.NewBookCodec(),
		log:   log,
	}
}

// Add appends a new available book with a freshly allocated ID.
// Title, author and year are required; ISBN is optional. The store is not
// touched on rejection.
func (c *BookCatalog) Add(title, author, isbn, year string) (*AddResult, error) {
	switch {
	case strings.TrimSpace(title) == "":
		return nil, &ValidationError{"title"}
	case strings.TrimSpace(author) == "":
		return nil, &ValidationError{"author"}
	case strings.TrimSpace(year) == "":
		return nil, &ValidationError{"year"}
	}
	id, err := c.seq.Next()
	if err != nil {
		return nil, err
	}
	rec, truncated := c.codec.Encode(&codec.Book{
		ID:     id,
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Year:   year,
		Status: codec.BookAvailable,
	})
	if _, err := c.store.Append(rec); err != nil {
		return nil, err
	}
	c.log.Debug("book added", "id", id, "title", title)
	return &AddResult{ID: id, Truncated: truncated}, nil
}

// FindByID returns the live book with the given ID.
func (c *BookCatalog) FindByID(id string) (*codec.Book, error) {
	_, b, err := c.findIndex(id)
	return b, err
}

// FindByIndex returns the live book stored at the given ordinal.
func (c *BookCatalog) FindByIndex(ordinal int64) (*codec.Book, error) {
	slot, err := c.store.ReadAt(ordinal)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	b, err := c.codec.Decode(slot)
	if err != nil {
		return nil, err
	}
	if b.Deleted {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// Search returns live books whose title or author contains the keyword,
// case-insensitively.
func (c *BookCatalog) Search(keyword string) ([]*codec.Book, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var out []*codec.Book
	err := c.scan(func(_ int64, b *codec.Book) bool {
		if strings.Contains(strings.ToLower(b.Title), keyword) ||
			strings.Contains(strings.ToLower(b.Author), keyword) {
			out = append(out, b)
		}
		return true
	})
	return out, err
}

// List returns all live books in store order.
func (c *BookCatalog) List() ([]*codec.Book, error) {
	var out []*codec.Book
	err := c.scan(func(_ int64, b *codec.Book) bool {
		out = append(out, b)
		return true
	})
	return out, err
}

// Update rewrites the book's descriptive fields in place. ID, status and the
// deleted flag are preserved from the existing record; empty inputs fall
// back to the current value.
func (c *BookCatalog) Update(id, title, author, isbn, year string) (bool, error) {
	ordinal, b, err := c.findIndex(id)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(title) != "" {
		b.Title = title
	}
	if strings.TrimSpace(author) != "" {
		b.Author = author
	}
	if strings.TrimSpace(isbn) != "" {
		b.ISBN = isbn
	}
	if strings.TrimSpace(year) != "" {
		b.Year = year
	}
	rec, truncated := c.codec.Encode(b)
	if err := c.store.WriteAt(ordinal, rec); err != nil {
		return false, err
	}
	return truncated, nil
}

// SoftDelete flips the book's deleted flag. A borrowed book cannot be
// deleted. Deleted books are invisible to every lookup, so deletion is not
// reversible and deleting twice is ErrBookNotFound.
func (c *BookCatalog) SoftDelete(id string) error {
	ordinal, b, err := c.findIndex(id)
	if err != nil {
		return err
	}
	if b.Status == codec.BookBorrowed {
		return ErrBookBorrowed
	}
	b.Deleted = true
	rec, _ := c.codec.Encode(b)
	if err := c.store.WriteAt(ordinal, rec); err != nil {
		return err
	}
	c.log.Debug("book deleted", "id", id)
	return nil
}

// SetStatus rewrites the book's availability flag. Used by the borrow and
// return transactions.
func (c *BookCatalog) SetStatus(id string, status codec.BookStatus) error {
	ordinal, b, err := c.findIndex(id)
	if err != nil {
		return err
	}
	b.Status = status
	rec, _ := c.codec.Encode(b)
	return c.store.WriteAt(ordinal, rec)
}

func (c *BookCatalog) findIndex(id string) (int64, *codec.Book, error) {
	var (
		found   *codec.Book
		ordinal int64
	)
	err := c.scan(func(ord int64, b *codec.Book) bool {
		if b.ID == id {
			found, ordinal = b, ord
			return false
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	if found == nil {
		return 0, nil, ErrBookNotFound
	}
	return ordinal, found, nil
}

// scan walks live books in ordinal order until fn returns false.
func (c *BookCatalog) scan(fn func(ordinal int64, b *codec.Book) bool) error {
	it, err := c.store.Scan()
	if err != nil {
		return err
	}
	defer it.Close()
	for it.Next() {
		b, err := c.codec.Decode(it.Slot())
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
