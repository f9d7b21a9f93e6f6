package library

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/store"
)

func newTestCatalog(t *testing.T) *BookCatalog {
	t.Helper()
	rs, err := store.NewRecordStore(store.RecordStoreConfig{
		FilePath: filepath.Join(t.TempDir(), "books.dat"),
		SlotSize: codec.BookSize,
	})
	require.NoError(t, err)
	return NewBookCatalog(rs, NewNopLogger())
}

func TestCatalogAdd(t *testing.T) {
	catalog := newTestCatalog(t)

	res, err := catalog.Add("Dune", "Herbert", "9780441172719", "1965")
	require.NoError(t, err)
	assert.Equal(t, "0001", res.ID)
	assert.False(t, res.Truncated)

	book, err := catalog.FindByID("0001")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, codec.BookAvailable, book.Status)
}

func TestCatalogAdd_SequentialIDs(t *testing.T) {
	catalog := newTestCatalog(t)

	for i, want := range []string{"0001", "0002", "0003"} {
		res, err := catalog.Add("Book", "Author", "", "2020")
		require.NoError(t, err, "add %d", i)
		assert.Equal(t, want, res.ID)
	}
}

func TestCatalogAdd_RequiredFields(t *testing.T) {
	catalog := newTestCatalog(t)

	testCases := []struct {
		name                string
		title, author, year string
		wantField           string
	}{
		{name: "missing title", author: "A", year: "2020", wantField: "title"},
		{name: "missing author", title: "T", year: "2020", wantField: "author"},
		{name: "missing year", title: "T", author: "A", wantField: "year"},
		{name: "whitespace title", title: "   ", author: "A", year: "2020", wantField: "title"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Add(tc.title, tc.author, "", tc.year)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}

	// Rejections never touch the store.
	books, err := catalog.List()
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCatalogAdd_ReportsTruncation(t *testing.T) {
	catalog := newTestCatalog(t)

	res, err := catalog.Add(strings.Repeat("t", 150), "Author", "", "2020")
	require.NoError(t, err)
	assert.True(t, res.Truncated)

	book, err := catalog.FindByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("t", 100), book.Title)
}

func TestCatalogFindByID_NotFound(t *testing.T) {
	catalog := newTestCatalog(t)
	_, err := catalog.FindByID("0099")
	assert.Equal(t, ErrBookNotFound, err)
}

func TestCatalogSearch(t *testing.T) {
	catalog := newTestCatalog(t)
	_, err := catalog.Add("The Go Programming Language", "Donovan", "", "2015")
	require.NoError(t, err)
	_, err = catalog.Add("Learning Python", "Lutz", "", "2013")
	require.NoError(t, err)
	_, err = catalog.Add("Go in Action", "Kennedy", "", "2015")
	require.NoError(t, err)

	// Title match, case-insensitive.
	hits, err := catalog.Search("go")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// Author match.
	hits, err = catalog.Search("LUTZ")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Learning Python", hits[0].Title)

	// No match.
	hits, err = catalog.Search("rust")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCatalogUpdate(t *testing.T) {
	catalog := newTestCatalog(t)
	res, err := catalog.Add("Dune", "Herbert", "", "1965")
	require.NoError(t, err)

	_, err = catalog.Update(res.ID, "Dune Messiah", "", "", "1969")
	require.NoError(t, err)

	book, err := catalog.FindByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", book.Title)
	assert.Equal(t, "Herbert", book.Author, "empty input should keep current value")
	assert.Equal(t, "1969", book.Year)
	assert.Equal(t, res.ID, book.ID, "update must not change the ID")
}

func TestCatalogUpdate_NotFound(t *testing.T) {
	catalog := newTestCatalog(t)
	_, err := catalog.Update("0099", "New Title", "", "", "")
	assert.Equal(t, ErrBookNotFound, err)
}

func TestCatalogSoftDelete(t *testing.T) {
	catalog := newTestCatalog(t)
	res, err := catalog.Add("Dune", "Herbert", "", "1965")
	require.NoError(t, err)

	require.NoError(t, catalog.SoftDelete(res.ID))

	_, err = catalog.FindByID(res.ID)
	assert.Equal(t, ErrBookNotFound, err, "deleted book must be invisible")

	books, err := catalog.List()
	require.NoError(t, err)
	assert.Empty(t, books)

	// Deleting again finds nothing: deletion is not reversible.
	assert.Equal(t, ErrBookNotFound, catalog.SoftDelete(res.ID))
}

func TestCatalogSoftDelete_RejectsBorrowed(t *testing.T) {
	catalog := newTestCatalog(t)
	res, err := catalog.Add("Dune", "Herbert", "", "1965")
	require.NoError(t, err)
	require.NoError(t, catalog.SetStatus(res.ID, codec.BookBorrowed))

	assert.Equal(t, ErrBookBorrowed, catalog.SoftDelete(res.ID))

	// Still visible and still borrowed.
	book, err := catalog.FindByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, codec.BookBorrowed, book.Status)
}

func TestCatalogIDsNotReusedAfterDelete(t *testing.T) {
	catalog := newTestCatalog(t)
	first, err := catalog.Add("First", "A", "", "2020")
	require.NoError(t, err)
	second, err := catalog.Add("Second", "B", "", "2021")
	require.NoError(t, err)
	require.NoError(t, catalog.SoftDelete(second.ID))

	third, err := catalog.Add("Third", "C", "", "2022")
	require.NoError(t, err)
	assert.Equal(t, "0003", third.ID, "deleted IDs must never be reused")
	assert.Equal(t, "0001", first.ID)
}
