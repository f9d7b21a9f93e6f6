package library

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/kjk/common/siser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readJournal returns the operation names in the journal, in write order.
func readJournal(t *testing.T, dataDir string) []string {
	t.Helper()
	f, err := os.Open(filepath.Join(dataDir, journalFile))
	require.NoError(t, err)
	defer f.Close()

	r := siser.NewReader(bufio.NewReader(f))
	var ops []string
	for r.ReadNextRecord() {
		ops = append(ops, r.Record.Name)
	}
	require.NoError(t, r.Err())
	return ops
}

func TestJournalRecord(t *testing.T) {
	dir := t.TempDir()
	j, err := NewJournal(filepath.Join(dir, journalFile))
	require.NoError(t, err)

	require.NoError(t, j.Record("book.add", "book_id", "0001", "title", "Dune"))
	require.NoError(t, j.Record("book.delete", "book_id", "0001"))
	require.NoError(t, j.Close())

	f, err := os.Open(filepath.Join(dir, journalFile))
	require.NoError(t, err)
	defer f.Close()

	r := siser.NewReader(bufio.NewReader(f))

	require.True(t, r.ReadNextRecord())
	assert.Equal(t, "book.add", r.Record.Name)
	title, ok := r.Record.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Dune", title)
	entry, ok := r.Record.Get("entry")
	require.True(t, ok)
	assert.NotEmpty(t, entry, "every entry carries a unique id")

	require.True(t, r.ReadNextRecord())
	assert.Equal(t, "book.delete", r.Record.Name)

	assert.False(t, r.ReadNextRecord())
	require.NoError(t, r.Err())
}

func TestJournalNilIsNoop(t *testing.T) {
	var j *Journal
	assert.NoError(t, j.Record("anything", "k", "v"))
	assert.NoError(t, j.Close())
}

func TestJournalAppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, journalFile)

	j, err := NewJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Record("first"))
	require.NoError(t, j.Close())

	j, err = NewJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Record("second"))
	require.NoError(t, j.Close())

	ops := readJournal(t, dir)
	assert.Equal(t, []string{"first", "second"}, ops)
}
