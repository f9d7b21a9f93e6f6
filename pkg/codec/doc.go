// Package codec provides record serialization and deserialization for ShelfDB.
//
// The codec package implements the fixed-width binary row formats the catalog
// stores on disk. Every entity type has a fixed total byte width, and every
// field inside it has a predeclared width; a file of records is nothing more
// than back-to-back slots of that width with no header, no record count, and
// no checksum.
//
// # Field Format
//
// All text fields (names, titles, dates, numeric IDs) are stored as UTF-8
// bytes, truncated at the field width and right-padded with NUL bytes.
// Single-character flags (status, deleted) are one ASCII byte from a closed
// alphabet. Dates are ISO-8601 text ("2006-01-02"); an all-NUL date field
// means "no date" (not yet returned, no ban expiry).
//
// # Record Layouts
//
//	Book   (180): ID(4) Title(100) Author(50) ISBN(20) Year(4) Status(1) Deleted(1)
//	Member (141): ID(4) Name(50) Email(50) Phone(15) JoinDate(10) Status(1) BanUntil(10) Deleted(1)
//	Borrow  (34): ID(4) BookID(4) MemberID(4) BorrowDate(10) ReturnDate(10) Status(1) Deleted(1)
//
// # Truncation
//
// Encoding a value longer than its field width truncates it silently at the
// byte level. This is documented lossy behavior, not an error; Encode reports
// a boolean so higher layers can warn the user. Decoding fails with
// ErrMalformedRecord when a field is not valid UTF-8 after stripping padding,
// or when a flag byte is outside its alphabet.
package codec
