package codec

import (
	"bytes"
	"time"
	"unicode/utf8"
)

// Shared field widths across record layouts.
const (
	IDWidth   = 4  // zero-padded decimal, "0001" .. "9999"
	DateWidth = 10 // ISO-8601 date, "2006-01-02"
)

const dateLayout = "2006-01-02"

// ErrMalformedRecord is returned when stored bytes cannot be decoded back
// into field values.
var ErrMalformedRecord = &CodecError{"malformed record"}

// CodecError represents a record encoding/decoding error.
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// DeleteFlag is the single-byte soft-delete marker stored in every record.
type DeleteFlag byte

const (
	FlagLive    DeleteFlag = '0'
	FlagDeleted DeleteFlag = '1'
)

// EncodeField packs text into a fixed-width field: the UTF-8 bytes of text,
// truncated at the field width and right-padded with NUL bytes. Truncation
// is byte-level and lossy; the return value reports whether it happened so
// callers can surface a warning.
func EncodeField(dst []byte, text string) bool {
	n := copy(dst, text)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return n < len(text)
}

// DecodeField recovers the text of a fixed-width field by stripping the NUL
// padding. Bytes that are not valid UTF-8 (for example a record written by
// something other than this codec) fail with ErrMalformedRecord.
func DecodeField(src []byte) (string, error) {
	trimmed := bytes.TrimRight(src, "\x00")
	if !utf8.Valid(trimmed) {
		return "", ErrMalformedRecord
	}
	return string(trimmed), nil
}

// encodeDate writes a date field. The zero time encodes as an empty field,
// which is how "not yet returned" and "no ban expiry" are represented.
func encodeDate(dst []byte, t time.Time) {
	if t.IsZero() {
		EncodeField(dst, "")
		return
	}
	EncodeField(dst, t.Format(dateLayout))
}

// decodeDate reads a date field. An empty field decodes to the zero time.
func decodeDate(src []byte) (time.Time, error) {
	s, err := DecodeField(src)
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrMalformedRecord
	}
	return t, nil
}

func encodeDeleted(deleted bool) byte {
	if deleted {
		return byte(FlagDeleted)
	}
	return byte(FlagLive)
}

func decodeDeleted(b byte) (bool, error) {
	switch DeleteFlag(b) {
	case FlagLive:
		return false, nil
	case FlagDeleted:
		return true, nil
	default:
		return false, ErrMalformedRecord
	}
}

// FormatDate renders a date the way it is stored on disk.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ParseDate parses a date in the on-disk layout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
