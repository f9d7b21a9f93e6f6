package codec

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewBookCodec()

	testCases := []struct {
		name string
		book Book
	}{
		{
			name: "simple book",
			book: Book{
				ID: "0001", Title: "The Go Programming Language",
				Author: "Donovan", ISBN: "9780134190440", Year: "2015",
				Status: BookAvailable,
			},
		},
		{
			name: "borrowed book without isbn",
			book: Book{
				ID: "0042", Title: "Dune", Author: "Herbert", Year: "1965",
				Status: BookBorrowed,
			},
		},
		{
			name: "deleted book",
			book: Book{
				ID: "0007", Title: "Old", Author: "Gone", Year: "1901",
				Status: BookAvailable, Deleted: true,
			},
		},
		{
			name: "title exactly at field width",
			book: Book{
				ID: "0002", Title: strings.Repeat("t", 100),
				Author: strings.Repeat("a", 50), ISBN: strings.Repeat("9", 20),
				Year: "2024", Status: BookAvailable,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, truncated := codec.Encode(&tc.book)
			if truncated {
				t.Fatalf("unexpected truncation")
			}
			if len(data) != BookSize {
				t.Fatalf("encoded size: got %d, want %d", len(data), BookSize)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !reflect.DeepEqual(got, &tc.book) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, &tc.book)
			}
		})
	}
}

func TestBookCodec_TruncatesLongFields(t *testing.T) {
	codec := NewBookCodec()
	book := &Book{
		ID: "0001", Title: strings.Repeat("t", 150), Author: "a",
		Year: "2020", Status: BookAvailable,
	}
	data, truncated := codec.Encode(book)
	if !truncated {
		t.Fatalf("expected truncation to be reported")
	}
	got, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Title != strings.Repeat("t", 100) {
		t.Errorf("truncation not deterministic: got %d bytes", len(got.Title))
	}
}

func TestBookCodec_DecodeRejectsBadInput(t *testing.T) {
	codec := NewBookCodec()

	if _, err := codec.Decode(make([]byte, BookSize-1)); err != ErrMalformedRecord {
		t.Errorf("short slot: expected ErrMalformedRecord, got %v", err)
	}

	data, _ := codec.Encode(&Book{ID: "0001", Title: "T", Author: "A", Year: "2020", Status: BookAvailable})
	data[BookSize-2] = 'X' // invalid status byte
	if _, err := codec.Decode(data); err != ErrMalformedRecord {
		t.Errorf("bad status: expected ErrMalformedRecord, got %v", err)
	}

	data, _ = codec.Encode(&Book{ID: "0001", Title: "T", Author: "A", Year: "2020", Status: BookAvailable})
	data[BookSize-1] = '9' // invalid deleted flag
	if _, err := codec.Decode(data); err != ErrMalformedRecord {
		t.Errorf("bad deleted flag: expected ErrMalformedRecord, got %v", err)
	}
}

func TestMemberCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewMemberCodec()

	testCases := []struct {
		name   string
		member Member
	}{
		{
			name: "active member",
			member: Member{
				ID: "0001", Name: "Ada Lovelace", Email: "ada@example.com",
				Phone: "555-0100", JoinDate: day(2025, 1, 15),
				Status: MemberActive,
			},
		},
		{
			name: "suspended indefinitely",
			member: Member{
				ID: "0002", Name: "Late Larry", JoinDate: day(2024, 6, 1),
				Status: MemberSuspended,
			},
		},
		{
			name: "suspended with expiry",
			member: Member{
				ID: "0003", Name: "Penalty Pat", JoinDate: day(2024, 6, 1),
				Status: MemberSuspended, BanUntil: day(2025, 11, 1),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, truncated := codec.Encode(&tc.member)
			if truncated {
				t.Fatalf("unexpected truncation")
			}
			if len(data) != MemberSize {
				t.Fatalf("encoded size: got %d, want %d", len(data), MemberSize)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !reflect.DeepEqual(got, &tc.member) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, &tc.member)
			}
		})
	}
}

func TestBorrowCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewBorrowCodec()

	testCases := []struct {
		name   string
		borrow Borrow
	}{
		{
			name: "active borrow has no return date",
			borrow: Borrow{
				ID: "0001", BookID: "0003", MemberID: "0002",
				BorrowDate: day(2025, 10, 2), Status: BorrowActive,
			},
		},
		{
			name: "returned borrow",
			borrow: Borrow{
				ID: "0002", BookID: "0003", MemberID: "0002",
				BorrowDate: day(2025, 10, 2), ReturnDate: day(2025, 10, 9),
				Status: BorrowReturned,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, _ := codec.Encode(&tc.borrow)
			if len(data) != BorrowSize {
				t.Fatalf("encoded size: got %d, want %d", len(data), BorrowSize)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !reflect.DeepEqual(got, &tc.borrow) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, &tc.borrow)
			}
		})
	}
}

func TestRecordSizes(t *testing.T) {
	// The slot widths are the on-disk contract; changing them breaks every
	// existing data file.
	if BookSize != 180 {
		t.Errorf("BookSize: got %d, want 180", BookSize)
	}
	if MemberSize != 141 {
		t.Errorf("MemberSize: got %d, want 141", MemberSize)
	}
	if BorrowSize != 34 {
		t.Errorf("BorrowSize: got %d, want 34", BorrowSize)
	}
}
