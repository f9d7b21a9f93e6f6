package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/ssargent/shelfdb/pkg/codec"
)

// Business-rule rejections. All of these are recoverable by the caller
// correcting input or waiting; nothing is retried internally.
var (
	ErrBookNotFound           = &LibraryError{"book not found"}
	ErrMemberNotFound         = &LibraryError{"member not found"}
	ErrBorrowNotFound         = &LibraryError{"borrow record not found"}
	ErrBookUnavailable        = &LibraryError{"book is already borrowed"}
	ErrBookBorrowed           = &LibraryError{"book is borrowed and cannot be deleted"}
	ErrMemberHasActiveBorrows = &LibraryError{"member still has books on loan"}
	ErrBorrowLimitExceeded    = &LibraryError{"member is at the concurrent borrow limit"}
	ErrNoActiveBorrow         = &LibraryError{"no active borrow for this book"}
)

// LibraryError represents a catalog business-rule error
type LibraryError struct {
	Message string
}

func (e *LibraryError) Error() string {
	return e.Message
}

// ValidationError reports malformed or missing required input. The store is
// never touched when one is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// BanError reports that a member is currently barred from borrowing.
// Until is zero while the member is suspended indefinitely (an overdue book
// has not come back yet) and set when a post-return penalty is running.
type BanError struct {
	MemberID string
	Reason   string
	Until    time.Time
}

func (e *BanError) Error() string {
	if e.Until.IsZero() {
		return fmt.Sprintf("member %s is suspended: %s", e.MemberID, e.Reason)
	}
	return fmt.Sprintf("member %s is suspended until %s: %s",
		e.MemberID, codec.FormatDate(e.Until), e.Reason)
}

// PartialBorrowError reports a multi-book borrow that failed after some
// books were already committed. The committed borrows are not rolled back;
// the caller sees exactly which books went through.
type PartialBorrowError struct {
	Committed []string // book IDs whose borrows were recorded
	Failed    string   // book ID whose commit failed
	Err       error
}

func (e *PartialBorrowError) Error() string {
	return fmt.Sprintf("borrow of book %s failed after committing [%s]: %v",
		e.Failed, strings.Join(e.Committed, " "), e.Err)
}

func (e *PartialBorrowError) Unwrap() error {
	return e.Err
}
