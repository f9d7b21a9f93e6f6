package library

import (
	"path/filepath"
	"time"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/store"
)

// Data file names inside the data directory.
const (
	booksFile   = "books.dat"
	membersFile = "members.dat"
	borrowsFile = "borrows.dat"
	journalFile = "ops.journal"
)

// Policy holds the lending rules. The zero value is replaced by
// DefaultPolicy.
type Policy struct {
	LoanPeriodDays int // due date = borrow date + this
	FinePerDay     int // fine units per day overdue
	BanDays        int // post-return penalty after a late return
	MaxBorrows     int // concurrent active borrows per member
}

// DefaultPolicy returns the standard lending rules.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriodDays: 7,
		FinePerDay:     10,
		BanDays:        30,
		MaxBorrows:     3,
	}
}

// ServiceConfig holds configuration for the catalog service.
type ServiceConfig struct {
	DataDir string
	Policy  Policy
	Clock   Clock  // nil = real time
	Logger  Logger // nil = discard
	Journal bool   // write an operations journal in the data dir
}

// Service is the borrow/return workflow plus the entity CRUD surface.
// It validates member eligibility and book availability across the catalog,
// directory and ledger; no component below it calls back upward.
type Service struct {
	Books   *BookCatalog
	Members *MemberDirectory
	Loans   *BorrowLedger

	policy  Policy
	clock   Clock
	log     Logger
	journal *Journal
}

// NewService opens (creating if absent) the three record stores in the data
// directory and wires the catalog layers together.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = NewNopLogger()
	}
	if cfg.Policy == (Policy{}) {
		cfg.Policy = DefaultPolicy()
	}

	books, err := store.NewRecordStore(store.RecordStoreConfig{
		FilePath: filepath.Join(cfg.DataDir, booksFile),
		SlotSize: codec.BookSize,
	})
	if err != nil {
		return nil, err
	}
	members, err := store.NewRecordStore(store.RecordStoreConfig{
		FilePath: filepath.Join(cfg.DataDir, membersFile),
		SlotSize: codec.MemberSize,
	})
	if err != nil {
		return nil, err
	}
	borrows, err := store.NewRecordStore(store.RecordStoreConfig{
		FilePath: filepath.Join(cfg.DataDir, borrowsFile),
		SlotSize: codec.BorrowSize,
	})
	if err != nil {
		return nil, err
	}

	svc := &Service{
		policy: cfg.Policy,
		clock:  cfg.Clock,
		log:    cfg.Logger,
	}
	svc.Loans = NewBorrowLedger(borrows, cfg.Logger)
	svc.Books = NewBookCatalog(books, cfg.Logger)
	svc.Members = NewMemberDirectory(members, svc.Loans, cfg.Clock, cfg.Logger)

	if cfg.Journal {
		j, err := NewJournal(filepath.Join(cfg.DataDir, journalFile))
		if err != nil {
			return nil, err
		}
		svc.journal = j
	}
	return svc, nil
}

// Close releases the operations journal, if any.
func (s *Service) Close() error {
	return s.journal.Close()
}

// Policy returns the lending rules in effect.
func (s *Service) Policy() Policy {
	return s.policy
}

// BorrowReceipt reports a successful borrow transaction.
type BorrowReceipt struct {
	MemberID   string
	BookIDs    []string
	BorrowIDs  []string
	BorrowDate time.Time
	DueDate    time.Time
}

// ReturnReceipt reports a successful return transaction. Fine is zero when
// the book came back on time. BanUntil is set when the late return earned a
// penalty window; Reactivated is set when the return cleared a suspension.
type ReturnReceipt struct {
	BorrowID    string
	BookID      string
	MemberID    string
	ReturnDate  time.Time
	DueDate     time.Time
	DaysOverdue int
	Fine        int
	BanUntil    time.Time
	Reactivated bool
}

// Borrow lends one or more books to a member.
//
// As a pre-step, every active borrow in the system is swept and members
// with overdue books are suspended indefinitely. Then the member's
// eligibility and every requested book's availability are validated before
// anything is written. The commit phase records each book independently;
// a write failure partway through is reported as a PartialBorrowError and
// the committed borrows stand (validate-all-then-commit-all, no rollback).
func (s *Service) Borrow(memberID string, bookIDs ...string) (*BorrowReceipt, error) {
	if len(bookIDs) == 0 {
		return nil, &ValidationError{"book id"}
	}

	if err := s.sweepOverdue(); err != nil {
		return nil, err
	}

	member, err := s.Members.FindByID(memberID)
	if err != nil {
		return nil, err
	}
	ban, err := s.Members.CheckBanStatus(memberID)
	if err != nil {
		return nil, err
	}
	if ban.Banned {
		return nil, &BanError{MemberID: memberID, Reason: ban.Reason, Until: ban.Until}
	}

	active, err := s.Loans.CountActiveByMember(memberID)
	if err != nil {
		return nil, err
	}
	if active+len(bookIDs) > s.policy.MaxBorrows {
		return nil, ErrBorrowLimitExceeded
	}

	// Validation phase: every book must exist and be available, and no book
	// may appear twice in one request.
	seen := make(map[string]bool, len(bookIDs))
	for _, bookID := range bookIDs {
		if seen[bookID] {
			return nil, ErrBookUnavailable
		}
		seen[bookID] = true
		book, err := s.Books.FindByID(bookID)
		if err != nil {
			return nil, err
		}
		if book.Status != codec.BookAvailable {
			return nil, ErrBookUnavailable
		}
	}

	// Commit phase.
	today := dateOnly(s.clock.Now())
	due := today.AddDate(0, 0, s.policy.LoanPeriodDays)
	receipt := &BorrowReceipt{
		MemberID:   memberID,
		BorrowDate: today,
		DueDate:    due,
	}
	for _, bookID := range bookIDs {
		borrowID, err := s.Loans.Open(bookID, memberID, today)
		if err != nil {
			return nil, &PartialBorrowError{Committed: receipt.BookIDs, Failed: bookID, Err: err}
		}
		if err := s.Books.SetStatus(bookID, codec.BookBorrowed); err != nil {
			return nil, &PartialBorrowError{Committed: receipt.BookIDs, Failed: bookID, Err: err}
		}
		receipt.BookIDs = append(receipt.BookIDs, bookID)
		receipt.BorrowIDs = append(receipt.BorrowIDs, borrowID)
		s.journal.Record("borrow", "borrow_id", borrowID, "book_id", bookID,
			"member_id", memberID, "due", codec.FormatDate(due))
	}

	s.log.Info("books borrowed", "member", memberID, "name", member.Name,
		"count", len(receipt.BookIDs), "due", codec.FormatDate(due))
	return receipt, nil
}

// Return takes a borrowed book back, computes any late fine, and drives the
// member's suspension state.
func (s *Service) Return(bookID string) (*ReturnReceipt, error) {
	ordinal, borrow, err := s.Loans.FindActiveByBook(bookID)
	if err != nil {
		return nil, err
	}
	today := dateOnly(s.clock.Now())
	if err := s.Loans.Close(ordinal, today); err != nil {
		return nil, err
	}
	if err := s.Books.SetStatus(bookID, codec.BookAvailable); err != nil {
		return nil, err
	}

	due := borrow.BorrowDate.AddDate(0, 0, s.policy.LoanPeriodDays)
	receipt := &ReturnReceipt{
		BorrowID:    borrow.ID,
		BookID:      bookID,
		MemberID:    borrow.MemberID,
		ReturnDate:  today,
		DueDate:     due,
		DaysOverdue: daysBetween(due, today),
	}
	if receipt.DaysOverdue > 0 {
		receipt.Fine = receipt.DaysOverdue * s.policy.FinePerDay
	} else {
		receipt.DaysOverdue = 0
	}

	s.journal.Record("return", "borrow_id", borrow.ID, "book_id", bookID,
		"member_id", borrow.MemberID, "days_overdue", receipt.DaysOverdue,
		"fine", receipt.Fine)

	if err := s.settleSuspension(receipt, today); err != nil {
		return nil, err
	}

	s.log.Info("book returned", "book", bookID, "member", borrow.MemberID,
		"days_overdue", receipt.DaysOverdue, "fine", receipt.Fine)
	return receipt, nil
}

// settleSuspension resolves the member's suspension state after a return.
// While other overdue borrows remain out, any suspension stands untouched.
// Once the last overdue book is back, a late return earns a fixed penalty
// window; an on-time return lifts an existing suspension.
func (s *Service) settleSuspension(receipt *ReturnReceipt, today time.Time) error {
	member, err := s.Members.FindByID(receipt.MemberID)
	if err != nil {
		return err
	}

	remaining, err := s.Loans.ListActive()
	if err != nil {
		return err
	}
	for _, b := range remaining {
		if b.MemberID != receipt.MemberID {
			continue
		}
		if daysBetween(b.BorrowDate.AddDate(0, 0, s.policy.LoanPeriodDays), today) > 0 {
			return nil // still holding an overdue book
		}
	}

	if receipt.DaysOverdue > 0 {
		until := today.AddDate(0, 0, s.policy.BanDays)
		if err := s.Members.SuspendUntil(receipt.MemberID, until); err != nil {
			return err
		}
		receipt.BanUntil = until
		s.journal.Record("member.penalty", "member_id", receipt.MemberID,
			"until", codec.FormatDate(until))
		s.log.Info("late return penalty", "member", receipt.MemberID,
			"until", codec.FormatDate(until))
		return nil
	}

	if member.Status != codec.MemberSuspended {
		return nil
	}
	if err := s.Members.Reactivate(receipt.MemberID); err != nil {
		return err
	}
	receipt.Reactivated = true
	s.journal.Record("member.reactivate", "member_id", receipt.MemberID)
	s.log.Info("member reactivated", "member", receipt.MemberID)
	return nil
}

// sweepOverdue suspends every member currently holding an overdue active
// borrow. Runs as a pre-step of each borrow attempt; idempotent for members
// already suspended.
func (s *Service) sweepOverdue() error {
	active, err := s.Loans.ListActive()
	if err != nil {
		return err
	}
	today := dateOnly(s.clock.Now())
	for _, b := range active {
		due := b.BorrowDate.AddDate(0, 0, s.policy.LoanPeriodDays)
		if daysBetween(due, today) <= 0 {
			continue
		}
		member, err := s.Members.FindByID(b.MemberID)
		if err != nil {
			if err == ErrMemberNotFound {
				continue
			}
			return err
		}
		if member.Status == codec.MemberSuspended {
			continue
		}
		if err := s.Members.SuspendIndefinitely(b.MemberID); err != nil {
			return err
		}
		s.journal.Record("member.suspend", "member_id", b.MemberID,
			"borrow_id", b.ID, "overdue_days", daysBetween(due, today))
		s.log.Warn("member suspended for overdue borrow",
			"member", b.MemberID, "borrow", b.ID)
	}
	return nil
}

// AddBook registers a book and journals the insert.
func (s *Service) AddBook(title, author, isbn, year string) (*AddResult, error) {
	res, err := s.Books.Add(title, author, isbn, year)
	if err != nil {
		return nil, err
	}
	s.journal.Record("book.add", "book_id", res.ID, "title", title)
	return res, nil
}

// AddMember registers a member and journals the insert.
func (s *Service) AddMember(name, email, phone string) (*AddResult, error) {
	res, err := s.Members.Add(name, email, phone)
	if err != nil {
		return nil, err
	}
	s.journal.Record("member.add", "member_id", res.ID, "name", name)
	return res, nil
}

// RemoveBook soft-deletes a book. Borrowed books are rejected.
func (s *Service) RemoveBook(id string) error {
	if err := s.Books.SoftDelete(id); err != nil {
		return err
	}
	return s.journal.Record("book.delete", "book_id", id)
}

// RemoveMember soft-deletes a member. Members with books on loan are
// rejected.
func (s *Service) RemoveMember(id string) error {
	if err := s.Members.SoftDelete(id); err != nil {
		return err
	}
	return s.journal.Record("member.delete", "member_id", id)
}

// RemoveBorrow soft-deletes a borrow record. If the record was still
// active, the book's status is reverted to available so the catalog does
// not show a phantom loan.
func (s *Service) RemoveBorrow(id string) error {
	was, err := s.Loans.SoftDelete(id)
	if err != nil {
		return err
	}
	if was.Status == codec.BorrowActive {
		if err := s.Books.SetStatus(was.BookID, codec.BookAvailable); err != nil {
			return err
		}
	}
	return s.journal.Record("borrow.delete", "borrow_id", id, "book_id", was.BookID)
}

// Overdue returns the live active borrows already past due, with their days
// overdue and accrued fines at today's date.
func (s *Service) Overdue() ([]OverdueLoan, error) {
	active, err := s.Loans.ListActive()
	if err != nil {
		return nil, err
	}
	today := dateOnly(s.clock.Now())
	var out []OverdueLoan
	for _, b := range active {
		due := b.BorrowDate.AddDate(0, 0, s.policy.LoanPeriodDays)
		days := daysBetween(due, today)
		if days <= 0 {
			continue
		}
		out = append(out, OverdueLoan{
			Borrow:      b,
			DueDate:     due,
			DaysOverdue: days,
			Fine:        days * s.policy.FinePerDay,
		})
	}
	return out, nil
}

// OverdueLoan is an active borrow past its due date.
type OverdueLoan struct {
	Borrow      *codec.Borrow
	DueDate     time.Time
	DaysOverdue int
	Fine        int
}
