// Package report renders plain-text summaries of the catalog state. It
// consumes the core only through scans and lookups; nothing here mutates a
// store.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/library"
)

// Generator builds the summary report.
type Generator struct {
	Service *library.Service
	Clock   library.Clock
}

// NewGenerator creates a report generator over the given service.
func NewGenerator(svc *library.Service) *Generator {
	return &Generator{Service: svc, Clock: library.RealClock{}}
}

// Write renders the full summary report.
func (g *Generator) Write(w io.Writer) error {
	now := g.Clock.Now()

	fmt.Fprintln(w, "ShelfDB - Library Summary Report")
	fmt.Fprintf(w, "Generated At : %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, "Encoding     : UTF-8 (fixed-length records)")
	fmt.Fprintln(w)

	books, err := g.Service.Books.List()
	if err != nil {
		return err
	}
	members, err := g.Service.Members.List()
	if err != nil {
		return err
	}
	loans, err := g.Service.Loans.List()
	if err != nil {
		return err
	}
	overdue, err := g.Service.Overdue()
	if err != nil {
		return err
	}

	g.writeBooks(w, books)
	g.writeLoans(w, loans, now)
	g.writeOverdue(w, overdue)
	g.writeMembers(w, members)

	borrowed := 0
	for _, b := range books {
		if b.Status == codec.BookBorrowed {
			borrowed++
		}
	}
	activeLoans := 0
	for _, l := range loans {
		if l.Status == codec.BorrowActive {
			activeLoans++
		}
	}

	fmt.Fprintln(w, "Summary")
	fmt.Fprintf(w, "- Total Books          : %d\n", len(books))
	fmt.Fprintf(w, "- Currently Borrowed   : %d\n", borrowed)
	fmt.Fprintf(w, "- Total Members        : %d\n", len(members))
	fmt.Fprintf(w, "- Borrow Records       : %d\n", len(loans))
	fmt.Fprintf(w, "- Active Loans         : %d\n", activeLoans)
	fmt.Fprintf(w, "- Overdue Loans        : %d\n", len(overdue))
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "End of Report")
	return nil
}

func (g *Generator) writeBooks(w io.Writer, books []*codec.Book) {
	fmt.Fprintln(w, "Books")
	fmt.Fprintf(w, "%-6s %-35s %-25s %-6s %-10s\n", "ID", "Title", "Author", "Year", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 85))
	for _, b := range books {
		status := "Available"
		if b.Status == codec.BookBorrowed {
			status = "Borrowed"
		}
		fmt.Fprintf(w, "%-6s %-35s %-25s %-6s %-10s\n",
			b.ID, clip(b.Title, 33), clip(b.Author, 23), b.Year, status)
	}
	fmt.Fprintln(w)
}

func (g *Generator) writeLoans(w io.Writer, loans []*codec.Borrow, now time.Time) {
	fmt.Fprintln(w, "Loans")
	fmt.Fprintf(w, "%-6s %-8s %-10s %-12s %-12s %-20s\n",
		"ID", "Book", "Member", "Borrowed", "Due", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 75))
	period := g.Service.Policy().LoanPeriodDays
	for _, l := range loans {
		due := l.BorrowDate.AddDate(0, 0, period)
		status := "Returned " + codec.FormatDate(l.ReturnDate)
		if l.Status == codec.BorrowActive {
			left := int(due.Sub(now).Hours() / 24)
			if left >= 0 {
				status = fmt.Sprintf("Active (%d days left)", left)
			} else {
				status = fmt.Sprintf("Overdue (%d days)", -left)
			}
		}
		fmt.Fprintf(w, "%-6s %-8s %-10s %-12s %-12s %-20s\n",
			l.ID, l.BookID, l.MemberID,
			codec.FormatDate(l.BorrowDate), codec.FormatDate(due), status)
	}
	fmt.Fprintln(w)
}

func (g *Generator) writeOverdue(w io.Writer, overdue []library.OverdueLoan) {
	if len(overdue) == 0 {
		return
	}
	fmt.Fprintln(w, "Overdue")
	fmt.Fprintf(w, "%-6s %-8s %-10s %-12s %-8s %-8s\n",
		"ID", "Book", "Member", "Due", "Days", "Fine")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, o := range overdue {
		fmt.Fprintf(w, "%-6s %-8s %-10s %-12s %-8d %-8d\n",
			o.Borrow.ID, o.Borrow.BookID, o.Borrow.MemberID,
			codec.FormatDate(o.DueDate), o.DaysOverdue, o.Fine)
	}
	fmt.Fprintln(w)
}

func (g *Generator) writeMembers(w io.Writer, members []*codec.Member) {
	fmt.Fprintln(w, "Members")
	fmt.Fprintf(w, "%-6s %-30s %-12s %-25s\n", "ID", "Name", "Joined", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 75))
	for _, m := range members {
		status := "Active"
		if m.Status == codec.MemberSuspended {
			if m.BanUntil.IsZero() {
				status = "Suspended (book not returned)"
			} else {
				status = "Suspended until " + codec.FormatDate(m.BanUntil)
			}
		}
		fmt.Fprintf(w, "%-6s %-30s %-12s %-25s\n",
			m.ID, clip(m.Name, 28), codec.FormatDate(m.JoinDate), status)
	}
	fmt.Fprintln(w)
}

// clip truncates display text to keep table columns aligned.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
