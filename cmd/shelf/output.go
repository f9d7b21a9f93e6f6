package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/library"
)

// outputBook displays a single book
func outputBook(b *codec.Book) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%s\n", b.ID)
	fmt.Fprintf(w, "Title:\t%s\n", b.Title)
	fmt.Fprintf(w, "Author:\t%s\n", b.Author)
	if b.ISBN != "" {
		fmt.Fprintf(w, "ISBN:\t%s\n", b.ISBN)
	}
	fmt.Fprintf(w, "Year:\t%s\n", b.Year)
	fmt.Fprintf(w, "Status:\t%s\n", bookStatusText(b.Status))
	return nil
}

// outputBooks displays books in table format
func outputBooks(books []*codec.Book) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Title, b.Author, b.Year, bookStatusText(b.Status))
	}
	return nil
}

// outputMember displays a single member
func outputMember(m *codec.Member) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%s\n", m.ID)
	fmt.Fprintf(w, "Name:\t%s\n", m.Name)
	if m.Email != "" {
		fmt.Fprintf(w, "Email:\t%s\n", m.Email)
	}
	if m.Phone != "" {
		fmt.Fprintf(w, "Phone:\t%s\n", m.Phone)
	}
	fmt.Fprintf(w, "Joined:\t%s\n", codec.FormatDate(m.JoinDate))
	fmt.Fprintf(w, "Status:\t%s\n", memberStatusText(m))
	return nil
}

// outputMembers displays members in table format
func outputMembers(members []*codec.Member) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tJOINED\tSTATUS")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			m.ID, m.Name, codec.FormatDate(m.JoinDate), memberStatusText(m))
	}
	return nil
}

// outputBorrows displays borrow records in table format
func outputBorrows(borrows []*codec.Borrow, loanPeriodDays int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tBOOK\tMEMBER\tBORROWED\tDUE\tRETURNED\tSTATUS")
	for _, b := range borrows {
		due := b.BorrowDate.AddDate(0, 0, loanPeriodDays)
		status := "Active"
		if b.Status == codec.BorrowReturned {
			status = "Returned"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.BookID, b.MemberID,
			codec.FormatDate(b.BorrowDate), codec.FormatDate(due),
			codec.FormatDate(b.ReturnDate), status)
	}
	return nil
}

// outputOverdue displays overdue loans with accrued fines
func outputOverdue(overdue []library.OverdueLoan) error {
	if len(overdue) == 0 {
		fmt.Println("No overdue loans")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tBOOK\tMEMBER\tDUE\tDAYS OVERDUE\tFINE")
	for _, o := range overdue {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			o.Borrow.ID, o.Borrow.BookID, o.Borrow.MemberID,
			codec.FormatDate(o.DueDate), o.DaysOverdue, o.Fine)
	}
	return nil
}

func bookStatusText(s codec.BookStatus) string {
	if s == codec.BookBorrowed {
		return "Borrowed"
	}
	return "Available"
}

func memberStatusText(m *codec.Member) string {
	if m.Status != codec.MemberSuspended {
		return "Active"
	}
	if m.BanUntil.IsZero() {
		return "Suspended (book not returned)"
	}
	return "Suspended until " + codec.FormatDate(m.BanUntil)
}
