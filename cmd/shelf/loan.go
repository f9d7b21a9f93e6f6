package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/library"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow <member-id> <book-id> [book-id...]",
	Short: "Lend books to a member",
	Long: `Lend one or more books to a member. Every book is validated before
anything is written.

Examples:
  shelf borrow 0002 0001
  shelf borrow 0002 0001 0003 0004`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := svc.Borrow(args[0], args[1:]...)
		if err != nil {
			var ban *library.BanError
			if errors.As(err, &ban) {
				fmt.Println("Member is suspended!")
				fmt.Printf("Reason: %s\n", ban.Reason)
				if ban.Until.IsZero() {
					fmt.Println("Please return the outstanding books first")
				} else {
					fmt.Printf("Suspended until: %s\n", codec.FormatDate(ban.Until))
				}
			}
			return err
		}
		if !cli.Quiet {
			fmt.Printf("Lent %d book(s) to member %s\n", len(receipt.BookIDs), receipt.MemberID)
			for i, bookID := range receipt.BookIDs {
				fmt.Printf("  borrow %s: book %s\n", receipt.BorrowIDs[i], bookID)
			}
			fmt.Printf("Due date: %s\n", codec.FormatDate(receipt.DueDate))
		}
		return nil
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <book-id>",
	Short: "Take a borrowed book back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := svc.Return(args[0])
		if err != nil {
			return err
		}
		if !cli.Quiet {
			fmt.Printf("Book %s returned by member %s\n", receipt.BookID, receipt.MemberID)
			if receipt.DaysOverdue > 0 {
				fmt.Printf("Overdue by %d day(s), fine: %d\n", receipt.DaysOverdue, receipt.Fine)
			} else {
				fmt.Println("Returned on time")
			}
			if !receipt.BanUntil.IsZero() {
				fmt.Printf("Member suspended until %s for the late return\n",
					codec.FormatDate(receipt.BanUntil))
			}
			if receipt.Reactivated {
				fmt.Println("Member suspension lifted")
			}
		}
		return nil
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans [member-id]",
	Short: "List loans",
	Long: `List active loans, or a member's full borrow history when an ID is
given. --overdue narrows the list to loans past their due date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overdueOnly, _ := cmd.Flags().GetBool("overdue")

		if overdueOnly {
			overdue, err := svc.Overdue()
			if err != nil {
				return err
			}
			return outputOverdue(overdue)
		}
		if len(args) == 1 {
			history, err := svc.Loans.MemberHistory(args[0])
			if err != nil {
				return err
			}
			return outputBorrows(history, svc.Policy().LoanPeriodDays)
		}
		active, err := svc.Loans.ListActive()
		if err != nil {
			return err
		}
		return outputBorrows(active, svc.Policy().LoanPeriodDays)
	},
}

func init() {
	loansCmd.Flags().Bool("overdue", false, "show only overdue loans")
}
