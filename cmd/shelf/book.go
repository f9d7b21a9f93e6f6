package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage books",
	Long:  `Add, list, search, update, and remove catalog books.`,
}

var bookAddCmd = &cobra.Command{
	Use:   "add <title> [flags]",
	Short: "Add a new book",
	Long: `Add a new book to the catalog.

Examples:
  shelf book add "The Go Programming Language" --author "Donovan" --year 2015
  shelf book add "Dune" --author "Herbert" --year 1965 --isbn 9780441172719`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		author, _ := cmd.Flags().GetString("author")
		isbn, _ := cmd.Flags().GetString("isbn")
		year, _ := cmd.Flags().GetString("year")

		res, err := svc.AddBook(title, author, isbn, year)
		if err != nil {
			return fmt.Errorf("failed to add book: %w", err)
		}
		if res.Truncated {
			fmt.Println("Warning: some fields were truncated to fit the record width")
		}
		if !cli.Quiet {
			fmt.Printf("Added book '%s' with ID %s\n", title, res.ID)
		}
		return nil
	},
}

var bookGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a book by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := svc.Books.FindByID(args[0])
		if err != nil {
			return err
		}
		return outputBook(book)
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := svc.Books.List()
		if err != nil {
			return err
		}
		return outputBooks(books)
	},
}

var bookSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search books by title or author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := svc.Books.Search(args[0])
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Println("No books matched")
			return nil
		}
		return outputBooks(books)
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update <id> [flags]",
	Short: "Update a book",
	Long: `Update a book's descriptive fields. Omitted flags keep the current
value; ID, status, and the deleted flag never change here.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		isbn, _ := cmd.Flags().GetString("isbn")
		year, _ := cmd.Flags().GetString("year")

		truncated, err := svc.Books.Update(args[0], title, author, isbn, year)
		if err != nil {
			return err
		}
		if truncated {
			fmt.Println("Warning: some fields were truncated to fit the record width")
		}
		if !cli.Quiet {
			fmt.Printf("Updated book %s\n", args[0])
		}
		return nil
	},
}

var bookRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a book",
	Long:  `Soft-delete a book. Books currently on loan cannot be removed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.RemoveBook(args[0]); err != nil {
			return err
		}
		if !cli.Quiet {
			fmt.Printf("Removed book %s\n", args[0])
		}
		return nil
	},
}

func init() {
	bookAddCmd.Flags().String("author", "", "author name")
	bookAddCmd.Flags().String("isbn", "", "ISBN (optional)")
	bookAddCmd.Flags().String("year", "", "publication year")

	bookUpdateCmd.Flags().String("title", "", "new title")
	bookUpdateCmd.Flags().String("author", "", "new author")
	bookUpdateCmd.Flags().String("isbn", "", "new ISBN")
	bookUpdateCmd.Flags().String("year", "", "new publication year")

	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookGetCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookSearchCmd)
	bookCmd.AddCommand(bookUpdateCmd)
	bookCmd.AddCommand(bookRmCmd)
}
