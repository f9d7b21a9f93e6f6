package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/shelfdb/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [flags]",
	Short: "Generate a summary report",
	Long: `Generate a plain-text summary of books, loans, overdue fines, and
member status. Writes to stdout unless --out is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		gen := report.NewGenerator(svc)
		if out == "" {
			return gen.Write(os.Stdout)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := gen.Write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		if !cli.Quiet {
			fmt.Printf("Report written to %s\n", out)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "", "write the report to a file")
}
