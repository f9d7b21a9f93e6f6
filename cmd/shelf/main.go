package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/shelfdb/pkg/config"
	"github.com/ssargent/shelfdb/pkg/library"
)

// Global configuration
type cliConfig struct {
	ConfigPath string
	DataDir    string
	Quiet      bool
	Yes        bool
}

// Global variables
var (
	cli     cliConfig
	svc     *library.Service
	rootCmd *cobra.Command
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "shelf",
		Short: "ShelfDB - flat-file library catalog",
		Long: `A command-line library catalog that keeps books, members, and loans
as fixed-width binary records in flat files.

Examples:
  shelf book add "The Go Programming Language" --author "Donovan" --year 2015
  shelf borrow 0002 0001
  shelf return 0001
  shelf report`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			path := cli.ConfigPath
			if path == "" {
				path = config.GetDefaultConfigPath()
			}
			if config.ConfigExists(path) {
				loaded, err := config.LoadConfig(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cli.DataDir != "" {
				cfg.DataDir = cli.DataDir
			}

			var err error
			svc, err = library.NewService(library.ServiceConfig{
				DataDir: cfg.DataDir,
				Policy: library.Policy{
					LoanPeriodDays: cfg.Lending.LoanPeriodDays,
					FinePerDay:     cfg.Lending.FinePerDay,
					BanDays:        cfg.Lending.BanDays,
					MaxBorrows:     cfg.Lending.MaxBorrows,
				},
				Logger:  newSlogLogger(cfg.Logging.Level),
				Journal: cfg.Journal,
			})
			if err != nil {
				return fmt.Errorf("failed to open catalog: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if svc != nil {
				return svc.Close()
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cli.ConfigPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&cli.DataDir, "data-dir", "d", "", "data directory for the record stores")
	rootCmd.PersistentFlags().BoolVarP(&cli.Quiet, "quiet", "q", false, "suppress non-essential messages")
	rootCmd.PersistentFlags().BoolVarP(&cli.Yes, "yes", "y", false, "assume 'yes' for prompts")

	// Add subcommands
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(borrowCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(loansCmd)
	rootCmd.AddCommand(reportCmd)
}
