package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/shelfdb/pkg/codec"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage members",
	Long:  `Register, list, search, update, and remove library members.`,
}

var memberAddCmd = &cobra.Command{
	Use:   "add <name> [flags]",
	Short: "Register a new member",
	Long: `Register a new member.

Examples:
  shelf member add "Ada Lovelace" --email ada@example.com --phone 555-0100`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")

		res, err := svc.AddMember(name, email, phone)
		if err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}
		if res.Truncated {
			fmt.Println("Warning: some fields were truncated to fit the record width")
		}
		if !cli.Quiet {
			fmt.Printf("Registered member '%s' with ID %s\n", name, res.ID)
		}
		return nil
	},
}

var memberGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a member by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		member, err := svc.Members.FindByID(args[0])
		if err != nil {
			return err
		}
		return outputMember(member)
	},
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all members",
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := svc.Members.List()
		if err != nil {
			return err
		}
		return outputMembers(members)
	},
}

var memberSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search members by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := svc.Members.Search(args[0])
		if err != nil {
			return err
		}
		if len(members) == 0 {
			fmt.Println("No members matched")
			return nil
		}
		return outputMembers(members)
	},
}

var memberUpdateCmd = &cobra.Command{
	Use:   "update <id> [flags]",
	Short: "Update a member's contact details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")

		truncated, err := svc.Members.Update(args[0], name, email, phone)
		if err != nil {
			return err
		}
		if truncated {
			fmt.Println("Warning: some fields were truncated to fit the record width")
		}
		if !cli.Quiet {
			fmt.Printf("Updated member %s\n", args[0])
		}
		return nil
	},
}

var memberRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a member",
	Long:  `Soft-delete a member. Members with books on loan cannot be removed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.RemoveMember(args[0]); err != nil {
			return err
		}
		if !cli.Quiet {
			fmt.Printf("Removed member %s\n", args[0])
		}
		return nil
	},
}

var memberStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show a member's ban status",
	Long: `Check whether a member may borrow right now. An expired penalty is
cleared as a side effect of the check.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ban, err := svc.Members.CheckBanStatus(args[0])
		if err != nil {
			return err
		}
		if !ban.Banned {
			fmt.Printf("Member %s may borrow\n", args[0])
			return nil
		}
		if ban.Until.IsZero() {
			fmt.Printf("Member %s is suspended: %s\n", args[0], ban.Reason)
		} else {
			fmt.Printf("Member %s is suspended until %s: %s\n",
				args[0], codec.FormatDate(ban.Until), ban.Reason)
		}
		return nil
	},
}

func init() {
	memberAddCmd.Flags().String("email", "", "email address (optional)")
	memberAddCmd.Flags().String("phone", "", "phone number (optional)")

	memberUpdateCmd.Flags().String("name", "", "new name")
	memberUpdateCmd.Flags().String("email", "", "new email address")
	memberUpdateCmd.Flags().String("phone", "", "new phone number")

	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberGetCmd)
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberSearchCmd)
	memberCmd.AddCommand(memberUpdateCmd)
	memberCmd.AddCommand(memberRmCmd)
	memberCmd.AddCommand(memberStatusCmd)
}
