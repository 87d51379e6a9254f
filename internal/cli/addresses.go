package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addressesCmd = &cobra.Command{
	Use:     "addresses",
	Aliases: []string{"address-book", "ab"},
	Short:   "Manage the client address book",
	Long: `List, show and delete saved client addresses.

Addresses are saved automatically each time an invoice with a client name
and address is exported.`,
}

var addressesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		records, err := appInstance.AddressBook.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list addresses: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No saved addresses")
			return nil
		}

		fmt.Printf("%-28s %-24s %-30s\n", "Name", "Company", "Address")
		fmt.Println(strings.Repeat("-", 84))
		for _, r := range records {
			fmt.Printf("%-28s %-24s %-30s\n",
				truncate(r.Name, 28),
				truncate(r.Company, 24),
				truncate(firstLine(r.Address), 30),
			)
		}

		fmt.Printf("\nTotal: %d address(es)\n", len(records))
		return nil
	},
}

var addressesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one saved client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		r, err := appInstance.AddressBook.Lookup(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:    %s\n", r.Name)
		if r.Company != "" {
			fmt.Printf("Company: %s\n", r.Company)
		}
		fmt.Println("Address:")
		for _, l := range strings.Split(r.Address, "\n") {
			fmt.Printf("  %s\n", l)
		}
		if r.Phone != "" {
			fmt.Printf("Phone:   %s\n", r.Phone)
		}
		if r.Email != "" {
			fmt.Printf("Email:   %s\n", r.Email)
		}
		return nil
	},
}

var addressesDeleteCmd = &cobra.Command{
	Use:   "delete [name...]",
	Short: "Delete saved clients",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			msg := fmt.Sprintf("Delete %d address(es): %s?", len(args), strings.Join(args, ", "))
			if !confirmPrompt(msg) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		removed, err := appInstance.AddressBook.DeleteMany(ctx, args)
		if err != nil {
			return fmt.Errorf("failed to delete addresses: %w", err)
		}

		fmt.Printf("✓ Deleted %d address(es)\n", removed)
		if skipped := len(args) - removed; skipped > 0 {
			fmt.Printf("  %d name(s) were not in the address book\n", skipped)
		}
		return nil
	},
}

func init() {
	addressesCmd.AddCommand(addressesListCmd)
	addressesCmd.AddCommand(addressesShowCmd)
	addressesCmd.AddCommand(addressesDeleteCmd)

	addressesDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
