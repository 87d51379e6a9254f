package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/depobill/internal/repository"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget stored data",
	Long: `Forget stored data.

Examples:
  depobill reset addresses   # Empty the client address book
  depobill reset profile     # Clear your biller details
  depobill reset sequence    # Start invoice numbers again at 1
  depobill reset all         # Everything above`,
}

func resetKeysCmd(use, short, prompt, done string, keys ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirmPrompt(prompt) {
				fmt.Println("Cancelled.")
				return nil
			}

			if err := appInstance.KV.Delete(context.Background(), keys...); err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}

			fmt.Println(done)
			return nil
		},
	}
}

func init() {
	cmds := []*cobra.Command{
		resetKeysCmd("addresses", "Delete every saved client address",
			"This will delete ALL saved client addresses. Continue?",
			"The address book is empty.",
			repository.KeyAddressBook),
		resetKeysCmd("profile", "Clear your name, address and contact details",
			"This will clear your biller profile. Continue?",
			"Your biller profile has been cleared.",
			repository.KeyName, repository.KeyAddress, repository.KeyPhone, repository.KeyEmail, repository.KeyPayableTo),
		resetKeysCmd("sequence", "Start invoice numbering again at 1",
			"The next invoice will be numbered 1. Continue?",
			"Invoice numbering reset to 1.",
			repository.KeyLastInvoiceNumber),
		resetKeysCmd("all", "Delete ALL stored data",
			"This will delete ALL stored data (profile, address book, invoice number). Continue?",
			"All data has been deleted.",
			repository.AllKeys...),
	}

	for _, c := range cmds {
		c.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
		resetCmd.AddCommand(c)
	}
}
