package cli

import (
	"github.com/spf13/cobra"

	"github.com/andy/depobill/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "depobill",
	Short: "Invoice drafting for court reporters",
	Long: `Depobill drafts and exports invoices for deposition and transcript work.

Your profile, client address book and next invoice number are kept in an
encrypted local database. Running depobill without arguments opens the
interactive invoice form. Use subcommands for scripted work.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(prefillCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
