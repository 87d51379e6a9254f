package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:     "sequence",
	Aliases: []string{"number"},
	Short:   "Show or set the next invoice number",
}

var sequenceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the number the next invoice will use",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		fmt.Println(appInstance.ExportService.CurrentInvoiceNumber(ctx))
		return nil
	},
}

var sequenceSetCmd = &cobra.Command{
	Use:   "set [number]",
	Short: "Set the next invoice number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid invoice number: %w", err)
		}

		if err := appInstance.ExportService.SetInvoiceNumber(ctx, n); err != nil {
			return err
		}

		fmt.Printf("✓ Next invoice number is %d\n", n)
		return nil
	},
}

func init() {
	sequenceCmd.AddCommand(sequenceShowCmd)
	sequenceCmd.AddCommand(sequenceSetCmd)
}
