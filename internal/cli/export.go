package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/draft"
	"github.com/andy/depobill/internal/export"
	"github.com/andy/depobill/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export [draft.yaml]",
	Short: "Export an invoice from a draft file",
	Long: `Render the invoice described by a YAML draft and save it.

On success the next invoice number advances, your profile is updated and the
client is saved to the address book when a name and address were given.

Example draft:

  date: 2024-03-05
  client:
    address_book: Acme Legal    # or name/company/address/phone/email
  case_info: |
    Roe v. Doe, No. 24-123
  prefill:
    kind: deposition            # or copy
    deponent: J. Smith
    pages: 100
  items:
    - description: Rush delivery
      unit_price: "25"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		d, err := draft.Load(args[0])
		if err != nil {
			return err
		}

		profile, err := appInstance.Profile.Get(ctx)
		if err != nil {
			return err
		}
		req, err := d.Request(ctx, profile, appInstance.AddressBook, appInstance.Config.Prefill, time.Now())
		if err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("number"); n > 0 {
			req.Number = n
		}

		opts, err := exportOptions(cmd)
		if err != nil {
			return err
		}

		res, err := appInstance.ExportService.Export(ctx, req, opts)
		if errors.Is(err, export.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("✓ Invoice #%d saved to %s\n", res.Number, res.Path)
		fmt.Printf("  Balance due: %s\n", domain.FormatCurrency(res.Total))
		fmt.Printf("  Next invoice number: %d\n", res.NextNumber)
		if res.AddressSaved {
			fmt.Printf("  Saved %s to the address book\n", req.Client.Name)
		}
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return nil
	},
}

func exportOptions(cmd *cobra.Command) (service.ExportOptions, error) {
	opts := service.ExportOptions{Format: appInstance.ExportFormat()}
	if cmd.Flags().Changed("format") {
		s, _ := cmd.Flags().GetString("format")
		f, err := export.ParseFormat(s)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		opts.Saver = &export.PromptSaver{Prompt: func(ctx context.Context, name string) (string, error) {
			return out, nil
		}}
		return opts, nil
	}

	noPrompt, _ := cmd.Flags().GetBool("no-prompt")
	if appInstance.Config.Export.PromptSave && !noPrompt {
		opts.Saver = &export.PromptSaver{Prompt: stdinPrompt(appInstance.Config.Export.OutputDir)}
	}
	return opts, nil
}

// stdinPrompt asks for a destination on the terminal. Enter accepts the
// default, end of input (ctrl+d) cancels.
func stdinPrompt(dir string) export.PromptFunc {
	return func(ctx context.Context, name string) (string, error) {
		def := filepath.Join(dir, name)
		fmt.Printf("Save as [%s]: ", def)

		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil {
			fmt.Println()
			if errors.Is(err, io.EOF) {
				return "", export.ErrCancelled
			}
			return "", err
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
		return def, nil
	}
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "Output format: pdf or html (default from config)")
	exportCmd.Flags().StringP("out", "o", "", "Write to this path instead of asking")
	exportCmd.Flags().Bool("no-prompt", false, "Save straight to the output directory")
	exportCmd.Flags().Int("number", 0, "Invoice number (defaults to the stored next number)")
}
