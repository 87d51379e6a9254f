package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/prefill"
)

var prefillCmd = &cobra.Command{
	Use:   "prefill",
	Short: "Preview the preset line items for a deposition or a copy",
	Long: `Generate the preset line items and print them with the balance due.
Rates not given on the command line come from the prefill section of the config.`,
}

var prefillDepositionCmd = &cobra.Command{
	Use:   "deposition",
	Short: "Deposition, appearance fee and exhibits",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := prefill.DefaultDepositionParams(appInstance.Config.Prefill, time.Now())
		f := cmd.Flags()

		if err := applyCommonPrefillFlags(f, &p.Date, &p.Deponent, &p.Pages, &p.Rate, &p.Extra, &p.Exhibits); err != nil {
			return err
		}
		if f.Changed("copies") {
			p.Copies, _ = f.GetInt("copies")
		}
		decimalFlag(f, "copy-rate", &p.CopyRate)
		decimalFlag(f, "hours", &p.AppearanceHours)
		decimalFlag(f, "appearance-rate", &p.AppearanceRate)

		printItems(prefill.Deposition(p))
		return nil
	},
}

var prefillCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy of a deposition and exhibits",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := prefill.DefaultCopyParams(appInstance.Config.Prefill, time.Now())
		if err := applyCommonPrefillFlags(cmd.Flags(), &p.Date, &p.Deponent, &p.Pages, &p.Rate, &p.Extra, &p.Exhibits); err != nil {
			return err
		}

		printItems(prefill.CopyOfDeposition(p))
		return nil
	},
}

func applyCommonPrefillFlags(f *pflag.FlagSet, date, deponent *string, pages *int, rate *decimal.Decimal, extra *string, ex *prefill.Exhibits) error {
	if f.Changed("date") {
		s, _ := f.GetString("date")
		d, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		*date = d
	}
	*deponent, _ = f.GetString("name")
	*extra, _ = f.GetString("extra")
	*pages, _ = f.GetInt("pages")
	ex.BW, _ = f.GetInt("bw")
	ex.Color, _ = f.GetInt("color")
	decimalFlag(f, "rate", rate)
	decimalFlag(f, "bw-rate", &ex.BWRate)
	decimalFlag(f, "color-rate", &ex.ColorRate)
	return nil
}

func decimalFlag(f *pflag.FlagSet, name string, dst *decimal.Decimal) {
	if f.Changed(name) {
		s, _ := f.GetString(name)
		*dst = domain.ParseAmount(s)
	}
}

func printItems(items []domain.LineItem) {
	fmt.Printf("%-60s %8s %10s %12s\n", "Description", "Qty", "Unit", "Total")
	fmt.Println(strings.Repeat("-", 93))
	for _, it := range items {
		fmt.Printf("%-60s %8s %10s %12s\n",
			truncate(it.Description, 60),
			it.Quantity.String(),
			domain.FormatCurrency(it.UnitPrice),
			domain.FormatCurrency(it.Total()),
		)
	}
	fmt.Printf("\nBalance due: %s\n", domain.FormatCurrency(domain.SumTotals(items)))
}

func init() {
	prefillCmd.AddCommand(prefillDepositionCmd)
	prefillCmd.AddCommand(prefillCopyCmd)

	for _, c := range []*cobra.Command{prefillDepositionCmd, prefillCopyCmd} {
		c.Flags().String("date", "", "Deposition date (YYYY-MM-DD, today, yesterday)")
		c.Flags().String("name", "", "Deponent name")
		c.Flags().Int("pages", 0, "Transcript pages")
		c.Flags().String("rate", "", "Per-page rate")
		c.Flags().String("extra", "", "Free text appended to the description")
		c.Flags().Int("bw", 0, "Black and white exhibit pages")
		c.Flags().String("bw-rate", "", "Rate per black and white page")
		c.Flags().Int("color", 0, "Color exhibit pages")
		c.Flags().String("color-rate", "", "Rate per color page")
	}

	prefillDepositionCmd.Flags().Int("copies", 0, "Copies ordered")
	prefillDepositionCmd.Flags().String("copy-rate", "", "Per-page rate for each copy")
	prefillDepositionCmd.Flags().String("hours", "", "Appearance hours (3 minimum)")
	prefillDepositionCmd.Flags().String("appearance-rate", "", "Hourly appearance rate")
}
