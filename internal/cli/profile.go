package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your biller details",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved biller profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := appInstance.Profile.Get(ctx)
		if err != nil {
			return err
		}

		show := func(label, v string) {
			if v == "" {
				v = "(not set)"
			}
			fmt.Printf("%-12s %s\n", label+":", v)
		}
		show("Name", p.Name)
		show("Address", p.Address)
		show("Phone", p.Phone)
		show("Email", p.Email)
		show("Payable to", p.PayableToName)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update biller profile fields",
	Long: `Update biller profile fields. Only the flags you pass are changed.
Pass an empty value (--phone "") to clear a field.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := appInstance.Profile.Get(ctx)
		if err != nil {
			return err
		}

		fields := map[string]*string{
			"name":       &p.Name,
			"address":    &p.Address,
			"phone":      &p.Phone,
			"email":      &p.Email,
			"payable-to": &p.PayableToName,
		}
		changed := 0
		for flag, dst := range fields {
			if cmd.Flags().Changed(flag) {
				*dst, _ = cmd.Flags().GetString(flag)
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("nothing to update: pass at least one of --name, --address, --phone, --email, --payable-to")
		}

		if err := appInstance.Profile.Save(ctx, p); err != nil {
			return err
		}

		fmt.Printf("✓ Profile updated (%d field(s))\n", changed)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileSetCmd.Flags().String("name", "", "Your name")
	profileSetCmd.Flags().String("address", "", "Your address (use \\n for line breaks in scripts)")
	profileSetCmd.Flags().String("phone", "", "Your phone number")
	profileSetCmd.Flags().String("email", "", "Your email")
	profileSetCmd.Flags().String("payable-to", "", "Name checks should be made payable to")
}
