package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/models"
)

var toggleOwnerFlag string

// DisableCmd switches a link off: its code redirects to the disabled landing page.
var DisableCmd = &cobra.Command{
	Use:   "disable [code]",
	Short: "Disables a short link without deleting it.",
	Args:  cobra.ExactArgs(1),
	RunE:  setActive(false),
}

// EnableCmd switches a disabled link back on.
var EnableCmd = &cobra.Command{
	Use:   "enable [code]",
	Short: "Re-enables a disabled short link.",
	Args:  cobra.ExactArgs(1),
	RunE:  setActive(true),
}

func init() {
	for _, c := range []*cobra.Command{DisableCmd, EnableCmd} {
		c.Flags().StringVar(&toggleOwnerFlag, "owner", "", "Owner id")
		_ = c.MarkFlagRequired("owner")
		cmd.RootCmd.AddCommand(c)
	}
}

func setActive(active bool) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		db, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		linkService, closeCache, err := newLinkService(db)
		if err != nil {
			return err
		}
		defer closeCache()

		link, err := linkService.UpdateLink(c.Context(), toggleOwnerFlag, args[0], models.LinkUpdate{Active: &active})
		if err != nil {
			return fmt.Errorf("failed to update %q: %w", args[0], err)
		}
		fmt.Fprintf(c.OutOrStdout(), "%s is now %s\n", cmd.Cfg.ShortURL(link.Code), stateLabel(link.Active))
		return nil
	}
}

func stateLabel(active bool) string {
	if active {
		return "active"
	}
	return "disabled"
}
