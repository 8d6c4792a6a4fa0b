package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/services"
)

var (
	createURLFlag   string
	createOwnerFlag string
	createNameFlag  string
)

// CreateCmd creates a link on behalf of an owner, going through the quota gate.
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a short link for a destination URL.",
	Long: `Creates a short link and prints its code and full short URL.

Example:
  qrlinks create --owner=alice --url="https://example.com/menu" --name="Menu"`,
	RunE: func(c *cobra.Command, args []string) error {
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

		link, err := linkService.CreateLink(c.Context(), services.CreateLinkInput{
			Owner:       createOwnerFlag,
			Destination: createURLFlag,
			DisplayName: createNameFlag,
		})
		// Usage is updated in the background; let it land before the process exits.
		linkService.Wait()
		if err != nil {
			return fmt.Errorf("failed to create short link: %w", err)
		}

		out := c.OutOrStdout()
		fmt.Fprintln(out, "Short link created:")
		fmt.Fprintf(out, "Code: %s\n", link.Code)
		fmt.Fprintf(out, "Short URL: %s\n", cmd.Cfg.ShortURL(link.Code))
		fmt.Fprintf(out, "Destination: %s\n", link.Destination)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createURLFlag, "url", "", "Destination URL")
	CreateCmd.Flags().StringVar(&createOwnerFlag, "owner", "", "Owner id")
	CreateCmd.Flags().StringVar(&createNameFlag, "name", "", "Optional display name")
	_ = CreateCmd.MarkFlagRequired("url")
	_ = CreateCmd.MarkFlagRequired("owner")

	cmd.RootCmd.AddCommand(CreateCmd)
}
