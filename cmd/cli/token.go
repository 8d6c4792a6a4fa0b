package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/auth"
)

var tokenOwnerFlag string

// TokenCmd issues a bearer token for the management API.
var TokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issues an API bearer token for an owner.",
	RunE: func(c *cobra.Command, args []string) error {
		authenticator, err := auth.NewJWTAuthenticator(cmd.Cfg.Auth.JWTSecret, cmd.Cfg.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("auth.jwt_secret is not configured: %w", err)
		}
		token, err := authenticator.IssueToken(tokenOwnerFlag)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), token)
		return nil
	},
}

func init() {
	TokenCmd.Flags().StringVar(&tokenOwnerFlag, "owner", "", "Owner id")
	_ = TokenCmd.MarkFlagRequired("owner")
	cmd.RootCmd.AddCommand(TokenCmd)
}
