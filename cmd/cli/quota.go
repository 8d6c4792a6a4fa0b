package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/repository"
)

var (
	quotaOwnerFlag string
	quotaLimitFlag int64
)

// QuotaCmd shows an owner's plan usage, and sets the limit when --limit is given.
var QuotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Shows or sets the plan limit of an owner.",
	RunE: func(c *cobra.Command, args []string) error {
		db, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		usage := repository.NewUsageRepository(db, cmd.Cfg.Quota.DefaultLimit)
		if c.Flags().Changed("limit") {
			if quotaLimitFlag < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			if err := usage.SetPlanLimit(c.Context(), quotaOwnerFlag, quotaLimitFlag); err != nil {
				return err
			}
		}

		current, err := usage.GetPlanUsage(c.Context(), quotaOwnerFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "%s: %d/%d links\n", quotaOwnerFlag, current.Used, current.Limit)
		return nil
	},
}

func init() {
	QuotaCmd.Flags().StringVar(&quotaOwnerFlag, "owner", "", "Owner id")
	QuotaCmd.Flags().Int64Var(&quotaLimitFlag, "limit", 0, "New plan limit")
	_ = QuotaCmd.MarkFlagRequired("owner")
	cmd.RootCmd.AddCommand(QuotaCmd)
}
