package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/cmd"
)

// MigrateCmd creates or updates the tables.
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations to create or update tables.",
	Long: `Connects to the configured database (SQLite or PostgreSQL) and runs GORM
automatic migrations for the 'links', 'scan_events' and 'usage_counters' tables.`,
	RunE: func(c *cobra.Command, args []string) error {
		_, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		fmt.Fprintf(c.OutOrStdout(), "Database migrations executed successfully (%s).\n", cmd.Cfg.Database.Driver)
		return nil
	},
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}
