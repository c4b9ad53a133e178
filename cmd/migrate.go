package cmd

import (
	"github.com/spf13/cobra"

	"storeledger/m/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		log := logger.WithComponent("migrate")
		log.Info().
			Str("driver", cfg.DatabaseDriver).
			Msg("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
