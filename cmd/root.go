package cmd

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"storeledger/m/domain"
	"storeledger/m/internal/config"
	"storeledger/m/internal/database"
	"storeledger/m/internal/logger"
	"storeledger/m/internal/migrations"
	"storeledger/m/internal/store"
)

var version = "1.0.0"

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "storeledger",
	Short: "Store ledger - invoices, products and customers for a small shop",
	Long: `Store ledger keeps a shop's sales and purchase invoices together with the
product inventory they move.

Run "storeledger serve" for the JSON API, or use the other commands for
maintenance tasks against the same database.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the loaded configuration.
func Execute(c config.Config) {
	cfg = c
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// openStore connects, migrates and wraps the configured database.
func openStore() (*sqlx.DB, *store.Store, error) {
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	defaults := map[string]string{
		domain.SettingDefaultTaxRate: cfg.DefaultTaxRate.String(),
		domain.SettingCurrencySymbol: cfg.CurrencySymbol,
	}
	if err := migrations.RunWithDefaults(db, defaults); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store.New(db, logger.WithComponent("store")), nil
}
