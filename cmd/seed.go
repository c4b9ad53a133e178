package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storeledger/m/internal/logger"
	"storeledger/m/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products from a CSV file",
	Long: `Load the product catalog from CSV. The header row names the columns:
code, name, category, sell_price, buy_price, inventory, description.
Only name and sell_price are required; rows whose code already exists are skipped.`,
	Example: `  storeledger seed --file products.csv`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()

		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := seed.LoadProducts(cmd.Context(), db, f, logger.WithComponent("seed"))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %d products from %s\n", n, seedFile)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "products.csv", "CSV file to load")
	rootCmd.AddCommand(seedCmd)
}
