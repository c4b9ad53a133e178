package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storeledger/m/domain"
	"storeledger/m/internal/export"
	"storeledger/m/internal/store"
)

var (
	exportOut    string
	exportType   string
	exportStatus string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the invoice register to an Excel workbook",
	Example: `  storeledger export --out invoices.xlsx
  storeledger export --type sale --status paid`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter store.InvoiceFilter
		if exportType != "" {
			t, err := domain.ParseInvoiceType(exportType)
			if err != nil {
				return err
			}
			filter.Type = t
		}
		if exportStatus != "" {
			s, err := domain.ParseInvoiceStatus(exportStatus)
			if err != nil {
				return err
			}
			filter.Status = s
		}

		db, st, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		register, err := st.InvoiceRegister(cmd.Context(), filter)
		if err != nil {
			return err
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		if err := export.WriteRegister(f, register); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d invoices to %s\n", len(register), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "invoices.xlsx", "output file")
	exportCmd.Flags().StringVar(&exportType, "type", "", "only invoices of this type (sale, purchase)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "only invoices in this status")
	rootCmd.AddCommand(exportCmd)
}
