package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storeledger/m/internal/printer"
)

var printOut string

var printCmd = &cobra.Command{
	Use:   "print [invoice-id]",
	Short: "Render an invoice as PDF",
	Example: `  # Write INV-....pdf in the current directory
  storeledger print 12

  # Choose the output file
  storeledger print 12 --out /tmp/invoice.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid invoice id %q", args[0])
		}

		db, st, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		detail, err := st.GetInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("load invoice %d: %w", id, err)
		}
		settings, err := st.Settings(ctx)
		if err != nil {
			return err
		}

		out := printOut
		if out == "" {
			out = detail.InvoiceNumber + ".pdf"
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := printer.Render(f, detail, settings); err != nil {
			f.Close()
			return fmt.Errorf("render invoice %d: %w", id, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

func init() {
	printCmd.Flags().StringVarP(&printOut, "out", "o", "", "output file (default <invoice-number>.pdf)")
	rootCmd.AddCommand(printCmd)
}
