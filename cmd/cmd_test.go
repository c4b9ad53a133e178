package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeledger/m/internal/config"
	"storeledger/m/internal/database"
)

func TestMigrateSeedsConfiguredSettings(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "ledger.sqlite")
	cfg = config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDSN:    dsn,
		DefaultTaxRate: decimal.RequireFromString("0.08"),
		CurrencySymbol: "EUR",
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, rootCmd.Execute())

	db, err := database.Connect("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	var symbol, rate string
	require.NoError(t, db.Get(&symbol, `SELECT value FROM settings WHERE key = 'currency_symbol'`))
	require.NoError(t, db.Get(&rate, `SELECT value FROM settings WHERE key = 'default_tax_rate'`))
	assert.Equal(t, "EUR", symbol)
	assert.Equal(t, "0.08", rate)
}

func TestPrintRejectsBadID(t *testing.T) {
	rootCmd.SetArgs([]string{"print", "abc"})
	assert.ErrorContains(t, rootCmd.Execute(), `invalid invoice id "abc"`)
}
