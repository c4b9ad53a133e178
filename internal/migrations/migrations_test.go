package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeledger/m/internal/database"
	"storeledger/m/internal/migrations"
)

func TestRunIsIdempotentAndKeepsSettings(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.Run(db))
	_, err = db.Exec(`UPDATE settings SET value = '0.1' WHERE key = 'default_tax_rate'`)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	var rate string
	require.NoError(t, db.Get(&rate, `SELECT value FROM settings WHERE key = 'default_tax_rate'`))
	assert.Equal(t, "0.1", rate)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM settings`))
	assert.Equal(t, len(migrations.DefaultSettings), count)
}

func TestInvoiceNumberIsUnique(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Run(db))

	insert := `INSERT INTO invoices (invoice_number, date, type, status) VALUES ('INV-2026-0001', '2026-01-01', 'sale', 'draft')`
	_, err = db.Exec(insert)
	require.NoError(t, err)
	_, err = db.Exec(insert)
	assert.Error(t, err)
}

func TestRunWithDefaultsSeedsOverrides(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.RunWithDefaults(db, map[string]string{"currency_symbol": "EUR"}))

	var symbol, rate string
	require.NoError(t, db.Get(&symbol, `SELECT value FROM settings WHERE key = 'currency_symbol'`))
	require.NoError(t, db.Get(&rate, `SELECT value FROM settings WHERE key = 'default_tax_rate'`))
	assert.Equal(t, "EUR", symbol)
	assert.Equal(t, "0.09", rate)
}
