package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"storeledger/m/domain"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            code TEXT UNIQUE,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            email TEXT UNIQUE,
            address TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            join_date TEXT,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS products (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            code TEXT UNIQUE,
            name TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            sell_price NUMERIC NOT NULL DEFAULT 0,
            buy_price NUMERIC,
            inventory INTEGER NOT NULL DEFAULT 0,
            description TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'active',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS invoices (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            invoice_number TEXT NOT NULL UNIQUE,
            customer_id INTEGER,
            date TEXT NOT NULL,
            due_date TEXT,
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            total_amount NUMERIC NOT NULL DEFAULT 0,
            discount NUMERIC NOT NULL DEFAULT 0,
            tax_rate NUMERIC NOT NULL DEFAULT 0,
            tax_amount NUMERIC NOT NULL DEFAULT 0,
            final_amount NUMERIC NOT NULL DEFAULT 0,
            payment_method TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(customer_id) REFERENCES customers(id) ON DELETE SET NULL
        );`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            invoice_id INTEGER NOT NULL,
            product_id INTEGER,
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price NUMERIC NOT NULL,
            total_price NUMERIC NOT NULL,
            FOREIGN KEY(invoice_id) REFERENCES invoices(id) ON DELETE CASCADE,
            FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE SET NULL
        );`,
	`CREATE TABLE IF NOT EXISTS invoice_sequences (
            year INTEGER PRIMARY KEY,
            last_value INTEGER NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        );`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			code TEXT UNIQUE,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT UNIQUE,
			address TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			join_date TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);`,
	`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			code TEXT UNIQUE,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			sell_price NUMERIC(14,2) NOT NULL DEFAULT 0,
			buy_price NUMERIC(14,2),
			inventory BIGINT NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);`,
	`CREATE TABLE IF NOT EXISTS invoices (
			id SERIAL PRIMARY KEY,
			invoice_number TEXT NOT NULL UNIQUE,
			customer_id INTEGER REFERENCES customers(id) ON DELETE SET NULL,
			date TEXT NOT NULL,
			due_date TEXT,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			total_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			discount NUMERIC(14,2) NOT NULL DEFAULT 0,
			tax_rate NUMERIC(6,4) NOT NULL DEFAULT 0,
			tax_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			final_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
			id SERIAL PRIMARY KEY,
			invoice_id INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			product_id INTEGER REFERENCES products(id) ON DELETE SET NULL,
			product_name TEXT NOT NULL,
			quantity BIGINT NOT NULL,
			unit_price NUMERIC(14,2) NOT NULL,
			total_price NUMERIC(14,2) NOT NULL
		);`,
	`CREATE TABLE IF NOT EXISTS invoice_sequences (
			year INTEGER PRIMARY KEY,
			last_value INTEGER NOT NULL
		);`,
	`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
}

// DefaultSettings are inserted once; existing values are never overwritten.
var DefaultSettings = map[string]string{
	domain.SettingStoreName:         "Store",
	domain.SettingStoreAddress:      "",
	domain.SettingStorePhone:        "",
	domain.SettingStoreEmail:        "",
	domain.SettingStorePostalCode:   "",
	domain.SettingStoreRegistration: "",
	domain.SettingDefaultTaxRate:    "0.09",
	domain.SettingCurrencySymbol:    "IRR",
}

// Run creates the database schema and seeds DefaultSettings.
func Run(db *sqlx.DB) error {
	return RunWithDefaults(db, DefaultSettings)
}

// RunWithDefaults is Run with caller-supplied initial settings. Keys missing from
// defaults fall back to DefaultSettings; stored values are never overwritten.
func RunWithDefaults(db *sqlx.DB, defaults map[string]string) error {
	schema := sqliteSchema
	if db.DriverName() == "postgres" {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	insert := db.Rebind(`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`)
	for key, value := range DefaultSettings {
		if v, ok := defaults[key]; ok {
			value = v
		}
		if _, err := db.Exec(insert, key, value); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}
