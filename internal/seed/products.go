// Package seed bulk-loads the product catalog from CSV.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Columns expected after the header row. Only name and sell_price are required.
var productColumns = []string{"code", "name", "category", "sell_price", "buy_price", "inventory", "description"}

// LoadProducts ingests CSV rows into products, skipping codes that already exist.
// Malformed rows are logged and skipped; the count of inserted rows is returned.
func LoadProducts(ctx context.Context, db *sqlx.DB, r io.Reader, log zerolog.Logger) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read product header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("start product seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO products (code, name, category, sell_price, buy_price, inventory, description)
                VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT (code) DO NOTHING`))
	if err != nil {
		return 0, fmt.Errorf("prepare product insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("unreadable product row")
			continue
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := field("name")
		if name == "" {
			continue
		}
		sellPrice, err := decimal.NewFromString(field("sell_price"))
		if err != nil || sellPrice.IsNegative() {
			log.Warn().Int("line", line).Str("product", name).Msg("invalid sell_price, row skipped")
			continue
		}
		var buyPrice decimal.NullDecimal
		if raw := field("buy_price"); raw != "" {
			if buyPrice.Decimal, err = decimal.NewFromString(raw); err != nil {
				log.Warn().Int("line", line).Str("product", name).Msg("invalid buy_price, row skipped")
				continue
			}
			buyPrice.Valid = true
		}
		var inventory int64
		if raw := field("inventory"); raw != "" {
			if inventory, err = strconv.ParseInt(raw, 10, 64); err != nil || inventory < 0 {
				log.Warn().Int("line", line).Str("product", name).Msg("invalid inventory, row skipped")
				continue
			}
		}
		var code *string
		if c := field("code"); c != "" {
			code = &c
		}

		res, err := stmt.ExecContext(ctx, code, name, field("category"), sellPrice, buyPrice, inventory, field("description"))
		if err != nil {
			return rows, fmt.Errorf("insert product %s (line %d): %w", name, line, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product seed: %w", err)
	}
	log.Info().Int("rows", rows).Msg("seeded product catalog")
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "sell_price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("product csv is missing the %q column (expected some of %s)", required, strings.Join(productColumns, ", "))
		}
	}
	return index, nil
}
