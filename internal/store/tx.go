package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"storeledger/m/domain"
)

// Tx implements ledger.Tx on an open sqlx transaction.
type Tx struct {
	tx *sqlx.Tx
}

const productColumns = `id, code, name, category, sell_price, buy_price, inventory, description, status, created_at, updated_at`

const invoiceColumns = `id, invoice_number, customer_id, date, due_date, type, status, total_amount, discount, tax_rate,
        tax_amount, final_amount, payment_method, notes, created_at, updated_at`

const itemColumns = `id, invoice_id, product_id, product_name, quantity, unit_price, total_price`

func (t *Tx) FindProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return getProduct(ctx, t.tx, id)
}

func (t *Tx) AdjustInventory(ctx context.Context, id, delta int64, floorAtZero bool) error {
	query := `UPDATE products SET inventory = inventory + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args := []any{delta, id}
	if floorAtZero {
		query = `UPDATE products SET inventory = CASE WHEN inventory + ? < 0 THEN 0 ELSE inventory + ? END,
                updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		args = []any{delta, delta, id}
	}
	res, err := t.tx.ExecContext(ctx, t.tx.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *Tx) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := t.tx.GetContext(ctx, &n, t.tx.Rebind(`SELECT COUNT(*) FROM customers WHERE id = ?`), id)
	return n > 0, err
}

func (t *Tx) LastInvoiceNumber(ctx context.Context, pattern string) (string, error) {
	var numbers []string
	err := t.tx.SelectContext(ctx, &numbers,
		t.tx.Rebind(`SELECT invoice_number FROM invoices WHERE invoice_number LIKE ? ORDER BY id DESC LIMIT 1`), pattern)
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

func (t *Tx) CountInvoicesInYear(ctx context.Context, year int) (int64, error) {
	var n int64
	err := t.tx.GetContext(ctx, &n, t.tx.Rebind(`SELECT COUNT(*) FROM invoices WHERE date LIKE ?`), strconv.Itoa(year)+"-%")
	return n, err
}

func (t *Tx) SequenceHighWater(ctx context.Context, year int) (int64, error) {
	var values []int64
	err := t.tx.SelectContext(ctx, &values, t.tx.Rebind(`SELECT last_value FROM invoice_sequences WHERE year = ?`), year)
	if err != nil || len(values) == 0 {
		return 0, err
	}
	return values[0], nil
}

// AdvanceSequence raises the year's high-water mark; it never lowers it.
func (t *Tx) AdvanceSequence(ctx context.Context, year int, value int64) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`INSERT INTO invoice_sequences (year, last_value) VALUES (?, ?)
                ON CONFLICT (year) DO UPDATE SET last_value = CASE
                    WHEN excluded.last_value > invoice_sequences.last_value THEN excluded.last_value
                    ELSE invoice_sequences.last_value END`), year, value)
	return err
}

func (t *Tx) InsertInvoice(ctx context.Context, inv *domain.Invoice) (int64, error) {
	var id int64
	err := t.tx.QueryRowxContext(ctx, t.tx.Rebind(`INSERT INTO invoices (invoice_number, customer_id, date, due_date, type, status,
                total_amount, discount, tax_rate, tax_amount, final_amount, payment_method, notes)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		inv.InvoiceNumber, inv.CustomerID, inv.Date, inv.DueDate, inv.Type, inv.Status,
		inv.TotalAmount, inv.Discount, inv.TaxRate, inv.TaxAmount, inv.FinalAmount, inv.PaymentMethod, inv.Notes).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
	}
	return id, err
}

func (t *Tx) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return getInvoice(ctx, t.tx, id)
}

func (t *Tx) UpdateInvoice(ctx context.Context, inv *domain.Invoice) error {
	res, err := t.tx.ExecContext(ctx, t.tx.Rebind(`UPDATE invoices SET customer_id = ?, date = ?, due_date = ?, type = ?, status = ?,
                total_amount = ?, discount = ?, tax_rate = ?, tax_amount = ?, final_amount = ?, payment_method = ?, notes = ?,
                updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		inv.CustomerID, inv.Date, inv.DueDate, inv.Type, inv.Status, inv.TotalAmount, inv.Discount, inv.TaxRate,
		inv.TaxAmount, inv.FinalAmount, inv.PaymentMethod, inv.Notes, inv.ID)
	return requireRow(res, err)
}

func (t *Tx) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, t.tx.Rebind(`DELETE FROM invoices WHERE id = ?`), id)
	return requireRow(res, err)
}

func (t *Tx) ListItems(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error) {
	return listItems(ctx, t.tx, invoiceID)
}

func (t *Tx) InsertItems(ctx context.Context, invoiceID int64, items []domain.InvoiceItem) error {
	stmt, err := t.tx.PreparexContext(ctx, t.tx.Rebind(`INSERT INTO invoice_items (invoice_id, product_id, product_name, quantity, unit_price, total_price)
                VALUES (?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, invoiceID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return fmt.Errorf("insert item %q: %w", item.ProductName, err)
		}
	}
	return nil
}

func (t *Tx) DeleteItems(ctx context.Context, invoiceID int64) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`DELETE FROM invoice_items WHERE invoice_id = ?`), invoiceID)
	return err
}

func getProduct(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.Product, error) {
	var p domain.Product
	err := sqlx.GetContext(ctx, q, &p, q.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func getInvoice(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := sqlx.GetContext(ctx, q, &inv, q.Rebind(`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

func listItems(ctx context.Context, q sqlx.ExtContext, invoiceID int64) ([]domain.InvoiceItem, error) {
	items := []domain.InvoiceItem{}
	err := sqlx.SelectContext(ctx, q, &items, q.Rebind(`SELECT `+itemColumns+` FROM invoice_items WHERE invoice_id = ? ORDER BY id`), invoiceID)
	return items, err
}

type execResult interface {
	RowsAffected() (int64, error)
}

func requireRow(res execResult, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
