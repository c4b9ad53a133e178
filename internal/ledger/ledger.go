// Package ledger posts, edits and deletes invoices together with their inventory effects.
//
// Every operation runs inside one storage transaction: the invoice header, its items,
// the sequence high-water mark and the product inventory either all change or none do.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"storeledger/m/domain"
)

// ProductCatalog is the slice of product storage the ledger reads and adjusts.
type ProductCatalog interface {
	// FindProduct returns domain.ErrNotFound for unknown ids.
	FindProduct(ctx context.Context, id int64) (*domain.Product, error)
	// AdjustInventory adds delta to the product's inventory. With floorAtZero the
	// result never drops below zero.
	AdjustInventory(ctx context.Context, id int64, delta int64, floorAtZero bool) error
}

// NumberSource answers the queries invoice numbering needs.
type NumberSource interface {
	// LastInvoiceNumber returns the newest (highest id) number matching the LIKE
	// pattern, or "" when there is none.
	LastInvoiceNumber(ctx context.Context, pattern string) (string, error)
	CountInvoicesInYear(ctx context.Context, year int) (int64, error)
	SequenceHighWater(ctx context.Context, year int) (int64, error)
}

// InvoiceRepository persists invoice headers and items.
type InvoiceRepository interface {
	NumberSource
	AdvanceSequence(ctx context.Context, year int, value int64) error
	// InsertInvoice returns domain.ErrDuplicate when the invoice number is taken.
	InsertInvoice(ctx context.Context, inv *domain.Invoice) (int64, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *domain.Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error
	ListItems(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error)
	InsertItems(ctx context.Context, invoiceID int64, items []domain.InvoiceItem) error
	DeleteItems(ctx context.Context, invoiceID int64) error
}

// Tx is one unit of work against storage.
type Tx interface {
	ProductCatalog
	InvoiceRepository
	CustomerExists(ctx context.Context, id int64) (bool, error)
}

// Store runs fn in a transaction, committing when fn returns nil and rolling back otherwise.
// The error returned by fn is passed through unchanged.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Settings supplies the default tax rate.
type Settings interface {
	TaxRate(ctx context.Context) (decimal.Decimal, error)
}
