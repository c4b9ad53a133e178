package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type InvoiceType string

const (
	InvoiceTypeSale     InvoiceType = "sale"
	InvoiceTypePurchase InvoiceType = "purchase"
)

func ParseInvoiceType(s string) (InvoiceType, error) {
	switch t := InvoiceType(s); t {
	case InvoiceTypeSale, InvoiceTypePurchase:
		return t, nil
	}
	return "", fmt.Errorf("unknown invoice type %q", s)
}

type InvoiceStatus string

const (
	StatusDraft          InvoiceStatus = "draft"
	StatusPendingPayment InvoiceStatus = "pending_payment"
	StatusPaid           InvoiceStatus = "paid"
	StatusCancelled      InvoiceStatus = "cancelled"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch st := InvoiceStatus(s); st {
	case StatusDraft, StatusPendingPayment, StatusPaid, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown invoice status %q", s)
}

// StockAffecting reports whether invoices in this status move inventory.
func (s InvoiceStatus) StockAffecting() bool {
	return s != StatusDraft && s != StatusCancelled
}

type Invoice struct {
	ID            int64           `db:"id" json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	CustomerID    *int64          `db:"customer_id" json:"customer_id,omitempty"`
	Date          string          `db:"date" json:"date"`
	DueDate       *string         `db:"due_date" json:"due_date,omitempty"`
	Type          InvoiceType     `db:"type" json:"type"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	TaxRate       decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	TaxAmount     decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	FinalAmount   decimal.Decimal `db:"final_amount" json:"final_amount"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
	UpdatedAt     string          `db:"updated_at" json:"updated_at"`
}

type InvoiceItem struct {
	ID          int64           `db:"id" json:"id"`
	InvoiceID   int64           `db:"invoice_id" json:"invoice_id"`
	ProductID   *int64          `db:"product_id" json:"product_id,omitempty"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int64           `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
}
