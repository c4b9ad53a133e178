package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"storeledger/m/domain"
)

// InvoiceFilter narrows ListInvoices. Zero values mean no restriction.
type InvoiceFilter struct {
	Type       domain.InvoiceType
	Status     domain.InvoiceStatus
	CustomerID int64
	Limit      int
	Offset     int
}

// InvoiceSummary is a list row: the header plus the customer's name when it still exists.
type InvoiceSummary struct {
	domain.Invoice
	CustomerName *string `db:"customer_name" json:"customer_name,omitempty"`
}

// InvoiceDetail is everything needed to show or print one invoice.
type InvoiceDetail struct {
	InvoiceSummary
	Customer *domain.Customer     `json:"customer,omitempty"`
	Items    []domain.InvoiceItem `json:"items"`
}

func (s *Store) ListInvoices(ctx context.Context, f InvoiceFilter) ([]InvoiceSummary, error) {
	var (
		args    []any
		clauses []string
	)
	if f.Type != "" {
		args = append(args, f.Type)
		clauses = append(clauses, "i.type = ?")
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "i.status = ?")
	}
	if f.CustomerID > 0 {
		args = append(args, f.CustomerID)
		clauses = append(clauses, "i.customer_id = ?")
	}

	query := `SELECT i.id, i.invoice_number, i.customer_id, i.date, i.due_date, i.type, i.status, i.total_amount,
                i.discount, i.tax_rate, i.tax_amount, i.final_amount, i.payment_method, i.notes, i.created_at,
                i.updated_at, c.name AS customer_name
                FROM invoices i
                LEFT JOIN customers c ON c.id = i.customer_id`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY i.date DESC, i.id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	invoices := []InvoiceSummary{}
	if err := s.db.SelectContext(ctx, &invoices, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*InvoiceDetail, error) {
	inv, err := getInvoice(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	detail := &InvoiceDetail{InvoiceSummary: InvoiceSummary{Invoice: *inv}}
	if inv.CustomerID != nil {
		customer, err := s.GetCustomer(ctx, *inv.CustomerID)
		if err == nil {
			detail.Customer = customer
			detail.CustomerName = &customer.Name
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if detail.Items, err = listItems(ctx, s.db, id); err != nil {
		return nil, fmt.Errorf("list items of invoice %d: %w", id, err)
	}
	return detail, nil
}

// InvoiceRegister lists invoices matching f together with their items.
func (s *Store) InvoiceRegister(ctx context.Context, f InvoiceFilter) ([]InvoiceDetail, error) {
	invoices, err := s.ListInvoices(ctx, f)
	if err != nil {
		return nil, err
	}
	register := make([]InvoiceDetail, len(invoices))
	if len(invoices) == 0 {
		return register, nil
	}

	ids := make([]int64, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}
	query, args, err := sqlx.In(`SELECT `+itemColumns+` FROM invoice_items WHERE invoice_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("prepare invoice items query: %w", err)
	}
	var items []domain.InvoiceItem
	if err := s.db.SelectContext(ctx, &items, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	byInvoice := make(map[int64][]domain.InvoiceItem)
	for _, item := range items {
		byInvoice[item.InvoiceID] = append(byInvoice[item.InvoiceID], item)
	}

	for i, inv := range invoices {
		register[i] = InvoiceDetail{InvoiceSummary: inv, Items: byInvoice[inv.ID]}
	}
	return register, nil
}
