package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storeledger/m/domain"
)

const customerColumns = `id, code, name, phone, email, address, notes, join_date, created_at, updated_at`

func (s *Store) ListCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	sqlQuery := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		sqlQuery += ` WHERE LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?`
		args = append(args, like, like, like)
	}
	sqlQuery += ` ORDER BY name`
	if err := s.db.SelectContext(ctx, &customers, s.db.Rebind(sqlQuery), args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT `+customerColumns+` FROM customers WHERE id = ?`), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// CreateCustomer inserts c, generating a code when none is given. A taken code or
// email yields domain.ErrDuplicate.
func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) (int64, error) {
	if c.Code == nil {
		code := "C-" + strings.ToUpper(uuid.NewString()[:8])
		c.Code = &code
	}
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO customers (code, name, phone, email, address, notes, join_date)
                VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		c.Code, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.JoinDate).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("customer code or email: %w", domain.ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	c.ID = id
	return id, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE customers SET code = ?, name = ?, phone = ?, email = ?, address = ?,
                notes = ?, join_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		c.Code, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.JoinDate, c.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("customer code or email: %w", domain.ErrDuplicate)
	}
	return requireRow(res, err)
}

// DeleteCustomer removes the customer; their invoices remain with no customer.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
	return requireRow(res, err)
}
