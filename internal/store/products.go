package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storeledger/m/domain"
)

// ListProducts returns products whose name, code or category contains query.
func (s *Store) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products := []domain.Product{}
	sqlQuery := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		sqlQuery += ` WHERE LOWER(name) LIKE ? OR LOWER(COALESCE(code, '')) LIKE ? OR LOWER(category) LIKE ?`
		args = append(args, like, like, like)
	}
	sqlQuery += ` ORDER BY name`
	if err := s.db.SelectContext(ctx, &products, s.db.Rebind(sqlQuery), args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return getProduct(ctx, s.db, id)
}

// CreateProduct inserts p, generating a code when none is given.
func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (int64, error) {
	if p.Code == nil {
		code := "P-" + strings.ToUpper(uuid.NewString()[:8])
		p.Code = &code
	}
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO products (code, name, category, sell_price, buy_price, inventory, description, status)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		p.Code, p.Name, p.Category, p.SellPrice, p.BuyPrice, p.Inventory, p.Description, p.Status).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("product code %s: %w", *p.Code, domain.ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	p.ID = id
	return id, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE products SET code = ?, name = ?, category = ?, sell_price = ?, buy_price = ?,
                inventory = ?, description = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		p.Code, p.Name, p.Category, p.SellPrice, p.BuyPrice, p.Inventory, p.Description, p.Status, p.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("product code: %w", domain.ErrDuplicate)
	}
	return requireRow(res, err)
}

// DeleteProduct removes the product. Invoice items keep their name snapshot.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	return requireRow(res, err)
}
