package domain

import "github.com/shopspring/decimal"

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

type Product struct {
	ID          int64               `db:"id" json:"id"`
	Code        *string             `db:"code" json:"code,omitempty"`
	Name        string              `db:"name" json:"name"`
	Category    string              `db:"category" json:"category"`
	SellPrice   decimal.Decimal     `db:"sell_price" json:"sell_price"`
	BuyPrice    decimal.NullDecimal `db:"buy_price" json:"buy_price"`
	Inventory   int64               `db:"inventory" json:"inventory"`
	Description string              `db:"description" json:"description"`
	Status      string              `db:"status" json:"status"`
	CreatedAt   string              `db:"created_at" json:"created_at"`
	UpdatedAt   string              `db:"updated_at" json:"updated_at"`
}
