package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeledger/m/domain"
	"storeledger/m/internal/database"
	"storeledger/m/internal/ledger"
	"storeledger/m/internal/logger"
	"storeledger/m/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))
	return New(db, logger.Nop())
}

func seedProduct(t *testing.T, s *Store, name string, inventory int64) int64 {
	t.Helper()
	id, err := s.CreateProduct(context.Background(), &domain.Product{
		Name:      name,
		SellPrice: decimal.RequireFromString("12.50"),
		Inventory: inventory,
	})
	require.NoError(t, err)
	return id
}

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedProduct(t, s, "Green Tea", 7)
	p, err := s.GetProduct(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p.Code)
	assert.Regexp(t, `^P-[0-9A-F]{8}$`, *p.Code)
	assert.Equal(t, domain.ProductActive, p.Status)
	assert.True(t, p.SellPrice.Equal(decimal.RequireFromString("12.5")))
	assert.False(t, p.BuyPrice.Valid)

	p.Name = "Black Tea"
	p.BuyPrice = decimal.NullDecimal{Decimal: decimal.RequireFromString("8"), Valid: true}
	require.NoError(t, s.UpdateProduct(ctx, p))

	found, err := s.ListProducts(ctx, "black")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Black Tea", found[0].Name)
	assert.True(t, found[0].BuyPrice.Decimal.Equal(decimal.NewFromInt(8)))

	dup := &domain.Product{Code: p.Code, Name: "Copy", SellPrice: decimal.Zero}
	_, err = s.CreateProduct(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, s.DeleteProduct(ctx, id))
	_, err = s.GetProduct(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, id), domain.ErrNotFound)
}

func TestCustomerDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	email := "sara@example.com"

	_, err := s.CreateCustomer(ctx, &domain.Customer{Name: "Sara", Email: &email})
	require.NoError(t, err)
	_, err = s.CreateCustomer(ctx, &domain.Customer{Name: "Other Sara", Email: &email})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	customers, err := s.ListCustomers(ctx, "sara")
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestAdjustInventory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seedProduct(t, s, "Soap", 2)

	err := s.WithinTx(ctx, func(tx ledger.Tx) error {
		if err := tx.AdjustInventory(ctx, id, -5, true); err != nil {
			return err
		}
		p, err := tx.FindProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.Inventory, "floored at zero")

		if err := tx.AdjustInventory(ctx, id, -3, false); err != nil {
			return err
		}
		p, err = tx.FindProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(-3), p.Inventory, "unfloored")

		return tx.AdjustInventory(ctx, 999, 1, true)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := s.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Inventory, "rolled back")
}

func TestSequenceNeverLowers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithinTx(ctx, func(tx ledger.Tx) error {
		require.NoError(t, tx.AdvanceSequence(ctx, 2026, 5))
		require.NoError(t, tx.AdvanceSequence(ctx, 2026, 3))
		hw, err := tx.SequenceHighWater(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, int64(5), hw)

		hw, err = tx.SequenceHighWater(ctx, 2025)
		require.NoError(t, err)
		assert.Zero(t, hw)
		return nil
	})
	require.NoError(t, err)
}

func TestInsertInvoiceDuplicateNumber(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	inv := &domain.Invoice{
		InvoiceNumber: "INV-2026-0001",
		Date:          "2026-01-10",
		Type:          domain.InvoiceTypeSale,
		Status:        domain.StatusDraft,
	}

	err := s.WithinTx(ctx, func(tx ledger.Tx) error {
		_, err := tx.InsertInvoice(ctx, inv)
		return err
	})
	require.NoError(t, err)

	err = s.WithinTx(ctx, func(tx ledger.Tx) error {
		_, err := tx.InsertInvoice(ctx, inv)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInvoiceQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	customerID, err := s.CreateCustomer(ctx, &domain.Customer{Name: "Ali"})
	require.NoError(t, err)
	productID := seedProduct(t, s, "Pen", 10)

	var saleID int64
	err = s.WithinTx(ctx, func(tx ledger.Tx) error {
		saleID, err = tx.InsertInvoice(ctx, &domain.Invoice{
			InvoiceNumber: "INV-2026-0001", CustomerID: &customerID, Date: "2026-02-01",
			Type: domain.InvoiceTypeSale, Status: domain.StatusPaid,
			TotalAmount: decimal.NewFromInt(25), FinalAmount: decimal.RequireFromString("27.25"),
		})
		if err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, saleID, []domain.InvoiceItem{
			{ProductID: &productID, ProductName: "Pen", Quantity: 2, UnitPrice: decimal.RequireFromString("12.5"), TotalPrice: decimal.NewFromInt(25)},
		}); err != nil {
			return err
		}
		_, err = tx.InsertInvoice(ctx, &domain.Invoice{
			InvoiceNumber: "INV-2026-0002", Date: "2026-02-02",
			Type: domain.InvoiceTypePurchase, Status: domain.StatusDraft,
		})
		return err
	})
	require.NoError(t, err)

	all, err := s.ListInvoices(ctx, InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "INV-2026-0002", all[0].InvoiceNumber)

	sales, err := s.ListInvoices(ctx, InvoiceFilter{Type: domain.InvoiceTypeSale})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.NotNil(t, sales[0].CustomerName)
	assert.Equal(t, "Ali", *sales[0].CustomerName)

	page, err := s.ListInvoices(ctx, InvoiceFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, saleID, page[0].ID)

	detail, err := s.GetInvoice(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, int64(2), detail.Items[0].Quantity)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Ali", detail.Customer.Name)
	assert.True(t, detail.FinalAmount.Equal(decimal.RequireFromString("27.25")))

	register, err := s.InvoiceRegister(ctx, InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, register, 2)
	assert.Empty(t, register[0].Items)
	assert.Len(t, register[1].Items, 1)

	_, err = s.GetInvoice(ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSettingsAndTaxRate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rate, err := s.TaxRate(ctx)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.09")))

	require.NoError(t, s.UpdateSettings(ctx, map[string]string{
		domain.SettingDefaultTaxRate: "0.1",
		domain.SettingStoreName:      "Corner Shop",
	}))
	rate, err = s.TaxRate(ctx)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.1")))

	all, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", all[domain.SettingStoreName])

	_, err = s.Setting(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
