package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storeledger/m/domain"
	"storeledger/m/internal/store"
)

func TestWriteRegister(t *testing.T) {
	customer := "Maryam"
	register := []store.InvoiceDetail{
		{
			InvoiceSummary: store.InvoiceSummary{
				Invoice: domain.Invoice{
					InvoiceNumber: "INV-2026-0001",
					Date:          "2026-04-02",
					Type:          domain.InvoiceTypeSale,
					Status:        domain.StatusPaid,
					TotalAmount:   decimal.NewFromInt(30),
					TaxRate:       decimal.RequireFromString("0.09"),
					TaxAmount:     decimal.RequireFromString("2.7"),
					FinalAmount:   decimal.RequireFromString("32.7"),
				},
				CustomerName: &customer,
			},
			Items: []domain.InvoiceItem{
				{ProductName: "Rice", Quantity: 3, UnitPrice: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(30)},
			},
		},
		{
			InvoiceSummary: store.InvoiceSummary{
				Invoice: domain.Invoice{
					InvoiceNumber: "INV-2026-0002",
					Date:          "2026-04-03",
					Type:          domain.InvoiceTypePurchase,
					Status:        domain.StatusDraft,
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRegister(&buf, register))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(invoiceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "شماره صورتحساب", rows[0][0])
	assert.Equal(t, []string{"INV-2026-0001", "Maryam", "2026-04-02", "", "فروش", "پرداخت شده"}, rows[1][:6])
	assert.Equal(t, "32.7", rows[1][10])
	assert.Equal(t, "خرید", rows[2][4])
	assert.Equal(t, "پیش نویس", rows[2][5])

	items, err := f.GetRows(itemSheet)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"INV-2026-0001", "1", "Rice", "3", "10", "30"}, items[1])
}

func TestLabelsFallBackToCode(t *testing.T) {
	assert.Equal(t, "در انتظار پرداخت", StatusLabel(domain.StatusPendingPayment))
	assert.Equal(t, "refund", TypeLabel("refund"))
}
