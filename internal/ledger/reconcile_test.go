package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeledger/m/domain"
	"storeledger/m/internal/logger"
)

type adjustment struct {
	id    int64
	delta int64
	floor bool
}

type recordingCatalog struct {
	adjustments []adjustment
}

func (c *recordingCatalog) FindProduct(context.Context, int64) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (c *recordingCatalog) AdjustInventory(_ context.Context, id, delta int64, floor bool) error {
	if id == 404 {
		return domain.ErrNotFound
	}
	c.adjustments = append(c.adjustments, adjustment{id, delta, floor})
	return nil
}

func productItem(id, qty int64) domain.InvoiceItem {
	return domain.InvoiceItem{ProductID: &id, ProductName: "p", Quantity: qty}
}

func TestDelta(t *testing.T) {
	custom := domain.InvoiceItem{ProductName: "service", Quantity: 4}
	cases := []struct {
		name   string
		item   domain.InvoiceItem
		typ    domain.InvoiceType
		status domain.InvoiceStatus
		want   int64
	}{
		{"paid sale consumes", productItem(1, 3), domain.InvoiceTypeSale, domain.StatusPaid, -3},
		{"pending sale consumes", productItem(1, 3), domain.InvoiceTypeSale, domain.StatusPendingPayment, -3},
		{"paid purchase replenishes", productItem(1, 3), domain.InvoiceTypePurchase, domain.StatusPaid, 3},
		{"draft is inert", productItem(1, 3), domain.InvoiceTypeSale, domain.StatusDraft, 0},
		{"cancelled is inert", productItem(1, 3), domain.InvoiceTypePurchase, domain.StatusCancelled, 0},
		{"custom item is inert", custom, domain.InvoiceTypeSale, domain.StatusPaid, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Delta(tc.item, tc.typ, tc.status))
		})
	}
}

func TestReconcilerApplyAndRevert(t *testing.T) {
	ctx := context.Background()
	items := []domain.InvoiceItem{productItem(1, 2), {ProductName: "custom", Quantity: 9}, productItem(2, 5)}
	r := NewReconciler(logger.Nop())

	catalog := &recordingCatalog{}
	require.NoError(t, r.Apply(ctx, catalog, items, domain.InvoiceTypeSale, domain.StatusPaid))
	assert.Equal(t, []adjustment{{1, -2, true}, {2, -5, true}}, catalog.adjustments)

	catalog = &recordingCatalog{}
	require.NoError(t, r.Revert(ctx, catalog, items, domain.InvoiceTypeSale, domain.StatusPaid))
	assert.Equal(t, []adjustment{{1, 2, false}, {2, 5, false}}, catalog.adjustments)

	catalog = &recordingCatalog{}
	require.NoError(t, r.Revert(ctx, catalog, items, domain.InvoiceTypePurchase, domain.StatusDraft))
	assert.Empty(t, catalog.adjustments)
}

func TestReconcilerMissingProduct(t *testing.T) {
	err := NewReconciler(logger.Nop()).Apply(context.Background(), &recordingCatalog{},
		[]domain.InvoiceItem{productItem(404, 1)}, domain.InvoiceTypeSale, domain.StatusPaid)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(404), notFound.ID)
}
