package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"storeledger/m/domain"
)

// Delta is the signed inventory change an item implies for an invoice of the given
// type and status. Sales consume stock, purchases replenish it.
func Delta(item domain.InvoiceItem, typ domain.InvoiceType, status domain.InvoiceStatus) int64 {
	if item.ProductID == nil || !status.StockAffecting() {
		return 0
	}
	if typ == domain.InvoiceTypeSale {
		return -item.Quantity
	}
	return item.Quantity
}

// Reconciler moves product inventory in step with invoice state.
type Reconciler struct {
	log zerolog.Logger
}

func NewReconciler(log zerolog.Logger) *Reconciler {
	return &Reconciler{log: log}
}

// Apply adds the deltas of items, flooring each product at zero.
func (r *Reconciler) Apply(ctx context.Context, catalog ProductCatalog, items []domain.InvoiceItem, typ domain.InvoiceType, status domain.InvoiceStatus) error {
	return r.adjust(ctx, catalog, items, typ, status, false)
}

// Revert undoes previously applied deltas. It is not floored: stock consumed
// earlier must come back in full.
func (r *Reconciler) Revert(ctx context.Context, catalog ProductCatalog, items []domain.InvoiceItem, typ domain.InvoiceType, status domain.InvoiceStatus) error {
	return r.adjust(ctx, catalog, items, typ, status, true)
}

func (r *Reconciler) adjust(ctx context.Context, catalog ProductCatalog, items []domain.InvoiceItem, typ domain.InvoiceType, status domain.InvoiceStatus, revert bool) error {
	for _, item := range items {
		delta := Delta(item, typ, status)
		if delta == 0 {
			continue
		}
		if revert {
			delta = -delta
		}
		if err := catalog.AdjustInventory(ctx, *item.ProductID, delta, !revert); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &NotFoundError{Entity: "product", ID: *item.ProductID}
			}
			return fmt.Errorf("adjust inventory of product %d: %w", *item.ProductID, err)
		}
		r.log.Debug().
			Int64("product_id", *item.ProductID).
			Int64("delta", delta).
			Bool("revert", revert).
			Msg("inventory adjusted")
	}
	return nil
}
