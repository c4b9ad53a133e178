package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storeledger/m/domain"
)

type phase string

const (
	phaseValidating phase = "validating"
	phaseComputing  phase = "computing"
	phasePersisting phase = "persisting"
	phaseCommitted  phase = "committed"
	phaseRolledBack phase = "rolled_back"
)

// Coordinator runs invoice create, edit and delete as single transactions.
type Coordinator struct {
	store          Store
	settings       Settings
	defaultTaxRate decimal.Decimal
	now            func() time.Time
	log            zerolog.Logger
	recon          *Reconciler
}

type Option func(*Coordinator)

// WithClock sets the clock used to pick the numbering year.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// WithDefaultTaxRate is used when neither the request nor the settings store has a rate.
func WithDefaultTaxRate(rate decimal.Decimal) Option {
	return func(c *Coordinator) { c.defaultTaxRate = rate }
}

func New(store Store, settings Settings, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:          store,
		settings:       settings,
		defaultTaxRate: decimal.RequireFromString("0.09"),
		now:            time.Now,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recon = NewReconciler(c.log)
	return c
}

// CreateInvoice posts a new invoice and applies its stock effect. A lost race for the
// invoice number is retried once.
func (c *Coordinator) CreateInvoice(ctx context.Context, in InvoiceInput) (int64, error) {
	id, err := c.createOnce(ctx, in)
	var conflict *NumberConflictError
	if errors.As(err, &conflict) {
		c.log.Warn().Str("invoice_number", conflict.Number).Msg("invoice number taken, retrying")
		id, err = c.createOnce(ctx, in)
	}
	return id, err
}

func (c *Coordinator) createOnce(ctx context.Context, in InvoiceInput) (int64, error) {
	c.transition(phaseValidating, 0, "")
	in, err := normalize(in)
	if err != nil {
		return 0, err
	}
	taxRate := c.taxRate(ctx, in.TaxRate)
	year := c.now().Year()

	var (
		id     int64
		number string
	)
	err = c.store.WithinTx(ctx, func(tx Tx) error {
		items, err := c.resolveItems(ctx, tx, in, true)
		if err != nil {
			return err
		}

		c.transition(phaseComputing, 0, "")
		inv := buildInvoice(in, items, taxRate)

		c.transition(phasePersisting, 0, "")
		var seq int64
		number, seq, err = NextInvoiceNumber(ctx, tx, year)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		id, err = tx.InsertInvoice(ctx, inv)
		if errors.Is(err, domain.ErrDuplicate) {
			return &NumberConflictError{Number: number, Err: err}
		}
		if err != nil {
			return err
		}
		if err := tx.AdvanceSequence(ctx, year, seq); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, id, items); err != nil {
			return err
		}
		return c.recon.Apply(ctx, tx, items, inv.Type, inv.Status)
	})
	if err != nil {
		return 0, c.fail("create invoice", 0, number, err)
	}
	c.transition(phaseCommitted, id, number)
	return id, nil
}

// UpdateInvoice replaces the header and items of an invoice. The number never changes.
// Stock sufficiency is not rechecked; the floor at zero absorbs over-allocation.
func (c *Coordinator) UpdateInvoice(ctx context.Context, id int64, in InvoiceInput) error {
	c.transition(phaseValidating, id, "")
	in, err := normalize(in)
	if err != nil {
		return err
	}
	taxRate := c.taxRate(ctx, in.TaxRate)

	var number string
	err = c.store.WithinTx(ctx, func(tx Tx) error {
		prior, priorItems, err := loadInvoice(ctx, tx, id)
		if err != nil {
			return err
		}
		number = prior.InvoiceNumber

		items, err := c.resolveItems(ctx, tx, in, false)
		if err != nil {
			return err
		}

		c.transition(phaseComputing, id, number)
		inv := buildInvoice(in, items, taxRate)
		inv.ID = id
		inv.InvoiceNumber = prior.InvoiceNumber

		c.transition(phasePersisting, id, number)
		if err := c.recon.Revert(ctx, tx, priorItems, prior.Type, prior.Status); err != nil {
			return err
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := tx.UpdateInvoice(ctx, inv); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, id, items); err != nil {
			return err
		}
		return c.recon.Apply(ctx, tx, items, inv.Type, inv.Status)
	})
	if err != nil {
		return c.fail("update invoice", id, number, err)
	}
	c.transition(phaseCommitted, id, number)
	return nil
}

// DeleteInvoice removes an invoice and reverts the stock effect of its stored state.
func (c *Coordinator) DeleteInvoice(ctx context.Context, id int64) error {
	c.transition(phaseValidating, id, "")
	var number string
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		inv, items, err := loadInvoice(ctx, tx, id)
		if err != nil {
			return err
		}
		number = inv.InvoiceNumber

		c.transition(phasePersisting, id, number)
		if err := c.recon.Revert(ctx, tx, items, inv.Type, inv.Status); err != nil {
			return err
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.DeleteInvoice(ctx, id)
	})
	if err != nil {
		return c.fail("delete invoice", id, number, err)
	}
	c.transition(phaseCommitted, id, number)
	return nil
}

func loadInvoice(ctx context.Context, tx Tx, id int64) (*domain.Invoice, []domain.InvoiceItem, error) {
	inv, err := tx.GetInvoice(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, &NotFoundError{Entity: "invoice", ID: id}
	}
	if err != nil {
		return nil, nil, err
	}
	items, err := tx.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

// resolveItems checks references and snapshots product names. With checkStock a
// stock-affecting sale may not take more than is on hand, row by row.
func (c *Coordinator) resolveItems(ctx context.Context, tx Tx, in InvoiceInput, checkStock bool) ([]domain.InvoiceItem, error) {
	ok, err := tx.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Entity: "customer", ID: in.CustomerID}
	}

	mustCover := checkStock && in.Type == domain.InvoiceTypeSale && in.Status.StockAffecting()
	items := make([]domain.InvoiceItem, 0, len(in.Items))
	for i, line := range in.Items {
		item := domain.InvoiceItem{
			ProductName: line.ManualName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		if line.ProductID != nil {
			product, err := tx.FindProduct(ctx, *line.ProductID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &NotFoundError{Entity: "product", ID: *line.ProductID}
			}
			if err != nil {
				return nil, err
			}
			if mustCover && line.Quantity > product.Inventory {
				return nil, &InsufficientStockError{
					ProductName: product.Name,
					Row:         i + 1,
					Requested:   line.Quantity,
					Available:   product.Inventory,
				}
			}
			pid := product.ID
			item.ProductID = &pid
			item.ProductName = product.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func buildInvoice(in InvoiceInput, items []domain.InvoiceItem, taxRate decimal.Decimal) *domain.Invoice {
	lines := make([]Line, len(items))
	for i := range items {
		lines[i] = Line{Quantity: items[i].Quantity, UnitPrice: items[i].UnitPrice}
		items[i].TotalPrice = items[i].UnitPrice.Mul(decimal.NewFromInt(items[i].Quantity)).Round(2)
	}
	totals := ComputeTotals(lines, in.Discount, taxRate)

	customerID := in.CustomerID
	inv := &domain.Invoice{
		CustomerID:    &customerID,
		Date:          in.Date,
		Type:          in.Type,
		Status:        in.Status,
		TotalAmount:   totals.Subtotal,
		Discount:      in.Discount,
		TaxRate:       taxRate,
		TaxAmount:     totals.TaxAmount,
		FinalAmount:   totals.FinalAmount,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	if in.DueDate != "" {
		due := in.DueDate
		inv.DueDate = &due
	}
	return inv
}

// taxRate resolves the rate outside the transaction; SQLite runs a single connection.
func (c *Coordinator) taxRate(ctx context.Context, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	if c.settings != nil {
		rate, err := c.settings.TaxRate(ctx)
		if err == nil {
			return rate
		}
		c.log.Warn().Err(err).Msg("default tax rate unavailable, using configured fallback")
	}
	return c.defaultTaxRate
}

func (c *Coordinator) fail(op string, id int64, number string, err error) error {
	c.transition(phaseRolledBack, id, number)
	err = wrapPersistence(op, err)
	var persist *PersistenceError
	if errors.As(err, &persist) {
		c.log.Error().
			Err(persist.Err).
			Str("op", op).
			Int64("invoice_id", id).
			Str("invoice_number", number).
			Msg("invoice transaction failed")
	}
	return err
}

func (c *Coordinator) transition(p phase, id int64, number string) {
	c.log.Debug().
		Str("phase", string(p)).
		Int64("invoice_id", id).
		Str("invoice_number", number).
		Msg("invoice transaction")
}
