package ledger

import "github.com/shopspring/decimal"

// Line is the part of an invoice item that affects money.
type Line struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	FinalAmount decimal.Decimal
}

// ComputeTotals derives subtotal, tax and final amount. A discount larger than the
// subtotal yields negative amounts; bounds are the caller's business.
func ComputeTotals(lines []Line, discount, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	afterDiscount := subtotal.Sub(discount)
	tax := afterDiscount.Mul(taxRate)
	return Totals{
		Subtotal:    subtotal.Round(2),
		TaxAmount:   tax.Round(2),
		FinalAmount: afterDiscount.Add(tax).Round(2),
	}
}
