package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		lines    []Line
		discount string
		rate     string
		subtotal string
		tax      string
		final    string
	}{
		{
			name:     "single line with tax",
			lines:    []Line{{Quantity: 3, UnitPrice: dec("1000")}},
			discount: "0", rate: "0.09",
			subtotal: "3000", tax: "270", final: "3270",
		},
		{
			name:     "discount and rounding half away from zero",
			lines:    []Line{{Quantity: 1, UnitPrice: dec("0.70")}, {Quantity: 1, UnitPrice: dec("0.05")}},
			discount: "0.25", rate: "0.09",
			subtotal: "0.75", tax: "0.05", final: "0.55",
		},
		{
			name:     "discount exceeds subtotal",
			lines:    []Line{{Quantity: 4, UnitPrice: dec("20")}},
			discount: "100", rate: "0.09",
			subtotal: "80", tax: "-1.8", final: "-21.8",
		},
		{
			name:     "no tax",
			lines:    []Line{{Quantity: 7, UnitPrice: dec("3.333")}},
			discount: "0", rate: "0",
			subtotal: "23.33", tax: "0", final: "23.33",
		},
		{
			name:     "empty",
			discount: "0", rate: "0.09",
			subtotal: "0", tax: "0", final: "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.lines, dec(tc.discount), dec(tc.rate))
			assert.Equal(t, tc.subtotal, got.Subtotal.String(), "subtotal")
			assert.Equal(t, tc.tax, got.TaxAmount.String(), "tax")
			assert.Equal(t, tc.final, got.FinalAmount.String(), "final")
		})
	}
}

func TestComputeTotalsMatchesFinalAmountFormula(t *testing.T) {
	rate := dec("0.09")
	for qty := int64(1); qty <= 9; qty++ {
		for _, price := range []string{"0", "0.01", "1.15", "99.99", "1234.5"} {
			for _, discount := range []string{"0", "0.5", "3"} {
				lines := []Line{{Quantity: qty, UnitPrice: dec(price)}, {Quantity: 1, UnitPrice: dec("2.35")}}
				got := ComputeTotals(lines, dec(discount), rate)

				sum := dec(price).Mul(decimal.NewFromInt(qty)).Add(dec("2.35"))
				want := sum.Sub(dec(discount)).Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
				assert.True(t, want.Equal(got.FinalAmount), "qty=%d price=%s discount=%s: want %s got %s", qty, price, discount, want, got.FinalAmount)
			}
		}
	}
}
