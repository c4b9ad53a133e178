// Package printer renders a printable invoice as PDF.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"storeledger/m/domain"
	"storeledger/m/internal/store"
)

// FormatAmount renders whole currency units with thousands separators, e.g. "1,234,568 IRR".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	digits := amount.Abs().Round(0).StringFixed(0)
	var b strings.Builder
	if amount.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if symbol != "" {
		b.WriteString(" " + symbol)
	}
	return b.String()
}

var statusNames = map[domain.InvoiceStatus]string{
	domain.StatusDraft:          "Draft",
	domain.StatusPendingPayment: "Pending payment",
	domain.StatusPaid:           "Paid",
	domain.StatusCancelled:      "Cancelled",
}

// Render writes inv as a single A4 page. settings supplies the store header and
// currency symbol.
func Render(w io.Writer, inv *store.InvoiceDetail, settings map[string]string) error {
	symbol := settings[domain.SettingCurrencySymbol]
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(inv.InvoiceNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(settings[domain.SettingStoreName]), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, key := range []string{domain.SettingStoreAddress, domain.SettingStorePhone, domain.SettingStoreEmail} {
		if v := strings.TrimSpace(settings[key]); v != "" {
			pdf.CellFormat(0, 5, tr(v), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	title := "Sales Invoice"
	if inv.Type == domain.InvoiceTypePurchase {
		title = "Purchase Invoice"
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	meta := [][2]string{
		{"Invoice Number", inv.InvoiceNumber},
		{"Invoice Date", inv.Date},
		{"Status", statusNames[inv.Status]},
	}
	if inv.DueDate != nil {
		meta = append(meta, [2]string{"Due Date", *inv.DueDate})
	}
	if inv.Customer != nil {
		meta = append(meta, [2]string{"Bill To", inv.Customer.Name})
		if inv.Customer.Phone != "" {
			meta = append(meta, [2]string{"Phone", inv.Customer.Phone})
		}
	}
	if inv.PaymentMethod != "" {
		meta = append(meta, [2]string{"Payment Method", inv.PaymentMethod})
	}
	for _, m := range meta {
		pdf.CellFormat(40, 6, m[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(m[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{10, 80, 20, 40, 40}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"#", "Item", "Qty", "Unit Price", "Total"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range inv.Items {
		pdf.CellFormat(widths[0], 7, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(item.ProductName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprint(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, FormatAmount(item.UnitPrice, symbol), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, FormatAmount(item.TotalPrice, symbol), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	totals := [][2]string{
		{"Subtotal", FormatAmount(inv.TotalAmount, symbol)},
		{"Discount", FormatAmount(inv.Discount, symbol)},
		{fmt.Sprintf("Tax (%s%%)", inv.TaxRate.Mul(decimal.NewFromInt(100)).String()), FormatAmount(inv.TaxAmount, symbol)},
		{"Amount Due", FormatAmount(inv.FinalAmount, symbol)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 11)
		}
		pdf.CellFormat(150, 7, t[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, t[1], "", 1, "R", false, 0, "")
	}

	if notes := strings.TrimSpace(inv.Notes); notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr("Notes: "+notes), "", "L", false)
	}

	return pdf.Output(w)
}
