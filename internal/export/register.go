// Package export writes the invoice register as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"storeledger/m/domain"
	"storeledger/m/internal/store"
)

const (
	invoiceSheet = "صورتحساب ها"
	itemSheet    = "اقلام"
)

var typeLabels = map[domain.InvoiceType]string{
	domain.InvoiceTypeSale:     "فروش",
	domain.InvoiceTypePurchase: "خرید",
}

var statusLabels = map[domain.InvoiceStatus]string{
	domain.StatusDraft:          "پیش نویس",
	domain.StatusPendingPayment: "در انتظار پرداخت",
	domain.StatusPaid:           "پرداخت شده",
	domain.StatusCancelled:      "لغو شده",
}

var invoiceHeaders = []interface{}{
	"شماره صورتحساب", "مشتری", "تاریخ صدور", "سررسید", "نوع", "وضعیت",
	"جمع کل", "تخفیف", "نرخ مالیات", "مالیات", "مبلغ نهایی", "روش پرداخت",
}

var itemHeaders = []interface{}{"شماره صورتحساب", "ردیف", "کالا", "تعداد", "قیمت واحد", "جمع"}

// TypeLabel is the Persian display name of an invoice type.
func TypeLabel(t domain.InvoiceType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// StatusLabel is the Persian display name of an invoice status.
func StatusLabel(s domain.InvoiceStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// WriteRegister renders one row per invoice and one row per item on a second sheet.
func WriteRegister(w io.Writer, register []store.InvoiceDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(itemSheet); err != nil {
		return err
	}
	rtl := true
	for _, sheet := range []string{invoiceSheet, itemSheet} {
		if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(invoiceSheet, "A1", &invoiceHeaders); err != nil {
		return err
	}
	if err := f.SetSheetRow(itemSheet, "A1", &itemHeaders); err != nil {
		return err
	}

	itemRow := 2
	for i, inv := range register {
		row := []interface{}{
			inv.InvoiceNumber,
			deref(inv.CustomerName),
			inv.Date,
			deref(inv.DueDate),
			TypeLabel(inv.Type),
			StatusLabel(inv.Status),
			inv.TotalAmount.InexactFloat64(),
			inv.Discount.InexactFloat64(),
			inv.TaxRate.InexactFloat64(),
			inv.TaxAmount.InexactFloat64(),
			inv.FinalAmount.InexactFloat64(),
			inv.PaymentMethod,
		}
		if err := f.SetSheetRow(invoiceSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}

		for n, item := range inv.Items {
			line := []interface{}{
				inv.InvoiceNumber,
				n + 1,
				item.ProductName,
				item.Quantity,
				item.UnitPrice.InexactFloat64(),
				item.TotalPrice.InexactFloat64(),
			}
			if err := f.SetSheetRow(itemSheet, fmt.Sprintf("A%d", itemRow), &line); err != nil {
				return err
			}
			itemRow++
		}
	}

	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
