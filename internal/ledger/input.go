package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"storeledger/m/domain"
)

// InvoiceInput is the header and lines submitted for create and update.
type InvoiceInput struct {
	CustomerID    int64                `json:"customer_id" validate:"required,gt=0"`
	Date          string               `json:"date" validate:"required"`
	DueDate       string               `json:"due_date"`
	Type          domain.InvoiceType   `json:"type" validate:"required,oneof=sale purchase"`
	Status        domain.InvoiceStatus `json:"status" validate:"required,oneof=draft pending_payment paid cancelled"`
	PaymentMethod string               `json:"payment_method" validate:"max=100"`
	Notes         string               `json:"notes" validate:"max=2000"`
	Discount      decimal.Decimal      `json:"discount" validate:"gte=0"`
	// TaxRate overrides the configured default when set.
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	Items   []ItemInput      `json:"items" validate:"min=1,dive"`
}

// ItemInput is one line: either a catalog product or a manually named item.
type ItemInput struct {
	ProductID  *int64          `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	ManualName string          `json:"manual_name" validate:"required_without=ProductID,max=255"`
	Quantity   int64           `json:"quantity" validate:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006/1/2"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ParseDate accepts ISO dates and the slash form used by the old forms, returning YYYY-MM-DD.
func ParseDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Validate checks the validate tags on v and reports the first failure as a ValidationError.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return translate(err)
	}
	return nil
}

// normalize trims and validates the input, returning a copy with dates in canonical form.
func normalize(in InvoiceInput) (InvoiceInput, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.Notes = strings.TrimSpace(in.Notes)
	items := make([]ItemInput, len(in.Items))
	for i, item := range in.Items {
		item.ManualName = strings.TrimSpace(item.ManualName)
		items[i] = item
	}
	in.Items = items

	if err := validate.Struct(in); err != nil {
		return in, translate(err)
	}

	date, ok := ParseDate(in.Date)
	if !ok {
		return in, &ValidationError{Field: "date", Reason: "must be a date like 2006-01-02"}
	}
	in.Date = date
	if in.DueDate != "" {
		due, ok := ParseDate(in.DueDate)
		if !ok {
			return in, &ValidationError{Field: "due_date", Reason: "must be a date like 2006-01-02"}
		}
		in.DueDate = due
	}
	return in, nil
}

func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "invoice", Reason: err.Error()}
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "required_without":
		reason = "is required for items without a product"
	case "gt":
		reason = "must be greater than " + fe.Param()
	case "gte":
		reason = "must be at least " + fe.Param()
	case "lte":
		reason = "must be at most " + fe.Param()
	case "min":
		reason = fmt.Sprintf("needs at least %s entries", fe.Param())
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		reason = "must be a valid email address"
	case "oneof":
		reason = "must be one of: " + fe.Param()
	default:
		reason = "failed " + fe.Tag()
	}
	return &ValidationError{Field: field, Reason: reason}
}
