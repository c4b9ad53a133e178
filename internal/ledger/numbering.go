package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "INV"

// FormatInvoiceNumber renders INV-{year}-{seq:04d}.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", numberPrefix, year, seq)
}

// ParseSequence extracts the sequence suffix of a number issued in year.
func ParseSequence(number string, year int) (int64, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != numberPrefix || parts[1] != strconv.Itoa(year) {
		return 0, false
	}
	if parts[2] == "" || strings.TrimLeft(parts[2], "0123456789") != "" {
		return 0, false
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// NextInvoiceNumber picks the next number for year. The newest well-formed number
// wins; legacy or missing numbers fall back to the count of invoices dated in year.
// The result never goes below the year's high-water mark, so deleted numbers are not
// handed out again. Uniqueness is still up to the storage constraint.
func NextInvoiceNumber(ctx context.Context, src NumberSource, year int) (string, int64, error) {
	last, err := src.LastInvoiceNumber(ctx, fmt.Sprintf("%s-%d-%%", numberPrefix, year))
	if err != nil {
		return "", 0, fmt.Errorf("last invoice number: %w", err)
	}

	seq, ok := ParseSequence(last, year)
	if ok {
		seq++
	} else {
		count, err := src.CountInvoicesInYear(ctx, year)
		if err != nil {
			return "", 0, fmt.Errorf("count invoices: %w", err)
		}
		seq = count + 1
	}

	highWater, err := src.SequenceHighWater(ctx, year)
	if err != nil {
		return "", 0, fmt.Errorf("sequence high water: %w", err)
	}
	if seq <= highWater {
		seq = highWater + 1
	}

	return FormatInvoiceNumber(year, seq), seq, nil
}
