package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNumbers struct {
	last      string
	count     int64
	highWater int64
	pattern   string
	err       error
}

func (f *fakeNumbers) LastInvoiceNumber(_ context.Context, pattern string) (string, error) {
	f.pattern = pattern
	return f.last, f.err
}

func (f *fakeNumbers) CountInvoicesInYear(context.Context, int) (int64, error) {
	return f.count, nil
}

func (f *fakeNumbers) SequenceHighWater(context.Context, int) (int64, error) {
	return f.highWater, nil
}

func TestParseSequence(t *testing.T) {
	cases := map[string]struct {
		number string
		seq    int64
		ok     bool
	}{
		"well formed":   {"INV-2026-0042", 42, true},
		"wide suffix":   {"INV-2026-12345", 12345, true},
		"other year":    {"INV-2025-0042", 0, false},
		"extra part":    {"INV-2026-0042-A", 0, false},
		"non numeric":   {"INV-2026-00A2", 0, false},
		"signed suffix": {"INV-2026-+42", 0, false},
		"empty":         {"", 0, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			seq, ok := ParseSequence(tc.number, 2026)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.seq, seq)
		})
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("continues from newest number", func(t *testing.T) {
		src := &fakeNumbers{last: "INV-2026-0009", count: 3}
		number, seq, err := NextInvoiceNumber(ctx, src, 2026)
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-0010", number)
		assert.Equal(t, int64(10), seq)
		assert.Equal(t, "INV-2026-%", src.pattern)
	})

	t.Run("first invoice of the year", func(t *testing.T) {
		number, _, err := NextInvoiceNumber(ctx, &fakeNumbers{}, 2026)
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-0001", number)
	})

	t.Run("malformed legacy number falls back to count", func(t *testing.T) {
		number, _, err := NextInvoiceNumber(ctx, &fakeNumbers{last: "INV-2026-X7", count: 6}, 2026)
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-0007", number)
	})

	t.Run("never below high water", func(t *testing.T) {
		number, seq, err := NextInvoiceNumber(ctx, &fakeNumbers{last: "INV-2026-0004", highWater: 5}, 2026)
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-0006", number)
		assert.Equal(t, int64(6), seq)
	})

	t.Run("storage error", func(t *testing.T) {
		_, _, err := NextInvoiceNumber(ctx, &fakeNumbers{err: errors.New("disk gone")}, 2026)
		assert.ErrorContains(t, err, "disk gone")
	})
}
