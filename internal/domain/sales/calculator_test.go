package sales

import (
	"errors"
	"testing"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineTotal(t *testing.T) {
	t.Run("weight times rate plus charges times quantity", func(t *testing.T) {
		total, err := ComputeLineTotal(d("10"), d("5000"), d("300"), d("0"), 2)
		require.NoError(t, err)
		assert.True(t, total.Equal(d("100600")), "got %s", total)
	})

	t.Run("keeps fractional precision", func(t *testing.T) {
		total, err := ComputeLineTotal(d("3.333"), d("6123.45"), d("0"), d("0.5"), 1)
		require.NoError(t, err)
		assert.True(t, total.Equal(d("20409.95885")), "got %s", total)
	})

	tests := []struct {
		name     string
		weight   string
		rate     string
		making   string
		wastage  string
		quantity int
		field    string
	}{
		{"zero weight", "0", "5000", "0", "0", 1, "weight"},
		{"negative weight", "-1", "5000", "0", "0", 1, "weight"},
		{"zero rate", "10", "0", "0", "0", 1, "rate"},
		{"negative making charge", "10", "5000", "-1", "0", 1, "making_charge"},
		{"negative wastage charge", "10", "5000", "0", "-0.01", 1, "wastage_charge"},
		{"zero quantity", "10", "5000", "0", "0", 0, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLineTotal(d(tt.weight), d(tt.rate), d(tt.making), d(tt.wastage), tt.quantity)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidLineItem))
			assert.True(t, errors.Is(err, shared.ErrValidation))

			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{Total: d("100600")},
		{Total: d("2499.995")},
	}

	t.Run("applies discount then tax", func(t *testing.T) {
		totals, err := ComputeTotals(items, d("1000"), d("3"))
		require.NoError(t, err)

		assert.True(t, totals.Subtotal.Equal(d("103100")), "subtotal %s", totals.Subtotal)
		assert.True(t, totals.DiscountAmount.Equal(d("1000")))
		assert.True(t, totals.TaxAmount.Equal(d("3063")), "tax %s", totals.TaxAmount)
		assert.True(t, totals.TotalAmount.Equal(d("105163")), "total %s", totals.TotalAmount)
	})

	t.Run("total equals subtotal minus discount plus tax", func(t *testing.T) {
		totals, err := ComputeTotals(items, d("123.456"), d("2.75"))
		require.NoError(t, err)
		expected := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount)
		assert.True(t, totals.TotalAmount.Equal(expected))
	})

	t.Run("no items gives zero totals", func(t *testing.T) {
		totals, err := ComputeTotals(nil, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, totals.TotalAmount.IsZero())
	})

	t.Run("discount equal to subtotal is allowed", func(t *testing.T) {
		totals, err := ComputeTotals([]LineItem{{Total: d("500")}}, d("500"), d("5"))
		require.NoError(t, err)
		assert.True(t, totals.TotalAmount.IsZero())
	})

	t.Run("discount above subtotal is rejected", func(t *testing.T) {
		_, err := ComputeTotals([]LineItem{{Total: d("500")}}, d("600"), decimal.Zero)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidDiscount))
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("negative discount is rejected", func(t *testing.T) {
		_, err := ComputeTotals(items, d("-1"), decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("tax percentage above 100 is rejected", func(t *testing.T) {
		_, err := ComputeTotals(items, decimal.Zero, d("100.01"))
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestDiscountFromPercentage(t *testing.T) {
	amount, err := DiscountFromPercentage(d("1999.99"), d("10"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("200")), "got %s", amount)

	_, err = DiscountFromPercentage(d("100"), d("101"))
	assert.Error(t, err)

	assert.True(t, PercentageOf(d("25"), d("200")).Equal(d("12.5")))
	assert.True(t, PercentageOf(d("25"), decimal.Zero).IsZero())
}

func TestComputeExchange(t *testing.T) {
	t.Run("customer pays the difference", func(t *testing.T) {
		ex, err := ComputeExchange(d("10"), d("5000"), d("60000"))
		require.NoError(t, err)
		assert.True(t, ex.OldValue.Equal(d("50000")))
		assert.True(t, ex.Difference.Equal(d("10000")))
		assert.True(t, ex.CustomerOwes())
	})

	t.Run("shop pays the difference", func(t *testing.T) {
		ex, err := ComputeExchange(d("20"), d("5000"), d("60000"))
		require.NoError(t, err)
		assert.True(t, ex.Difference.Equal(d("-40000")))
		assert.False(t, ex.CustomerOwes())
	})

	t.Run("zero difference is owed by nobody", func(t *testing.T) {
		ex, err := ComputeExchange(d("12"), d("5000"), d("60000"))
		require.NoError(t, err)
		assert.True(t, ex.Difference.IsZero())
		assert.True(t, ex.CustomerOwes())
	})

	t.Run("rejects non-positive old weight", func(t *testing.T) {
		_, err := ComputeExchange(d("0"), d("5000"), d("60000"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidExchange))
	})

	t.Run("rejects negative old rate", func(t *testing.T) {
		_, err := ComputeExchange(d("1"), d("-5"), d("60000"))
		assert.True(t, errors.Is(err, shared.ErrInvalidExchange))
	})
}
