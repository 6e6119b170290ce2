package sales

import (
	"fmt"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept on document amounts
const MoneyScale int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds an amount to MoneyScale places, half away from zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ComputeLineTotal returns (weight × rate + making + wastage) × quantity.
// The result is not rounded; rounding happens once on document totals.
func ComputeLineTotal(weight, rate, makingCharge, wastageCharge decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if !weight.IsPositive() {
		return decimal.Zero, shared.NewInvalidLineItemError("weight", "Weight must be greater than zero")
	}
	if !rate.IsPositive() {
		return decimal.Zero, shared.NewInvalidLineItemError("rate", "Rate must be greater than zero")
	}
	if makingCharge.IsNegative() {
		return decimal.Zero, shared.NewInvalidLineItemError("making_charge", "Making charge cannot be negative")
	}
	if wastageCharge.IsNegative() {
		return decimal.Zero, shared.NewInvalidLineItemError("wastage_charge", "Wastage charge cannot be negative")
	}
	if quantity < 1 {
		return decimal.Zero, shared.NewInvalidLineItemError("quantity", "Quantity must be at least 1")
	}

	unit := weight.Mul(rate).Add(makingCharge).Add(wastageCharge)
	return unit.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Totals is the monetary summary of a document
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeTotals aggregates line totals into subtotal, tax and grand total:
//
//	subtotal = Σ item.Total
//	tax      = round2((subtotal − discount) × taxPercentage / 100)
//	total    = subtotal − discount + tax
//
// A discount larger than the subtotal fails with InvalidDiscount.
func ComputeTotals(items []LineItem, discountAmount, taxPercentage decimal.Decimal) (Totals, error) {
	if discountAmount.IsNegative() {
		return Totals{}, shared.NewValidationError("discount_amount", "Discount cannot be negative")
	}
	if err := validatePercentage("tax_percentage", taxPercentage); err != nil {
		return Totals{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}
	subtotal = RoundMoney(subtotal)

	discount := RoundMoney(discountAmount)
	if discount.GreaterThan(subtotal) {
		return Totals{}, shared.NewInvalidDiscountError(discountAmount, subtotal)
	}

	taxable := subtotal.Sub(discount)
	tax := RoundMoney(taxable.Mul(taxPercentage).Div(hundred))

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    taxable.Add(tax),
	}, nil
}

// DiscountFromPercentage converts a discount percentage of subtotal into an amount
func DiscountFromPercentage(subtotal, percentage decimal.Decimal) (decimal.Decimal, error) {
	if err := validatePercentage("discount_percentage", percentage); err != nil {
		return decimal.Zero, err
	}
	return RoundMoney(subtotal.Mul(percentage).Div(hundred)), nil
}

// PercentageOf returns part as a percentage of whole, rounded to MoneyScale
func PercentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return RoundMoney(part.Mul(hundred).Div(whole))
}

// Exchange is the value differential of an old-material exchange
type Exchange struct {
	OldValue   decimal.Decimal
	Difference decimal.Decimal
}

// CustomerOwes reports whether the customer pays the shop the difference
func (e Exchange) CustomerOwes() bool {
	return !e.Difference.IsNegative()
}

// ComputeExchange values surrendered old material against the new items.
// A non-negative difference is owed by the customer, a negative one by the shop.
func ComputeExchange(oldWeight, oldRate, newItemsTotal decimal.Decimal) (Exchange, error) {
	if !oldWeight.IsPositive() {
		return Exchange{}, shared.NewInvalidExchangeError("old_material_weight", "Old material weight must be greater than zero")
	}
	if oldRate.IsNegative() {
		return Exchange{}, shared.NewInvalidExchangeError("old_material_rate", "Old material rate cannot be negative")
	}

	oldValue := RoundMoney(oldWeight.Mul(oldRate))
	return Exchange{
		OldValue:   oldValue,
		Difference: RoundMoney(newItemsTotal.Sub(oldValue)),
	}, nil
}

func validatePercentage(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return shared.NewValidationError(field, fmt.Sprintf("Percentage must be between 0 and 100, got %s", pct))
	}
	return nil
}
