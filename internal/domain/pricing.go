package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Totals sums quantities and line totals of items.
func Totals(items []CartItem) (int, float64) {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(decimal.NewFromFloat(item.LineTotal))
	}
	return count, total.Round(2).InexactFloat64()
}

func discountFactor(percent float64) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
}

// OriginalUnitPrice back-computes the undiscounted unit price from the stored
// line total. ok is false when the line cannot be inverted: a discount of 100%
// or more, or a non-positive quantity.
func (i CartItem) OriginalUnitPrice() (price decimal.Decimal, ok bool) {
	factor := discountFactor(i.DiscountPercent)
	if !factor.IsPositive() || i.Quantity < 1 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(i.LineTotal).
		Div(factor).
		Div(decimal.NewFromInt(int64(i.Quantity))), true
}

// withQuantity reprices the line for quantity q from its original unit price.
// Lines that cannot be inverted are priced at zero.
func (i CartItem) withQuantity(q int, now time.Time) CartItem {
	unit, ok := i.OriginalUnitPrice()
	i.Quantity = q
	i.AddedAt = now
	if !ok {
		i.LineTotal = 0
		return i
	}
	i.LineTotal = unit.
		Mul(discountFactor(i.DiscountPercent)).
		Mul(decimal.NewFromInt(int64(q))).
		Round(2).
		InexactFloat64()
	return i
}
