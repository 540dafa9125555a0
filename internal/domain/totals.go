package domain

import "github.com/shopspring/decimal"

// CalculateTotals derives totals from a cart snapshot. Monetary values are
// rounded at each step they are finalized: per-line subtotal, cart subtotal,
// discount amount, total. The discount is clamped so it never exceeds the
// subtotal and the total never goes negative.
func CalculateTotals(state CartState) CartTotals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range state.Items {
		subtotal = subtotal.Add(item.Subtotal())
		count += item.Quantity
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if state.Promo != nil {
		discount = discountAmount(state.Promo.Discount, subtotal)
	}

	total := subtotal.Sub(discount).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return CartTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          total,
		ItemCount:      count,
	}
}

func discountAmount(d Discount, subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Type {
	case DiscountPercentage:
		amount = subtotal.Mul(d.Value).Div(hundred)
	case DiscountFixed:
		amount = d.Value
	default:
		// unknown kinds are refused at catalog load; a stray one discounts nothing
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return amount.Round(2)
}
