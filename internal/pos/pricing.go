package pos

// Totals is the priced view of a cart with an optional voucher applied.
type Totals struct {
	Subtotal int64
	Discount int64
	Total    int64
}

// ComputeTotals prices a subtotal against an optional promotion.
//
// Percent discounts round half-up on integer basis-point arithmetic, so
// "10%" of 15 is 2 and never drifts the way float rounding would. Fixed
// discounts apply verbatim and may exceed the subtotal; the floor on Total
// is what keeps the sale from going negative, not a cap on the discount.
func ComputeTotals(subtotal int64, promo *Promotion) Totals {
	var discount int64
	if promo != nil {
		switch promo.Type {
		case PromotionPercent:
			discount = (subtotal*promo.Value + 5000) / 10000
		case PromotionFixed:
			discount = promo.Value
		}
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return Totals{Subtotal: subtotal, Discount: discount, Total: total}
}
