package orderControllers

import "strings"

// Fixed storefront pricing rules.
const (
	welcomePromoCode = "WELCOME10"
	welcomePromoRate = 0.10

	taxRate = 0.05

	freeDeliveryAbove = 499.0
	flatDeliveryFee   = 49.0
)

type PricedLine struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
}

// OrderTotals is the full pricing breakdown for a checkout.
type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// PromoDiscountRate returns the discount rate for a promo code.
// Matching is case-insensitive.
func PromoDiscountRate(code string) float64 {
	if strings.EqualFold(code, welcomePromoCode) {
		return welcomePromoRate
	}
	return 0
}

// ComputeTotals prices a set of cart lines: subtotal, promo discount, tax on
// the discounted subtotal, and the flat delivery fee waived at the
// free-delivery threshold.
func ComputeTotals(lines []PricedLine, promoCode string) OrderTotals {
	var t OrderTotals
	for _, l := range lines {
		t.Subtotal += l.UnitPrice * float64(l.Quantity)
	}

	t.Discount = t.Subtotal * PromoDiscountRate(promoCode)
	if t.Subtotal < freeDeliveryAbove {
		t.DeliveryFee = flatDeliveryFee
	}
	t.Tax = (t.Subtotal - t.Discount) * taxRate
	t.Total = t.Subtotal - t.Discount + t.Tax + t.DeliveryFee
	return t
}
