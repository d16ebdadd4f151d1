// Package pricing derives cart totals from cart lines, the base delivery fee
// and a promotion result. All functions are pure; no IO happens here.
package pricing

import (
	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Subtotal sums price*quantity over all lines. Lines without a product
// snapshot contribute nothing; they cannot be priced.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		sum = sum.Add(line.Product.Price.Mul(line.Quantity))
	}
	return sum
}

// Compose computes the full totals breakdown. The grand total is clamped at
// zero: a discount larger than subtotal plus fee never produces a negative
// amount due.
func Compose(lines []domain.CartLine, baseDeliveryFee decimal.Decimal, promo domain.PromotionResult) Totals {
	subtotal := Subtotal(lines)

	fee := baseDeliveryFee
	if promo.FreeDelivery {
		fee = decimal.Zero
	}

	total := subtotal.Add(fee).Sub(promo.DiscountAmount)
	if total.Sign() < 0 {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    promo.DiscountAmount,
		Total:       total,
	}
}
