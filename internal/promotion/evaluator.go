// Package promotion computes reward eligibility from a cart subtotal and the
// configured tier table.
package promotion

import (
	"sort"

	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

// Evaluate derives the promotion outcome for the given subtotal. Disabled
// tiers never influence the result; an empty table yields no reward.
//
// Free delivery is granted once the subtotal reaches ANY enabled
// free-delivery threshold. The discount is the single largest rewardValue
// among enabled discount tiers whose threshold is met; qualifying discounts
// are never summed.
func Evaluate(subtotal decimal.Decimal, tiers []domain.PromotionTier) domain.PromotionResult {
	if subtotal.Sign() < 0 {
		subtotal = decimal.Zero
	}

	enabled := make([]domain.PromotionTier, 0, len(tiers))
	for _, t := range tiers {
		if t.IsEnabled {
			enabled = append(enabled, t)
		}
	}
	result := domain.PromotionResult{DiscountAmount: decimal.Zero, AmountToNext: decimal.Zero}
	if len(enabled) == 0 {
		return result
	}

	// Stable order makes tie-breaking deterministic regardless of how the
	// tier table was fetched.
	sort.SliceStable(enabled, func(i, j int) bool {
		if enabled[i].TierRank != enabled[j].TierRank {
			return enabled[i].TierRank < enabled[j].TierRank
		}
		return enabled[i].MinAmount.LessThan(enabled[j].MinAmount)
	})

	for i := range enabled {
		tier := enabled[i]
		reached := tier.MinAmount.LessThanOrEqual(subtotal)

		if reached {
			switch tier.RewardType {
			case domain.RewardFreeDelivery:
				result.FreeDelivery = true
			case domain.RewardDiscount:
				if tier.RewardValue.GreaterThan(result.DiscountAmount) {
					result.DiscountAmount = tier.RewardValue
				}
			}
			if result.CurrentTier == nil || tier.MinAmount.GreaterThan(result.CurrentTier.MinAmount) {
				result.CurrentTier = &enabled[i]
			}
			continue
		}

		if result.NextTier == nil || tier.MinAmount.LessThan(result.NextTier.MinAmount) {
			result.NextTier = &enabled[i]
		}
	}

	if result.NextTier != nil {
		remaining := result.NextTier.MinAmount.Sub(subtotal)
		if remaining.Sign() < 0 {
			remaining = decimal.Zero
		}
		result.AmountToNext = remaining
	}

	return result
}
