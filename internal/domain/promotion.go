package domain

import "github.com/shopspring/decimal"

type RewardType string

const (
	RewardFreeDelivery RewardType = "free_delivery"
	RewardDiscount     RewardType = "discount"
)

// PromotionTier is a configured subtotal threshold that unlocks a reward.
// Tiers are admin-configured and read-only from this core's perspective.
type PromotionTier struct {
	ID          string          `json:"id"`
	TierRank    int             `json:"tierRank"`
	MinAmount   decimal.Decimal `json:"minAmount"`
	RewardType  RewardType      `json:"rewardType"`
	RewardValue decimal.Decimal `json:"rewardValue"`
	IsEnabled   bool            `json:"isEnabled"`
}

// PromotionResult is derived from a subtotal and the tier table. It is never
// persisted.
type PromotionResult struct {
	FreeDelivery   bool            `json:"freeDelivery"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	CurrentTier    *PromotionTier  `json:"currentTier,omitempty"`
	NextTier       *PromotionTier  `json:"nextTier,omitempty"`
	AmountToNext   decimal.Decimal `json:"amountToNext"`
}
