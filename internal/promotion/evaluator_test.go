package promotion

import (
	"testing"

	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluateEmptyTiers(t *testing.T) {
	got := Evaluate(dec("50000"), nil)
	if got.FreeDelivery {
		t.Fatalf("expected no free delivery")
	}
	if !got.DiscountAmount.IsZero() {
		t.Fatalf("expected zero discount, got %s", got.DiscountAmount)
	}
	if got.CurrentTier != nil || got.NextTier != nil {
		t.Fatalf("expected no tiers in result")
	}
}

func TestEvaluatePicksLargestRewardNotSum(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("20000"), RewardType: domain.RewardDiscount, RewardValue: dec("1000"), IsEnabled: true},
		{ID: "t2", TierRank: 2, MinAmount: dec("50000"), RewardType: domain.RewardDiscount, RewardValue: dec("3000"), IsEnabled: true},
	}
	got := Evaluate(dec("60000"), tiers)
	if !got.DiscountAmount.Equal(dec("3000")) {
		t.Fatalf("expected discount 3000, got %s", got.DiscountAmount)
	}
}

func TestEvaluateLargestRewardValueWinsOverThreshold(t *testing.T) {
	// A lower-threshold tier carrying the bigger reward still wins.
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("10000"), RewardType: domain.RewardDiscount, RewardValue: dec("5000"), IsEnabled: true},
		{ID: "t2", TierRank: 2, MinAmount: dec("30000"), RewardType: domain.RewardDiscount, RewardValue: dec("2000"), IsEnabled: true},
	}
	got := Evaluate(dec("40000"), tiers)
	if !got.DiscountAmount.Equal(dec("5000")) {
		t.Fatalf("expected discount 5000, got %s", got.DiscountAmount)
	}
}

func TestEvaluateDisabledTierIgnored(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("10000"), RewardType: domain.RewardFreeDelivery, IsEnabled: false},
	}
	got := Evaluate(dec("20000"), tiers)
	if got.FreeDelivery {
		t.Fatalf("disabled tier must not grant free delivery")
	}
	if got.NextTier != nil {
		t.Fatalf("disabled tier must not appear as next tier")
	}
}

func TestEvaluateFreeDeliveryAnyThreshold(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("15000"), RewardType: domain.RewardFreeDelivery, IsEnabled: true},
		{ID: "t2", TierRank: 2, MinAmount: dec("90000"), RewardType: domain.RewardFreeDelivery, IsEnabled: true},
	}
	got := Evaluate(dec("20000"), tiers)
	if !got.FreeDelivery {
		t.Fatalf("expected free delivery after the lowest threshold")
	}
}

func TestEvaluateThresholdIsInclusive(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("25000"), RewardType: domain.RewardFreeDelivery, IsEnabled: true},
	}
	if got := Evaluate(dec("25000"), tiers); !got.FreeDelivery {
		t.Fatalf("threshold must be inclusive")
	}
	if got := Evaluate(dec("24999.99"), tiers); got.FreeDelivery {
		t.Fatalf("subtotal below threshold must not qualify")
	}
}

func TestEvaluateNextTierProgress(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("20000"), RewardType: domain.RewardDiscount, RewardValue: dec("1000"), IsEnabled: true},
		{ID: "t2", TierRank: 2, MinAmount: dec("50000"), RewardType: domain.RewardDiscount, RewardValue: dec("3000"), IsEnabled: true},
	}
	got := Evaluate(dec("30000"), tiers)
	if got.CurrentTier == nil || got.CurrentTier.ID != "t1" {
		t.Fatalf("expected current tier t1, got %+v", got.CurrentTier)
	}
	if got.NextTier == nil || got.NextTier.ID != "t2" {
		t.Fatalf("expected next tier t2, got %+v", got.NextTier)
	}
	if !got.AmountToNext.Equal(dec("20000")) {
		t.Fatalf("expected 20000 to next tier, got %s", got.AmountToNext)
	}
}

func TestEvaluateAllTiersReached(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("20000"), RewardType: domain.RewardDiscount, RewardValue: dec("1000"), IsEnabled: true},
	}
	got := Evaluate(dec("100000"), tiers)
	if got.NextTier != nil {
		t.Fatalf("expected no next tier, got %+v", got.NextTier)
	}
	if !got.AmountToNext.IsZero() {
		t.Fatalf("expected zero amount to next, got %s", got.AmountToNext)
	}
}

func TestEvaluateNegativeSubtotalClamped(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("0"), RewardType: domain.RewardDiscount, RewardValue: dec("500"), IsEnabled: true},
	}
	got := Evaluate(dec("-10"), tiers)
	if !got.DiscountAmount.Equal(dec("500")) {
		t.Fatalf("negative subtotal should clamp to zero, got discount %s", got.DiscountAmount)
	}
}

func TestEvaluateNeverExceedsMaxQualifyingReward(t *testing.T) {
	tiers := []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("1000"), RewardType: domain.RewardDiscount, RewardValue: dec("100"), IsEnabled: true},
		{ID: "t2", TierRank: 2, MinAmount: dec("2000"), RewardType: domain.RewardDiscount, RewardValue: dec("250"), IsEnabled: true},
		{ID: "t3", TierRank: 3, MinAmount: dec("9000"), RewardType: domain.RewardDiscount, RewardValue: dec("900"), IsEnabled: true},
	}
	for _, subtotal := range []string{"0", "999", "1000", "1500", "2000", "5000", "9000", "20000"} {
		got := Evaluate(dec(subtotal), tiers)
		max := decimal.Zero
		for _, tier := range tiers {
			if tier.MinAmount.LessThanOrEqual(dec(subtotal)) && tier.RewardValue.GreaterThan(max) {
				max = tier.RewardValue
			}
		}
		if got.DiscountAmount.GreaterThan(max) {
			t.Fatalf("subtotal %s: discount %s exceeds max qualifying reward %s", subtotal, got.DiscountAmount, max)
		}
	}
}
