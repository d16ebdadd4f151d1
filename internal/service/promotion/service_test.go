package promotion

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

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

type stubTierRepo struct {
	tiers []domain.PromotionTier
	err   error
	calls int
}

func (s *stubTierRepo) ListTiers(_ context.Context) ([]domain.PromotionTier, error) {
	s.calls++
	return s.tiers, s.err
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[test] ", log.LstdFlags)
}

func TestTiersWithoutCache(t *testing.T) {
	repo := &stubTierRepo{tiers: []domain.PromotionTier{{ID: "t1", IsEnabled: true}}}
	svc := New(repo, nil, time.Minute, testLogger())

	tiers, err := svc.Tiers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tiers) != 1 || tiers[0].ID != "t1" {
		t.Fatalf("unexpected tiers %+v", tiers)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repo call, got %d", repo.calls)
	}
}

func TestTiersRepoError(t *testing.T) {
	repo := &stubTierRepo{err: errors.New("db down")}
	svc := New(repo, nil, time.Minute, testLogger())
	if _, err := svc.Tiers(context.Background()); err == nil || err.Error() != "db down" {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestEvaluateUsesTierTable(t *testing.T) {
	repo := &stubTierRepo{tiers: []domain.PromotionTier{
		{ID: "t1", TierRank: 1, MinAmount: dec("20000"), RewardType: domain.RewardDiscount, RewardValue: dec("1000"), IsEnabled: true},
		{ID: "t2", TierRank: 2, MinAmount: dec("50000"), RewardType: domain.RewardDiscount, RewardValue: dec("3000"), IsEnabled: true},
	}}
	svc := New(repo, nil, time.Minute, testLogger())

	result, err := svc.Evaluate(context.Background(), dec("60000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.DiscountAmount.Equal(dec("3000")) {
		t.Fatalf("expected discount 3000, got %s", result.DiscountAmount)
	}
}
