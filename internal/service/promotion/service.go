package promotion

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"pakety/internal/domain"
	"pakety/internal/promotion"
)

const tierCacheKey = "pakety:promotion_tiers"

type Service struct {
	repo   tierRepo
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

type tierRepo interface {
	ListTiers(ctx context.Context) ([]domain.PromotionTier, error)
}

// New builds the promotion service. cache may be nil, in which case every
// read goes to the repository.
func New(repo tierRepo, cache *redis.Client, ttl time.Duration, logger *log.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Tiers returns the full tier table, serving from redis when possible.
// Cache failures fall through to the repository; they are logged, never
// surfaced.
func (s *Service) Tiers(ctx context.Context) ([]domain.PromotionTier, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, tierCacheKey).Bytes()
		if err == nil {
			var tiers []domain.PromotionTier
			if jerr := json.Unmarshal(raw, &tiers); jerr == nil {
				return tiers, nil
			}
		} else if err != redis.Nil {
			s.logger.Printf("tier cache read: %v", err)
		}
	}

	tiers, err := s.repo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, jerr := json.Marshal(tiers); jerr == nil {
			if err := s.cache.Set(ctx, tierCacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Printf("tier cache write: %v", err)
			}
		}
	}

	return tiers, nil
}

// Evaluate computes the promotion outcome for a subtotal against the current
// tier table.
func (s *Service) Evaluate(ctx context.Context, subtotal decimal.Decimal) (domain.PromotionResult, error) {
	tiers, err := s.Tiers(ctx)
	if err != nil {
		return domain.PromotionResult{}, err
	}
	return promotion.Evaluate(subtotal, tiers), nil
}
