package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"pakety/internal/domain"
	settingsrepo "pakety/internal/repository/settings"
)

const feeCacheKey = "pakety:base_delivery_fee"

type Service struct {
	repo   settingsrepo.Repository
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func New(repo settingsrepo.Repository, cache *redis.Client, ttl time.Duration, logger *log.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// BaseDeliveryFee reads the flat delivery fee. A missing setting means the
// storefront delivers for free rather than failing checkout.
func (s *Service) BaseDeliveryFee(ctx context.Context) (decimal.Decimal, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, feeCacheKey).Result()
		if err == nil {
			if fee, perr := decimal.NewFromString(raw); perr == nil {
				return fee, nil
			}
		} else if err != redis.Nil {
			s.logger.Printf("fee cache read: %v", err)
		}
	}

	value, err := s.repo.Get(ctx, settingsrepo.BaseDeliveryFeeKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	fee, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s: %w", settingsrepo.BaseDeliveryFeeKey, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, feeCacheKey, fee.String(), s.ttl).Err(); err != nil {
			s.logger.Printf("fee cache write: %v", err)
		}
	}

	return fee, nil
}
