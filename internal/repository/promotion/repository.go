package promotion

import (
	"context"

	"pakety/internal/domain"
)

type Repository interface {
	ListTiers(ctx context.Context) ([]domain.PromotionTier, error)
}
