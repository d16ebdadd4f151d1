package promotion

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListTiers(ctx context.Context) ([]domain.PromotionTier, error) {
	const q = `
SELECT id::text, tier_rank, min_amount::text, reward_type, reward_value::text, is_enabled
FROM promotion_tiers
ORDER BY tier_rank ASC, min_amount ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PromotionTier
	for rows.Next() {
		var (
			tier        domain.PromotionTier
			minAmount   string
			rewardValue string
		)
		if err := rows.Scan(
			&tier.ID,
			&tier.TierRank,
			&minAmount,
			&tier.RewardType,
			&rewardValue,
			&tier.IsEnabled,
		); err != nil {
			return nil, err
		}
		if tier.MinAmount, err = decimal.NewFromString(minAmount); err != nil {
			return nil, err
		}
		if tier.RewardValue, err = decimal.NewFromString(rewardValue); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tiers, nil
}
