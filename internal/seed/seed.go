package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Unit        string
	Price       string
	ImageURL    string
}

type tierSeed struct {
	Rank        int
	MinAmount   string
	RewardType  string
	RewardValue string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT
// for settings and name-keyed upserts for products.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{Name: "Tomatoes", Description: "Fresh local tomatoes", Unit: "kg", Price: "1750"},
		{Name: "Cucumbers", Description: "Greenhouse cucumbers", Unit: "kg", Price: "1250"},
		{Name: "Flatbread", Description: "Samoon, pack of 4", Unit: "piece", Price: "1000"},
		{Name: "Milk 1L", Description: "Whole milk", Unit: "piece", Price: "2500"},
		{Name: "Eggs (30)", Description: "Tray of 30 eggs", Unit: "piece", Price: "6500"},
		{Name: "Basmati Rice 5kg", Description: "Long grain", Unit: "piece", Price: "14500"},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	tiers := []tierSeed{
		{Rank: 1, MinAmount: "20000", RewardType: "discount", RewardValue: "1000"},
		{Rank: 2, MinAmount: "25000", RewardType: "free_delivery", RewardValue: "0"},
		{Rank: 3, MinAmount: "50000", RewardType: "discount", RewardValue: "3000"},
	}
	if err := replaceTiers(ctx, pool, tiers); err != nil {
		return fmt.Errorf("replace tiers: %w", err)
	}

	if _, err := pool.Exec(ctx, `
INSERT INTO settings (key, value)
VALUES ('base_delivery_fee', '3000')
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, unit, price, image_url)
SELECT $1, $2, $3, $4, $5
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	if _, err := pool.Exec(ctx, q, p.Name, p.Description, p.Unit, p.Price, p.ImageURL); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `
UPDATE products
SET description = $2, unit = $3, price = $4, image_url = $5
WHERE name = $1
`, p.Name, p.Description, p.Unit, p.Price, p.ImageURL)
	return err
}

func replaceTiers(ctx context.Context, pool *pgxpool.Pool, tiers []tierSeed) error {
	if _, err := pool.Exec(ctx, `DELETE FROM promotion_tiers`); err != nil {
		return err
	}
	for _, t := range tiers {
		if _, err := pool.Exec(ctx, `
INSERT INTO promotion_tiers (tier_rank, min_amount, reward_type, reward_value, is_enabled)
VALUES ($1, $2, $3, $4, TRUE)
`, t.Rank, t.MinAmount, t.RewardType, t.RewardValue); err != nil {
			return err
		}
	}
	return nil
}
