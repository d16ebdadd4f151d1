package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Snapshot returns the denormalized view embedded in cart lines.
func (p Product) Snapshot() *ProductSnapshot {
	return &ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}
