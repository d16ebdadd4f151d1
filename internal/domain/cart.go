package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one row in a session's cart. Quantity is decimal because
// weight-based products sell in fractional units (0.5 kg of tomatoes).
type CartLine struct {
	ID        string           `json:"id"`
	SessionID string           `json:"-"`
	ProductID string           `json:"productId"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Product   *ProductSnapshot `json:"product,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ProductSnapshot is the denormalized product view attached to a cart line
// at read time. It is owned by the server; clients treat it as read-only.
type ProductSnapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
}
