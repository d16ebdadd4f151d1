package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

type Repository interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, sessionID string, product domain.Product, quantity decimal.Decimal) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) error
	DeleteLine(ctx context.Context, sessionID, lineID string) error
	ClearSession(ctx context.Context, sessionID string) error
}
