package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"pakety/internal/domain"
	"pakety/internal/pricing"
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
	tiers       tierProvider
	fees        feeProvider
}

type cartRepo interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, sessionID string, product domain.Product, quantity decimal.Decimal) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) error
	DeleteLine(ctx context.Context, sessionID, lineID string) error
	ClearSession(ctx context.Context, sessionID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type tierProvider interface {
	Tiers(ctx context.Context) ([]domain.PromotionTier, error)
	Evaluate(ctx context.Context, subtotal decimal.Decimal) (domain.PromotionResult, error)
}

type feeProvider interface {
	BaseDeliveryFee(ctx context.Context) (decimal.Decimal, error)
}

func New(repo cartRepo, productRepo productRepo, tiers tierProvider, fees feeProvider) *Service {
	return &Service{repo: repo, productRepo: productRepo, tiers: tiers, fees: fees}
}

// Summary is the cart plus its derived totals and promotion state, the shape
// the storefront renders on the cart page.
type Summary struct {
	Lines     []domain.CartLine      `json:"lines"`
	Totals    pricing.Totals         `json:"totals"`
	Promotion domain.PromotionResult `json:"promotion"`
}

func (s *Service) List(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *Service) Add(ctx context.Context, sessionID, productID string, quantity decimal.Decimal) (*domain.CartLine, error) {
	if quantity.Sign() <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, domain.ErrProductUnavailable
	}
	return s.repo.AddLine(ctx, sessionID, *product, quantity)
}

// UpdateQuantity sets a line's quantity; non-positive quantities remove the
// line, mirroring the repository semantics.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) error {
	return s.repo.SetQuantity(ctx, sessionID, lineID, quantity)
}

func (s *Service) Remove(ctx context.Context, sessionID, lineID string) error {
	return s.repo.DeleteLine(ctx, sessionID, lineID)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.ClearSession(ctx, sessionID)
}

// Summarize recomputes totals from authoritative state. Promotion evaluation
// and fee composition are pure; only the reads hit the database.
func (s *Service) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	lines, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := pricing.Subtotal(lines)
	promo, err := s.tiers.Evaluate(ctx, subtotal)
	if err != nil {
		return nil, err
	}
	fee, err := s.fees.BaseDeliveryFee(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Lines:     lines,
		Totals:    pricing.Compose(lines, fee, promo),
		Promotion: promo,
	}, nil
}
