// Package cartstore holds the client-side cart state: an in-memory cache of
// the remote cart that mutates optimistically and reconciles against the
// server on failure. The server is always the source of truth; local state
// may be briefly inconsistent while a mutation is in flight.
package cartstore

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"pakety/internal/domain"
	"pakety/internal/pricing"
	"pakety/internal/promotion"
)

// Remote is the cart API collaborator the store reconciles against.
type Remote interface {
	FetchLines(ctx context.Context) ([]domain.CartLine, error)
	AddLine(ctx context.Context, productID string, quantity decimal.Decimal) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID string, quantity decimal.Decimal) error
	RemoveLine(ctx context.Context, lineID string) error
	ClearCart(ctx context.Context) error
	FetchTiers(ctx context.Context) ([]domain.PromotionTier, error)
	FetchDeliveryFee(ctx context.Context) (decimal.Decimal, error)
}

// Store is explicitly constructed and initialized by the composition root;
// there is no package-level instance.
type Store struct {
	remote       Remote
	onChange     func()
	onAddSuccess func(productID string)

	mu        sync.Mutex
	lines     []domain.CartLine
	tiers     []domain.PromotionTier
	baseFee   decimal.Decimal
	loading   bool
	mutating  int
	loadGen   uint64
	updateSeq map[string]uint64
}

type Option func(*Store)

// WithOnChange registers a callback invoked after every visible state
// change, for UI subscribers.
func WithOnChange(fn func()) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithOnAddSuccess registers a callback invoked after a confirmed add, e.g.
// an "added to cart" toast.
func WithOnAddSuccess(fn func(productID string)) Option {
	return func(s *Store) { s.onAddSuccess = fn }
}

func New(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote:    remote,
		baseFee:   decimal.Zero,
		updateSeq: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init is the explicit lifecycle call: fetch the tier table and delivery fee
// once, then load the authoritative cart.
func (s *Store) Init(ctx context.Context) error {
	if err := s.RefreshPricing(ctx); err != nil {
		return err
	}
	return s.Load(ctx)
}

// RefreshPricing re-fetches the promotion tiers and base delivery fee.
func (s *Store) RefreshPricing(ctx context.Context) error {
	tiers, err := s.remote.FetchTiers(ctx)
	if err != nil {
		return err
	}
	fee, err := s.remote.FetchDeliveryFee(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tiers = tiers
	s.baseFee = fee
	s.mu.Unlock()
	s.notify()
	return nil
}

// Load replaces local state wholesale with the remote line list. Overlapping
// loads are safe: each load takes a generation token and only the newest
// generation may publish its result.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.loading = true
	s.mu.Unlock()

	lines, err := s.remote.FetchLines(ctx)

	s.mu.Lock()
	if gen == s.loadGen {
		s.loading = false
		if err == nil {
			s.lines = lines
		}
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// mutate is the shared optimistic-mutation sequence: apply runs under the
// lock and may abort before anything leaves the process, then the remote
// call confirms. On failure local state is reconciled with a reload, except
// for ErrSuperseded, where a newer call owns the outcome.
func (s *Store) mutate(ctx context.Context, apply func() error, remoteCall func(context.Context) error) error {
	s.mu.Lock()
	if err := apply(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mutating++
	s.mu.Unlock()
	s.notify()

	err := remoteCall(ctx)

	s.mu.Lock()
	s.mutating--
	s.mu.Unlock()

	if err != nil && !errors.Is(err, domain.ErrSuperseded) {
		s.rollback(ctx)
	}
	return err
}

// AddLine adds quantity of a product. An existing line is incremented
// optimistically with exact decimal arithmetic; a brand-new product stays
// invisible until the server returns a priced snapshot, since a line without
// one cannot be rendered. A confirmed add fires the success callback even if
// the follow-up reload fails; the reload keeps denormalized product data
// consistent and its error surfaces on its own.
func (s *Store) AddLine(ctx context.Context, productID string, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return domain.ErrInvalidQuantity
	}

	err := s.mutate(ctx, func() error {
		if idx := s.indexByProduct(productID); idx >= 0 {
			s.lines[idx].Quantity = s.lines[idx].Quantity.Add(quantity)
		}
		return nil
	}, func(ctx context.Context) error {
		_, err := s.remote.AddLine(ctx, productID, quantity)
		return err
	})
	if err != nil {
		return err
	}

	if s.onAddSuccess != nil {
		s.onAddSuccess(productID)
	}
	return s.Load(ctx)
}

// UpdateQuantity sets a line's quantity optimistically. In-flight updates for
// the same line are superseded by newer ones: each call takes a sequence
// token and only the newest call may publish its remote outcome. A
// superseded call returns ErrSuperseded and leaves state to the newer call.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return domain.ErrInvalidQuantity
	}

	var token uint64
	return s.mutate(ctx, func() error {
		idx := s.indexByLine(lineID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		s.updateSeq[lineID]++
		token = s.updateSeq[lineID]
		s.lines[idx].Quantity = quantity
		return nil
	}, func(ctx context.Context) error {
		err := s.remote.UpdateQuantity(ctx, lineID, quantity)
		s.mu.Lock()
		superseded := s.updateSeq[lineID] != token
		s.mu.Unlock()
		if superseded {
			return domain.ErrSuperseded
		}
		return err
	})
}

// RemoveLine deletes a line optimistically, then confirms with the server.
func (s *Store) RemoveLine(ctx context.Context, lineID string) error {
	return s.mutate(ctx, func() error {
		idx := s.indexByLine(lineID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		return nil
	}, func(ctx context.Context) error {
		return s.remote.RemoveLine(ctx, lineID)
	})
}

// Clear empties the cart optimistically, then confirms with the server.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.lines = nil
		return nil
	}, func(ctx context.Context) error {
		return s.remote.ClearCart(ctx)
	})
}

// Lines returns a copy of the current local lines in stable order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalCount is the number of distinct lines, not summed quantities: the
// cart badge shows item variety, not units.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsMutating reports whether any mutation is still in flight.
func (s *Store) IsMutating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutating > 0
}

// Promotion evaluates the tier table against the current local subtotal.
func (s *Store) Promotion() domain.PromotionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return promotion.Evaluate(pricing.Subtotal(s.lines), s.tiers)
}

// Totals composes subtotal, delivery fee, discount and grand total from
// current local state.
func (s *Store) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	promo := promotion.Evaluate(pricing.Subtotal(s.lines), s.tiers)
	return pricing.Compose(s.lines, s.baseFee, promo)
}

// rollback discards whatever optimistic change is in place by re-fetching
// authoritative state. A failed reload is not surfaced; the caller already
// has the mutation error and re-issuing the action reconciles again.
func (s *Store) rollback(ctx context.Context) {
	_ = s.Load(ctx)
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Store) indexByProduct(productID string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) indexByLine(lineID string) int {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}
