package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nrehman/cart-service/internal/domain"
	"github.com/nrehman/cart-service/internal/repository"
	"github.com/nrehman/cart-service/internal/session"
)

// CartView pairs a cart snapshot with its derived totals.
type CartView struct {
	State  domain.CartState
	Totals domain.CartTotals
}

const (
	actionItemAdded       = "item_added"
	actionItemRemoved     = "item_removed"
	actionQuantityUpdated = "quantity_updated"
	actionPromoApplied    = "promo_applied"
	actionPromoRemoved    = "promo_removed"
	actionCartCleared     = "cart_cleared"
)

// CartService orchestrates the cart core: it resolves products and promos
// against the catalog, applies pure transitions to the session's cart state,
// and recomputes totals for every returned view.
type CartService struct {
	catalog  repository.Catalog
	sessions session.Store
	events   EventPublisher
	log      zerolog.Logger
}

func NewCartService(catalog repository.Catalog, sessions session.Store, events EventPublisher, log zerolog.Logger) *CartService {
	return &CartService{
		catalog:  catalog,
		sessions: sessions,
		events:   events,
		log:      log,
	}
}

func (s *CartService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return viewOf(state), nil
}

// AddItem rejects non-positive quantities before the reducer runs; product
// resolution happens here so the core never sees an unknown product id.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID domain.ProductID, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, sessionID, actionItemAdded, domain.AddItem{Product: *product, Quantity: quantity})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID domain.ProductID) (*CartView, error) {
	return s.apply(ctx, sessionID, actionItemRemoved, domain.RemoveItem{ProductID: productID})
}

// UpdateQuantity sets an absolute quantity; zero or below removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID domain.ProductID, quantity int) (*CartView, error) {
	return s.apply(ctx, sessionID, actionQuantityUpdated, domain.UpdateQuantity{ProductID: productID, Quantity: quantity})
}

func (s *CartService) ApplyPromoCode(ctx context.Context, sessionID, code string) (*CartView, error) {
	promos, err := s.catalog.ListPromoCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load promo catalog: %w", err)
	}

	promo := domain.ValidatePromoCode(code, promos)
	if promo == nil {
		if err := s.events.PromoRejected(ctx, sessionID, domain.NormalizePromoCode(code)); err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("promo rejected event publish failed")
		}
		return nil, domain.ErrPromoNotFound
	}

	view, err := s.apply(ctx, sessionID, actionPromoApplied, domain.ApplyPromo{Promo: *promo})
	if err != nil {
		return nil, err
	}
	if err := s.events.PromoApplied(ctx, sessionID, promo.Code); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("promo applied event publish failed")
	}
	return view, nil
}

func (s *CartService) RemovePromoCode(ctx context.Context, sessionID string) (*CartView, error) {
	return s.apply(ctx, sessionID, actionPromoRemoved, domain.RemovePromo{})
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	return s.apply(ctx, sessionID, actionCartCleared, domain.ClearCart{})
}

func (s *CartService) apply(ctx context.Context, sessionID, action string, transition domain.Action) (*CartView, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	next := domain.Reduce(state, transition)
	if err := s.sessions.Put(ctx, sessionID, next); err != nil {
		return nil, fmt.Errorf("store cart: %w", err)
	}

	view := viewOf(next)
	if err := s.events.CartUpdated(ctx, sessionID, action, view.Totals); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Str("action", action).Msg("cart event publish failed")
	}
	return view, nil
}

func viewOf(state domain.CartState) *CartView {
	return &CartView{
		State:  state,
		Totals: domain.CalculateTotals(state),
	}
}
