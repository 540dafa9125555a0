package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nrehman/cart-service/internal/domain"
	"github.com/nrehman/cart-service/internal/session"
)

type mockCatalog struct {
	listProductsFn   func(ctx context.Context) ([]domain.Product, error)
	getProductFn     func(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	listPromoCodesFn func(ctx context.Context) ([]domain.PromoCode, error)
}

func (m *mockCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	if m.getProductFn != nil {
		return m.getProductFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalog) ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	if m.listPromoCodesFn != nil {
		return m.listPromoCodesFn(ctx)
	}
	return nil, nil
}

type recordedEvent struct {
	kind   string
	action string
	code   string
}

type recordingPublisher struct {
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) CartUpdated(_ context.Context, _, action string, _ domain.CartTotals) error {
	p.events = append(p.events, recordedEvent{kind: "cart_updated", action: action})
	return p.err
}

func (p *recordingPublisher) PromoApplied(_ context.Context, _, code string) error {
	p.events = append(p.events, recordedEvent{kind: "promo_applied", code: code})
	return p.err
}

func (p *recordingPublisher) PromoRejected(_ context.Context, _, code string) error {
	p.events = append(p.events, recordedEvent{kind: "promo_rejected", code: code})
	return p.err
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func catalogWithProduct(id, priceStr string) *mockCatalog {
	return &mockCatalog{
		getProductFn: func(_ context.Context, got domain.ProductID) (*domain.Product, error) {
			if got != domain.ProductID(id) {
				return nil, domain.ErrProductNotFound
			}
			return &domain.Product{ID: domain.ProductID(id), Name: "test product", UnitPrice: price(priceStr)}, nil
		},
		listPromoCodesFn: func(_ context.Context) ([]domain.PromoCode, error) {
			return []domain.PromoCode{
				{Code: "SAVE15", Discount: domain.Discount{Type: domain.DiscountPercentage, Value: price("15")}},
			}, nil
		},
	}
}

func newTestService(catalog *mockCatalog, publisher *recordingPublisher) *CartService {
	return NewCartService(catalog, session.NewMemoryStore(), publisher, zerolog.Nop())
}

func TestAddItemComputesTotals(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})

	view, err := svc.AddItem(context.Background(), "s1", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !view.Totals.Subtotal.Equal(price("21.98")) {
		t.Errorf("expected subtotal 21.98, got %s", view.Totals.Subtotal)
	}
	if view.Totals.ItemCount != 2 {
		t.Errorf("expected item count 2, got %d", view.Totals.ItemCount)
	}
}

func TestAddItemTwiceMergesLine(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "p1", 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	view, err := svc.AddItem(ctx, "s1", "p1", 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(view.State.Items) != 1 || view.State.Items[0].Quantity != 5 {
		t.Fatalf("expected one line with quantity 5, got %+v", view.State.Items)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})

	for _, qty := range []int{0, -1} {
		if _, err := svc.AddItem(context.Background(), "s1", "p1", qty); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})

	if _, err := svc.AddItem(context.Background(), "s1", "missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "p1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.UpdateQuantity(ctx, "s1", "p1", 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(view.State.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", view.State.Items)
	}
}

func TestApplyPromoCodeSuccess(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newTestService(catalogWithProduct("p1", "100.00"), publisher)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "p1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.ApplyPromoCode(ctx, "s1", " save15 ")
	if err != nil {
		t.Fatalf("apply promo: %v", err)
	}

	if view.State.Promo == nil || view.State.Promo.Code != "SAVE15" {
		t.Fatalf("expected SAVE15 applied, got %+v", view.State.Promo)
	}
	if !view.Totals.DiscountAmount.Equal(price("15")) || !view.Totals.Total.Equal(price("85")) {
		t.Fatalf("expected discount 15 / total 85, got %+v", view.Totals)
	}

	last := publisher.events[len(publisher.events)-1]
	if last.kind != "promo_applied" || last.code != "SAVE15" {
		t.Fatalf("expected promo_applied event, got %+v", last)
	}
}

func TestApplyPromoCodeUnknown(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newTestService(catalogWithProduct("p1", "100.00"), publisher)

	_, err := svc.ApplyPromoCode(context.Background(), "s1", "NOPE")
	if !errors.Is(err, domain.ErrPromoNotFound) {
		t.Fatalf("expected ErrPromoNotFound, got %v", err)
	}

	if len(publisher.events) != 1 || publisher.events[0].kind != "promo_rejected" {
		t.Fatalf("expected a promo_rejected event, got %+v", publisher.events)
	}
}

func TestRemovePromoCode(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "100.00"), &recordingPublisher{})
	ctx := context.Background()

	if _, err := svc.ApplyPromoCode(ctx, "s1", "SAVE15"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	view, err := svc.RemovePromoCode(ctx, "s1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	if view.State.Promo != nil {
		t.Fatalf("expected no promo, got %+v", view.State.Promo)
	}
}

func TestClearCartResetsEverything(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "p1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ApplyPromoCode(ctx, "s1", "SAVE15"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	view, err := svc.ClearCart(ctx, "s1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(view.State.Items) != 0 || view.State.Promo != nil {
		t.Fatalf("expected canonical empty state, got %+v", view.State)
	}
	if !view.Totals.Total.IsZero() || view.Totals.ItemCount != 0 {
		t.Fatalf("expected zero totals, got %+v", view.Totals)
	}
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestService(catalogWithProduct("p1", "10.99"), publisher)

	if _, err := svc.AddItem(context.Background(), "s1", "p1", 1); err != nil {
		t.Fatalf("expected add to succeed despite publish failure, got %v", err)
	}
}

func TestGetCartUnknownSessionIsEmpty(t *testing.T) {
	svc := newTestService(catalogWithProduct("p1", "10.99"), &recordingPublisher{})

	view, err := svc.GetCart(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.State.Items) != 0 || !view.Totals.Subtotal.IsZero() {
		t.Fatalf("expected empty cart view, got %+v", view)
	}
}
