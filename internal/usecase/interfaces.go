package usecase

import (
	"context"

	"github.com/nrehman/cart-service/internal/domain"
)

// EventPublisher emits cart activity events. Publishing is best-effort: the
// service logs failures and never surfaces them to the caller.
type EventPublisher interface {
	CartUpdated(ctx context.Context, sessionID, action string, totals domain.CartTotals) error
	PromoApplied(ctx context.Context, sessionID, code string) error
	PromoRejected(ctx context.Context, sessionID, code string) error
}
