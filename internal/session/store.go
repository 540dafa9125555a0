package session

import (
	"context"

	"github.com/nrehman/cart-service/internal/domain"
)

// Store holds the authoritative cart snapshot per session. An unknown session
// resolves to the empty cart; carts live only as long as the session.
type Store interface {
	Get(ctx context.Context, sessionID string) (domain.CartState, error)
	Put(ctx context.Context, sessionID string, state domain.CartState) error
	Delete(ctx context.Context, sessionID string) error
}
