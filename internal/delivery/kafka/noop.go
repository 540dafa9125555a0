package kafka

import (
	"context"

	"github.com/nrehman/cart-service/internal/domain"
	"github.com/nrehman/cart-service/internal/usecase"
)

// NoopPublisher stands in when the event stream is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) CartUpdated(context.Context, string, string, domain.CartTotals) error {
	return nil
}

func (NoopPublisher) PromoApplied(context.Context, string, string) error {
	return nil
}

func (NoopPublisher) PromoRejected(context.Context, string, string) error {
	return nil
}

var _ usecase.EventPublisher = NoopPublisher{}
