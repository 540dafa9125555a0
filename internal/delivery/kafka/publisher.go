package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/nrehman/cart-service/internal/domain"
	"github.com/nrehman/cart-service/internal/usecase"
)

// Publisher emits cart activity events, keyed by session id so all events
// for one session land on the same partition in order.
type Publisher struct {
	client *kgo.Client
}

func NewPublisher(client *kgo.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) CartUpdated(ctx context.Context, sessionID, action string, totals domain.CartTotals) error {
	payload := CartEventPayload{
		SchemaVersion:  1,
		EventID:        uuid.New().String(),
		EventType:      EventCartUpdated,
		SessionID:      sessionID,
		Action:         action,
		Subtotal:       totals.Subtotal.String(),
		DiscountAmount: totals.DiscountAmount.String(),
		Total:          totals.Total.String(),
		ItemCount:      totals.ItemCount,
		OccurredAt:     time.Now().UTC(),
	}
	return p.produce(ctx, TopicCartUpdated, sessionID, payload)
}

func (p *Publisher) PromoApplied(ctx context.Context, sessionID, code string) error {
	payload := CartEventPayload{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		EventType:     EventPromoApplied,
		SessionID:     sessionID,
		PromoCode:     code,
		OccurredAt:    time.Now().UTC(),
	}
	return p.produce(ctx, TopicPromoApplied, sessionID, payload)
}

func (p *Publisher) PromoRejected(ctx context.Context, sessionID, code string) error {
	payload := CartEventPayload{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		EventType:     EventPromoRejected,
		SessionID:     sessionID,
		PromoCode:     code,
		OccurredAt:    time.Now().UTC(),
	}
	return p.produce(ctx, TopicPromoRejected, sessionID, payload)
}

func (p *Publisher) produce(ctx context.Context, topic, key string, payload CartEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", topic, err)
	}
	return nil
}

var _ usecase.EventPublisher = (*Publisher)(nil)
