package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nrehman/cart-service/internal/domain"
)

// RedisStore keeps carts in Redis under a session TTL. The TTL bounds the
// session lifetime; expired carts come back as the empty cart.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:session:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (domain.CartState, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.EmptyCart(), nil
	}
	if err != nil {
		return domain.CartState{}, fmt.Errorf("get cart: %w", err)
	}

	var state domain.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.CartState{}, fmt.Errorf("decode cart: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, state domain.CartState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
