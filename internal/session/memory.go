package session

import (
	"context"
	"sync"

	"github.com/nrehman/cart-service/internal/domain"
)

// MemoryStore keeps carts in-process. Snapshots are deep-copied on the way in
// and out so callers never share mutable state with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]domain.CartState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]domain.CartState)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (domain.CartState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.carts[sessionID]
	if !ok {
		return domain.EmptyCart(), nil
	}
	return state.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, state domain.CartState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = state.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

var _ Store = (*MemoryStore)(nil)
