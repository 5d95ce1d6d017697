// Package storage provides order persistence implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Compile-time interface check.
var _ domain.OrderStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory order store. Safe for concurrent access.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory order store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]*domain.Order),
		log:    log,
	}
}

// Save persists an order. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving order %s (customer=%s, item=%s, total=%d)",
		order.ID, order.Customer, order.Selection.Item.Name, order.Total)
	s.orders[order.ID] = order
	return nil
}

// Load retrieves an order by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		s.log.Debug("order not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// List returns all orders, oldest first.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].PlacedAt.Before(out[j].PlacedAt)
	})
	s.log.Debug("listing orders, count=%d", len(out))
	return out, nil
}

// Takings returns the sum of all order totals.
func (s *MemoryStore) Takings(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := 0
	for _, o := range s.orders {
		sum += o.Total
	}
	return sum
}
