package domain

import (
	"context"
	"time"
)

// Order is a placed order as the shop remembers it.
type Order struct {
	ID        string
	Customer  string
	Selection Selection
	Total     int
	PlacedAt  time.Time
}

// OrderStore persists placed orders.
type OrderStore interface {
	Save(ctx context.Context, order *Order) error
	Load(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}
