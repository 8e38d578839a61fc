package ports

import (
	"context"

	"cybake-bridge/internal/features/orders/domain"
)

// OrderProvider defines the interface for reading and tagging source orders.
// This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// GetOrder retrieves an order by its global id. Returns domain.ErrOrderNotFound when absent.
	GetOrder(ctx context.Context, gid string) (*domain.Order, error)
	// AddTags attaches tags to the order.
	AddTags(ctx context.Context, gid string, tags ...string) error
	// RemoveTags detaches tags from the order.
	RemoveTags(ctx context.Context, gid string, tags ...string) error
}
