package ports

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// ErrConcurrencyConflict is returned by Update when the order changed since it
// was loaded: the optimistic version check found no row to update. Callers
// surface this as a retryable conflict, never as silent success.
var ErrConcurrencyConflict = errors.New("order was modified concurrently")

// OrderRepository is the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, o *order.Order) error

	// Get retrieves an order with its current snapshot and version.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists changes guarded by the aggregate's loaded version
	// (compare-and-swap). Returns ErrConcurrencyConflict when the version
	// no longer matches, e.g. an override racing a lifecycle transition.
	Update(ctx context.Context, o *order.Order) error
}
