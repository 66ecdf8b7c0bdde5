// Package ports defines repository and unit-of-work interfaces for the
// assignment engine. These contracts decouple the domain and application
// layers from infrastructure and make handlers testable with in-memory fakes.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
)

// CarrierRepository is the read-mostly store of carrier definitions.
// The engine only reads; Add exists for seeding and administration tooling.
type CarrierRepository interface {
	// Add persists a new carrier.
	Add(ctx context.Context, c *carrier.Carrier) error

	// Get retrieves a carrier by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	// GetActiveByTenant retrieves all active carriers configured for a tenant,
	// ordered by (priority, code) so results are stable across calls.
	GetActiveByTenant(ctx context.Context, tenantID kernel.UUID) ([]*carrier.Carrier, error)
}
