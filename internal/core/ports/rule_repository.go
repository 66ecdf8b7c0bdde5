package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/rule"
)

// RuleRepository is the read-mostly store of assignment rules.
// The engine only reads; Add exists for seeding and administration tooling.
type RuleRepository interface {
	// Add persists a new rule. The store assigns the creation sequence.
	Add(ctx context.Context, r *rule.Rule) error

	// GetActiveByTenantZone retrieves the active rules for a tenant and zone,
	// ordered by creation sequence so the engine's tie-break is reproducible.
	GetActiveByTenantZone(ctx context.Context, tenantID kernel.UUID, zone kernel.Zone) ([]*rule.Rule, error)
}
