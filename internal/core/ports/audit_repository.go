package ports

import (
	"context"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/kernel"
)

// AuditRepository is the append-only store of assignment audit entries.
// The engine writes and never reads its own entries back; GetByOrder serves
// the administrative read side only.
type AuditRepository interface {
	// Append persists a new audit entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *audit.Entry) error

	// GetByOrder retrieves the audit trail of an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Entry, error)
}
