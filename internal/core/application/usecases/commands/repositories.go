// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CarrierRepoFactory provides access to the carrier repository within a transaction.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// RuleRepoFactory provides access to the rule repository within a transaction.
	RuleRepoFactory interface {
		RuleRepository() ports.RuleRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OverrideUoW manages transactions for manual courier overrides:
	// the order aggregate plus the carrier being validated for eligibility.
	OverrideUoW interface {
		TxManager
		OrderRepoFactory
		CarrierRepoFactory
	}

	// OverrideUoWFactory creates new override unit of work instances.
	OverrideUoWFactory interface {
		Create() OverrideUoW
	}

	// AssignmentUoW manages transactions for order creation with automatic
	// assignment: the order aggregate plus the tenant's carriers and rules.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		CarrierRepoFactory
		RuleRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)

// AuditRecorder records assignment audit entries after a command commits.
// Recording is best-effort: implementations must absorb storage failures
// (buffering for retry) rather than failing the command that produced the
// entry, so Record returns nothing.
type AuditRecorder interface {
	Record(ctx context.Context, entry *audit.Entry)
}
