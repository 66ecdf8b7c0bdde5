package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
)

// systemActor marks audit entries produced by the automatic assignment.
const systemActor = "system"

// CreateOrderCommandHandler handles order creation with automatic courier
// assignment. The order is persisted together with its courier snapshot; when
// no courier can be resolved the whole creation aborts, so an order without a
// courier never exists.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, recorder)
//	cmd, _ := NewCreateOrderCommand(orderID, tenantID, "local", 3.5, 2500, "cod", "560001")
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoCourierAvailable) {
//	    // surface as unprocessable: checkout must not proceed
//	}
type CreateOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	engine     services.MatchingEngine
	snapshots  services.SnapshotBuilder
	recorder   AuditRecorder
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an AssignmentUoWFactory for transactional persistence and an
// AuditRecorder for the assignment trail.
func NewCreateOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	recorder AuditRecorder,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewMatchingEngine(),
		snapshots:  services.NewSnapshotBuilder(),
		recorder:   recorder,
	}
}

// Handle processes the order creation command.
//
// Loads the tenant's active rules and carriers, resolves the courier, freezes
// the decision into a snapshot and persists the assigned order atomically.
// Returns services.ErrNoCourierAvailable when resolution fails; nothing is
// persisted in that case.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.Facts())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	facts := cmd.Facts()

	carriers, err := uow.CarrierRepository().GetActiveByTenant(ctx, facts.TenantID())
	if err != nil {
		return err
	}

	rules, err := uow.RuleRepository().GetActiveByTenantZone(ctx, facts.TenantID(), facts.Zone())
	if err != nil {
		return err
	}

	decision, err := h.engine.Resolve(rules, carriers, facts)
	if err != nil {
		return err
	}

	snapshot, err := h.snapshots.FromDecision(decision)
	if err != nil {
		return err
	}

	if err = newOrder.AssignCourier(snapshot); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordAssignment(ctx, newOrder.ID(), snapshot)
	return nil
}

// recordAssignment appends the initial-assignment audit entry. Best effort:
// the order is already committed, the recorder absorbs storage failures.
func (h CreateOrderCommandHandler) recordAssignment(
	ctx context.Context,
	orderID kernel.UUID,
	snapshot order.Snapshot,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(), orderID, nil, snapshot, systemActor, "", time.Now().UTC())
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
