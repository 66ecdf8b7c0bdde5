package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
)

// ErrCarrierNotEligible is returned when the explicitly chosen carrier fails
// the same eligibility validation the automatic assignment applies: COD
// support, zone and pincode serviceability, weight limit, active flag.
var ErrCarrierNotEligible = errors.New("carrier is not eligible for this order")

// OverrideCourierCommandHandler handles administrative courier reassignment.
//
// The chosen carrier is validated against the order facts exactly as the
// automatic assignment would validate it; an override is never a way to bypass
// eligibility. The replaced snapshot is preserved in the audit trail.
type OverrideCourierCommandHandler struct {
	uowFactory OverrideUoWFactory
	validator  services.EligibilityValidator
	snapshots  services.SnapshotBuilder
	recorder   AuditRecorder
}

// NewOverrideCourierCommandHandler creates a handler for courier override
// operations.
func NewOverrideCourierCommandHandler(
	uowFactory OverrideUoWFactory,
	recorder AuditRecorder,
) OverrideCourierCommandHandler {
	return OverrideCourierCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewEligibilityValidator(),
		snapshots:  services.NewSnapshotBuilder(),
		recorder:   recorder,
	}
}

// Handle processes the courier override command.
//
// Fails with order.ErrOverrideNotAllowed once the order reached Processing,
// with ErrCarrierNotEligible when the carrier cannot serve the order, and with
// ports.ErrConcurrencyConflict when the order changed concurrently; the caller
// may retry the latter. A carrier belonging to another tenant is reported as
// not found, never as a cross-tenant assignment.
func (h OverrideCourierCommandHandler) Handle(ctx context.Context, cmd OverrideCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overridden, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	chosen, err := uow.CarrierRepository().Get(ctx, cmd.CarrierID())
	if err != nil {
		return err
	}
	if !chosen.TenantID().IsEqual(overridden.Facts().TenantID()) {
		return errs.NewObjectNotFoundError("carrierId", cmd.CarrierID())
	}

	if !h.validator.IsEligible(chosen, overridden.Facts()) {
		return ErrCarrierNotEligible
	}

	previous := overridden.Snapshot()

	snapshot, err := h.snapshots.Build(chosen, nil, services.ManualAssignmentReason)
	if err != nil {
		return err
	}

	if err = overridden.OverrideCourier(snapshot); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, overridden); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordOverride(ctx, cmd, previous, snapshot)
	return nil
}

// recordOverride appends the override audit entry, preserving the replaced
// snapshot. Best effort: the override is already committed.
func (h OverrideCourierCommandHandler) recordOverride(
	ctx context.Context,
	cmd OverrideCourierCommand,
	previous *order.Snapshot,
	next order.Snapshot,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.OrderID(), previous, next,
		cmd.Actor(), cmd.Reason(), time.Now().UTC())
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
