package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrCourierAlreadyAssigned is returned when the automatic assignment runs twice.
	ErrCourierAlreadyAssigned = errors.New("courier already assigned, use override instead")
	// ErrNoCourierAssigned is returned when overriding an order that has no snapshot yet.
	ErrNoCourierAssigned = errors.New("no courier assigned to override")
	// ErrOverrideNotAllowed is returned when the order lifecycle has locked the courier.
	ErrOverrideNotAllowed = errors.New("courier can no longer be changed for this order")
	// ErrCourierRequiredToShip is returned when shipping an order without a courier.
	ErrCourierRequiredToShip = errors.New("order cannot ship without an assigned courier")
)

// Order is the aggregate root for courier assignment. It owns the immutable
// order facts, the lifecycle status, the current courier snapshot, and an
// optimistic-lock version used to make the override/lifecycle race safe.
//
// Key invariants:
//   - The automatic assignment sets the snapshot exactly once, in Created.
//   - OverrideCourier requires a previous snapshot and a status strictly
//     before Processing.
//   - Shipped and Delivered are unreachable without a snapshot.
type Order struct {
	// id uniquely identifies the order
	id kernel.UUID
	// facts are the immutable inputs the assignment decision was made from
	facts Facts
	// status is the current lifecycle state
	status Status
	// snapshot is the current courier decision (nil until first assignment)
	snapshot *Snapshot
	// version is the optimistic concurrency counter maintained by persistence
	version int64

	guard guard.ConstructorGuard
}

// NewOrder creates a new unassigned order in Created status with version 1.
func NewOrder(id kernel.UUID, facts Facts) (*Order, error) {
	o := &Order{
		status:  Created,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setFacts(facts),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage.
// Enforces status/snapshot consistency: Shipped and later require a snapshot.
func RestoreOrder(
	id kernel.UUID,
	facts Facts,
	status Status,
	snapshot *Snapshot,
	version int64,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setFacts(facts),
		o.setStatus(status),
		o.setSnapshot(snapshot),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	if status.RequiresCourier() && snapshot == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order state",
			fmt.Errorf("status %s requires an assigned courier", status),
		)
	}

	return o, nil
}

// Validate checks the Order was created via a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Facts returns the immutable order facts.
func (o *Order) Facts() Facts {
	return o.facts
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Snapshot returns a copy of the current courier snapshot, or nil if the
// order has not been assigned yet.
func (o *Order) Snapshot() *Snapshot {
	if o.snapshot == nil {
		return nil
	}
	snap := *o.snapshot
	return &snap
}

// Version returns the optimistic concurrency version.
func (o *Order) Version() int64 {
	return o.version
}

// AssignCourier freezes the initial automatic courier decision into the order.
//
// Allowed exactly once, while the order is in Created status. Any later change
// must go through OverrideCourier so the previous decision ends up in the
// audit trail.
func (o *Order) AssignCourier(snapshot Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if o.snapshot != nil {
		return ErrCourierAlreadyAssigned
	}
	if o.status != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status for initial assignment", o.status),
		)
	}

	o.snapshot = &snapshot
	return nil
}

// OverrideCourier replaces the current courier snapshot with a manually chosen
// one. The caller is responsible for preserving the previous snapshot in the
// audit trail before persisting the change.
//
// Returns ErrOverrideNotAllowed once the order has reached Processing: from
// that point the courier decision is locked.
func (o *Order) OverrideCourier(snapshot Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if o.snapshot == nil {
		return ErrNoCourierAssigned
	}
	if !o.status.CanChangeCourier() {
		return ErrOverrideNotAllowed
	}

	o.snapshot = &snapshot
	return nil
}

// Advance moves the order to the next lifecycle status.
// Moving into Shipped requires a courier snapshot to be present.
func (o *Order) Advance() error {
	next, err := o.status.Next()
	if err != nil {
		return err
	}

	if next.RequiresCourier() && o.snapshot == nil {
		return ErrCourierRequiredToShip
	}

	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setFacts(facts Facts) error {
	if err := facts.Validate(); err != nil {
		return err
	}
	o.facts = facts
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setSnapshot(snapshot *Snapshot) error {
	if snapshot == nil {
		o.snapshot = nil
		return nil
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}
	snap := *snapshot
	o.snapshot = &snap
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidErrorWithCause(
			"order version",
			fmt.Errorf("%d is not greater than 0", version),
		)
	}
	o.version = version
	return nil
}
