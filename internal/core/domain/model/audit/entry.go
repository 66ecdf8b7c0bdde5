// Package audit contains the append-only assignment audit entry. Every
// transition into an assigned or overridden courier produces exactly one
// entry; entries are never mutated or deleted, and the engine never reads
// them back for its decisions.
package audit

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry captures one courier decision for an order: the snapshot being
// replaced (nil on the initial assignment), the snapshot taking effect, who
// acted, and why.
type Entry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	previous       *order.Snapshot
	next           order.Snapshot
	actor          string
	overrideReason string
	recordedAt     time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates an audit entry.
//
// previous is nil for the initial automatic assignment. actor identifies who
// triggered the change ("system" for automatic assignments, the administrative
// actor otherwise). overrideReason is empty for automatic assignments.
func NewEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	previous *order.Snapshot,
	next order.Snapshot,
	actor string,
	overrideReason string,
	recordedAt time.Time,
) (*Entry, error) {
	e := &Entry{
		overrideReason: overrideReason,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setPrevious(previous),
		e.setNext(next),
		e.setActor(actor),
		e.setRecordedAt(recordedAt),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks the Entry was created via NewEntry.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Previous returns a copy of the snapshot that was replaced, or nil for the
// initial assignment.
func (e *Entry) Previous() *order.Snapshot {
	if e.previous == nil {
		return nil
	}
	snap := *e.previous
	return &snap
}

// Next returns the snapshot that took effect.
func (e *Entry) Next() order.Snapshot {
	return e.next
}

// Actor returns who triggered the change.
func (e *Entry) Actor() string {
	return e.actor
}

// OverrideReason returns the administrative justification, empty for
// automatic assignments.
func (e *Entry) OverrideReason() string {
	return e.overrideReason
}

// RecordedAt returns when the entry was recorded.
func (e *Entry) RecordedAt() time.Time {
	return e.recordedAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setPrevious(previous *order.Snapshot) error {
	if previous == nil {
		e.previous = nil
		return nil
	}
	if err := previous.Validate(); err != nil {
		return err
	}
	snap := *previous
	e.previous = &snap
	return nil
}

func (e *Entry) setNext(next order.Snapshot) error {
	if err := next.Validate(); err != nil {
		return err
	}
	e.next = next
	return nil
}

func (e *Entry) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}

func (e *Entry) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recorded at")
	}
	e.recordedAt = recordedAt
	return nil
}
