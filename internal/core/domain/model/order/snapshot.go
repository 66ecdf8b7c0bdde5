package order

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrSnapshotIsNotConstructed is returned when using a zero-value Snapshot.
var ErrSnapshotIsNotConstructed = errors.New("Snapshot must be created via NewSnapshot constructor")

// Snapshot is the frozen record of a courier decision. Carrier name and code
// are denormalized copies taken at assignment time, so later edits to the
// carrier record never rewrite history. RuleID is nil for default-courier
// fallback and for manual assignments.
//
// Snapshot is a value object: once built it never changes. Replacing the
// courier on an order replaces the whole snapshot, and the previous one is
// preserved in the audit trail.
type Snapshot struct {
	carrierID   kernel.UUID
	carrierName string
	carrierCode string
	ruleID      *kernel.UUID
	assignedAt  time.Time
	reason      string

	guard guard.ConstructorGuard
}

// NewSnapshot creates a validated courier snapshot.
// ruleID may be nil (default courier or manual assignment); everything else is required.
func NewSnapshot(
	carrierID kernel.UUID,
	carrierName string,
	carrierCode string,
	ruleID *kernel.UUID,
	assignedAt time.Time,
	reason string,
) (Snapshot, error) {
	snapshot := Snapshot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		snapshot.setCarrierID(carrierID),
		snapshot.setCarrierName(carrierName),
		snapshot.setCarrierCode(carrierCode),
		snapshot.setRuleID(ruleID),
		snapshot.setAssignedAt(assignedAt),
		snapshot.setReason(reason),
	); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

// Validate checks the Snapshot was created via NewSnapshot.
func (s Snapshot) Validate() error {
	return s.guard.Validate(ErrSnapshotIsNotConstructed)
}

// CarrierID returns the identifier of the assigned carrier.
func (s Snapshot) CarrierID() kernel.UUID {
	return s.carrierID
}

// CarrierName returns the carrier display name frozen at assignment time.
func (s Snapshot) CarrierName() string {
	return s.carrierName
}

// CarrierCode returns the carrier code frozen at assignment time.
func (s Snapshot) CarrierCode() string {
	return s.carrierCode
}

// RuleID returns the matched rule's identifier, or nil for default-courier
// fallback and manual assignments.
func (s Snapshot) RuleID() *kernel.UUID {
	if s.ruleID == nil {
		return nil
	}
	id := *s.ruleID
	return &id
}

// AssignedAt returns the moment the decision was frozen.
func (s Snapshot) AssignedAt() time.Time {
	return s.assignedAt
}

// Reason returns the human-readable justification for the decision.
func (s Snapshot) Reason() string {
	return s.reason
}

func (s *Snapshot) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	s.carrierID = carrierID
	return nil
}

func (s *Snapshot) setCarrierName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("carrier name")
	}
	s.carrierName = name
	return nil
}

func (s *Snapshot) setCarrierCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("carrier code")
	}
	s.carrierCode = code
	return nil
}

func (s *Snapshot) setRuleID(ruleID *kernel.UUID) error {
	if ruleID == nil {
		s.ruleID = nil
		return nil
	}
	if err := ruleID.Validate(); err != nil {
		return err
	}
	id := *ruleID
	s.ruleID = &id
	return nil
}

func (s *Snapshot) setAssignedAt(assignedAt time.Time) error {
	if assignedAt.IsZero() {
		return errs.NewValueIsRequiredError("assignment timestamp")
	}
	s.assignedAt = assignedAt
	return nil
}

func (s *Snapshot) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("assignment reason")
	}
	s.reason = reason
	return nil
}
