package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery retrieves the assignment history of an order, oldest
// entry first: the initial automatic decision followed by every override.
type GetAuditTrailQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates a query for an order's assignment history.
func NewGetAuditTrailQuery(orderID kernel.UUID) (GetAuditTrailQuery, error) {
	trailQuery := GetAuditTrailQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := trailQuery.setOrderID(orderID); err != nil {
		return GetAuditTrailQuery{}, err
	}

	return trailQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAuditTrailQueryIsNotConstructed if validation fails.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetAuditTrailQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetAuditTrailQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// AssignmentSnapshotResponse is one frozen courier decision inside an audit
// entry.
type AssignmentSnapshotResponse struct {
	CarrierID   kernel.UUID
	CarrierName string
	CarrierCode string
	RuleID      *kernel.UUID
	AssignedAt  time.Time
	Reason      string
}

// GetAuditTrailQueryResponse is one audit entry. Previous is nil on the
// initial automatic assignment; OverrideReason is empty for automatic entries.
type GetAuditTrailQueryResponse struct {
	EntryID        kernel.UUID
	OrderID        kernel.UUID
	Previous       *AssignmentSnapshotResponse
	Next           AssignmentSnapshotResponse
	Actor          string
	OverrideReason string
	RecordedAt     time.Time
}
