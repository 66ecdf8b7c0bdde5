// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read the database directly,
// returning plain response structs shaped for the callers.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetAssignmentQueryIsNotConstructed = errors.New(
	"GetAssignmentQuery must be created via NewGetAssignmentQuery constructor",
)

// GetAssignmentQuery retrieves the current courier assignment of an order:
// the frozen snapshot plus the order's lifecycle status.
//
// Example:
//
//	query, _ := NewGetAssignmentQuery(orderID)
//	handler := NewGetAssignmentQueryHandler(db)
//
//	assignment, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s ships with %s (%s)\n",
//	    assignment.OrderID, assignment.CarrierName, assignment.Reason)
type GetAssignmentQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignmentQuery creates a query for an order's courier assignment.
func NewGetAssignmentQuery(orderID kernel.UUID) (GetAssignmentQuery, error) {
	assignmentQuery := GetAssignmentQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := assignmentQuery.setOrderID(orderID); err != nil {
		return GetAssignmentQuery{}, err
	}

	return assignmentQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAssignmentQueryIsNotConstructed if validation fails.
func (q GetAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentQueryIsNotConstructed)
}

// OrderID returns the order whose assignment is requested.
func (q GetAssignmentQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetAssignmentQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetAssignmentQueryResponse is the current courier decision for an order.
// RuleID is nil for default-courier fallback and manual assignments.
type GetAssignmentQueryResponse struct {
	OrderID     kernel.UUID
	Status      string
	CarrierID   kernel.UUID
	CarrierName string
	CarrierCode string
	RuleID      *kernel.UUID
	AssignedAt  time.Time
	Reason      string
}
