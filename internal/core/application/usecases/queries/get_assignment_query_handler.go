package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignmentQueryHandler reads an order's courier snapshot straight from
// the orders table, where it is denormalized next to the order row.
type GetAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentQueryHandler creates a handler for assignment lookups.
// Requires a GORM database connection for query execution.
func NewGetAssignmentQueryHandler(db *gorm.DB) GetAssignmentQueryHandler {
	return GetAssignmentQueryHandler{db: db}
}

// Handle executes the assignment lookup.
// Returns errs.ErrObjectNotFound (wrapped) when the order does not exist or
// carries no courier snapshot.
func (h GetAssignmentQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentQuery,
) (GetAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAssignmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			carrier_id,
			carrier_name,
			carrier_code,
			rule_id,
			assigned_at,
			assignment_reason
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id          uuid.UUID
		status      int
		carrierID   uuid.NullUUID
		carrierName sql.NullString
		carrierCode sql.NullString
		ruleID      uuid.NullUUID
		assignedAt  sql.NullTime
		reason      sql.NullString
	)

	err := row.Scan(&id, &status, &carrierID, &carrierName, &carrierCode, &ruleID, &assignedAt, &reason)
	if errors.Is(err, sql.ErrNoRows) {
		return GetAssignmentQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetAssignmentQueryResponse{}, err
	}

	if !carrierID.Valid {
		return GetAssignmentQueryResponse{}, errs.NewObjectNotFoundError("courier assignment", query.OrderID())
	}

	return buildAssignmentResponse(
		id, status, carrierID.UUID, carrierName.String, carrierCode.String,
		ruleID, assignedAt.Time, reason.String)
}

func buildAssignmentResponse(
	id uuid.UUID,
	status int,
	carrierID uuid.UUID,
	carrierName string,
	carrierCode string,
	ruleID uuid.NullUUID,
	assignedAt time.Time,
	reason string,
) (GetAssignmentQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAssignmentQueryResponse{}, err
	}

	assignedCarrierID, err := kernel.UUIDFromBytes(carrierID[:])
	if err != nil {
		return GetAssignmentQueryResponse{}, err
	}

	var matchedRuleID *kernel.UUID
	if ruleID.Valid {
		rID, ruleErr := kernel.UUIDFromBytes(ruleID.UUID[:])
		if ruleErr != nil {
			return GetAssignmentQueryResponse{}, ruleErr
		}
		matchedRuleID = &rID
	}

	return GetAssignmentQueryResponse{
		OrderID:     orderID,
		Status:      order.Status(status).String(),
		CarrierID:   assignedCarrierID,
		CarrierName: carrierName,
		CarrierCode: carrierCode,
		RuleID:      matchedRuleID,
		AssignedAt:  assignedAt.UTC(),
		Reason:      reason,
	}, nil
}
