package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads the append-only audit table for one order.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle executes the audit trail query.
// Returns entries oldest first; an order with no entries yields an empty
// slice, not an error, because the audit write is best-effort.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetAuditTrailQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			prev_carrier_id,
			prev_carrier_name,
			prev_carrier_code,
			prev_rule_id,
			prev_assigned_at,
			prev_reason,
			next_carrier_id,
			next_carrier_name,
			next_carrier_code,
			next_rule_id,
			next_assigned_at,
			next_reason,
			actor,
			override_reason,
			recorded_at
		FROM assignment_audit
		WHERE order_id = ?
		ORDER BY recorded_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id              uuid.UUID
			orderID         uuid.UUID
			prevCarrierID   uuid.NullUUID
			prevCarrierName sql.NullString
			prevCarrierCode sql.NullString
			prevRuleID      uuid.NullUUID
			prevAssignedAt  sql.NullTime
			prevReason      sql.NullString
			nextCarrierID   uuid.UUID
			nextCarrierName string
			nextCarrierCode string
			nextRuleID      uuid.NullUUID
			nextAssignedAt  sql.NullTime
			nextReason      string
			actor           string
			overrideReason  string
			recordedAt      sql.NullTime
		)

		err = rows.Scan(
			&id, &orderID,
			&prevCarrierID, &prevCarrierName, &prevCarrierCode,
			&prevRuleID, &prevAssignedAt, &prevReason,
			&nextCarrierID, &nextCarrierName, &nextCarrierCode,
			&nextRuleID, &nextAssignedAt, &nextReason,
			&actor, &overrideReason, &recordedAt,
		)
		if err != nil {
			return nil, err
		}

		entry := GetAuditTrailQueryResponse{
			Actor:          actor,
			OverrideReason: overrideReason,
			RecordedAt:     recordedAt.Time.UTC(),
		}

		entry.EntryID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		entry.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}

		entry.Next, err = buildSnapshotResponse(
			nextCarrierID, nextCarrierName, nextCarrierCode,
			nextRuleID, nextAssignedAt, nextReason)
		if err != nil {
			return nil, err
		}

		if prevCarrierID.Valid {
			previous, prevErr := buildSnapshotResponse(
				prevCarrierID.UUID, prevCarrierName.String, prevCarrierCode.String,
				prevRuleID, prevAssignedAt, prevReason.String)
			if prevErr != nil {
				return nil, prevErr
			}
			entry.Previous = &previous
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func buildSnapshotResponse(
	carrierID uuid.UUID,
	carrierName string,
	carrierCode string,
	ruleID uuid.NullUUID,
	assignedAt sql.NullTime,
	reason string,
) (AssignmentSnapshotResponse, error) {
	cID, err := kernel.UUIDFromBytes(carrierID[:])
	if err != nil {
		return AssignmentSnapshotResponse{}, err
	}

	var matchedRuleID *kernel.UUID
	if ruleID.Valid {
		rID, ruleErr := kernel.UUIDFromBytes(ruleID.UUID[:])
		if ruleErr != nil {
			return AssignmentSnapshotResponse{}, ruleErr
		}
		matchedRuleID = &rID
	}

	return AssignmentSnapshotResponse{
		CarrierID:   cID,
		CarrierName: carrierName,
		CarrierCode: carrierCode,
		RuleID:      matchedRuleID,
		AssignedAt:  assignedAt.Time.UTC(),
		Reason:      reason,
	}, nil
}
