// Package auditrepo persists the append-only assignment audit trail. Each row
// freezes the previous and next courier snapshots of one assignment change;
// rows are never updated or deleted.
package auditrepo

import (
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// AuditDTO represents the database structure for audit trail entries.
// The prev_* columns are nil for the initial automatic assignment.
type AuditDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`

	PrevCarrierID   *uuid.UUID `gorm:"type:uuid"`
	PrevCarrierName *string    `gorm:"type:varchar(255)"`
	PrevCarrierCode *string    `gorm:"type:varchar(64)"`
	PrevRuleID      *uuid.UUID `gorm:"type:uuid"`
	PrevAssignedAt  *time.Time
	PrevReason      *string `gorm:"type:text"`

	NextCarrierID   uuid.UUID  `gorm:"type:uuid;not null"`
	NextCarrierName string     `gorm:"type:varchar(255);not null"`
	NextCarrierCode string     `gorm:"type:varchar(64);not null"`
	NextRuleID      *uuid.UUID `gorm:"type:uuid"`
	NextAssignedAt  time.Time  `gorm:"not null"`
	NextReason      string     `gorm:"type:text;not null"`

	Actor          string    `gorm:"type:varchar(255);not null"`
	OverrideReason string    `gorm:"type:text"`
	RecordedAt     time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for audit entries.
func (AuditDTO) TableName() string {
	return "assignment_audit"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) AuditDTO {
	next := entry.Next()
	dto := AuditDTO{
		ID:              entry.ID().Bytes(),
		OrderID:         entry.OrderID().Bytes(),
		NextCarrierID:   next.CarrierID().Bytes(),
		NextCarrierName: next.CarrierName(),
		NextCarrierCode: next.CarrierCode(),
		NextAssignedAt:  next.AssignedAt(),
		NextReason:      next.Reason(),
		Actor:           entry.Actor(),
		OverrideReason:  entry.OverrideReason(),
		RecordedAt:      entry.RecordedAt(),
	}

	if ruleID := next.RuleID(); ruleID != nil {
		id := ruleID.Bytes()
		dto.NextRuleID = &id
	}

	if previous := entry.Previous(); previous != nil {
		carrierID := previous.CarrierID().Bytes()
		carrierName := previous.CarrierName()
		carrierCode := previous.CarrierCode()
		assignedAt := previous.AssignedAt()
		reason := previous.Reason()

		dto.PrevCarrierID = &carrierID
		dto.PrevCarrierName = &carrierName
		dto.PrevCarrierCode = &carrierCode
		dto.PrevAssignedAt = &assignedAt
		dto.PrevReason = &reason

		if ruleID := previous.RuleID(); ruleID != nil {
			id := ruleID.Bytes()
			dto.PrevRuleID = &id
		}
	}

	return dto
}

// toDomain converts a database DTO to an audit entry using NewEntry.
func toDomain(dto AuditDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	next, err := snapshotFromColumns(
		dto.NextCarrierID, dto.NextCarrierName, dto.NextCarrierCode,
		dto.NextRuleID, dto.NextAssignedAt, dto.NextReason,
	)
	if err != nil {
		return nil, err
	}

	var previous *order.Snapshot
	if dto.PrevCarrierID != nil {
		prev, prevErr := snapshotFromColumns(
			*dto.PrevCarrierID, *dto.PrevCarrierName, *dto.PrevCarrierCode,
			dto.PrevRuleID, *dto.PrevAssignedAt, *dto.PrevReason,
		)
		if prevErr != nil {
			return nil, prevErr
		}
		previous = &prev
	}

	return audit.NewEntry(id, orderID, previous, next, dto.Actor, dto.OverrideReason, dto.RecordedAt.UTC())
}

func snapshotFromColumns(
	carrierID uuid.UUID,
	carrierName string,
	carrierCode string,
	ruleID *uuid.UUID,
	assignedAt time.Time,
	reason string,
) (order.Snapshot, error) {
	domainCarrierID, err := kernel.UUIDFromBytes(carrierID[:])
	if err != nil {
		return order.Snapshot{}, err
	}

	var domainRuleID *kernel.UUID
	if ruleID != nil {
		id, ruleErr := kernel.UUIDFromBytes(ruleID[:])
		if ruleErr != nil {
			return order.Snapshot{}, ruleErr
		}
		domainRuleID = &id
	}

	return order.NewSnapshot(domainCarrierID, carrierName, carrierCode, domainRuleID, assignedAt.UTC(), reason)
}
