// Package orderrepo persists order aggregates. The courier snapshot is
// denormalized into nullable columns on the orders row so that a single read
// returns the full assignment state, and the version column backs the
// optimistic concurrency check in Update.
package orderrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The carrier_* / rule_id / assigned_at / assignment_reason columns are all
// nil until the first assignment and always set together afterwards.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Zone             string    `gorm:"type:varchar(128);not null"`
	WeightKg         float64   `gorm:"not null"`
	Value            int64     `gorm:"not null"`
	Payment          int       `gorm:"type:int;not null"`
	Pincode          string    `gorm:"type:varchar(16);not null"`
	Status           int       `gorm:"type:int;not null;index"`
	CarrierID        *uuid.UUID `gorm:"type:uuid;index"`
	CarrierName      *string    `gorm:"type:varchar(255)"`
	CarrierCode      *string    `gorm:"type:varchar(64)"`
	RuleID           *uuid.UUID `gorm:"type:uuid"`
	AssignedAt       *time.Time
	AssignmentReason *string `gorm:"type:text"`
	Version          int64   `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	facts := aggregate.Facts()
	dto := OrderDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: facts.TenantID().Bytes(),
		Zone:     facts.Zone().String(),
		WeightKg: facts.WeightKg(),
		Value:    facts.Value(),
		Payment:  int(facts.Payment()),
		Pincode:  facts.Pincode(),
		Status:   int(aggregate.Status()),
		Version:  aggregate.Version(),
	}

	if snapshot := aggregate.Snapshot(); snapshot != nil {
		carrierID := snapshot.CarrierID().Bytes()
		carrierName := snapshot.CarrierName()
		carrierCode := snapshot.CarrierCode()
		assignedAt := snapshot.AssignedAt()
		reason := snapshot.Reason()

		dto.CarrierID = &carrierID
		dto.CarrierName = &carrierName
		dto.CarrierCode = &carrierCode
		dto.AssignedAt = &assignedAt
		dto.AssignmentReason = &reason

		if ruleID := snapshot.RuleID(); ruleID != nil {
			id := ruleID.Bytes()
			dto.RuleID = &id
		}
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.Zone)
	if err != nil {
		return nil, err
	}

	facts, err := order.NewFacts(tenantID, zone, dto.WeightKg, dto.Value, order.PaymentMethod(dto.Payment), dto.Pincode)
	if err != nil {
		return nil, err
	}

	snapshot, err := snapshotFromColumns(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, facts, order.Status(dto.Status), snapshot, dto.Version)
}

func snapshotFromColumns(dto OrderDTO) (*order.Snapshot, error) {
	if dto.CarrierID == nil {
		return nil, nil
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var ruleID *kernel.UUID
	if dto.RuleID != nil {
		id, ruleErr := kernel.UUIDFromBytes(dto.RuleID[:])
		if ruleErr != nil {
			return nil, ruleErr
		}
		ruleID = &id
	}

	snapshot, err := order.NewSnapshot(
		carrierID,
		*dto.CarrierName,
		*dto.CarrierCode,
		ruleID,
		dto.AssignedAt.UTC(),
		*dto.AssignmentReason,
	)
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}
