// Package rulerepo persists assignment rules. Optional weight/value ranges are
// stored as nullable bound columns, and the creation sequence used for
// deterministic tie-breaking is a bigserial assigned by the database.
package rulerepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/rule"

	"github.com/google/uuid"
)

// RuleDTO represents the database structure for persisting rule aggregates.
type RuleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index:idx_rules_tenant_zone"`
	Zone        string    `gorm:"type:varchar(128);not null;index:idx_rules_tenant_zone"`
	Payment     int       `gorm:"type:int;not null"`
	MinWeightKg *float64
	MaxWeightKg *float64
	MinValue    *int64 `gorm:"type:bigint"`
	MaxValue    *int64 `gorm:"type:bigint"`
	CarrierID   uuid.UUID `gorm:"type:uuid;not null"`
	Priority    int       `gorm:"type:int;not null"`
	Active      bool      `gorm:"not null;index"`
	Sequence    int64     `gorm:"autoIncrement;uniqueIndex"`
}

// TableName specifies the database table name for rule entities.
func (RuleDTO) TableName() string {
	return "assignment_rules"
}

// fromDomain converts a rule domain aggregate to its database representation.
func fromDomain(aggregate *rule.Rule) RuleDTO {
	dto := RuleDTO{
		ID:        aggregate.ID().Bytes(),
		TenantID:  aggregate.TenantID().Bytes(),
		Zone:      aggregate.Zone().String(),
		Payment:   int(aggregate.Payment()),
		CarrierID: aggregate.CarrierID().Bytes(),
		Priority:  aggregate.Priority(),
		Active:    aggregate.IsActive(),
		Sequence:  aggregate.Sequence(),
	}

	if w := aggregate.WeightRange(); w != nil {
		dto.MinWeightKg = w.Min()
		dto.MaxWeightKg = w.Max()
	}
	if v := aggregate.ValueRange(); v != nil {
		dto.MinValue = v.Min()
		dto.MaxValue = v.Max()
	}

	return dto
}

// toDomain converts a database DTO to a rule domain aggregate using RestoreRule.
func toDomain(dto RuleDTO) (*rule.Rule, error) {
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

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var weight *rule.WeightRange
	if dto.MinWeightKg != nil || dto.MaxWeightKg != nil {
		w, rangeErr := rule.NewWeightRange(dto.MinWeightKg, dto.MaxWeightKg)
		if rangeErr != nil {
			return nil, rangeErr
		}
		weight = &w
	}

	var value *rule.ValueRange
	if dto.MinValue != nil || dto.MaxValue != nil {
		v, rangeErr := rule.NewValueRange(dto.MinValue, dto.MaxValue)
		if rangeErr != nil {
			return nil, rangeErr
		}
		value = &v
	}

	return rule.RestoreRule(
		id,
		tenantID,
		zone,
		rule.PaymentScope(dto.Payment),
		weight,
		value,
		carrierID,
		dto.Priority,
		dto.Sequence,
		dto.Active,
	)
}
