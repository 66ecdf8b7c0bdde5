// Package carrierrepo provides data transfer objects and mapping functions for carrier persistence.
// This package implements the repository pattern for the carrier domain aggregate, handling
// the conversion between domain entities and database representations.
package carrierrepo

import (
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CarrierDTO represents the database structure for persisting carrier aggregates.
// Zones and pincodes are stored as postgres text arrays; the carrier code is
// unique per tenant.
type CarrierDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_carriers_tenant_code"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Code        string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_carriers_tenant_code"`
	SupportsCOD bool           `gorm:"column:supports_cod;not null"`
	MaxWeightKg float64        `gorm:"not null"`
	Zones       pq.StringArray `gorm:"type:text[];not null"`
	Pincodes    pq.StringArray `gorm:"type:text[]"`
	Priority    int            `gorm:"type:int;not null"`
	Active      bool           `gorm:"not null;index"`
}

// TableName specifies the database table name for carrier entities.
// Overrides GORM's default naming convention to use "carriers".
func (CarrierDTO) TableName() string {
	return "carriers"
}

// fromDomain converts a carrier domain aggregate to its database representation.
func fromDomain(aggregate *carrier.Carrier) CarrierDTO {
	zones := make(pq.StringArray, 0, len(aggregate.ServiceableZones()))
	for _, z := range aggregate.ServiceableZones() {
		zones = append(zones, z.String())
	}

	return CarrierDTO{
		ID:          aggregate.ID().Bytes(),
		TenantID:    aggregate.TenantID().Bytes(),
		Name:        aggregate.Name(),
		Code:        aggregate.Code(),
		SupportsCOD: aggregate.SupportsCOD(),
		MaxWeightKg: aggregate.MaxWeightKg(),
		Zones:       zones,
		Pincodes:    pq.StringArray(aggregate.ServiceablePincodes()),
		Priority:    aggregate.Priority(),
		Active:      aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a carrier domain aggregate using RestoreCarrier.
func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	zones := make([]kernel.Zone, 0, len(dto.Zones))
	for _, z := range dto.Zones {
		zone, zoneErr := kernel.NewZone(z)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zone)
	}

	return carrier.RestoreCarrier(
		id,
		tenantID,
		dto.Name,
		dto.Code,
		dto.Priority,
		dto.SupportsCOD,
		dto.MaxWeightKg,
		zones,
		[]string(dto.Pincodes),
		dto.Active,
	)
}
