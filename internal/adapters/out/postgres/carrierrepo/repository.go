package carrierrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCarrierRepository implements CarrierRepository using GORM.
type GormCarrierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCarrierRepository creates a new GORM carrier repository.
func NewGormCarrierRepository(db *gorm.DB, tracker aggregateTracker) *GormCarrierRepository {
	return &GormCarrierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new carrier to the database.
func (r *GormCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a carrier by ID.
func (r *GormCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrierId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByTenant retrieves all active carriers of a tenant.
// Ordered by (priority, code) so the engine's fallback scan is stable.
func (r *GormCarrierRepository) GetActiveByTenant(
	ctx context.Context,
	tenantID kernel.UUID,
) ([]*carrier.Carrier, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CarrierDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID.Bytes(), true).
		Order("priority, code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	carriers := make([]*carrier.Carrier, 0, len(dtos))
	for _, dto := range dtos {
		c, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		carriers = append(carriers, c)
	}

	return carriers, nil
}
