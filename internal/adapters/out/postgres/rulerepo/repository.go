package rulerepo

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/rule"

	"gorm.io/gorm"
)

// GormRuleRepository implements RuleRepository using GORM.
type GormRuleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRuleRepository creates a new GORM rule repository.
func NewGormRuleRepository(db *gorm.DB, tracker aggregateTracker) *GormRuleRepository {
	return &GormRuleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rule to the database. A rule created with sequence 0 has its
// sequence assigned by the database on insert.
func (r *GormRuleRepository) Add(ctx context.Context, aggregate *rule.Rule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx)
	if dto.Sequence == 0 {
		query = query.Omit("sequence")
	}
	if err := query.Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetActiveByTenantZone retrieves the active rules of a tenant scoped to a
// zone, ordered by creation sequence.
func (r *GormRuleRepository) GetActiveByTenantZone(
	ctx context.Context,
	tenantID kernel.UUID,
	zone kernel.Zone,
) ([]*rule.Rule, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	var dtos []RuleDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND zone = ? AND active = ?", tenantID.Bytes(), zone.String(), true).
		Order("sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rules := make([]*rule.Rule, 0, len(dtos))
	for _, dto := range dtos {
		ru, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		rules = append(rules, ru)
	}

	return rules, nil
}
