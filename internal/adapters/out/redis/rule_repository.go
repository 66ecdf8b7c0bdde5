package redis

import (
	"context"
	"encoding/json"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/rule"
	"shipping/internal/core/ports"
)

// ruleDoc is the JSON representation of a rule in the cache.
type ruleDoc struct {
	ID          string   `json:"id"`
	TenantID    string   `json:"tenant_id"`
	Zone        string   `json:"zone"`
	Payment     int      `json:"payment"`
	MinWeightKg *float64 `json:"min_weight_kg,omitempty"`
	MaxWeightKg *float64 `json:"max_weight_kg,omitempty"`
	MinValue    *int64   `json:"min_value,omitempty"`
	MaxValue    *int64   `json:"max_value,omitempty"`
	CarrierID   string   `json:"carrier_id"`
	Priority    int      `json:"priority"`
	Active      bool     `json:"active"`
	Sequence    int64    `json:"sequence"`
}

func ruleToDoc(r *rule.Rule) ruleDoc {
	doc := ruleDoc{
		ID:        r.ID().String(),
		TenantID:  r.TenantID().String(),
		Zone:      r.Zone().String(),
		Payment:   int(r.Payment()),
		CarrierID: r.CarrierID().String(),
		Priority:  r.Priority(),
		Active:    r.IsActive(),
		Sequence:  r.Sequence(),
	}
	if w := r.WeightRange(); w != nil {
		doc.MinWeightKg = w.Min()
		doc.MaxWeightKg = w.Max()
	}
	if v := r.ValueRange(); v != nil {
		doc.MinValue = v.Min()
		doc.MaxValue = v.Max()
	}
	return doc
}

func ruleFromDoc(doc ruleDoc) (*rule.Rule, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromString(doc.TenantID)
	if err != nil {
		return nil, err
	}
	zone, err := kernel.NewZone(doc.Zone)
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromString(doc.CarrierID)
	if err != nil {
		return nil, err
	}

	var weight *rule.WeightRange
	if doc.MinWeightKg != nil || doc.MaxWeightKg != nil {
		w, rangeErr := rule.NewWeightRange(doc.MinWeightKg, doc.MaxWeightKg)
		if rangeErr != nil {
			return nil, rangeErr
		}
		weight = &w
	}

	var value *rule.ValueRange
	if doc.MinValue != nil || doc.MaxValue != nil {
		v, rangeErr := rule.NewValueRange(doc.MinValue, doc.MaxValue)
		if rangeErr != nil {
			return nil, rangeErr
		}
		value = &v
	}

	return rule.RestoreRule(
		id, tenantID, zone, rule.PaymentScope(doc.Payment),
		weight, value, carrierID, doc.Priority, doc.Sequence, doc.Active)
}

// CachedRuleRepository decorates a RuleRepository with a cache-aside read
// path for the active ruleset of a tenant zone. Writes invalidate all the
// tenant's cached rulesets since a rule insert shifts sequence ordering.
type CachedRuleRepository struct {
	inner ports.RuleRepository
	cache *Cache
}

// NewCachedRuleRepository decorates the given repository.
func NewCachedRuleRepository(inner ports.RuleRepository, cache *Cache) *CachedRuleRepository {
	return &CachedRuleRepository{inner: inner, cache: cache}
}

// Add stores the rule and invalidates the tenant's cached rulesets.
func (r *CachedRuleRepository) Add(ctx context.Context, aggregate *rule.Rule) error {
	if err := r.inner.Add(ctx, aggregate); err != nil {
		return err
	}
	r.cache.invalidatePattern(ctx, tenantRulesPattern(aggregate.TenantID().String()))
	return nil
}

// GetActiveByTenantZone returns the zone's active rules in sequence order,
// serving from the cache when possible.
func (r *CachedRuleRepository) GetActiveByTenantZone(
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

	key := rulesKey(tenantID.String(), zone.String())
	if data := r.cache.getBytes(ctx, key); data != nil {
		if rules, ok := r.decode(data); ok {
			return rules, nil
		}
	}

	rules, err := r.inner.GetActiveByTenantZone(ctx, tenantID, zone)
	if err != nil {
		return nil, err
	}

	docs := make([]ruleDoc, 0, len(rules))
	for _, ru := range rules {
		docs = append(docs, ruleToDoc(ru))
	}
	if data, marshalErr := json.Marshal(docs); marshalErr == nil {
		r.cache.setBytes(ctx, key, data)
	}

	return rules, nil
}

func (r *CachedRuleRepository) decode(data []byte) ([]*rule.Rule, bool) {
	var docs []ruleDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false
	}

	rules := make([]*rule.Rule, 0, len(docs))
	for _, doc := range docs {
		ru, err := ruleFromDoc(doc)
		if err != nil {
			return nil, false
		}
		rules = append(rules, ru)
	}
	return rules, true
}
