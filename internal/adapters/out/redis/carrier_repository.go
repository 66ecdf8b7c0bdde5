package redis

import (
	"context"
	"encoding/json"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// carrierDoc is the JSON representation of a carrier in the cache.
type carrierDoc struct {
	ID          string   `json:"id"`
	TenantID    string   `json:"tenant_id"`
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	Priority    int      `json:"priority"`
	SupportsCOD bool     `json:"supports_cod"`
	MaxWeightKg float64  `json:"max_weight_kg"`
	Zones       []string `json:"zones"`
	Pincodes    []string `json:"pincodes,omitempty"`
	Active      bool     `json:"active"`
}

func carrierToDoc(c *carrier.Carrier) carrierDoc {
	zones := make([]string, 0, len(c.ServiceableZones()))
	for _, z := range c.ServiceableZones() {
		zones = append(zones, z.String())
	}
	return carrierDoc{
		ID:          c.ID().String(),
		TenantID:    c.TenantID().String(),
		Name:        c.Name(),
		Code:        c.Code(),
		Priority:    c.Priority(),
		SupportsCOD: c.SupportsCOD(),
		MaxWeightKg: c.MaxWeightKg(),
		Zones:       zones,
		Pincodes:    c.ServiceablePincodes(),
		Active:      c.IsActive(),
	}
}

func carrierFromDoc(doc carrierDoc) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromString(doc.TenantID)
	if err != nil {
		return nil, err
	}

	zones := make([]kernel.Zone, 0, len(doc.Zones))
	for _, z := range doc.Zones {
		zone, zoneErr := kernel.NewZone(z)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zone)
	}

	return carrier.RestoreCarrier(
		id, tenantID, doc.Name, doc.Code, doc.Priority,
		doc.SupportsCOD, doc.MaxWeightKg, zones, doc.Pincodes, doc.Active)
}

// CachedCarrierRepository decorates a CarrierRepository with a cache-aside
// read path for the active carrier set of a tenant. Single-carrier reads and
// writes go straight to the underlying repository; writes invalidate the
// tenant's cached set.
type CachedCarrierRepository struct {
	inner ports.CarrierRepository
	cache *Cache
}

// NewCachedCarrierRepository decorates the given repository.
func NewCachedCarrierRepository(inner ports.CarrierRepository, cache *Cache) *CachedCarrierRepository {
	return &CachedCarrierRepository{inner: inner, cache: cache}
}

// Add stores the carrier and invalidates the tenant's cached carrier set.
func (r *CachedCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := r.inner.Add(ctx, aggregate); err != nil {
		return err
	}
	r.cache.invalidate(ctx, carriersKey(aggregate.TenantID().String()))
	return nil
}

// Get reads through to the underlying repository.
func (r *CachedCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return r.inner.Get(ctx, id)
}

// GetActiveByTenant returns the tenant's active carriers, serving from the
// cache when possible. A corrupt or undecodable cache entry is treated as a
// miss.
func (r *CachedCarrierRepository) GetActiveByTenant(
	ctx context.Context,
	tenantID kernel.UUID,
) ([]*carrier.Carrier, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	key := carriersKey(tenantID.String())
	if data := r.cache.getBytes(ctx, key); data != nil {
		if carriers, ok := r.decode(data); ok {
			return carriers, nil
		}
	}

	carriers, err := r.inner.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	docs := make([]carrierDoc, 0, len(carriers))
	for _, c := range carriers {
		docs = append(docs, carrierToDoc(c))
	}
	if data, marshalErr := json.Marshal(docs); marshalErr == nil {
		r.cache.setBytes(ctx, key, data)
	}

	return carriers, nil
}

func (r *CachedCarrierRepository) decode(data []byte) ([]*carrier.Carrier, bool) {
	var docs []carrierDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false
	}

	carriers := make([]*carrier.Carrier, 0, len(docs))
	for _, doc := range docs {
		c, err := carrierFromDoc(doc)
		if err != nil {
			return nil, false
		}
		carriers = append(carriers, c)
	}
	return carriers, true
}
