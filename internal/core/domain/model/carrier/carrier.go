package carrier

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for carrier operations.
var (
	// ErrNameIsRequired is returned when creating a carrier without a display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCodeIsRequired is returned when creating a carrier without a code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
	// ErrZonesAreRequired is returned when a carrier services no zones at all.
	ErrZonesAreRequired = errs.NewValueIsRequiredError("serviceable zones")
	// ErrCarrierIsNotConstructed is returned when using an improperly initialized Carrier.
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")
)

// Carrier is a tenant-scoped shipping provider.
//
// Key attributes:
//   - code is unique within the tenant and survives renames, so snapshots
//     denormalize both name and code.
//   - maxWeightKg of 0 means no weight limit.
//   - serviceable pincodes, when present, narrow zone serviceability: an order
//     must be in a serviceable zone AND in the pincode list.
//   - priority orders carriers for tie-breaking and fallback; lower is preferred.
//
// The aggregate is read-only to the engine; administration edits it elsewhere.
type Carrier struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	name        string
	code        string
	supportsCOD bool
	maxWeightKg float64
	zones       []kernel.Zone
	pincodes    []string
	priority    int
	active      bool

	guard guard.ConstructorGuard
}

// NewCarrier creates an active carrier with the given capabilities.
// Pincodes may be nil or empty, meaning no pincode restriction.
func NewCarrier(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	code string,
	priority int,
	supportsCOD bool,
	maxWeightKg float64,
	zones []kernel.Zone,
	pincodes []string,
) (*Carrier, error) {
	return RestoreCarrier(id, tenantID, name, code, priority, supportsCOD, maxWeightKg, zones, pincodes, true)
}

// RestoreCarrier reconstructs a carrier aggregate from persistent storage,
// including its active flag.
func RestoreCarrier(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	code string,
	priority int,
	supportsCOD bool,
	maxWeightKg float64,
	zones []kernel.Zone,
	pincodes []string,
	active bool,
) (*Carrier, error) {
	c := &Carrier{
		supportsCOD: supportsCOD,
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setName(name),
		c.setCode(code),
		c.setPriority(priority),
		c.setMaxWeightKg(maxWeightKg),
		c.setZones(zones),
		c.setPincodes(pincodes),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the Carrier was created via a constructor.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// IsEqual compares two carriers by identity.
func (c *Carrier) IsEqual(other *Carrier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the carrier identifier.
func (c *Carrier) ID() kernel.UUID {
	return c.id
}

// TenantID returns the owning tenant's identifier.
func (c *Carrier) TenantID() kernel.UUID {
	return c.tenantID
}

// Name returns the display name.
func (c *Carrier) Name() string {
	return c.name
}

// Code returns the tenant-unique carrier code.
func (c *Carrier) Code() string {
	return c.code
}

// SupportsCOD reports whether the carrier collects cash on delivery.
func (c *Carrier) SupportsCOD() bool {
	return c.supportsCOD
}

// MaxWeightKg returns the weight limit in kilograms; 0 means unlimited.
func (c *Carrier) MaxWeightKg() float64 {
	return c.maxWeightKg
}

// Priority returns the carrier priority; lower values are preferred.
func (c *Carrier) Priority() int {
	return c.priority
}

// IsActive reports whether the carrier is enabled for assignment.
func (c *Carrier) IsActive() bool {
	return c.active
}

// ServiceableZones returns a copy of the zones the carrier services.
func (c *Carrier) ServiceableZones() []kernel.Zone {
	out := make([]kernel.Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

// ServiceablePincodes returns a copy of the pincode restriction list.
// An empty result means the carrier has no pincode restriction.
func (c *Carrier) ServiceablePincodes() []string {
	out := make([]string, len(c.pincodes))
	copy(out, c.pincodes)
	return out
}

// ServesZone reports whether the carrier services the given zone.
func (c *Carrier) ServesZone(zone kernel.Zone) bool {
	for _, z := range c.zones {
		if z.IsEqual(zone) {
			return true
		}
	}
	return false
}

// ServesPincode reports whether the carrier accepts the given delivery pincode.
// Carriers without a pincode list accept every pincode; a non-empty list
// narrows serviceability to exactly those pincodes.
func (c *Carrier) ServesPincode(pincode string) bool {
	if len(c.pincodes) == 0 {
		return true
	}
	for _, p := range c.pincodes {
		if p == pincode {
			return true
		}
	}
	return false
}

// CanCarryWeight reports whether a parcel of the given weight is within the
// carrier's limit. A limit of 0 means unlimited.
func (c *Carrier) CanCarryWeight(weightKg float64) bool {
	return c.maxWeightKg == 0 || weightKg <= c.maxWeightKg
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *Carrier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Carrier) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}
	c.code = code
	return nil
}

func (c *Carrier) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority",
			fmt.Errorf("%d is negative", priority),
		)
	}
	c.priority = priority
	return nil
}

func (c *Carrier) setMaxWeightKg(maxWeightKg float64) error {
	if maxWeightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"max weight",
			fmt.Errorf("%v kg is negative", maxWeightKg),
		)
	}
	c.maxWeightKg = maxWeightKg
	return nil
}

func (c *Carrier) setZones(zones []kernel.Zone) error {
	if len(zones) == 0 {
		return ErrZonesAreRequired
	}
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return err
		}
	}
	c.zones = make([]kernel.Zone, len(zones))
	copy(c.zones, zones)
	return nil
}

func (c *Carrier) setPincodes(pincodes []string) error {
	for _, p := range pincodes {
		if p == "" {
			return errs.NewValueIsInvalidError("serviceable pincode")
		}
	}
	c.pincodes = make([]string, len(pincodes))
	copy(c.pincodes, pincodes)
	return nil
}
