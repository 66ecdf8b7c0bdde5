package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrFactsAreNotConstructed is returned when using a zero-value Facts.
var ErrFactsAreNotConstructed = errors.New("Facts must be created via NewFacts constructor")

// Facts is the immutable set of order attributes the assignment decision is
// made from. It is captured once, at order intake, so that re-running the
// engine over the same facts always produces the same decision.
type Facts struct {
	// tenantID scopes the order to one tenant's carriers and rules
	tenantID kernel.UUID
	// zone is the shipping zone already resolved from the delivery address
	zone kernel.Zone
	// weightKg is the total parcel weight in kilograms
	weightKg float64
	// value is the declared order value in minor currency units
	value int64
	// payment classifies the order as prepaid or cash-on-delivery
	payment PaymentMethod
	// pincode is the delivery pincode, used for carrier pincode restrictions
	pincode string

	guard guard.ConstructorGuard
}

// NewFacts creates validated order facts.
//
// Weight must be positive, value non-negative, payment a valid method, and the
// delivery pincode non-empty. Validation errors for multiple fields are joined.
func NewFacts(
	tenantID kernel.UUID,
	zone kernel.Zone,
	weightKg float64,
	value int64,
	payment PaymentMethod,
	pincode string,
) (Facts, error) {
	facts := Facts{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		facts.setTenantID(tenantID),
		facts.setZone(zone),
		facts.setWeightKg(weightKg),
		facts.setValue(value),
		facts.setPayment(payment),
		facts.setPincode(pincode),
	); err != nil {
		return Facts{}, err
	}

	return facts, nil
}

// Validate checks the Facts were created via NewFacts.
func (f Facts) Validate() error {
	return f.guard.Validate(ErrFactsAreNotConstructed)
}

// TenantID returns the owning tenant's identifier.
func (f Facts) TenantID() kernel.UUID {
	return f.tenantID
}

// Zone returns the resolved shipping zone.
func (f Facts) Zone() kernel.Zone {
	return f.zone
}

// WeightKg returns the parcel weight in kilograms.
func (f Facts) WeightKg() float64 {
	return f.weightKg
}

// Value returns the declared order value in minor currency units.
func (f Facts) Value() int64 {
	return f.value
}

// Payment returns the payment method classification.
func (f Facts) Payment() PaymentMethod {
	return f.payment
}

// Pincode returns the delivery pincode.
func (f Facts) Pincode() string {
	return f.pincode
}

func (f *Facts) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	f.tenantID = tenantID
	return nil
}

func (f *Facts) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	f.zone = zone
	return nil
}

func (f *Facts) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order weight",
			fmt.Errorf("%v kg is not greater than 0", weightKg),
		)
	}
	f.weightKg = weightKg
	return nil
}

func (f *Facts) setValue(value int64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order value",
			fmt.Errorf("%d is negative", value),
		)
	}
	f.value = value
	return nil
}

func (f *Facts) setPayment(payment PaymentMethod) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	f.payment = payment
	return nil
}

func (f *Facts) setPincode(pincode string) error {
	if pincode == "" {
		return errs.NewValueIsRequiredError("shipping pincode")
	}
	f.pincode = pincode
	return nil
}
