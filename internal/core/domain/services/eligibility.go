package services

import (
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/order"
)

// EligibilityValidator decides whether a single carrier may carry a given
// order. It is a pure function of its inputs: no I/O, no side effects.
//
// A carrier is eligible iff all of the following hold:
//   - the carrier is active;
//   - for cash-on-delivery orders, the carrier collects cash;
//   - the order's zone is serviceable, and when the carrier declares a
//     pincode list, the delivery pincode is in it (the pincode list narrows
//     zone serviceability, it never widens it);
//   - the parcel weight is within the carrier's limit (0 = unlimited).
type EligibilityValidator struct{}

// NewEligibilityValidator creates a new EligibilityValidator instance.
func NewEligibilityValidator() EligibilityValidator {
	return EligibilityValidator{}
}

// IsEligible reports whether the carrier may carry the order described by facts.
// Improperly constructed carriers are never eligible.
func (v EligibilityValidator) IsEligible(c *carrier.Carrier, facts order.Facts) bool {
	if c.Validate() != nil || facts.Validate() != nil {
		return false
	}

	if !c.IsActive() {
		return false
	}
	if facts.Payment().IsCOD() && !c.SupportsCOD() {
		return false
	}
	if !c.ServesZone(facts.Zone()) {
		return false
	}
	if !c.ServesPincode(facts.Pincode()) {
		return false
	}
	if !c.CanCarryWeight(facts.WeightKg()) {
		return false
	}

	return true
}
