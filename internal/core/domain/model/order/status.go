package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as far as courier
// assignment is concerned.
//
// State transitions:
//
//	Created ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//
// The courier snapshot is set once at creation and may be overridden while the
// order is in Created or Confirmed. Processing freezes the courier; Shipped and
// later additionally require a courier to be present.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status; the automatic assignment runs here.
	Created

	// Confirmed means payment/stock checks passed; overrides are still allowed.
	Confirmed

	// Processing means fulfilment has started; the courier is locked from here on.
	Processing

	// Shipped means the parcel was handed to the carrier.
	Shipped

	// Delivered is the final state.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
	}
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String implements fmt.Stringer; safe on any value including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanChangeCourier reports whether a manual courier override is still allowed.
// Processing and later states lock the courier decision.
func (s Status) CanChangeCourier() bool {
	return s == Created || s == Confirmed
}

// RequiresCourier reports whether the status is only reachable with a courier
// snapshot present on the order.
func (s Status) RequiresCourier() bool {
	return s == Shipped || s == Delivered
}

// Next returns the status that follows s in the lifecycle.
// Delivered is final; advancing from it (or from an invalid status) is an error.
func (s Status) Next() (Status, error) {
	switch s {
	case Created:
		return Confirmed, nil
	case Confirmed:
		return Processing, nil
	case Processing:
		return Shipped, nil
	case Shipped:
		return Delivered, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no further transitions", s.String()),
		)
	}
}
