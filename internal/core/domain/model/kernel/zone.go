package kernel

import "shipping/internal/pkg/errs"

// ErrZoneIsNotConstructed indicates a zero-value Zone that bypassed NewZone.
var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError("zone must be created via NewZone")

// Zone identifies a shipping zone: a geographic bucket derived from
// pincode/state/country by an external zone resolver. The engine treats the
// identifier as opaque; two zones are the same iff their identifiers match.
//
// The zero value is invalid. Construct via NewZone.
type Zone struct {
	id string
}

// NewZone creates a Zone from a resolver-issued identifier.
// The identifier must be non-empty.
func NewZone(id string) (Zone, error) {
	if id == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone id")
	}
	return Zone{id: id}, nil
}

// String returns the zone identifier.
func (z Zone) String() string {
	return z.id
}

// IsEqual compares two zones by identifier.
func (z Zone) IsEqual(other Zone) bool {
	return z.id == other.id
}

// Validate returns ErrZoneIsNotConstructed for the zero value.
func (z Zone) Validate() error {
	if z.id == "" {
		return ErrZoneIsNotConstructed
	}
	return nil
}
