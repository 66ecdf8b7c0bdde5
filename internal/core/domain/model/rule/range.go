package rule

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrRangeNeedsBound is returned when constructing a range with neither bound;
// an unbounded dimension is expressed by omitting the range entirely.
var ErrRangeNeedsBound = errors.New("range requires at least one bound")

// WeightRange restricts rule applicability by parcel weight in kilograms.
// Half-open: a weight w matches iff min <= w < max, with absent bounds
// imposing no restriction on their side.
type WeightRange struct {
	min *float64
	max *float64
}

// NewWeightRange creates a weight range from optional bounds.
// At least one bound must be present, bounds must be non-negative, and when
// both are present min must be strictly below max.
func NewWeightRange(minKg, maxKg *float64) (WeightRange, error) {
	if minKg == nil && maxKg == nil {
		return WeightRange{}, ErrRangeNeedsBound
	}
	if minKg != nil && *minKg < 0 {
		return WeightRange{}, errs.NewValueIsInvalidErrorWithCause(
			"min weight", fmt.Errorf("%v kg is negative", *minKg))
	}
	if maxKg != nil && *maxKg <= 0 {
		return WeightRange{}, errs.NewValueIsInvalidErrorWithCause(
			"max weight", fmt.Errorf("%v kg is not greater than 0", *maxKg))
	}
	if minKg != nil && maxKg != nil && *minKg >= *maxKg {
		return WeightRange{}, errs.NewValueIsOutOfRangeError("min weight", *minKg, 0, *maxKg)
	}

	r := WeightRange{}
	if minKg != nil {
		v := *minKg
		r.min = &v
	}
	if maxKg != nil {
		v := *maxKg
		r.max = &v
	}
	return r, nil
}

// Contains reports whether the weight falls inside the half-open range.
func (r WeightRange) Contains(weightKg float64) bool {
	if r.min != nil && weightKg < *r.min {
		return false
	}
	if r.max != nil && weightKg >= *r.max {
		return false
	}
	return true
}

// Min returns the inclusive lower bound, or nil when unbounded below.
func (r WeightRange) Min() *float64 {
	return copyFloat(r.min)
}

// Max returns the exclusive upper bound, or nil when unbounded above.
func (r WeightRange) Max() *float64 {
	return copyFloat(r.max)
}

// String renders the range in interval notation, "*" marking an absent bound.
func (r WeightRange) String() string {
	return fmt.Sprintf("[%s, %s)", formatFloat(r.min), formatFloat(r.max))
}

// ValueRange restricts rule applicability by declared order value in minor
// currency units. Same half-open convention as WeightRange.
type ValueRange struct {
	min *int64
	max *int64
}

// NewValueRange creates a value range from optional bounds.
func NewValueRange(minValue, maxValue *int64) (ValueRange, error) {
	if minValue == nil && maxValue == nil {
		return ValueRange{}, ErrRangeNeedsBound
	}
	if minValue != nil && *minValue < 0 {
		return ValueRange{}, errs.NewValueIsInvalidErrorWithCause(
			"min order value", fmt.Errorf("%d is negative", *minValue))
	}
	if maxValue != nil && *maxValue <= 0 {
		return ValueRange{}, errs.NewValueIsInvalidErrorWithCause(
			"max order value", fmt.Errorf("%d is not greater than 0", *maxValue))
	}
	if minValue != nil && maxValue != nil && *minValue >= *maxValue {
		return ValueRange{}, errs.NewValueIsOutOfRangeError("min order value", *minValue, 0, *maxValue)
	}

	r := ValueRange{}
	if minValue != nil {
		v := *minValue
		r.min = &v
	}
	if maxValue != nil {
		v := *maxValue
		r.max = &v
	}
	return r, nil
}

// Contains reports whether the value falls inside the half-open range.
func (r ValueRange) Contains(value int64) bool {
	if r.min != nil && value < *r.min {
		return false
	}
	if r.max != nil && value >= *r.max {
		return false
	}
	return true
}

// Min returns the inclusive lower bound, or nil when unbounded below.
func (r ValueRange) Min() *int64 {
	return copyInt64(r.min)
}

// Max returns the exclusive upper bound, or nil when unbounded above.
func (r ValueRange) Max() *int64 {
	return copyInt64(r.max)
}

// String renders the range in interval notation, "*" marking an absent bound.
func (r ValueRange) String() string {
	return fmt.Sprintf("[%s, %s)", formatInt64(r.min), formatInt64(r.max))
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func formatFloat(v *float64) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprintf("%g", *v)
}

func formatInt64(v *int64) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprintf("%d", *v)
}
