package rule

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrRuleIsNotConstructed is returned when using an improperly initialized Rule.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")

// PaymentScope declares which payment methods a rule applies to.
type PaymentScope int

const (
	// ScopeUnknown represents an invalid or undefined scope.
	ScopeUnknown PaymentScope = iota

	// ScopePrepaid matches prepaid orders only.
	ScopePrepaid

	// ScopeCOD matches cash-on-delivery orders only.
	ScopeCOD

	// ScopeBoth matches prepaid and cash-on-delivery orders alike.
	ScopeBoth
)

// String returns the canonical name of the scope.
func (s PaymentScope) String() string {
	switch s {
	case ScopePrepaid:
		return "prepaid"
	case ScopeCOD:
		return "cod"
	case ScopeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Validate rejects ScopeUnknown and out-of-range values.
func (s PaymentScope) Validate() error {
	if s != ScopePrepaid && s != ScopeCOD && s != ScopeBoth {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment scope",
			fmt.Errorf("%d is not a valid payment scope", s),
		)
	}
	return nil
}

// Matches reports whether the scope covers the given payment method.
// ScopeBoth matches prepaid as well as cash on delivery.
func (s PaymentScope) Matches(pm order.PaymentMethod) bool {
	switch s {
	case ScopeBoth:
		return pm == order.PaymentPrepaid || pm == order.PaymentCOD
	case ScopePrepaid:
		return pm == order.PaymentPrepaid
	case ScopeCOD:
		return pm == order.PaymentCOD
	default:
		return false
	}
}

// Rule is a tenant-scoped matching policy: if an order in the rule's zone
// matches the payment scope and the optional weight/value ranges, the rule
// nominates its target carrier with the rule's priority.
//
// sequence is the rule's creation order within the tenant (assigned by
// storage). The engine uses it as the final, stable tie-break so that
// resolution is deterministic even when priorities collide.
type Rule struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	zone      kernel.Zone
	payment   PaymentScope
	weight    *WeightRange
	value     *ValueRange
	carrierID kernel.UUID
	priority  int
	active    bool
	sequence  int64

	guard guard.ConstructorGuard
}

// NewRule creates an active assignment rule.
// weight and value may be nil, meaning unbounded on that dimension.
func NewRule(
	id kernel.UUID,
	tenantID kernel.UUID,
	zone kernel.Zone,
	payment PaymentScope,
	weight *WeightRange,
	value *ValueRange,
	carrierID kernel.UUID,
	priority int,
	sequence int64,
) (*Rule, error) {
	return RestoreRule(id, tenantID, zone, payment, weight, value, carrierID, priority, sequence, true)
}

// RestoreRule reconstructs a rule aggregate from persistent storage.
func RestoreRule(
	id kernel.UUID,
	tenantID kernel.UUID,
	zone kernel.Zone,
	payment PaymentScope,
	weight *WeightRange,
	value *ValueRange,
	carrierID kernel.UUID,
	priority int,
	sequence int64,
	active bool,
) (*Rule, error) {
	r := &Rule{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenantID(tenantID),
		r.setZone(zone),
		r.setPayment(payment),
		r.setCarrierID(carrierID),
		r.setPriority(priority),
		r.setSequence(sequence),
	); err != nil {
		return nil, err
	}

	r.setRanges(weight, value)
	return r, nil
}

// Validate checks the Rule was created via a constructor.
func (r *Rule) Validate() error {
	if r == nil {
		return ErrRuleIsNotConstructed
	}
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

// ID returns the rule identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// TenantID returns the owning tenant's identifier.
func (r *Rule) TenantID() kernel.UUID {
	return r.tenantID
}

// Zone returns the shipping zone the rule is scoped to.
func (r *Rule) Zone() kernel.Zone {
	return r.zone
}

// Payment returns the payment scope.
func (r *Rule) Payment() PaymentScope {
	return r.payment
}

// WeightRange returns the optional weight restriction, nil when unbounded.
func (r *Rule) WeightRange() *WeightRange {
	if r.weight == nil {
		return nil
	}
	w := *r.weight
	return &w
}

// ValueRange returns the optional order-value restriction, nil when unbounded.
func (r *Rule) ValueRange() *ValueRange {
	if r.value == nil {
		return nil
	}
	v := *r.value
	return &v
}

// CarrierID returns the target carrier's identifier.
func (r *Rule) CarrierID() kernel.UUID {
	return r.carrierID
}

// Priority returns the rule priority; lower values win.
func (r *Rule) Priority() int {
	return r.priority
}

// IsActive reports whether the rule participates in matching.
func (r *Rule) IsActive() bool {
	return r.active
}

// Sequence returns the creation-order sequence used as the deterministic
// final tie-break.
func (r *Rule) Sequence() int64 {
	return r.sequence
}

// Matches reports whether the order facts satisfy the rule's zone, payment
// and range conditions. The active flag is checked by the engine, not here.
func (r *Rule) Matches(facts order.Facts) bool {
	if !r.zone.IsEqual(facts.Zone()) {
		return false
	}
	if !r.payment.Matches(facts.Payment()) {
		return false
	}
	if r.weight != nil && !r.weight.Contains(facts.WeightKg()) {
		return false
	}
	if r.value != nil && !r.value.Contains(facts.Value()) {
		return false
	}
	return true
}

// Describe renders the rule's conditions for assignment justifications,
// e.g. "cod, weight [0, 30) kg" or "both, value [10000, *)".
func (r *Rule) Describe() string {
	parts := []string{r.payment.String()}
	if r.weight != nil {
		parts = append(parts, fmt.Sprintf("weight %s kg", r.weight))
	}
	if r.value != nil {
		parts = append(parts, fmt.Sprintf("value %s", r.value))
	}
	return strings.Join(parts, ", ")
}

func (r *Rule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rule) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	r.tenantID = tenantID
	return nil
}

func (r *Rule) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	r.zone = zone
	return nil
}

func (r *Rule) setPayment(payment PaymentScope) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	r.payment = payment
	return nil
}

func (r *Rule) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	r.carrierID = carrierID
	return nil
}

func (r *Rule) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority",
			fmt.Errorf("%d is negative", priority),
		)
	}
	r.priority = priority
	return nil
}

func (r *Rule) setSequence(sequence int64) error {
	if sequence < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is negative", sequence),
		)
	}
	r.sequence = sequence
	return nil
}

func (r *Rule) setRanges(weight *WeightRange, value *ValueRange) {
	if weight != nil {
		w := *weight
		r.weight = &w
	}
	if value != nil {
		v := *value
		r.value = &v
	}
}
