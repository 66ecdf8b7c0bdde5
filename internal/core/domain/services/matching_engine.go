package services

import (
	"errors"
	"math"
	"sort"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/rule"
)

// ErrNoCourierAvailable is returned when neither a rule nor the default
// fallback resolves a carrier for the order. This is fatal to order creation
// and must abort the checkout pipeline.
var ErrNoCourierAvailable = errors.New("no courier available for order")

// defaultCourierReason is the justification recorded on fallback decisions.
const defaultCourierReason = "default courier, no matching rule"

// Decision is the outcome of a resolution: the winning carrier, the rule that
// nominated it (nil on the default-courier fallback), and a justification
// detail for fallback decisions.
type Decision struct {
	Carrier *carrier.Carrier
	Rule    *rule.Rule
	Detail  string
}

// MatchingEngine selects exactly one carrier for an order from a tenant's
// rules and carriers.
//
// Resolution is deterministic: given identical rule set, carrier set and
// order facts, Resolve always returns the identical decision. Candidate
// order is (rule priority, target carrier priority, rule creation sequence),
// all ascending, with no randomness and no wall-clock input.
//
// Example usage:
//
//	engine := services.NewMatchingEngine()
//	decision, err := engine.Resolve(rules, carriers, facts)
//	if errors.Is(err, services.ErrNoCourierAvailable) {
//	    // abort order creation
//	}
type MatchingEngine struct {
	validator EligibilityValidator
}

// NewMatchingEngine creates a MatchingEngine with the standard eligibility
// validator.
func NewMatchingEngine() MatchingEngine {
	return MatchingEngine{validator: NewEligibilityValidator()}
}

// Resolve picks the winning (rule, carrier) pair for the order facts, or the
// default carrier when no rule matches.
//
// Algorithm:
//  1. Discard rules that are inactive or do not match the facts (zone,
//     payment scope, half-open weight and value ranges).
//  2. Sort survivors by rule priority, then target carrier priority, then
//     rule creation sequence.
//  3. Walk the sorted list and return the first rule whose target carrier
//     exists and passes eligibility validation. Ineligible candidates are
//     skipped silently; the walk continues.
//  4. If no rule produced a carrier, fall back to the lowest-priority
//     eligible carrier (full eligibility check, so COD support, zone,
//     pincode and weight limits hold on this path too).
//  5. With no fallback candidate either, return ErrNoCourierAvailable.
func (e MatchingEngine) Resolve(
	rules []*rule.Rule,
	carriers []*carrier.Carrier,
	facts order.Facts,
) (Decision, error) {
	if err := facts.Validate(); err != nil {
		return Decision{}, err
	}

	byID := indexCarriers(carriers)
	candidates := e.matchingRules(rules, byID, facts)

	for _, r := range candidates {
		c, ok := byID[r.CarrierID()]
		if !ok {
			// Rule points at a deleted or foreign carrier; skip, keep walking.
			continue
		}
		if !e.validator.IsEligible(c, facts) {
			continue
		}
		return Decision{Carrier: c, Rule: r}, nil
	}

	if fallback := e.defaultCarrier(carriers, facts); fallback != nil {
		return Decision{Carrier: fallback, Detail: defaultCourierReason}, nil
	}

	return Decision{}, ErrNoCourierAvailable
}

// matchingRules filters and ranks the rules that apply to the order facts.
func (e MatchingEngine) matchingRules(
	rules []*rule.Rule,
	byID map[kernel.UUID]*carrier.Carrier,
	facts order.Facts,
) []*rule.Rule {
	candidates := make([]*rule.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Validate() != nil || !r.IsActive() {
			continue
		}
		if !r.Matches(facts) {
			continue
		}
		candidates = append(candidates, r)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Priority() != b.Priority() {
			return a.Priority() < b.Priority()
		}
		ap, bp := carrierPriority(byID, a.CarrierID()), carrierPriority(byID, b.CarrierID())
		if ap != bp {
			return ap < bp
		}
		return a.Sequence() < b.Sequence()
	})

	return candidates
}

// defaultCarrier picks the fallback: the eligible carrier with the lowest
// priority value. Priority ties break by carrier code, which is unique per
// tenant, so the fallback is deterministic as well.
func (e MatchingEngine) defaultCarrier(carriers []*carrier.Carrier, facts order.Facts) *carrier.Carrier {
	var best *carrier.Carrier
	for _, c := range carriers {
		if !e.validator.IsEligible(c, facts) {
			continue
		}
		if best == nil ||
			c.Priority() < best.Priority() ||
			(c.Priority() == best.Priority() && c.Code() < best.Code()) {
			best = c
		}
	}
	return best
}

// carrierPriority looks up the priority of a rule's target carrier for
// sorting. Rules targeting unknown carriers sort last among equal-priority
// rules; they are skipped during the walk anyway.
func carrierPriority(byID map[kernel.UUID]*carrier.Carrier, id kernel.UUID) int {
	if c, ok := byID[id]; ok {
		return c.Priority()
	}
	return math.MaxInt
}

func indexCarriers(carriers []*carrier.Carrier) map[kernel.UUID]*carrier.Carrier {
	byID := make(map[kernel.UUID]*carrier.Carrier, len(carriers))
	for _, c := range carriers {
		if c.Validate() != nil {
			continue
		}
		byID[c.ID()] = c
	}
	return byID
}
