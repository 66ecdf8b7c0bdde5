package rule_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/rule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, id string) kernel.Zone {
	t.Helper()
	z, err := kernel.NewZone(id)
	require.NoError(t, err)
	return z
}

func mustFacts(
	t *testing.T,
	tenantID kernel.UUID,
	zone kernel.Zone,
	weightKg float64,
	value int64,
	payment order.PaymentMethod,
) order.Facts {
	t.Helper()
	facts, err := order.NewFacts(tenantID, zone, weightKg, value, payment, "560001")
	require.NoError(t, err)
	return facts
}

func mustWeightRange(t *testing.T, minKg, maxKg *float64) *rule.WeightRange {
	t.Helper()
	r, err := rule.NewWeightRange(minKg, maxKg)
	require.NoError(t, err)
	return &r
}

func mustValueRange(t *testing.T, minValue, maxValue *int64) *rule.ValueRange {
	t.Helper()
	r, err := rule.NewValueRange(minValue, maxValue)
	require.NoError(t, err)
	return &r
}

func TestPaymentScope_Matches(t *testing.T) {
	t.Run("should match both methods for ScopeBoth", func(t *testing.T) {
		assert.True(t, rule.ScopeBoth.Matches(order.PaymentPrepaid))
		assert.True(t, rule.ScopeBoth.Matches(order.PaymentCOD))
	})

	t.Run("should match only its own method for narrow scopes", func(t *testing.T) {
		assert.True(t, rule.ScopePrepaid.Matches(order.PaymentPrepaid))
		assert.False(t, rule.ScopePrepaid.Matches(order.PaymentCOD))

		assert.True(t, rule.ScopeCOD.Matches(order.PaymentCOD))
		assert.False(t, rule.ScopeCOD.Matches(order.PaymentPrepaid))
	})

	t.Run("should never match an unknown scope or method", func(t *testing.T) {
		assert.False(t, rule.ScopeUnknown.Matches(order.PaymentPrepaid))
		assert.False(t, rule.ScopeBoth.Matches(order.PaymentUnknown))
	})
}

func TestNewRule(t *testing.T) {
	tenantID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	local := mustZone(t, "local")

	t.Run("should create an active rule with valid params", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := rule.NewRule(id, tenantID, local, rule.ScopeCOD,
			mustWeightRange(t, floatPtr(0), floatPtr(30)),
			mustValueRange(t, intPtr(1000), nil),
			carrierID, 1, 42)

		require.NoError(t, err)
		require.NotNil(t, r)
		assert.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.True(t, r.CarrierID().IsEqual(carrierID))
		assert.Equal(t, 1, r.Priority())
		assert.Equal(t, int64(42), r.Sequence())
		assert.True(t, r.IsActive())
	})

	t.Run("should allow unbounded weight and value", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth,
			nil, nil, carrierID, 1, 1)

		require.NoError(t, err)
		assert.Nil(t, r.WeightRange())
		assert.Nil(t, r.ValueRange())
	})

	t.Run("should return error with invalid params", func(t *testing.T) {
		tests := map[string]func() error{
			"empty id": func() error {
				_, err := rule.NewRule(kernel.UUID{}, tenantID, local, rule.ScopeBoth, nil, nil, carrierID, 1, 1)
				return err
			},
			"empty tenant id": func() error {
				_, err := rule.NewRule(kernel.NewUUID(), kernel.UUID{}, local, rule.ScopeBoth, nil, nil, carrierID, 1, 1)
				return err
			},
			"empty zone": func() error {
				_, err := rule.NewRule(kernel.NewUUID(), tenantID, kernel.Zone{}, rule.ScopeBoth, nil, nil, carrierID, 1, 1)
				return err
			},
			"unknown payment scope": func() error {
				_, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeUnknown, nil, nil, carrierID, 1, 1)
				return err
			},
			"empty carrier id": func() error {
				_, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth, nil, nil, kernel.UUID{}, 1, 1)
				return err
			},
			"negative priority": func() error {
				_, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth, nil, nil, carrierID, -1, 1)
				return err
			},
			"negative sequence": func() error {
				_, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth, nil, nil, carrierID, 1, -1)
				return err
			},
		}

		for name, create := range tests {
			t.Run(name, func(t *testing.T) {
				require.Error(t, create())
			})
		}
	})
}

func TestRule_Matches(t *testing.T) {
	tenantID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	local := mustZone(t, "local")

	t.Run("should match when all conditions hold", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeCOD,
			mustWeightRange(t, floatPtr(0), floatPtr(30)),
			mustValueRange(t, intPtr(1000), intPtr(100000)),
			carrierID, 1, 1)
		require.NoError(t, err)

		facts := mustFacts(t, tenantID, local, 3, 2500, order.PaymentCOD)

		assert.True(t, r.Matches(facts))
	})

	t.Run("should not match a different zone", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth,
			nil, nil, carrierID, 1, 1)
		require.NoError(t, err)

		facts := mustFacts(t, tenantID, mustZone(t, "north"), 3, 2500, order.PaymentCOD)

		assert.False(t, r.Matches(facts))
	})

	t.Run("should not match a payment outside the scope", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeCOD,
			nil, nil, carrierID, 1, 1)
		require.NoError(t, err)

		facts := mustFacts(t, tenantID, local, 3, 2500, order.PaymentPrepaid)

		assert.False(t, r.Matches(facts))
	})

	t.Run("should not match a weight at the exclusive upper bound", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth,
			mustWeightRange(t, floatPtr(0), floatPtr(30)), nil, carrierID, 1, 1)
		require.NoError(t, err)

		assert.True(t, r.Matches(mustFacts(t, tenantID, local, 29.99, 2500, order.PaymentCOD)))
		assert.False(t, r.Matches(mustFacts(t, tenantID, local, 30, 2500, order.PaymentCOD)))
	})

	t.Run("should not match a value outside the range", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth,
			nil, mustValueRange(t, intPtr(10000), nil), carrierID, 1, 1)
		require.NoError(t, err)

		assert.True(t, r.Matches(mustFacts(t, tenantID, local, 3, 10000, order.PaymentCOD)))
		assert.False(t, r.Matches(mustFacts(t, tenantID, local, 3, 9999, order.PaymentCOD)))
	})
}

func TestRule_Describe(t *testing.T) {
	tenantID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	local := mustZone(t, "local")

	t.Run("should render payment scope and present ranges", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeCOD,
			mustWeightRange(t, floatPtr(0), floatPtr(30)),
			mustValueRange(t, intPtr(10000), nil),
			carrierID, 1, 1)
		require.NoError(t, err)

		assert.Equal(t, "cod, weight [0, 30) kg, value [10000, *)", r.Describe())
	})

	t.Run("should render only the payment scope without ranges", func(t *testing.T) {
		r, err := rule.NewRule(kernel.NewUUID(), tenantID, local, rule.ScopeBoth,
			nil, nil, carrierID, 1, 1)
		require.NoError(t, err)

		assert.Equal(t, "both", r.Describe())
	})
}

func TestRule_Validate(t *testing.T) {
	t.Run("should return error for nil and zero-value rules", func(t *testing.T) {
		var nilRule *rule.Rule
		var zeroRule rule.Rule

		require.ErrorIs(t, nilRule.Validate(), rule.ErrRuleIsNotConstructed)
		require.ErrorIs(t, zeroRule.Validate(), rule.ErrRuleIsNotConstructed)
	})
}
