package order_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	t.Run("should collapse gateway variants to prepaid", func(t *testing.T) {
		for _, alias := range []string{"prepaid", "card", "upi", "wallet", "netbanking", "stripe"} {
			pm, err := order.ParsePaymentMethod(alias)
			require.NoError(t, err, alias)
			assert.Equal(t, order.PaymentPrepaid, pm, alias)
		}
	})

	t.Run("should parse cod", func(t *testing.T) {
		pm, err := order.ParsePaymentMethod("cod")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentCOD, pm)
		assert.True(t, pm.IsCOD())
	})

	t.Run("should reject unknown identifiers", func(t *testing.T) {
		pm, err := order.ParsePaymentMethod("barter")

		require.Error(t, err)
		assert.Equal(t, order.PaymentUnknown, pm)
	})
}

func TestNewFacts(t *testing.T) {
	tenantID := kernel.NewUUID()
	local := mustZone(t, "local")

	t.Run("should create facts with valid params", func(t *testing.T) {
		facts, err := order.NewFacts(tenantID, local, 3.5, 2500, order.PaymentCOD, "560001")

		require.NoError(t, err)
		assert.NoError(t, facts.Validate())
		assert.True(t, facts.TenantID().IsEqual(tenantID))
		assert.True(t, facts.Zone().IsEqual(local))
		assert.Equal(t, 3.5, facts.WeightKg())
		assert.Equal(t, int64(2500), facts.Value())
		assert.Equal(t, order.PaymentCOD, facts.Payment())
		assert.Equal(t, "560001", facts.Pincode())
	})

	t.Run("should allow zero order value", func(t *testing.T) {
		_, err := order.NewFacts(tenantID, local, 1, 0, order.PaymentPrepaid, "560001")

		require.NoError(t, err)
	})

	t.Run("should return error with invalid params", func(t *testing.T) {
		tests := map[string]func() error{
			"empty tenant id": func() error {
				_, err := order.NewFacts(kernel.UUID{}, local, 1, 100, order.PaymentCOD, "560001")
				return err
			},
			"empty zone": func() error {
				_, err := order.NewFacts(tenantID, kernel.Zone{}, 1, 100, order.PaymentCOD, "560001")
				return err
			},
			"zero weight": func() error {
				_, err := order.NewFacts(tenantID, local, 0, 100, order.PaymentCOD, "560001")
				return err
			},
			"negative weight": func() error {
				_, err := order.NewFacts(tenantID, local, -1, 100, order.PaymentCOD, "560001")
				return err
			},
			"negative value": func() error {
				_, err := order.NewFacts(tenantID, local, 1, -1, order.PaymentCOD, "560001")
				return err
			},
			"unknown payment": func() error {
				_, err := order.NewFacts(tenantID, local, 1, 100, order.PaymentUnknown, "560001")
				return err
			},
			"empty pincode": func() error {
				_, err := order.NewFacts(tenantID, local, 1, 100, order.PaymentCOD, "")
				return err
			},
		}

		for name, create := range tests {
			t.Run(name, func(t *testing.T) {
				require.Error(t, create())
			})
		}
	})

	t.Run("should join errors for multiple invalid fields", func(t *testing.T) {
		_, err := order.NewFacts(kernel.UUID{}, kernel.Zone{}, 0, -1, order.PaymentUnknown, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, kernel.ErrZoneIsNotConstructed)
	})

	t.Run("should reject unconstructed facts via Validate", func(t *testing.T) {
		var facts order.Facts

		require.ErrorIs(t, facts.Validate(), order.ErrFactsAreNotConstructed)
	})
}
