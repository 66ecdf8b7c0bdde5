package order_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	carrierID := kernel.NewUUID()
	assignedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("should create snapshot with a matched rule", func(t *testing.T) {
		ruleID := kernel.NewUUID()

		snapshot, err := order.NewSnapshot(carrierID, "Carrier X", "CX", &ruleID,
			assignedAt, "matched rule priority 1 (cod, weight [0, 30) kg)")

		require.NoError(t, err)
		assert.NoError(t, snapshot.Validate())
		assert.True(t, snapshot.CarrierID().IsEqual(carrierID))
		assert.Equal(t, "Carrier X", snapshot.CarrierName())
		assert.Equal(t, "CX", snapshot.CarrierCode())
		require.NotNil(t, snapshot.RuleID())
		assert.True(t, snapshot.RuleID().IsEqual(ruleID))
		assert.Equal(t, assignedAt, snapshot.AssignedAt())
	})

	t.Run("should create snapshot without a rule", func(t *testing.T) {
		snapshot, err := order.NewSnapshot(carrierID, "Carrier D", "CD", nil,
			assignedAt, "default courier, no matching rule")

		require.NoError(t, err)
		assert.Nil(t, snapshot.RuleID())
	})

	t.Run("should return error with invalid params", func(t *testing.T) {
		tests := map[string]func() error{
			"empty carrier id": func() error {
				_, err := order.NewSnapshot(kernel.UUID{}, "X", "X", nil, assignedAt, "reason")
				return err
			},
			"empty carrier name": func() error {
				_, err := order.NewSnapshot(carrierID, "", "X", nil, assignedAt, "reason")
				return err
			},
			"empty carrier code": func() error {
				_, err := order.NewSnapshot(carrierID, "X", "", nil, assignedAt, "reason")
				return err
			},
			"zero rule id": func() error {
				zero := kernel.UUID{}
				_, err := order.NewSnapshot(carrierID, "X", "X", &zero, assignedAt, "reason")
				return err
			},
			"zero timestamp": func() error {
				_, err := order.NewSnapshot(carrierID, "X", "X", nil, time.Time{}, "reason")
				return err
			},
			"empty reason": func() error {
				_, err := order.NewSnapshot(carrierID, "X", "X", nil, assignedAt, "")
				return err
			},
		}

		for name, create := range tests {
			t.Run(name, func(t *testing.T) {
				require.Error(t, create())
			})
		}
	})

	t.Run("should copy the rule id defensively", func(t *testing.T) {
		ruleID := kernel.NewUUID()
		snapshot, err := order.NewSnapshot(carrierID, "Carrier X", "CX", &ruleID,
			assignedAt, "reason")
		require.NoError(t, err)

		got := snapshot.RuleID()
		require.NotNil(t, got)
		other := snapshot.RuleID()
		assert.NotSame(t, got, other)
		assert.True(t, got.IsEqual(*other))
	})

	t.Run("should reject unconstructed snapshot via Validate", func(t *testing.T) {
		var snapshot order.Snapshot

		require.ErrorIs(t, snapshot.Validate(), order.ErrSnapshotIsNotConstructed)
	})
}
