package order_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, id string) kernel.Zone {
	t.Helper()
	z, err := kernel.NewZone(id)
	require.NoError(t, err)
	return z
}

func mustFacts(t *testing.T, tenantID kernel.UUID) order.Facts {
	t.Helper()
	facts, err := order.NewFacts(tenantID, mustZone(t, "local"), 3, 2500, order.PaymentCOD, "560001")
	require.NoError(t, err)
	return facts
}

func mustSnapshot(t *testing.T, carrierName, carrierCode string) order.Snapshot {
	t.Helper()
	snapshot, err := order.NewSnapshot(kernel.NewUUID(), carrierName, carrierCode, nil,
		time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), "manually assigned")
	require.NoError(t, err)
	return snapshot
}

func TestNewOrder(t *testing.T) {
	tenantID := kernel.NewUUID()

	t.Run("should create order in Created status with version 1", func(t *testing.T) {
		id := kernel.NewUUID()
		facts := mustFacts(t, tenantID)

		o, err := order.NewOrder(id, facts)

		require.NoError(t, err)
		require.NotNil(t, o)
		assert.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Snapshot())
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("should return error with empty id", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, mustFacts(t, tenantID))

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should return error with unconstructed facts", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), order.Facts{})

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrFactsAreNotConstructed)
		assert.Nil(t, o)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	tenantID := kernel.NewUUID()

	t.Run("should assign courier once in Created status", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		snapshot := mustSnapshot(t, "Carrier X", "CX")

		err = o.AssignCourier(snapshot)

		require.NoError(t, err)
		require.NotNil(t, o.Snapshot())
		assert.Equal(t, "CX", o.Snapshot().CarrierCode())
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should reject a second automatic assignment", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		require.NoError(t, o.AssignCourier(mustSnapshot(t, "Carrier X", "CX")))

		err = o.AssignCourier(mustSnapshot(t, "Carrier Y", "CY"))

		require.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)
		assert.Equal(t, "CX", o.Snapshot().CarrierCode())
	})

	t.Run("should reject an unconstructed snapshot", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)

		err = o.AssignCourier(order.Snapshot{})

		require.ErrorIs(t, err, order.ErrSnapshotIsNotConstructed)
		assert.Nil(t, o.Snapshot())
	})
}

func TestOrder_OverrideCourier(t *testing.T) {
	tenantID := kernel.NewUUID()

	newAssignedOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		require.NoError(t, o.AssignCourier(mustSnapshot(t, "Carrier X", "CX")))
		return o
	}

	t.Run("should replace the snapshot in Created status", func(t *testing.T) {
		o := newAssignedOrder(t)

		err := o.OverrideCourier(mustSnapshot(t, "Carrier Y", "CY"))

		require.NoError(t, err)
		assert.Equal(t, "CY", o.Snapshot().CarrierCode())
	})

	t.Run("should replace the snapshot in Confirmed status", func(t *testing.T) {
		o := newAssignedOrder(t)
		require.NoError(t, o.Advance()) // Confirmed

		err := o.OverrideCourier(mustSnapshot(t, "Carrier Y", "CY"))

		require.NoError(t, err)
		assert.Equal(t, "CY", o.Snapshot().CarrierCode())
	})

	t.Run("should reject override once Processing is reached", func(t *testing.T) {
		o := newAssignedOrder(t)
		require.NoError(t, o.Advance()) // Confirmed
		require.NoError(t, o.Advance()) // Processing

		err := o.OverrideCourier(mustSnapshot(t, "Carrier Y", "CY"))

		require.ErrorIs(t, err, order.ErrOverrideNotAllowed)
		assert.Equal(t, "CX", o.Snapshot().CarrierCode())
	})

	t.Run("should reject override after shipping", func(t *testing.T) {
		o := newAssignedOrder(t)
		require.NoError(t, o.Advance()) // Confirmed
		require.NoError(t, o.Advance()) // Processing
		require.NoError(t, o.Advance()) // Shipped

		err := o.OverrideCourier(mustSnapshot(t, "Carrier Y", "CY"))

		require.ErrorIs(t, err, order.ErrOverrideNotAllowed)
	})

	t.Run("should reject override before any assignment", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)

		err = o.OverrideCourier(mustSnapshot(t, "Carrier Y", "CY"))

		require.ErrorIs(t, err, order.ErrNoCourierAssigned)
	})
}

func TestOrder_Advance(t *testing.T) {
	tenantID := kernel.NewUUID()

	t.Run("should walk the full lifecycle with a courier assigned", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		require.NoError(t, o.AssignCourier(mustSnapshot(t, "Carrier X", "CX")))

		statuses := []order.Status{order.Confirmed, order.Processing, order.Shipped, order.Delivered}
		for _, want := range statuses {
			require.NoError(t, o.Advance())
			assert.Equal(t, want, o.Status())
		}
	})

	t.Run("should refuse to ship without a courier", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		require.NoError(t, o.Advance()) // Confirmed
		require.NoError(t, o.Advance()) // Processing

		err = o.Advance() // Shipped requires a courier

		require.ErrorIs(t, err, order.ErrCourierRequiredToShip)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("should refuse to advance past Delivered", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		require.NoError(t, o.AssignCourier(mustSnapshot(t, "Carrier X", "CX")))
		for i := 0; i < 4; i++ {
			require.NoError(t, o.Advance())
		}

		err = o.Advance()

		require.Error(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	tenantID := kernel.NewUUID()

	t.Run("should restore an order with snapshot and version", func(t *testing.T) {
		id := kernel.NewUUID()
		snapshot := mustSnapshot(t, "Carrier X", "CX")

		o, err := order.RestoreOrder(id, mustFacts(t, tenantID), order.Shipped, &snapshot, 4)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, int64(4), o.Version())
		require.NotNil(t, o.Snapshot())
		assert.Equal(t, "CX", o.Snapshot().CarrierCode())
	})

	t.Run("should reject Shipped status without a snapshot", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), mustFacts(t, tenantID), order.Shipped, nil, 4)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should reject non-positive versions", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), mustFacts(t, tenantID), order.Created, nil, 0)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should return error for nil and zero-value orders", func(t *testing.T) {
		var nilOrder *order.Order
		var zeroOrder order.Order

		require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, zeroOrder.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_SnapshotCopy(t *testing.T) {
	t.Run("should return a copy of the snapshot", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		o, err := order.NewOrder(kernel.NewUUID(), mustFacts(t, tenantID))
		require.NoError(t, err)
		require.NoError(t, o.AssignCourier(mustSnapshot(t, "Carrier X", "CX")))

		first := o.Snapshot()
		second := o.Snapshot()

		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.NotSame(t, first, second)
		assert.Equal(t, first.CarrierCode(), second.CarrierCode())
	})
}
