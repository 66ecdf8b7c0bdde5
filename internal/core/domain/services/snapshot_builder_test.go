package services_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/rule"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBuilder_Build(t *testing.T) {
	tenantID := kernel.NewUUID()
	local := mustZone(t, "local")
	frozenAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	builder := services.NewSnapshotBuilderWithClock(func() time.Time { return frozenAt })

	t.Run("should freeze carrier identity, name and code from a rule match", func(t *testing.T) {
		c := mustCarrier(t, tenantID, "Carrier X", "CX", 1, true, 0, []kernel.Zone{local}, nil)
		r := mustRule(t, tenantID, local, rule.ScopeCOD,
			mustWeightRange(t, floatPtr(0), floatPtr(30)), nil, c.ID(), 1, 1)

		snapshot, err := builder.Build(c, r, "")

		require.NoError(t, err)
		assert.True(t, snapshot.CarrierID().IsEqual(c.ID()))
		assert.Equal(t, "Carrier X", snapshot.CarrierName())
		assert.Equal(t, "CX", snapshot.CarrierCode())
		require.NotNil(t, snapshot.RuleID())
		assert.True(t, snapshot.RuleID().IsEqual(r.ID()))
		assert.Equal(t, frozenAt, snapshot.AssignedAt())
	})

	t.Run("should justify rule matches with priority and conditions", func(t *testing.T) {
		c := mustCarrier(t, tenantID, "Carrier X", "CX", 1, true, 0, []kernel.Zone{local}, nil)
		r := mustRule(t, tenantID, local, rule.ScopeCOD,
			mustWeightRange(t, floatPtr(0), floatPtr(30)), nil, c.ID(), 1, 1)

		snapshot, err := builder.Build(c, r, "")

		require.NoError(t, err)
		assert.Equal(t, "matched rule priority 1 (cod, weight [0, 30) kg)", snapshot.Reason())
	})

	t.Run("should record the fallback detail with no rule id", func(t *testing.T) {
		c := mustCarrier(t, tenantID, "Carrier D", "CD", 1, true, 0, []kernel.Zone{local}, nil)

		snapshot, err := builder.Build(c, nil, "default courier, no matching rule")

		require.NoError(t, err)
		assert.Nil(t, snapshot.RuleID())
		assert.Contains(t, snapshot.Reason(), "default")
	})

	t.Run("should record manual assignments with no rule id", func(t *testing.T) {
		c := mustCarrier(t, tenantID, "Carrier Y", "CY", 1, true, 0, []kernel.Zone{local}, nil)

		snapshot, err := builder.Build(c, nil, services.ManualAssignmentReason)

		require.NoError(t, err)
		assert.Nil(t, snapshot.RuleID())
		assert.Equal(t, "manually assigned", snapshot.Reason())
	})

	t.Run("should stamp snapshots in UTC", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		localClock := services.NewSnapshotBuilderWithClock(func() time.Time {
			return time.Date(2026, 3, 14, 15, 0, 0, 0, ist)
		})
		c := mustCarrier(t, tenantID, "Carrier X", "CX", 1, true, 0, []kernel.Zone{local}, nil)

		snapshot, err := localClock.Build(c, nil, services.ManualAssignmentReason)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, snapshot.AssignedAt().Location())
	})

	t.Run("should reject an unconstructed carrier", func(t *testing.T) {
		_, err := builder.Build(nil, nil, "anything")

		require.Error(t, err)
	})
}

func TestSnapshotBuilder_FromDecision(t *testing.T) {
	tenantID := kernel.NewUUID()
	local := mustZone(t, "local")
	frozenAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	builder := services.NewSnapshotBuilderWithClock(func() time.Time { return frozenAt })
	engine := services.NewMatchingEngine()

	t.Run("should freeze an engine decision end to end", func(t *testing.T) {
		c := mustCarrier(t, tenantID, "Carrier X", "CX", 1, true, 0, []kernel.Zone{local}, nil)
		r := mustRule(t, tenantID, local, rule.ScopeBoth, nil, nil, c.ID(), 2, 1)
		facts := mustFacts(t, tenantID, local, 3, 2500, order.PaymentPrepaid, "560001")

		decision, err := engine.Resolve([]*rule.Rule{r}, []*carrier.Carrier{c}, facts)
		require.NoError(t, err)

		snapshot, err := builder.FromDecision(decision)

		require.NoError(t, err)
		assert.True(t, snapshot.CarrierID().IsEqual(c.ID()))
		require.NotNil(t, snapshot.RuleID())
		assert.True(t, snapshot.RuleID().IsEqual(r.ID()))
	})

	t.Run("should survive later carrier edits untouched", func(t *testing.T) {
		c := mustCarrier(t, tenantID, "Original Name", "ORIG", 1, true, 0, []kernel.Zone{local}, nil)

		snapshot, err := builder.Build(c, nil, services.ManualAssignmentReason)
		require.NoError(t, err)

		// A renamed carrier record must not affect the frozen snapshot.
		renamed, err := carrier.RestoreCarrier(c.ID(), tenantID, "New Name", "ORIG",
			1, true, 0, []kernel.Zone{local}, nil, true)
		require.NoError(t, err)
		require.NotNil(t, renamed)

		assert.Equal(t, "Original Name", snapshot.CarrierName())
	})
}
