package services

import (
	"fmt"
	"time"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/rule"
)

// ManualAssignmentReason is recorded on snapshots produced by an
// administrative override.
const ManualAssignmentReason = "manually assigned"

// SnapshotBuilder converts a resolution outcome into an immutable courier
// snapshot. Carrier id, name and code are copied verbatim so later carrier
// edits never alter what was decided here.
type SnapshotBuilder struct {
	now func() time.Time
}

// NewSnapshotBuilder creates a builder stamping snapshots with time.Now.
func NewSnapshotBuilder() SnapshotBuilder {
	return SnapshotBuilder{now: time.Now}
}

// NewSnapshotBuilderWithClock creates a builder with an injected clock.
// Used by tests that need reproducible timestamps.
func NewSnapshotBuilderWithClock(now func() time.Time) SnapshotBuilder {
	return SnapshotBuilder{now: now}
}

// FromDecision freezes an engine decision into a snapshot.
func (b SnapshotBuilder) FromDecision(d Decision) (order.Snapshot, error) {
	return b.Build(d.Carrier, d.Rule, d.Detail)
}

// Build creates a snapshot for the given carrier.
//
// When a rule is present, the reason names the rule's priority and bounds and
// the snapshot carries the rule's id. Otherwise the reason is the provided
// detail ("default courier, no matching rule" for fallback, "manually
// assigned" for overrides), defaulting to "default courier" when empty.
func (b SnapshotBuilder) Build(c *carrier.Carrier, r *rule.Rule, detail string) (order.Snapshot, error) {
	if err := c.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	reason := detail
	if r != nil {
		if err := r.Validate(); err != nil {
			return order.Snapshot{}, err
		}
		id := r.ID()
		reason = fmt.Sprintf("matched rule priority %d (%s)", r.Priority(), r.Describe())
		return order.NewSnapshot(c.ID(), c.Name(), c.Code(), &id, b.now().UTC(), reason)
	}

	if reason == "" {
		reason = "default courier"
	}
	return order.NewSnapshot(c.ID(), c.Name(), c.Code(), nil, b.now().UTC(), reason)
}
