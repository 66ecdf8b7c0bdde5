package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrOverrideCourierCommandIsNotConstructed = errors.New(
		"OverrideCourierCommand must be created via NewOverrideCourierCommand constructor",
	)
	ErrActorIsRequired  = errors.New("actor is required")
	ErrReasonIsRequired = errors.New("override reason is required")
)

// OverrideCourierCommand represents an administrative request to replace the
// courier on an order with an explicitly chosen carrier.
//
// Example:
//
//	cmd, err := NewOverrideCourierCommand(orderID, carrierID,
//	    "admin@acme.example", "customer requested faster carrier")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewOverrideCourierCommandHandler(uowFactory, recorder)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrOverrideNotAllowed):
//	    // courier is locked, order reached Processing
//	case errors.Is(err, ErrCarrierNotEligible):
//	    // chosen carrier cannot serve this order
//	}
type OverrideCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	carrierID kernel.UUID
	actor     string
	reason    string

	guard guard.ConstructorGuard
}

// NewOverrideCourierCommand creates a command to manually reassign an order's
// courier. The acting administrator and a justification are both required;
// they end up in the audit trail.
func NewOverrideCourierCommand(
	orderID kernel.UUID,
	carrierID kernel.UUID,
	actor string,
	reason string,
) (OverrideCourierCommand, error) {
	overrideCommand := OverrideCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		overrideCommand.setOrderID(orderID),
		overrideCommand.setCarrierID(carrierID),
		overrideCommand.setActor(actor),
		overrideCommand.setReason(reason),
	); err != nil {
		return OverrideCourierCommand{}, err
	}

	return overrideCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrOverrideCourierCommandIsNotConstructed if validation fails.
func (c OverrideCourierCommand) Validate() error {
	return c.guard.Validate(ErrOverrideCourierCommandIsNotConstructed)
}

// OrderID returns the order whose courier is being replaced.
func (c OverrideCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the explicitly chosen carrier.
func (c OverrideCourierCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// Actor returns the administrator performing the override.
func (c OverrideCourierCommand) Actor() string {
	return c.actor
}

// Reason returns the administrative justification for the override.
func (c OverrideCourierCommand) Reason() string {
	return c.reason
}

func (c *OverrideCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *OverrideCourierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *OverrideCourierCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *OverrideCourierCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
