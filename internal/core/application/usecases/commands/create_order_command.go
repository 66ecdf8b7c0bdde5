package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order and run the
// automatic courier assignment for it in the same transaction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(orderID, tenantID, "local", 3.5, 2500, "cod", "560001")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, recorder)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	facts   order.Facts

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
//
// zone and payment arrive as external identifiers and are parsed here; payment
// accepts the gateway aliases understood by order.ParsePaymentMethod. Returns
// an error if any attribute fails domain validation.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID kernel.UUID,
	zone string,
	weightKg float64,
	value int64,
	payment string,
	pincode string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderCommand.setOrderID(orderID); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := orderCommand.setFacts(tenantID, zone, weightKg, value, payment, pincode); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Facts returns the validated order facts the assignment will run on.
func (c CreateOrderCommand) Facts() order.Facts {
	return c.facts
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setFacts(
	tenantID kernel.UUID,
	zone string,
	weightKg float64,
	value int64,
	payment string,
	pincode string,
) error {
	orderZone, err := kernel.NewZone(zone)
	if err != nil {
		return err
	}

	paymentMethod, err := order.ParsePaymentMethod(payment)
	if err != nil {
		return err
	}

	facts, err := order.NewFacts(tenantID, orderZone, weightKg, value, paymentMethod, pincode)
	if err != nil {
		return err
	}

	c.facts = facts
	return nil
}
