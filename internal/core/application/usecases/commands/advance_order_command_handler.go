package commands

import (
	"context"
)

// AdvanceOrderCommandHandler moves an order one step forward in its lifecycle.
//
// The interesting interactions live in the aggregate: reaching Processing
// locks the courier against overrides, and Shipped is rejected when no courier
// snapshot is present. The optimistic version check on Update makes the
// advance/override race lose deterministically for one side.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for lifecycle transitions.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command. Returns order.ErrCourierRequiredToShip
// when the transition into Shipped finds no courier snapshot, and
// ports.ErrConcurrencyConflict when the order changed concurrently.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	advanced, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = advanced.Advance(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, advanced); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
