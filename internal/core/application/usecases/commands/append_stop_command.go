package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/guard"
)

var ErrAppendStopCommandIsNotConstructed = errors.New(
	"AppendStopCommand must be created via NewAppendStopCommand constructor",
)

// AppendStopCommand places an order at the end of a route.
//
// Example:
//
//	cmd, err := NewAppendStopCommand(routeID, orderID, stop.PendingDetails())
//	if err != nil {
//	    return fmt.Errorf("invalid stop data: %w", err)
//	}
//
//	s, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectAlreadyExists) {
//	    // the order is already on the route
//	}
type AppendStopCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	orderID kernel.UUID
	details stop.Details

	guard guard.ConstructorGuard
}

// NewAppendStopCommand validates the identifiers and details.
func NewAppendStopCommand(routeID, orderID kernel.UUID, details stop.Details) (AppendStopCommand, error) {
	cmd := AppendStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setUUID(&cmd.routeID, routeID),
		setUUID(&cmd.orderID, orderID),
		setDetails(&cmd.details, details),
	); err != nil {
		return AppendStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AppendStopCommand) Validate() error {
	return c.guard.Validate(ErrAppendStopCommandIsNotConstructed)
}

func (c AppendStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c AppendStopCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AppendStopCommand) Details() stop.Details {
	return c.details
}

func setUUID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}

func setDetails(dst *stop.Details, details stop.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	*dst = details
	return nil
}
