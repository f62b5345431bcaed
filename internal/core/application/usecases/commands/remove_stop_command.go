package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveStopCommandIsNotConstructed = errors.New(
	"RemoveStopCommand must be created via NewRemoveStopCommand constructor",
)

// RemoveStopCommand takes an order off a route.
type RemoveStopCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveStopCommand(routeID, orderID kernel.UUID) (RemoveStopCommand, error) {
	cmd := RemoveStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setUUID(&cmd.routeID, routeID),
		setUUID(&cmd.orderID, orderID),
	); err != nil {
		return RemoveStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveStopCommand) Validate() error {
	return c.guard.Validate(ErrRemoveStopCommandIsNotConstructed)
}

func (c RemoveStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c RemoveStopCommand) OrderID() kernel.UUID {
	return c.orderID
}
