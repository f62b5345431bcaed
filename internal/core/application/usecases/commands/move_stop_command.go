package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMoveStopCommandIsNotConstructed = errors.New(
	"MoveStopCommand must be created via NewMoveStopCommand constructor",
)

// MoveStopCommand moves an existing stop to another sequence of its route. The handler
// clamps the sequence into [1, N].
type MoveStopCommand struct { //nolint:recvcheck //using for validation
	routeID  kernel.UUID
	orderID  kernel.UUID
	sequence int

	guard guard.ConstructorGuard
}

func NewMoveStopCommand(routeID, orderID kernel.UUID, sequence int) (MoveStopCommand, error) {
	cmd := MoveStopCommand{
		sequence: sequence,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setUUID(&cmd.routeID, routeID),
		setUUID(&cmd.orderID, orderID),
	); err != nil {
		return MoveStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveStopCommand) Validate() error {
	return c.guard.Validate(ErrMoveStopCommandIsNotConstructed)
}

func (c MoveStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c MoveStopCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Sequence returns the requested, not yet clamped, sequence.
func (c MoveStopCommand) Sequence() int {
	return c.sequence
}
