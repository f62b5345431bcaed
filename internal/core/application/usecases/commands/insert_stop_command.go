package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/guard"
)

var ErrInsertStopCommandIsNotConstructed = errors.New(
	"InsertStopCommand must be created via NewInsertStopCommand constructor",
)

// InsertStopCommand places a new stop at a given sequence, pushing the stops from that
// sequence on one step back. Out-of-range sequences are clamped by the handler, so any
// integer is accepted.
type InsertStopCommand struct { //nolint:recvcheck //using for validation
	routeID  kernel.UUID
	orderID  kernel.UUID
	sequence int
	details  stop.Details

	guard guard.ConstructorGuard
}

func NewInsertStopCommand(
	routeID, orderID kernel.UUID,
	sequence int,
	details stop.Details,
) (InsertStopCommand, error) {
	cmd := InsertStopCommand{
		sequence: sequence,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setUUID(&cmd.routeID, routeID),
		setUUID(&cmd.orderID, orderID),
		setDetails(&cmd.details, details),
	); err != nil {
		return InsertStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InsertStopCommand) Validate() error {
	return c.guard.Validate(ErrInsertStopCommandIsNotConstructed)
}

func (c InsertStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c InsertStopCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Sequence returns the requested, not yet clamped, sequence.
func (c InsertStopCommand) Sequence() int {
	return c.sequence
}

func (c InsertStopCommand) Details() stop.Details {
	return c.details
}
