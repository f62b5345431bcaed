package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/guard"
)

var ErrUpsertStopCommandIsNotConstructed = errors.New(
	"UpsertStopCommand must be created via NewUpsertStopCommand constructor",
)

// UpsertStopCommand creates a stop or replaces the details of an existing one.
//
// The requested sequence is carried for callers that send one but is never applied: a new
// stop is appended and an existing stop keeps its place. Use InsertStopCommand to place a
// new stop at a given sequence and MoveStopCommand to reorder.
type UpsertStopCommand struct { //nolint:recvcheck //using for validation
	routeID           kernel.UUID
	orderID           kernel.UUID
	details           stop.Details
	requestedSequence int

	guard guard.ConstructorGuard
}

// NewUpsertStopCommand validates the identifiers and details. requestedSequence is 0 when
// the caller did not send one.
func NewUpsertStopCommand(
	routeID, orderID kernel.UUID,
	details stop.Details,
	requestedSequence int,
) (UpsertStopCommand, error) {
	cmd := UpsertStopCommand{
		requestedSequence: requestedSequence,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setUUID(&cmd.routeID, routeID),
		setUUID(&cmd.orderID, orderID),
		setDetails(&cmd.details, details),
	); err != nil {
		return UpsertStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertStopCommand) Validate() error {
	return c.guard.Validate(ErrUpsertStopCommandIsNotConstructed)
}

func (c UpsertStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c UpsertStopCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpsertStopCommand) Details() stop.Details {
	return c.details
}

// RequestedSequence returns the sequence the caller asked for, 0 when none.
func (c UpsertStopCommand) RequestedSequence() int {
	return c.requestedSequence
}
