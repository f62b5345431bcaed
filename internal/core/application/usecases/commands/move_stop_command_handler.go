package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/core/domain/services"
)

// ErrRouteHasNoStops is returned when an operation needs at least one stop on the route.
var ErrRouteHasNoStops = errors.New("route has no stops")

// MoveStopCommandHandler moves a stop within its route.
//
// Example:
//
//	handler := NewMoveStopCommandHandler(uowFactory)
//	cmd, _ := NewMoveStopCommand(routeID, orderID, 1)
//
//	s, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrRouteHasNoStops), errors.Is(err, errs.ErrObjectNotFound):
//	    // nothing to move
//	case err != nil:
//	    return err
//	}
type MoveStopCommandHandler struct {
	uowFactory StopUoWFactory
	planner    services.SequencePlanner
}

// NewMoveStopCommandHandler creates a handler for move operations.
func NewMoveStopCommandHandler(uowFactory StopUoWFactory) MoveStopCommandHandler {
	return MoveStopCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewSequencePlanner(),
	}
}

// Handle moves the stop to the clamped sequence. The stops in between are read once and
// shifted by one towards the old place; the moved stop is written last.
//
// Moving a stop to where it already is returns it without writing anything.
// Returns ErrRouteHasNoStops for an empty route and errs.ErrObjectNotFound when the order
// is not on the route.
func (h *MoveStopCommandHandler) Handle(ctx context.Context, cmd MoveStopCommand) (*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StopRepository()
	if err := repo.LockRoute(ctx, cmd.RouteID()); err != nil {
		return nil, err
	}

	maxSequence, err := repo.MaxSequence(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}
	if maxSequence < stop.MinSequence {
		return nil, ErrRouteHasNoStops
	}

	mover, err := repo.Get(ctx, cmd.RouteID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	target := h.planner.ClampMove(cmd.Sequence(), maxSequence)
	if target == mover.Sequence() {
		return mover, nil
	}

	window, err := repo.ListInRange(ctx, cmd.RouteID(), h.planner.MoveWindow(mover.Sequence(), target))
	if err != nil {
		return nil, err
	}

	plan, err := h.planner.PlanMove(mover, target, window)
	if err != nil {
		return nil, err
	}

	if err = repo.Resequence(ctx, cmd.RouteID(), plan); err != nil {
		return nil, err
	}

	if err = mover.Resequence(target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return mover, nil
}
