package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// RemoveStopCommandHandler removes a stop and closes the gap it leaves.
type RemoveStopCommandHandler struct {
	uowFactory StopUoWFactory
	planner    services.SequencePlanner
}

// NewRemoveStopCommandHandler creates a handler for removals.
func NewRemoveStopCommandHandler(uowFactory StopUoWFactory) RemoveStopCommandHandler {
	return RemoveStopCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewSequencePlanner(),
	}
}

// Handle deletes the stop, then shifts every later stop of the route by -1.
// Returns errs.ErrObjectNotFound when the order is not on the route.
func (h *RemoveStopCommandHandler) Handle(ctx context.Context, cmd RemoveStopCommand) error {
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

	repo := uow.StopRepository()
	if err := repo.LockRoute(ctx, cmd.RouteID()); err != nil {
		return err
	}

	removed, err := repo.Get(ctx, cmd.RouteID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if err = repo.Remove(ctx, cmd.RouteID(), cmd.OrderID()); err != nil {
		return err
	}

	window, err := repo.ListInRange(ctx, cmd.RouteID(), h.planner.CompactionWindow(removed.Sequence()))
	if err != nil {
		return err
	}

	plan, err := h.planner.PlanCompaction(removed.Sequence(), window)
	if err != nil {
		return err
	}

	if err = repo.Resequence(ctx, cmd.RouteID(), plan); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
