package commands

import (
	"context"

	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/core/domain/services"
)

// InsertStopCommandHandler inserts a stop at a sequence clamped into [1, N+1].
type InsertStopCommandHandler struct {
	uowFactory StopUoWFactory
	planner    services.SequencePlanner
}

// NewInsertStopCommandHandler creates a handler for positional inserts.
func NewInsertStopCommandHandler(uowFactory StopUoWFactory) InsertStopCommandHandler {
	return InsertStopCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewSequencePlanner(),
	}
}

// Handle shifts every stop at or after the clamped sequence by +1 and stores the new stop
// in the freed place.
// Returns errs.ErrObjectAlreadyExists when the order is already on the route.
func (h *InsertStopCommandHandler) Handle(ctx context.Context, cmd InsertStopCommand) (*stop.Stop, error) {
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

	if err := ensureAbsent(ctx, repo, cmd.RouteID(), cmd.OrderID()); err != nil {
		return nil, err
	}

	maxSequence, err := repo.MaxSequence(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}

	at := h.planner.ClampInsert(cmd.Sequence(), maxSequence)

	window, err := repo.ListInRange(ctx, cmd.RouteID(), h.planner.InsertWindow(at))
	if err != nil {
		return nil, err
	}

	plan, err := h.planner.PlanInsert(at, window)
	if err != nil {
		return nil, err
	}

	if err = repo.Resequence(ctx, cmd.RouteID(), plan); err != nil {
		return nil, err
	}

	s, err := stop.NewStop(cmd.RouteID(), cmd.OrderID(), at, cmd.Details())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
