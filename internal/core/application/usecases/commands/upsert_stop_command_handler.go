package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// UpsertStopCommandHandler creates or updates a stop without ever reordering the route.
//
// Example:
//
//	handler := NewUpsertStopCommandHandler(uowFactory)
//	cmd, _ := NewUpsertStopCommand(routeID, orderID, details, 0)
//
//	s, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("upsert failed: %w", err)
//	}
//	// s.Sequence() is max+1 for a new stop, unchanged for an existing one
type UpsertStopCommandHandler struct {
	uowFactory StopUoWFactory
	planner    services.SequencePlanner
}

// NewUpsertStopCommandHandler creates a handler for upsert operations.
func NewUpsertStopCommandHandler(uowFactory StopUoWFactory) UpsertStopCommandHandler {
	return UpsertStopCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewSequencePlanner(),
	}
}

// Handle appends the stop when the order is not on the route yet. Otherwise it overwrites
// every detail of the stored stop and leaves its sequence as stored.
func (h *UpsertStopCommandHandler) Handle(ctx context.Context, cmd UpsertStopCommand) (*stop.Stop, error) {
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

	s, err := repo.Get(ctx, cmd.RouteID(), cmd.OrderID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		s, err = appendStop(ctx, repo, h.planner, cmd.RouteID(), cmd.OrderID(), cmd.Details())
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		storedSequence := s.Sequence()
		if err = s.ReplaceDetails(cmd.Details()); err != nil {
			return nil, err
		}
		if err = s.Resequence(storedSequence); err != nil {
			return nil, err
		}
		if err = repo.UpdateDetails(ctx, s); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
