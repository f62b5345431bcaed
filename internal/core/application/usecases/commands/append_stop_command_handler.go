package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AppendStopCommandHandler appends a stop after the current last stop of its route.
// Other stops never change.
type AppendStopCommandHandler struct {
	uowFactory StopUoWFactory
	planner    services.SequencePlanner
}

// NewAppendStopCommandHandler creates a handler for append operations.
// Requires a StopUoWFactory for transactional persistence.
func NewAppendStopCommandHandler(uowFactory StopUoWFactory) AppendStopCommandHandler {
	return AppendStopCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewSequencePlanner(),
	}
}

// Handle stores the stop at max+1 and returns it.
// Returns errs.ErrObjectAlreadyExists when the order is already on the route.
func (h *AppendStopCommandHandler) Handle(ctx context.Context, cmd AppendStopCommand) (*stop.Stop, error) {
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

	s, err := appendStop(ctx, repo, h.planner, cmd.RouteID(), cmd.OrderID(), cmd.Details())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureAbsent fails with errs.ErrObjectAlreadyExists when the order is on the route.
func ensureAbsent(ctx context.Context, repo ports.StopRepository, routeID, orderID kernel.UUID) error {
	_, err := repo.Get(ctx, routeID, orderID)
	if err == nil {
		return errs.NewObjectAlreadyExistsError("orderId", orderID.String())
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}

// appendStop stores a new stop after the last one. The route must be locked.
func appendStop(
	ctx context.Context,
	repo ports.StopRepository,
	planner services.SequencePlanner,
	routeID, orderID kernel.UUID,
	details stop.Details,
) (*stop.Stop, error) {
	maxSequence, err := repo.MaxSequence(ctx, routeID)
	if err != nil {
		return nil, err
	}

	s, err := stop.NewStop(routeID, orderID, planner.NextSequence(maxSequence), details)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}
