package memory

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/errs"
)

// sequenceConstraint mirrors the unique index of the relational schema.
const sequenceConstraint = "route stop sequence"

// StopRepository implements ports.StopRepository on a Store, inside the transaction of its
// unit of work when one is open.
type StopRepository struct {
	uow *UnitOfWork
}

// LockRoute blocks until no other unit of work holds the route. Outside a transaction it
// does nothing, like an advisory transaction lock in autocommit mode.
func (r *StopRepository) LockRoute(ctx context.Context, routeID kernel.UUID) error {
	if err := errors.Join(ctx.Err(), routeID.Validate()); err != nil {
		return err
	}

	tx := r.uow.tx
	if tx == nil || tx.locked[routeID] {
		return nil
	}

	if err := r.uow.store.lockRoute(ctx, routeID); err != nil {
		return err
	}
	tx.locked[routeID] = true
	return nil
}

func (r *StopRepository) MaxSequence(ctx context.Context, routeID kernel.UUID) (int, error) {
	var maxSequence int
	err := r.read(ctx, routeID, func(rt *route) error {
		maxSequence = rt.maxSequence()
		return nil
	})
	return maxSequence, err
}

func (r *StopRepository) Get(ctx context.Context, routeID, orderID kernel.UUID) (*stop.Stop, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var s *stop.Stop
	err := r.read(ctx, routeID, func(rt *route) error {
		rw, ok := rt.rows[orderID]
		if !ok {
			return errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		var restoreErr error
		s, restoreErr = stop.RestoreStop(routeID, orderID, rw.sequence, rw.details)
		return restoreErr
	})
	return s, err
}

func (r *StopRepository) ListInRange(ctx context.Context, routeID kernel.UUID, rng stop.Range) ([]*stop.Stop, error) {
	var stops []*stop.Stop
	err := r.read(ctx, routeID, func(rt *route) error {
		var listErr error
		stops, listErr = rt.list(routeID, rng)
		return listErr
	})
	return stops, err
}

func (r *StopRepository) ListByRoute(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	return r.ListInRange(ctx, routeID, stop.From(stop.MinSequence))
}

func (r *StopRepository) Add(ctx context.Context, s *stop.Stop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	return r.write(ctx, s.RouteID(), func(rt *route) error {
		if _, ok := rt.rows[s.OrderID()]; ok {
			return errs.NewObjectAlreadyExistsError("orderId", s.OrderID().String())
		}
		if rt.sequenceTaken(s.Sequence(), s.OrderID()) {
			return errs.NewConstraintViolationErrorWithCause(sequenceConstraint,
				fmt.Errorf("sequence %d is taken on route %s", s.Sequence(), s.RouteID()))
		}
		rt.rows[s.OrderID()] = row{sequence: s.Sequence(), details: s.Details()}
		return nil
	})
}

// UpdateDetails keeps the stored sequence and replaces the details.
func (r *StopRepository) UpdateDetails(ctx context.Context, s *stop.Stop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	return r.write(ctx, s.RouteID(), func(rt *route) error {
		rw, ok := rt.rows[s.OrderID()]
		if !ok {
			return errs.NewObjectNotFoundError("orderId", s.OrderID().String())
		}
		rw.details = s.Details()
		rt.rows[s.OrderID()] = rw
		return nil
	})
}

// Resequence applies the plan to a copy of the route and keeps it only if every change
// matched and the sequences are unique afterwards.
func (r *StopRepository) Resequence(ctx context.Context, routeID kernel.UUID, plan stop.Plan) error {
	if plan.IsEmpty() {
		return errors.Join(ctx.Err(), routeID.Validate())
	}

	return r.write(ctx, routeID, func(rt *route) error {
		next := rt.clone()
		for _, change := range plan {
			rw, ok := next.rows[change.OrderID]
			if !ok || rw.sequence != change.From {
				return errs.NewConstraintViolationErrorWithCause(sequenceConstraint,
					fmt.Errorf("change %s does not match the stored sequence", change))
			}
			if change.To < stop.MinSequence {
				return errs.NewConstraintViolationErrorWithCause(sequenceConstraint,
					fmt.Errorf("change %s targets a sequence below %d", change, stop.MinSequence))
			}
			rw.sequence = change.To
			next.rows[change.OrderID] = rw
		}

		seen := make(map[int]kernel.UUID, len(next.rows))
		for orderID, rw := range next.rows {
			if other, ok := seen[rw.sequence]; ok {
				return errs.NewConstraintViolationErrorWithCause(sequenceConstraint,
					fmt.Errorf("orders %s and %s would share sequence %d", other, orderID, rw.sequence))
			}
			seen[rw.sequence] = orderID
		}

		rt.rows = next.rows
		return nil
	})
}

func (r *StopRepository) Remove(ctx context.Context, routeID, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.write(ctx, routeID, func(rt *route) error {
		if _, ok := rt.rows[orderID]; !ok {
			return errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		delete(rt.rows, orderID)
		return nil
	})
}

func (r *StopRepository) read(ctx context.Context, routeID kernel.UUID, fn func(rt *route) error) error {
	if err := errors.Join(ctx.Err(), routeID.Validate()); err != nil {
		return err
	}

	if tx := r.uow.tx; tx != nil {
		return fn(tx.view(r.uow.store, routeID))
	}
	return fn(r.uow.store.snapshot(routeID))
}

func (r *StopRepository) write(ctx context.Context, routeID kernel.UUID, fn func(rt *route) error) error {
	if err := errors.Join(ctx.Err(), routeID.Validate()); err != nil {
		return err
	}

	tx := r.uow.tx
	if tx == nil {
		return r.uow.store.autocommit(routeID, fn)
	}

	if err := fn(tx.view(r.uow.store, routeID)); err != nil {
		return err
	}
	tx.dirty[routeID] = true
	return nil
}
