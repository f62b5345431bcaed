package memory

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("memory: no active transaction")

// UnitOfWorkFactory creates units of work sharing one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// transaction is the private state of an open unit of work.
type transaction struct {
	ctx    context.Context
	routes map[kernel.UUID]*route
	base   map[kernel.UUID]uint64
	dirty  map[kernel.UUID]bool
	locked map[kernel.UUID]bool
}

// UnitOfWork is the in-memory counterpart of postgres.GormUnitOfWork. It is not safe for
// concurrent use; create one per operation.
type UnitOfWork struct {
	store *Store
	tx    *transaction
}

// Begin opens a transaction. Calling it again while one is open does nothing.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uow.tx != nil {
		return nil
	}

	uow.tx = &transaction{
		ctx:    ctx,
		routes: make(map[kernel.UUID]*route),
		base:   make(map[kernel.UUID]uint64),
		dirty:  make(map[kernel.UUID]bool),
		locked: make(map[kernel.UUID]bool),
	}
	return nil
}

// Commit publishes every route written in the transaction. If one of them was committed by
// someone else since this transaction copied it, nothing is published and the error wraps
// errs.ErrConstraintViolation. The transaction ends either way.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	tx := uow.tx
	if tx == nil {
		return ErrNoTransaction
	}
	defer uow.end()

	if err := errors.Join(ctx.Err(), tx.ctx.Err()); err != nil {
		return err
	}

	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for routeID := range tx.dirty {
		if current := s.version(routeID); current != tx.base[routeID] {
			return errs.NewConstraintViolationErrorWithCause("route version",
				fmt.Errorf("route %s changed from version %d to %d during the transaction",
					routeID, tx.base[routeID], current))
		}
	}

	for routeID := range tx.dirty {
		s.publish(routeID, tx.routes[routeID])
	}
	return nil
}

// Rollback discards the transaction.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	uow.end()
	return nil
}

// end releases the route locks and forgets the transaction.
func (uow *UnitOfWork) end() {
	for routeID := range uow.tx.locked {
		uow.store.unlockRoute(routeID)
	}
	uow.tx = nil
}

func (uow *UnitOfWork) StopRepository() ports.StopRepository {
	return &StopRepository{uow: uow}
}

// view returns the working copy of a route, copying the committed state on first touch.
func (tx *transaction) view(s *Store, routeID kernel.UUID) *route {
	if r, ok := tx.routes[routeID]; ok {
		return r
	}
	r := s.snapshot(routeID)
	tx.routes[routeID] = r
	tx.base[routeID] = r.version
	return r
}
