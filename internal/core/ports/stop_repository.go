// Package ports defines the persistence contracts of the route stop domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
)

// StopRepository stores the stops of routes, keyed by (route, order), with a unique
// sequence per route.
//
// Implementations bound to a unit of work observe one stable state of a route once
// LockRoute returned, until the unit of work ends.
type StopRepository interface {
	// LockRoute serializes sequence changes of a route until the surrounding transaction
	// ends. Locks on different routes never block each other.
	LockRoute(ctx context.Context, routeID kernel.UUID) error

	// MaxSequence returns the highest sequence of the route, 0 when it has no stops.
	MaxSequence(ctx context.Context, routeID kernel.UUID) (int, error)

	// Get returns the stop of an order on a route.
	// Returns errs.ErrObjectNotFound when there is none.
	Get(ctx context.Context, routeID, orderID kernel.UUID) (*stop.Stop, error)

	// ListInRange returns the stops whose sequence falls into r, ordered by sequence.
	ListInRange(ctx context.Context, routeID kernel.UUID, r stop.Range) ([]*stop.Stop, error)

	// ListByRoute returns every stop of the route ordered by sequence.
	ListByRoute(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error)

	// Add stores a new stop.
	// Returns errs.ErrObjectAlreadyExists when the order is already on the route and
	// errs.ErrConstraintViolation when its sequence is taken.
	Add(ctx context.Context, s *stop.Stop) error

	// UpdateDetails overwrites the details of a stored stop. The stored sequence is never
	// written, whatever s carries.
	UpdateDetails(ctx context.Context, s *stop.Stop) error

	// Resequence applies a plan of one route. The plan is applied as a whole: no
	// intermediate state may trip the sequence uniqueness. A change whose From does not
	// match the stored sequence fails with errs.ErrConstraintViolation.
	Resequence(ctx context.Context, routeID kernel.UUID, plan stop.Plan) error

	// Remove deletes the stop of an order on a route.
	// Returns errs.ErrObjectNotFound when there is none.
	Remove(ctx context.Context, routeID, orderID kernel.UUID) error
}
