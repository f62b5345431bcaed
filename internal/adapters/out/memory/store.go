// Package memory provides an in-process implementation of the stop repository and its unit
// of work. It follows the PostgreSQL adapter closely enough for the command handlers to run
// unchanged against it:
//   - LockRoute blocks on a per-route keyed mutex until the unit of work ends
//   - reads inside a unit of work see a private copy of each route taken on first touch
//   - writes check key and sequence uniqueness immediately, like the database indexes
//   - Commit publishes the touched routes atomically and fails if one of them changed since
//     it was copied
//
// Without Begin every repository call applies directly, like autocommit.
package memory

import (
	"context"
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"

	"github.com/im7mortal/kmutex"
)

// row is the stored part of a stop.
type row struct {
	sequence int
	details  stop.Details
}

// route holds the stops of one route keyed by order.
type route struct {
	version uint64
	rows    map[kernel.UUID]row
}

func newRoute() *route {
	return &route{rows: make(map[kernel.UUID]row)}
}

func (r *route) clone() *route {
	c := &route{version: r.version, rows: make(map[kernel.UUID]row, len(r.rows))}
	for id, rw := range r.rows {
		c.rows[id] = rw
	}
	return c
}

// sequenceTaken reports whether another order than orderID holds sequence.
func (r *route) sequenceTaken(sequence int, orderID kernel.UUID) bool {
	for id, rw := range r.rows {
		if rw.sequence == sequence && !id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

func (r *route) list(routeID kernel.UUID, rng stop.Range) ([]*stop.Stop, error) {
	res := make([]*stop.Stop, 0)
	for orderID, rw := range r.rows {
		if !rng.Contains(rw.sequence) {
			continue
		}
		s, err := stop.RestoreStop(routeID, orderID, rw.sequence, rw.details)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Sequence() < res[j].Sequence() })
	return res, nil
}

func (r *route) maxSequence() int {
	maxSequence := 0
	for _, rw := range r.rows {
		if rw.sequence > maxSequence {
			maxSequence = rw.sequence
		}
	}
	return maxSequence
}

// Store is the committed state shared by every unit of work created from it.
type Store struct {
	mu     sync.RWMutex
	routes map[kernel.UUID]*route
	locks  *kmutex.Kmutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		routes: make(map[kernel.UUID]*route),
		locks:  kmutex.New(),
	}
}

// snapshot copies the committed state of a route; an unknown route yields an empty copy.
func (s *Store) snapshot(routeID kernel.UUID) *route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.routes[routeID]; ok {
		return r.clone()
	}
	return newRoute()
}

// lockRoute acquires the keyed mutex of a route, giving up when ctx ends first.
func (s *Store) lockRoute(ctx context.Context, routeID kernel.UUID) error {
	acquired := make(chan struct{})
	go func() {
		s.locks.Lock(routeID)
		close(acquired)
	}()

	select {
	case <-acquired:
		return nil
	case <-ctx.Done():
		// the waiter still gets the lock eventually; hand it straight back
		go func() {
			<-acquired
			s.locks.Unlock(routeID)
		}()
		return ctx.Err()
	}
}

func (s *Store) unlockRoute(routeID kernel.UUID) {
	s.locks.Unlock(routeID)
}

// autocommit runs fn against the committed state of a route under the write lock.
func (s *Store) autocommit(routeID kernel.UUID, fn func(r *route) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.routes[routeID]
	if !ok {
		r = newRoute()
	}
	work := r.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.publish(routeID, work)
	return nil
}

// publish replaces the committed state of a route. s.mu must be held for writing.
// Emptied routes are kept so that their version keeps growing.
func (s *Store) publish(routeID kernel.UUID, r *route) {
	r.version = s.version(routeID) + 1
	s.routes[routeID] = r
}

// version returns the committed version of a route, 0 for a route never written.
// s.mu must be held.
func (s *Store) version(routeID kernel.UUID) uint64 {
	if r, ok := s.routes[routeID]; ok {
		return r.version
	}
	return 0
}
