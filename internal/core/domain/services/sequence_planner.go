package services

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/errs"
)

// windowConstraint names the check that fails when a window read from storage is not
// ordered, unique and within its range.
const windowConstraint = "route stop window"

// SequencePlanner computes sequence plans for a single route.
//
// A route with N stops holds the sequences 1..N exactly once each. Every plan the planner
// returns keeps that true once it is applied as a whole:
//   - insert at p shifts every stop at p or later by +1, leaving p free
//   - move from c to t shifts the stops between them by one towards c, then places the mover
//   - removal at p shifts every later stop by -1
//
// Example usage:
//
//	planner := services.NewSequencePlanner()
//	target := planner.ClampMove(requested, maxSequence)
//	window, _ := repo.ListInRange(ctx, routeID, planner.MoveWindow(mover.Sequence(), target))
//	plan, err := planner.PlanMove(mover, target, window)
//	if err != nil {
//	    return err
//	}
//	err = repo.Resequence(ctx, routeID, plan)
type SequencePlanner struct{}

func NewSequencePlanner() SequencePlanner {
	return SequencePlanner{}
}

// NextSequence returns the sequence of a stop appended after maxSequence.
func (p SequencePlanner) NextSequence(maxSequence int) int {
	if maxSequence < 0 {
		maxSequence = 0
	}
	return maxSequence + 1
}

// ClampInsert pins requested into [1, count+1]. count is the number of stops on the route,
// which equals its maximum sequence.
func (p SequencePlanner) ClampInsert(requested, count int) int {
	return clamp(requested, stop.MinSequence, p.NextSequence(count))
}

// ClampMove pins requested into [1, maxSequence]. The route must not be empty.
func (p SequencePlanner) ClampMove(requested, maxSequence int) int {
	return clamp(requested, stop.MinSequence, maxSequence)
}

// InsertWindow selects the stops that make room for a stop inserted at sequence.
func (p SequencePlanner) InsertWindow(sequence int) stop.Range {
	return stop.From(sequence)
}

// PlanInsert shifts every stop in window by +1, highest sequence first.
func (p SequencePlanner) PlanInsert(sequence int, window []*stop.Stop) (stop.Plan, error) {
	if err := checkWindow(p.InsertWindow(sequence), window); err != nil {
		return nil, err
	}

	plan := make(stop.Plan, 0, len(window))
	for i := len(window) - 1; i >= 0; i-- {
		s := window[i]
		plan = append(plan, stop.Change{OrderID: s.OrderID(), From: s.Sequence(), To: s.Sequence() + 1})
	}
	return plan, nil
}

// MoveWindow selects the stops between the current and the target sequence, both included.
// The mover itself is part of the window.
func (p SequencePlanner) MoveWindow(current, target int) stop.Range {
	if target < current {
		return stop.Between(target, current)
	}
	return stop.Between(current, target)
}

// PlanMove moves mover to target. window is the result of reading MoveWindow. The plan
// holds the shifted stops followed by the mover; it is empty when target equals the
// current sequence.
func (p SequencePlanner) PlanMove(mover *stop.Stop, target int, window []*stop.Stop) (stop.Plan, error) {
	if err := mover.Validate(); err != nil {
		return nil, err
	}

	current := mover.Sequence()
	if target == current {
		return stop.Plan{}, nil
	}

	if err := checkWindow(p.MoveWindow(current, target), window); err != nil {
		return nil, err
	}

	others := make([]*stop.Stop, 0, len(window))
	found := false
	for _, s := range window {
		if s.OrderID().IsEqual(mover.OrderID()) {
			if s.Sequence() != current {
				return nil, windowError(fmt.Errorf("mover %s read at %d, expected %d", s.OrderID(), s.Sequence(), current))
			}
			found = true
			continue
		}
		others = append(others, s)
	}
	if !found {
		return nil, windowError(fmt.Errorf("mover %s missing from window", mover.OrderID()))
	}

	plan := make(stop.Plan, 0, len(others)+1)
	if target < current {
		// shift up: [target, current-1] each +1, highest first
		for i := len(others) - 1; i >= 0; i-- {
			s := others[i]
			plan = append(plan, stop.Change{OrderID: s.OrderID(), From: s.Sequence(), To: s.Sequence() + 1})
		}
	} else {
		// shift down: (current, target] each -1, lowest first
		for _, s := range others {
			plan = append(plan, stop.Change{OrderID: s.OrderID(), From: s.Sequence(), To: s.Sequence() - 1})
		}
	}

	return append(plan, stop.Change{OrderID: mover.OrderID(), From: current, To: target}), nil
}

// CompactionWindow selects the stops that close the gap left by a stop removed at sequence.
func (p SequencePlanner) CompactionWindow(removed int) stop.Range {
	return stop.From(removed + 1)
}

// PlanCompaction shifts every stop in window by -1, lowest sequence first.
func (p SequencePlanner) PlanCompaction(removed int, window []*stop.Stop) (stop.Plan, error) {
	if err := checkWindow(p.CompactionWindow(removed), window); err != nil {
		return nil, err
	}

	plan := make(stop.Plan, 0, len(window))
	for _, s := range window {
		plan = append(plan, stop.Change{OrderID: s.OrderID(), From: s.Sequence(), To: s.Sequence() - 1})
	}
	return plan, nil
}

// checkWindow verifies that the stops are ordered by sequence, unique and inside r.
func checkWindow(r stop.Range, window []*stop.Stop) error {
	seen := make(map[kernel.UUID]struct{}, len(window))
	prev := 0
	for _, s := range window {
		if err := s.Validate(); err != nil {
			return err
		}
		if !r.Contains(s.Sequence()) {
			return windowError(fmt.Errorf("sequence %d of %s is outside [%d, %d]", s.Sequence(), s.OrderID(), r.From, r.To))
		}
		if s.Sequence() <= prev {
			return windowError(fmt.Errorf("sequence %d of %s is not above %d", s.Sequence(), s.OrderID(), prev))
		}
		if _, ok := seen[s.OrderID()]; ok {
			return windowError(fmt.Errorf("order %s appears twice", s.OrderID()))
		}
		seen[s.OrderID()] = struct{}{}
		prev = s.Sequence()
	}
	return nil
}

func windowError(cause error) error {
	return errs.NewConstraintViolationErrorWithCause(windowConstraint, cause)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
