package stop

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// MinSequence is the sequence of the first stop of a route.
const MinSequence = 1

var (
	// ErrStopIsNotConstructed is returned when a Stop instance was not created through
	// NewStop or RestoreStop.
	ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop or RestoreStop constructor")
)

// Stop places one order on one route.
//
// Stop follows these invariants:
//   - Route and order identifiers are valid; together they identify the stop
//   - Sequence is at least MinSequence
//   - Details are valid
//
// The sequence can only be changed by Resequence, which the sequencing command handlers call
// after a plan has been written. ReplaceDetails leaves it alone.
type Stop struct {
	routeID kernel.UUID
	orderID kernel.UUID

	// sequence is the 1-based rank of the stop within its route
	sequence int

	details Details

	isConstructed bool
}

// NewStop creates a stop for an order placed at the given sequence.
//
// Example:
//
//	details, _ := stop.NewDetails(nil, nil, stop.Pending, "", "call on arrival")
//	s, err := stop.NewStop(routeID, orderID, maxSequence+1, details)
//	if err != nil {
//	    return nil, err
//	}
func NewStop(routeID, orderID kernel.UUID, sequence int, details Details) (*Stop, error) {
	s := &Stop{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setRouteID(routeID),
		s.setOrderID(orderID),
		s.setSequence(sequence),
		s.setDetails(details),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStop rebuilds a stop from persistence. It applies the same validation as NewStop.
func RestoreStop(routeID, orderID kernel.UUID, sequence int, details Details) (*Stop, error) {
	return NewStop(routeID, orderID, sequence, details)
}

// Validate ensures the Stop instance was properly constructed.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}

	return nil
}

// IsEqual compares stops by identity (route and order), not by sequence or details.
func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.routeID.IsEqual(other.routeID) && s.orderID.IsEqual(other.orderID)
}

func (s *Stop) RouteID() kernel.UUID {
	return s.routeID
}

func (s *Stop) OrderID() kernel.UUID {
	return s.orderID
}

// Sequence returns the 1-based position of the stop within its route.
func (s *Stop) Sequence() int {
	return s.sequence
}

func (s *Stop) Details() Details {
	return s.details
}

// ReplaceDetails overwrites every non-sequence field.
func (s *Stop) ReplaceDetails(details Details) error {
	return s.setDetails(details)
}

// Resequence records the sequence a plan assigned to this stop.
func (s *Stop) Resequence(sequence int) error {
	return s.setSequence(sequence)
}

// String renders the identity and sequence, used in log records.
func (s *Stop) String() string {
	return fmt.Sprintf("Stop(route=%s, order=%s, seq=%d)", s.routeID, s.orderID, s.sequence)
}

func (s *Stop) setRouteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.routeID = id
	return nil
}

func (s *Stop) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.orderID = id
	return nil
}

func (s *Stop) setSequence(sequence int) error {
	if sequence < MinSequence {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence is invalid",
			fmt.Errorf("%d is less than %d", sequence, MinSequence),
		)
	}
	s.sequence = sequence
	return nil
}

func (s *Stop) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	s.details = details
	return nil
}
