package stop

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

// Change moves one stop from one sequence to another.
type Change struct {
	OrderID kernel.UUID
	From    int
	To      int
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %d -> %d", c.OrderID, c.From, c.To)
}

// Plan is an ordered list of sequence changes within one route. Applied as a whole it leaves
// the route dense; intermediate states are not.
type Plan []Change

func (p Plan) IsEmpty() bool {
	return len(p) == 0
}

// Range selects stops by sequence. Both bounds are inclusive; To == 0 leaves the range open
// at the top.
type Range struct {
	From int
	To   int
}

// From returns the open range starting at sequence.
func From(sequence int) Range {
	return Range{From: sequence}
}

// Between returns the closed range [from, to].
func Between(from, to int) Range {
	return Range{From: from, To: to}
}

func (r Range) IsUnbounded() bool {
	return r.To == 0
}

// IsEmpty reports whether no sequence can fall into the range.
func (r Range) IsEmpty() bool {
	return !r.IsUnbounded() && r.To < r.From
}

func (r Range) Contains(sequence int) bool {
	if sequence < r.From {
		return false
	}
	return r.IsUnbounded() || sequence <= r.To
}
