package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrFindSequenceGapsQueryIsNotConstructed = errors.New(
		"FindSequenceGapsQuery must be created via NewFindSequenceGapsQuery constructor",
	)
)

// FindSequenceGapsQuery finds routes whose stop sequences are not exactly 1..N.
type FindSequenceGapsQuery struct {
	guard guard.ConstructorGuard
}

func NewFindSequenceGapsQuery() FindSequenceGapsQuery {
	return FindSequenceGapsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q FindSequenceGapsQuery) Validate() error {
	return q.guard.Validate(ErrFindSequenceGapsQueryIsNotConstructed)
}

// FindSequenceGapsQueryResponse describes one broken route. A dense route of N stops has
// MinSequence 1 and MaxSequence N.
type FindSequenceGapsQueryResponse struct {
	RouteID     kernel.UUID
	Stops       int
	MinSequence int
	MaxSequence int
}
