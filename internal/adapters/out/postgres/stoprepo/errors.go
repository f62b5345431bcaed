package stoprepo

import (
	"errors"

	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE of a unique constraint failure.
const uniqueViolation = "23505"

// uniqueConstraint reports the name of the unique constraint err tripped, if any.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return SequenceIndexName, true
	}
	return "", false
}

// translateAddError maps unique constraint failures of an insert. A duplicate primary key
// means the order is already on the route; a duplicate sequence means the sequencing went
// wrong.
func translateAddError(err error, s *stop.Stop) error {
	if err == nil {
		return nil
	}

	constraint, ok := uniqueConstraint(err)
	if !ok {
		return err
	}
	if constraint == PrimaryKeyName {
		return errs.NewObjectAlreadyExistsErrorWithCause("orderId", s.OrderID().String(), err)
	}
	return errs.NewConstraintViolationErrorWithCause(constraint, err)
}

// translateSequenceError maps any unique constraint failure of a sequence update to a
// constraint violation.
func translateSequenceError(err error) error {
	if err == nil {
		return nil
	}

	if constraint, ok := uniqueConstraint(err); ok {
		return errs.NewConstraintViolationErrorWithCause(constraint, err)
	}
	return err
}
