package stoprepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStopRepository implements ports.StopRepository using GORM on PostgreSQL.
//
// Route locks are transaction-scoped advisory locks, so the repository must be bound to an
// open transaction for LockRoute to serialize anything.
type GormStopRepository struct {
	db *gorm.DB
}

// NewGormStopRepository creates a new GORM stop repository.
func NewGormStopRepository(db *gorm.DB) *GormStopRepository {
	return &GormStopRepository{db: db}
}

// LockRoute takes a transaction-scoped advisory lock keyed by the route ID.
func (r *GormStopRepository) LockRoute(ctx context.Context, routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", routeID.String()).
		Error
}

// MaxSequence returns the highest sequence of the route, 0 for a route without stops.
func (r *GormStopRepository) MaxSequence(ctx context.Context, routeID kernel.UUID) (int, error) {
	if err := routeID.Validate(); err != nil {
		return 0, err
	}

	var maxSequence int
	err := r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Where("route_id = ?", routeID.Bytes()).
		Select("COALESCE(MAX(stop_sequence), 0)").
		Scan(&maxSequence).Error
	if err != nil {
		return 0, err
	}

	return maxSequence, nil
}

// Get retrieves the stop of an order on a route.
func (r *GormStopRepository) Get(ctx context.Context, routeID, orderID kernel.UUID) (*stop.Stop, error) {
	if err := errors.Join(routeID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dto StopDTO
	err := r.db.WithContext(ctx).
		First(&dto, "route_id = ? AND order_id = ?", routeID.Bytes(), orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ListInRange retrieves the stops of a route whose sequence falls into rng, ordered by
// sequence.
func (r *GormStopRepository) ListInRange(ctx context.Context, routeID kernel.UUID, rng stop.Range) ([]*stop.Stop, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}
	if rng.IsEmpty() {
		return []*stop.Stop{}, nil
	}

	q := r.db.WithContext(ctx).
		Where("route_id = ? AND stop_sequence >= ?", routeID.Bytes(), rng.From)
	if !rng.IsUnbounded() {
		q = q.Where("stop_sequence <= ?", rng.To)
	}

	var dtos []StopDTO
	if err := q.Order("stop_sequence").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListByRoute retrieves every stop of a route ordered by sequence.
func (r *GormStopRepository) ListByRoute(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	return r.ListInRange(ctx, routeID, stop.From(stop.MinSequence))
}

// Add saves a new stop.
func (r *GormStopRepository) Add(ctx context.Context, s *stop.Stop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	return translateAddError(r.db.WithContext(ctx).Create(&dto).Error, s)
}

// UpdateDetails overwrites the detail columns of a stored stop. The sequence column is
// never part of the statement.
func (r *GormStopRepository) UpdateDetails(ctx context.Context, s *stop.Stop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	result := r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Where("route_id = ? AND order_id = ?", dto.RouteID, dto.OrderID).
		Updates(detailsColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", s.OrderID().String())
	}

	return nil
}

// Resequence applies a plan in two phases inside a savepoint. The first phase parks every
// changed row at the negated target, guarded by its expected current sequence; the second
// flips the parked rows of the route back to positive. No statement ever sees two rows
// sharing a positive sequence, so the unique index holds throughout.
func (r *GormStopRepository) Resequence(ctx context.Context, routeID kernel.UUID, plan stop.Plan) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if plan.IsEmpty() {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range plan {
			if change.To < stop.MinSequence {
				return errs.NewConstraintViolationErrorWithCause(SequenceIndexName,
					fmt.Errorf("change %s targets a sequence below %d", change, stop.MinSequence))
			}

			result := tx.Model(&StopDTO{}).
				Where("route_id = ? AND order_id = ? AND stop_sequence = ?",
					routeID.Bytes(), change.OrderID.Bytes(), change.From).
				Update("stop_sequence", -change.To)
			if result.Error != nil {
				return translateSequenceError(result.Error)
			}
			if result.RowsAffected != 1 {
				return errs.NewConstraintViolationErrorWithCause(SequenceIndexName,
					fmt.Errorf("change %s matched %d rows", change, result.RowsAffected))
			}
		}

		err := tx.Exec(
			"UPDATE "+TableName+" SET stop_sequence = -stop_sequence WHERE route_id = ? AND stop_sequence < 0",
			routeID.Bytes(),
		).Error
		return translateSequenceError(err)
	})
}

// Remove deletes the stop of an order on a route.
func (r *GormStopRepository) Remove(ctx context.Context, routeID, orderID kernel.UUID) error {
	if err := errors.Join(routeID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Delete(&StopDTO{}, "route_id = ? AND order_id = ?", routeID.Bytes(), orderID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	return nil
}
