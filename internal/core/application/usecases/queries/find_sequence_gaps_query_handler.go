package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindSequenceGapsQueryHandler audits route_stops in a single aggregate statement.
// Sequences are unique per route, so MIN = 1 and MAX = COUNT together mean exactly 1..N.
type FindSequenceGapsQueryHandler struct {
	db *gorm.DB
}

func NewFindSequenceGapsQueryHandler(db *gorm.DB) FindSequenceGapsQueryHandler {
	return FindSequenceGapsQueryHandler{db: db}
}

// Handle returns the broken routes ordered by route id. A healthy store returns an empty slice.
func (h FindSequenceGapsQueryHandler) Handle(
	ctx context.Context,
	query FindSequenceGapsQuery,
) ([]FindSequenceGapsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	gaps := make([]FindSequenceGapsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			route_id,
			COUNT(*),
			MIN(stop_sequence),
			MAX(stop_sequence)
		FROM route_stops
		GROUP BY route_id
		HAVING MIN(stop_sequence) <> 1 OR MAX(stop_sequence) <> COUNT(*)
		ORDER BY route_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                    uuid.UUID
			count, minSeq, maxSeq int64
		)

		if err = rows.Scan(&id, &count, &minSeq, &maxSeq); err != nil {
			return nil, err
		}

		routeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		gaps = append(gaps, FindSequenceGapsQueryResponse{
			RouteID:     routeID,
			Stops:       int(count),
			MinSequence: int(minSeq),
			MaxSequence: int(maxSeq),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return gaps, nil
}
