package queries

import (
	"context"
	"fmt"

	"dispatch/internal/adapters/out/postgres/stoprepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteStopsQueryHandler reads route stops straight from route_stops.
type GetRouteStopsQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteStopsQueryHandler(db *gorm.DB) GetRouteStopsQueryHandler {
	return GetRouteStopsQueryHandler{db: db}
}

// Handle normalizes the page request and returns that page. An unknown route is an empty
// page, not an error.
func (h GetRouteStopsQueryHandler) Handle(
	ctx context.Context,
	query GetRouteStopsQuery,
) (GetRouteStopsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteStopsQueryResponse{}, err
	}

	window := pagination.Normalize(query.Page(), RouteStopsSortable)
	routeID := query.RouteID().Bytes()

	var total int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM `+stoprepo.TableName+` WHERE route_id = ?`, routeID).
		Scan(&total).Error
	if err != nil {
		return GetRouteStopsQueryResponse{}, err
	}

	// NULLS LAST keeps stops without an ETA at the end in both directions.
	sql := fmt.Sprintf(`
		SELECT
			order_id,
			stop_sequence,
			eta,
			etd,
			delivery_status,
			proof_photo_url,
			notes
		FROM %s
		WHERE route_id = ?
		ORDER BY %s NULLS LAST, stop_sequence
		LIMIT ? OFFSET ?
	`, stoprepo.TableName, window.OrderBy())

	rows, err := h.db.WithContext(ctx).Raw(sql, routeID, window.Limit(), window.Offset()).Rows()
	if err != nil {
		return GetRouteStopsQueryResponse{}, err
	}
	defer rows.Close()

	stops := make([]RouteStop, 0, window.Limit())
	for rows.Next() {
		var (
			rs     RouteStop
			id     uuid.UUID
			status string
		)

		err = rows.Scan(&id, &rs.Sequence, &rs.ETA, &rs.ETD, &status, &rs.ProofPhotoURL, &rs.Notes)
		if err != nil {
			return GetRouteStopsQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetRouteStopsQueryResponse{}, idErr
		}
		rs.OrderID = orderID

		parsed, statusErr := stop.ParseDeliveryStatus(status)
		if statusErr != nil {
			return GetRouteStopsQueryResponse{}, statusErr
		}
		rs.Status = parsed

		stops = append(stops, rs)
	}

	if err = rows.Err(); err != nil {
		return GetRouteStopsQueryResponse{}, err
	}

	return GetRouteStopsQueryResponse{
		RouteID:       query.RouteID(),
		Stops:         stops,
		Page:          window.Page,
		RecordsNumber: window.RecordsNumber,
		SortBy:        window.SortBy,
		SortDir:       window.Direction,
		Total:         int(total),
		TotalPages:    window.TotalPages(int(total)),
	}, nil
}
