// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/guard"
	"dispatch/internal/pkg/pagination"
)

var (
	ErrGetRouteStopsQueryIsNotConstructed = errors.New(
		"GetRouteStopsQuery must be created via NewGetRouteStopsQuery constructor",
	)
)

// RouteStopsSortable lists the fields a route's stops can be sorted by.
var RouteStopsSortable = pagination.MustNewSortable(map[string]string{
	"sequence": "stop_sequence",
	"eta":      "eta",
	"status":   "delivery_status",
}, "sequence")

// GetRouteStopsQuery retrieves one page of a route's stops.
//
// Example:
//
//	query, err := NewGetRouteStopsQuery(routeID, pagination.Request{Page: 1, RecordsNumber: 50})
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	for _, s := range page.Stops {
//	    fmt.Printf("%d. %s (%s)\n", s.Sequence, s.OrderID, s.Status)
//	}
type GetRouteStopsQuery struct {
	routeID kernel.UUID
	page    pagination.Request

	guard guard.ConstructorGuard
}

// NewGetRouteStopsQuery keeps the page request as given; the handler normalizes it.
func NewGetRouteStopsQuery(routeID kernel.UUID, page pagination.Request) (GetRouteStopsQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteStopsQuery{}, err
	}

	return GetRouteStopsQuery{
		routeID: routeID,
		page:    page,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRouteStopsQueryIsNotConstructed if validation fails.
func (q GetRouteStopsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteStopsQueryIsNotConstructed)
}

func (q GetRouteStopsQuery) RouteID() kernel.UUID {
	return q.routeID
}

func (q GetRouteStopsQuery) Page() pagination.Request {
	return q.page
}

// RouteStop is the read model of one stop.
type RouteStop struct {
	OrderID       kernel.UUID
	Sequence      int
	ETA           *time.Time
	ETD           *time.Time
	Status        stop.DeliveryStatus
	ProofPhotoURL string
	Notes         string
}

// GetRouteStopsQueryResponse is one page of stops plus the paging it was produced with.
type GetRouteStopsQueryResponse struct {
	RouteID       kernel.UUID
	Stops         []RouteStop
	Page          int
	RecordsNumber int
	SortBy        string
	SortDir       pagination.Direction
	Total         int
	TotalPages    int
}
