// Package servers holds the HTTP contract of the dispatch API: the request and response types,
// the ServerInterface the adapter implements, the echo wrappers that bind path and query
// parameters, and the embedded OpenAPI document they are written against.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for StopStatus.
const (
	Delivered StopStatus = "Delivered"
	EnRoute   StopStatus = "EnRoute"
	Failed    StopStatus = "Failed"
	Pending   StopStatus = "Pending"
)

// AppendStopRequest defines model for AppendStopRequest.
type AppendStopRequest struct {
	Details *StopDetails `json:"details,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InsertStopRequest defines model for InsertStopRequest.
type InsertStopRequest struct {
	Details  *StopDetails `json:"details,omitempty"`
	Sequence int          `json:"sequence"`
}

// MoveStopRequest defines model for MoveStopRequest.
type MoveStopRequest struct {
	Sequence int `json:"sequence"`
}

// RouteStop defines model for RouteStop.
type RouteStop struct {
	Eta           *time.Time         `json:"eta,omitempty"`
	Etd           *time.Time         `json:"etd,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	OrderId       openapi_types.UUID `json:"orderId"`
	ProofPhotoUrl *string            `json:"proofPhotoUrl,omitempty"`
	Sequence      int                `json:"sequence"`
	Status        StopStatus         `json:"status"`
}

// RouteStopPage defines model for RouteStopPage.
type RouteStopPage struct {
	Items         []RouteStop        `json:"items"`
	Page          int                `json:"page"`
	RecordsNumber int                `json:"recordsNumber"`
	RouteId       openapi_types.UUID `json:"routeId"`
	SortBy        string             `json:"sortBy"`
	SortDir       string             `json:"sortDir"`
	Total         int                `json:"total"`
	TotalPages    int                `json:"totalPages"`
}

// StopDetails defines model for StopDetails.
type StopDetails struct {
	Eta           *time.Time  `json:"eta,omitempty"`
	Etd           *time.Time  `json:"etd,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
	ProofPhotoUrl *string     `json:"proofPhotoUrl,omitempty"`
	Status        *StopStatus `json:"status,omitempty"`
}

// StopStatus defines model for StopStatus.
type StopStatus string

// UpsertStopRequest defines model for UpsertStopRequest.
type UpsertStopRequest struct {
	Details *StopDetails       `json:"details,omitempty"`
	OrderId openapi_types.UUID `json:"orderId"`

	// Sequence Ignored when the stop is created, which always appends.
	Sequence *int `json:"sequence,omitempty"`
}

// GetRouteStopsParams defines parameters for GetRouteStops.
type GetRouteStopsParams struct {
	Page *int `form:"page,omitempty" json:"page,omitempty"`

	// RecordsNumber Page size. Values below 1 mean 10, values above 200 mean 200.
	RecordsNumber *int `form:"recordsNumber,omitempty" json:"recordsNumber,omitempty"`

	// SortBy One of sequence, eta, status. Anything else sorts by sequence.
	SortBy  *string `form:"sortBy,omitempty" json:"sortBy,omitempty"`
	SortDir *string `form:"sortDir,omitempty" json:"sortDir,omitempty"`
}

// UpsertRouteStopJSONRequestBody defines body for UpsertRouteStop for application/json ContentType.
type UpsertRouteStopJSONRequestBody = UpsertStopRequest

// AppendRouteStopJSONRequestBody defines body for AppendRouteStop for application/json ContentType.
type AppendRouteStopJSONRequestBody = AppendStopRequest

// InsertRouteStopJSONRequestBody defines body for InsertRouteStop for application/json ContentType.
type InsertRouteStopJSONRequestBody = InsertStopRequest

// MoveRouteStopJSONRequestBody defines body for MoveRouteStop for application/json ContentType.
type MoveRouteStopJSONRequestBody = MoveStopRequest
