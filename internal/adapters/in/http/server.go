package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/pagination"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports of the server. The command handlers satisfy them through pointers.
type (
	AppendStopHandler interface {
		Handle(ctx context.Context, cmd commands.AppendStopCommand) (*stop.Stop, error)
	}
	UpsertStopHandler interface {
		Handle(ctx context.Context, cmd commands.UpsertStopCommand) (*stop.Stop, error)
	}
	InsertStopHandler interface {
		Handle(ctx context.Context, cmd commands.InsertStopCommand) (*stop.Stop, error)
	}
	MoveStopHandler interface {
		Handle(ctx context.Context, cmd commands.MoveStopCommand) (*stop.Stop, error)
	}
	RemoveStopHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveStopCommand) error
	}
	RouteStopsReader interface {
		Handle(ctx context.Context, query queries.GetRouteStopsQuery) (queries.GetRouteStopsQueryResponse, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	appendStopHandler AppendStopHandler
	upsertStopHandler UpsertStopHandler
	insertStopHandler InsertStopHandler
	moveStopHandler   MoveStopHandler
	removeStopHandler RemoveStopHandler

	// Query handlers
	routeStopsReader RouteStopsReader

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	appendStopHandler AppendStopHandler,
	upsertStopHandler UpsertStopHandler,
	insertStopHandler InsertStopHandler,
	moveStopHandler MoveStopHandler,
	removeStopHandler RemoveStopHandler,
	routeStopsReader RouteStopsReader,
	logger *slog.Logger,
) *Server {
	return &Server{
		appendStopHandler: appendStopHandler,
		upsertStopHandler: upsertStopHandler,
		insertStopHandler: insertStopHandler,
		moveStopHandler:   moveStopHandler,
		removeStopHandler: removeStopHandler,
		routeStopsReader:  routeStopsReader,
		logger:            logger.With("component", "http_server"),
	}
}

// GetRouteStops handles GET /api/v1/routes/{routeId}/stops - lists one page of a route.
func (s *Server) GetRouteStops(ctx echo.Context, routeId openapi_types.UUID, params servers.GetRouteStopsParams) error {
	routeID, err := kernel.UUIDFromBytes(routeId[:])
	if err != nil {
		return s.badRequest(ctx, "Invalid route id", err)
	}

	query, err := queries.NewGetRouteStopsQuery(routeID, pagination.Request{
		Page:          deref(params.Page),
		RecordsNumber: deref(params.RecordsNumber),
		SortBy:        deref(params.SortBy),
		SortDir:       deref(params.SortDir),
	})
	if err != nil {
		return s.badRequest(ctx, "Invalid query", err)
	}

	page, err := s.routeStopsReader.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to retrieve route stops", err)
	}

	response := servers.RouteStopPage{
		RouteId:       page.RouteID.Bytes(),
		Items:         make([]servers.RouteStop, len(page.Stops)),
		Page:          page.Page,
		RecordsNumber: page.RecordsNumber,
		SortBy:        page.SortBy,
		SortDir:       string(page.SortDir),
		Total:         page.Total,
		TotalPages:    page.TotalPages,
	}
	for i, rs := range page.Stops {
		response.Items[i] = servers.RouteStop{
			OrderId:       rs.OrderID.Bytes(),
			Sequence:      rs.Sequence,
			Eta:           rs.ETA,
			Etd:           rs.ETD,
			Status:        servers.StopStatus(rs.Status.String()),
			ProofPhotoUrl: optional(rs.ProofPhotoURL),
			Notes:         optional(rs.Notes),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpsertRouteStop handles POST /api/v1/routes/{routeId}/stops - creates or updates a stop.
func (s *Server) UpsertRouteStop(ctx echo.Context, routeId openapi_types.UUID) error {
	var body servers.UpsertRouteStopJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	routeID, orderID, err := toStopKey(routeId, body.OrderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop key", err)
	}

	details, err := toDetails(body.Details)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop details", err)
	}

	cmd, err := commands.NewUpsertStopCommand(routeID, orderID, details, deref(body.Sequence))
	if err != nil {
		return s.badRequest(ctx, "Invalid stop data", err)
	}

	stored, err := s.upsertStopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to save stop", err)
	}

	return ctx.JSON(http.StatusOK, toRouteStop(stored))
}

// AppendRouteStop handles POST /api/v1/routes/{routeId}/stops/{orderId} - appends an order.
func (s *Server) AppendRouteStop(ctx echo.Context, routeId, orderId openapi_types.UUID) error {
	var body servers.AppendRouteStopJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	routeID, orderID, err := toStopKey(routeId, orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop key", err)
	}

	details, err := toDetails(body.Details)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop details", err)
	}

	cmd, err := commands.NewAppendStopCommand(routeID, orderID, details)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop data", err)
	}

	stored, err := s.appendStopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to append stop", err)
	}

	return ctx.JSON(http.StatusCreated, toRouteStop(stored))
}

// InsertRouteStop handles POST /api/v1/routes/{routeId}/stops/{orderId}/insert.
func (s *Server) InsertRouteStop(ctx echo.Context, routeId, orderId openapi_types.UUID) error {
	var body servers.InsertRouteStopJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	routeID, orderID, err := toStopKey(routeId, orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop key", err)
	}

	details, err := toDetails(body.Details)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop details", err)
	}

	cmd, err := commands.NewInsertStopCommand(routeID, orderID, body.Sequence, details)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop data", err)
	}

	stored, err := s.insertStopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to insert stop", err)
	}

	return ctx.JSON(http.StatusCreated, toRouteStop(stored))
}

// MoveRouteStop handles POST /api/v1/routes/{routeId}/stops/{orderId}/move.
func (s *Server) MoveRouteStop(ctx echo.Context, routeId, orderId openapi_types.UUID) error {
	var body servers.MoveRouteStopJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	routeID, orderID, err := toStopKey(routeId, orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop key", err)
	}

	cmd, err := commands.NewMoveStopCommand(routeID, orderID, body.Sequence)
	if err != nil {
		return s.badRequest(ctx, "Invalid move", err)
	}

	moved, err := s.moveStopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to move stop", err)
	}

	return ctx.JSON(http.StatusOK, toRouteStop(moved))
}

// RemoveRouteStop handles DELETE /api/v1/routes/{routeId}/stops/{orderId}.
func (s *Server) RemoveRouteStop(ctx echo.Context, routeId, orderId openapi_types.UUID) error {
	routeID, orderID, err := toStopKey(routeId, orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop key", err)
	}

	cmd, err := commands.NewRemoveStopCommand(routeID, orderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid stop key", err)
	}

	if err = s.removeStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to remove stop", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toStopKey(routeId, orderId openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	routeID, routeErr := kernel.UUIDFromBytes(routeId[:])
	orderID, orderErr := kernel.UUIDFromBytes(orderId[:])
	return routeID, orderID, errors.Join(routeErr, orderErr)
}

// toDetails maps request details onto stop details. Missing details, or a missing status,
// mean a pending stop.
func toDetails(d *servers.StopDetails) (stop.Details, error) {
	if d == nil {
		return stop.PendingDetails(), nil
	}

	status := stop.Pending
	if d.Status != nil {
		parsed, err := stop.ParseDeliveryStatus(string(*d.Status))
		if err != nil {
			return stop.Details{}, err
		}
		status = parsed
	}

	return stop.NewDetails(d.Eta, d.Etd, status, deref(d.ProofPhotoUrl), deref(d.Notes))
}

func toRouteStop(s *stop.Stop) servers.RouteStop {
	details := s.Details()

	return servers.RouteStop{
		OrderId:       s.OrderID().Bytes(),
		Sequence:      s.Sequence(),
		Eta:           details.ETA(),
		Etd:           details.ETD(),
		Status:        servers.StopStatus(details.Status().String()),
		ProofPhotoUrl: optional(details.ProofPhotoURL()),
		Notes:         optional(details.Notes()),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
