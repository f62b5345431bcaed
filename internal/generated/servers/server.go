package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List the stops of a route
	// (GET /api/v1/routes/{routeId}/stops)
	GetRouteStops(ctx echo.Context, routeId openapi_types.UUID, params GetRouteStopsParams) error
	// Create a stop at the end of the route, or update its details keeping its place
	// (POST /api/v1/routes/{routeId}/stops)
	UpsertRouteStop(ctx echo.Context, routeId openapi_types.UUID) error
	// Remove a stop and close the gap
	// (DELETE /api/v1/routes/{routeId}/stops/{orderId})
	RemoveRouteStop(ctx echo.Context, routeId openapi_types.UUID, orderId openapi_types.UUID) error
	// Append an order to the end of the route
	// (POST /api/v1/routes/{routeId}/stops/{orderId})
	AppendRouteStop(ctx echo.Context, routeId openapi_types.UUID, orderId openapi_types.UUID) error
	// Insert an order at a sequence, shifting later stops back
	// (POST /api/v1/routes/{routeId}/stops/{orderId}/insert)
	InsertRouteStop(ctx echo.Context, routeId openapi_types.UUID, orderId openapi_types.UUID) error
	// Move a stop to another sequence
	// (POST /api/v1/routes/{routeId}/stops/{orderId}/move)
	MoveRouteStop(ctx echo.Context, routeId openapi_types.UUID, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetRouteStops converts echo context to params.
func (w *ServerInterfaceWrapper) GetRouteStops(ctx echo.Context) error {
	routeId, err := bindUUIDPathParameter(ctx, "routeId")
	if err != nil {
		return err
	}

	var params GetRouteStopsParams

	err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "recordsNumber", ctx.QueryParams(), &params.RecordsNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter recordsNumber: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sortBy", ctx.QueryParams(), &params.SortBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sortBy: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sortDir", ctx.QueryParams(), &params.SortDir)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sortDir: %s", err))
	}

	return w.Handler.GetRouteStops(ctx, routeId, params)
}

// UpsertRouteStop converts echo context to params.
func (w *ServerInterfaceWrapper) UpsertRouteStop(ctx echo.Context) error {
	routeId, err := bindUUIDPathParameter(ctx, "routeId")
	if err != nil {
		return err
	}

	return w.Handler.UpsertRouteStop(ctx, routeId)
}

// RemoveRouteStop converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveRouteStop(ctx echo.Context) error {
	routeId, orderId, err := bindStopPathParameters(ctx)
	if err != nil {
		return err
	}

	return w.Handler.RemoveRouteStop(ctx, routeId, orderId)
}

// AppendRouteStop converts echo context to params.
func (w *ServerInterfaceWrapper) AppendRouteStop(ctx echo.Context) error {
	routeId, orderId, err := bindStopPathParameters(ctx)
	if err != nil {
		return err
	}

	return w.Handler.AppendRouteStop(ctx, routeId, orderId)
}

// InsertRouteStop converts echo context to params.
func (w *ServerInterfaceWrapper) InsertRouteStop(ctx echo.Context) error {
	routeId, orderId, err := bindStopPathParameters(ctx)
	if err != nil {
		return err
	}

	return w.Handler.InsertRouteStop(ctx, routeId, orderId)
}

// MoveRouteStop converts echo context to params.
func (w *ServerInterfaceWrapper) MoveRouteStop(ctx echo.Context) error {
	routeId, orderId, err := bindStopPathParameters(ctx)
	if err != nil {
		return err
	}

	return w.Handler.MoveRouteStop(ctx, routeId, orderId)
}

func bindUUIDPathParameter(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}

	return value, nil
}

func bindStopPathParameters(ctx echo.Context) (openapi_types.UUID, openapi_types.UUID, error) {
	routeId, err := bindUUIDPathParameter(ctx, "routeId")
	if err != nil {
		return routeId, openapi_types.UUID{}, err
	}

	orderId, err := bindUUIDPathParameter(ctx, "orderId")
	return routeId, orderId, err
}

// EchoRouter is the subset of echo's routing methods the handlers are registered with.
// Both *echo.Echo and *echo.Group implement it.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so that
// the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/routes/:routeId/stops", wrapper.GetRouteStops)
	router.POST(baseURL+"/api/v1/routes/:routeId/stops", wrapper.UpsertRouteStop)
	router.DELETE(baseURL+"/api/v1/routes/:routeId/stops/:orderId", wrapper.RemoveRouteStop)
	router.POST(baseURL+"/api/v1/routes/:routeId/stops/:orderId", wrapper.AppendRouteStop)
	router.POST(baseURL+"/api/v1/routes/:routeId/stops/:orderId/insert", wrapper.InsertRouteStop)
	router.POST(baseURL+"/api/v1/routes/:routeId/stops/:orderId/move", wrapper.MoveRouteStop)
}
