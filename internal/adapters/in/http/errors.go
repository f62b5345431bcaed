package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps a use case error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, commands.ErrRouteHasNoStops):
		return http.StatusConflict
	case errors.Is(err, errs.ErrConstraintViolation):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error response. Server errors are logged with their cause and never
// echo it to the client.
func (s *Server) fail(ctx echo.Context, message string, err error) error {
	status := statusOf(err)

	switch {
	case errors.Is(err, errs.ErrConstraintViolation):
		s.logger.ErrorContext(ctx.Request().Context(), "Route stop sequence constraint violated",
			"error", err, "path", ctx.Path())
		return ctx.JSON(status, servers.Error{Code: status, Message: message})
	case status == http.StatusInternalServerError:
		s.logger.ErrorContext(ctx.Request().Context(), message, "error", err, "path", ctx.Path())
		return ctx.JSON(status, servers.Error{Code: status, Message: message})
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message + ": " + err.Error()})
}

func (s *Server) badRequest(ctx echo.Context, message string, err error) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message + ": " + err.Error(),
	})
}
