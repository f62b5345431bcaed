// Package http is the REST adapter of the dispatch service.
package http

import (
	"net/http"

	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Register mounts the API, the health probe and the OpenAPI document on e.
func Register(e *echo.Echo, server *Server) error {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return err
	}

	validator, err := OpenAPIValidator(swagger)
	if err != nil {
		return err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", servers.RawSpec())
	})

	api := e.Group("", validator)
	servers.RegisterHandlers(api, server)

	return nil
}
