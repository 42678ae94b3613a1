// Package http exposes the pickup use cases as a JSON REST API built on echo.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Server implements the REST endpoints.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// envelope is the body of every successful non-paginated response.
type envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Message: message, Data: data})
}

func ok(c echo.Context, data any) error {
	return respond(c, http.StatusOK, "", data)
}
