package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/cinema-maintenance/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that live outside /v1.  Currently it
// exposes only the health check, which load balancers poll to verify that
// the service and its database are up.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the admin session endpoint.  It is open: the
// handler itself checks the shared admin password and hands back the
// token the write routes require.
func RegisterAuth(v1 *echo.Group, a *handler.AuthHandler) {
	v1.POST("/admin/session", a.CreateSession)
}
