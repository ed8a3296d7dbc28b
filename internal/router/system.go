package router

import (
	"github.com/deppfellow/adsfsa-app/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the
// users/items API: the service banner and the health check.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	getAndHead(r, "/", h.System.Banner)
	getAndHead(r, "/health", h.Health.CheckHealth)
}
