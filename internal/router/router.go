// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/adsfsa-app/internal/handler"
	"github.com/deppfellow/adsfsa-app/internal/middleware"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain
// and every route registered.
//
// Order matters: the request id must exist before tracing and the
// context enhancer read it, and the request logger needs the enhanced
// logger. Recover sits innermost so a panic is logged as a 500.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerUserRoutes(api, h)
	registerItemRoutes(api, h)

	return router
}

// routes is satisfied by both *echo.Echo and *echo.Group.
type routes interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// getAndHead registers h for GET and answers HEAD on the same path.
func getAndHead(r routes, path string, h echo.HandlerFunc) {
	r.GET(path, h)
	r.HEAD(path, h)
}
