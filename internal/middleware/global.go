package middleware

import (
	"net/http"

	"github.com/deppfellow/adsfsa-app/internal/errs"
	"github.com/deppfellow/adsfsa-app/internal/model"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/deppfellow/adsfsa-app/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	msgRouteNotFound      = "Not Found"
	msgRouteNotFoundHint  = "The requested endpoint does not exist"
	msgInternalError      = "Something went wrong!"
	msgInternalErrorProd  = "Internal Server Error"
	errCodeRouteNotFound  = "ROUTE_NOT_FOUND"
	errCodeInternalServer = "INTERNAL_SERVER_ERROR"
)

// GlobalMiddlewares groups the global middleware and the global error
// handler. They read config values (CORS origins, environment) from the
// server container.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from CORS_ALLOWED_ORIGINS.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one "API" log line per request, with the level
// picked from the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error the response has not been
			// written yet, so derive the status the error handler will use.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFor(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors for GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds the standard security response headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// isRouteMiss reports whether err is echo's "no route" or "method not
// allowed". Both are answered with the fixed 404 body.
func isRouteMiss(err error) bool {
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return false
	}
	return echoErr.Code == http.StatusNotFound || echoErr.Code == http.StatusMethodNotAllowed
}

// statusFor is the status GlobalErrorHandler answers err with.
func statusFor(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case isRouteMiss(err):
		return http.StatusNotFound
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		if errors.As(sqlerr.HandleError(err), &httpErr) {
			return httpErr.Status
		}
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here and is
// rendered into the envelope:
//   - *errs.HTTPError          -> its status, {success:false, error:<message>}
//   - unknown route / method   -> 404 fixed "Not Found" body
//   - any other 5xx            -> {error:"Something went wrong!", message:<detail>}
//
// The detail of a 500 is the underlying error outside production and a
// generic text in production.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	var status int
	var code string
	var body model.Envelope

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		body = model.Failure(httpErr.Message)

	case isRouteMiss(err):
		status = http.StatusNotFound
		code = errCodeRouteNotFound
		body = model.Envelope{Success: false, Error: msgRouteNotFound, Message: msgRouteNotFoundHint}

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))
		if msg, ok := echoErr.Message.(string); ok {
			body = model.Failure(msg)
		} else {
			body = model.Failure(http.StatusText(status))
		}

	default:
		// Driver errors that reach this point are classified by sqlerr,
		// e.g. a stray unique violation becomes 409.
		if errors.As(sqlerr.HandleError(err), &httpErr) {
			status = httpErr.Status
			code = httpErr.Code
			body = model.Failure(httpErr.Message)
		} else {
			status = http.StatusInternalServerError
		}
	}

	if status >= http.StatusInternalServerError {
		if code == "" {
			code = errCodeInternalServer
		}
		detail := msgInternalErrorProd
		if !global.server.Config.Primary.IsProduction() {
			detail = originalErr.Error()
		}
		body = model.Envelope{Success: false, Error: msgInternalError, Message: detail}
	}

	logger := GetLogger(c)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(body.Error)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
