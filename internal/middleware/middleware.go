// Package middleware stores the global middleware and the global
// error handler.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request logging, CORS, tracing and panic recovery, and
// render every error into the API's JSON envelope.
package middleware
