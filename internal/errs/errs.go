// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (HTTPError for API responses, FieldError for per-field validation)
// so clients receive meaningful and consistent error messages
// inside the response envelope.
package errs
