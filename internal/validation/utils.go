// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields) defined in struct tags and converts
// validation errors into the API's 400 responses.
package validation

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared: validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = validator.New()

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}
