package validation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/adsfsa-app/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MsgInvalidBody is reported when the body cannot be decoded into the
// request type (malformed JSON, wrong field types).
const MsgInvalidBody = "Invalid request body"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs validation.Struct(req)
type Validatable interface {
	Validate() error
}

// Messenger lets a request type replace the generic "Validation failed"
// text with its own, e.g. "Name and email are required".
type Messenger interface {
	ValidationMessage() string
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the request struct from path params and body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) if either step fails.
//
// A body sent without a JSON content type is ignored rather than
// rejected, so the request fails validation with its own message.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !isUnsupportedMediaType(err) {
		return errs.NewBadRequestError(MsgInvalidBody, true, nil, []errs.FieldError{
			{Field: "body", Error: bindErrorDetail(err)},
		})
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		if m, ok := payload.(Messenger); ok {
			msg = m.ValidationMessage()
		}
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func isUnsupportedMediaType(err error) bool {
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType
}

// bindErrorDetail pulls the human part out of echo's bind error. It is
// only logged, never sent to the client.
func bindErrorDetail(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
