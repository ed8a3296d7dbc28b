package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/adsfsa-app/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	ID    string `param:"id" json:"-"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (r *signupRequest) Validate() error { return Struct(r) }

func (r *signupRequest) ValidationMessage() string { return "Name and email are required" }

type plainRequest struct {
	Title string `json:"title" validate:"required"`
}

func (r *plainRequest) Validate() error { return Struct(r) }

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(`{"name":"Alice","email":"a@x.io"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	req := &signupRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, "7", req.ID)
	assert.Equal(t, "Alice", req.Name)
}

func TestBindAndValidate_MissingFieldUsesRequestMessage(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"Alice"}`), &signupRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Name and email are required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestBindAndValidate_GenericMessage(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &plainRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Validation failed", httpErr.Message)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":`), &signupRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, MsgInvalidBody, httpErr.Message)
}

func TestBindAndValidate_BodyWithoutContentType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice","email":"a@x.io"}`))
	c := e.NewContext(req, httptest.NewRecorder())

	err := BindAndValidate(c, &signupRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Name and email are required", httpErr.Message)
}
