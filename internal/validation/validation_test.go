package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/petstore/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagBody struct {
	Name string `json:"name" validate:"required"`
}

type widgetBody struct {
	Name   string    `json:"name" validate:"required,min=2"`
	Status string    `json:"status" validate:"omitempty,oneof=on off"`
	Tags   []tagBody `json:"tags" validate:"dive"`
}

func (w *widgetBody) Validate() error {
	return Struct(w)
}

type widgetInput struct {
	widgetBody
}

func (w *widgetInput) Validate() error {
	return Struct(w.widgetBody)
}

func (w *widgetInput) InvalidInputMessage() string {
	return "Invalid input"
}

type idParam struct {
	ID string `param:"id"`
}

func (p *idParam) Validate() error {
	if p.ID != "7" {
		return errs.NewBadRequestError("Invalid ID supplied", true, nil, nil, nil)
	}
	return nil
}

type customChecked struct{}

func (*customChecked) Validate() error {
	return CustomValidationErrors{{Field: "when", Message: "must be in the future"}}
}

func newContext(method, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	body := &widgetBody{}
	err := BindAndValidate(newContext(http.MethodPost, `{"name":"gear","status":"on"}`), body)
	require.NoError(t, err)
	assert.Equal(t, "gear", body.Name)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, `{"name":"g","status":"idle","tags":[{}]}`), &widgetBody{})
	httpErr := asHTTPError(t, err)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "must be at least 2 characters"},
		{Field: "status", Error: "must be one of: on off"},
		{Field: "tags[0].name", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidate_InputRequest(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, `{"status":"on"}`), &widgetInput{})
	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, httpErr.Status)
	assert.Equal(t, "Invalid input", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)

	err = BindAndValidate(newContext(http.MethodPost, `{"name":`), &widgetInput{})
	httpErr = asHTTPError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, httpErr.Status)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, `{"name":`), &widgetBody{})
	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_PassesHTTPErrors(t *testing.T) {
	c := newContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := BindAndValidate(c, &idParam{})
	httpErr := asHTTPError(t, err)
	assert.Equal(t, "Invalid ID supplied", httpErr.Message)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodGet, ""), &customChecked{})
	httpErr := asHTTPError(t, err)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "when", httpErr.Errors[0].Field)
	assert.Equal(t, "must be in the future", httpErr.Errors[0].Error)
}
