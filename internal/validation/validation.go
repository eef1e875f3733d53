// Package validation binds request data and turns validation failures into
// client errors.
//
// Struct rules come from `validate` tags checked by go-playground/validator.
// Failures become *errs.HTTPError values with one errs.FieldError per field.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/deppfellow/petstore/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that check themselves.
// Validate may return validator.ValidationErrors, CustomValidationErrors or
// a ready *errs.HTTPError.
type Validatable interface {
	Validate() error
}

// InputRequest is implemented by body payloads whose bind and validation
// failures are reported as 405 with the returned message.
type InputRequest interface {
	Validatable
	InvalidInputMessage() string
}

// CustomValidationError is a field failure validator tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its struct tags.
func Struct(v interface{}) error {
	return Validator().Struct(v)
}

// BindAndValidate binds the request into payload (path, query, then body)
// and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	input, isInput := payload.(InputRequest)

	if err := c.Bind(payload); err != nil {
		if isInput {
			return errs.NewInvalidInputError(input.InvalidInputMessage(), nil)
		}
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	err := payload.Validate()
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors := extractValidationError(err)
	if isInput {
		return errs.NewInvalidInputError(input.InvalidInputMessage(), fieldErrors)
	}
	return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
}

// bindErrorMessage pulls the client-facing text out of echo's bind error.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}
	return "Invalid request"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, fe := range validationErrors {
		field := fieldName(fe)
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// fieldName is the JSON path below the validated struct, e.g. "tags[0].name".
func fieldName(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}
