package handler

import (
	"mime"
	"strconv"
	"strings"

	"github.com/deppfellow/petstore/internal/errs"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/validation"
	"github.com/labstack/echo/v4"
)

// Client error messages shared by pet and order routes.
const (
	msgInvalidID     = "Invalid ID supplied"
	msgInvalidStatus = "Invalid status value"
	msgInvalidTag    = "Invalid tag value"
	msgInvalidInput  = "Invalid input"
	msgValidation    = "Validation exception"
)

func invalidID() *errs.HTTPError {
	code := "INVALID_ID"
	return errs.NewBadRequestError(msgInvalidID, true, &code, nil, nil)
}

// parseID accepts decimal ids in [1, maxID].
func parseID(raw string, maxID int64) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 || id > maxID {
		return 0, invalidID()
	}
	return id, nil
}

// checkBodyID allows zero, which asks for a new id.
func checkBodyID(id, maxID int64) error {
	if id < 0 || id > maxID {
		return invalidID()
	}
	return nil
}

// joinQuery merges repeated query values into one comma separated list.
func joinQuery(values []string) string {
	return strings.Join(values, ",")
}

// formBodyOnly answers 405 "Invalid input" for bodies that are not form
// encoded. A request without a body passes.
func formBodyOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		contentType := req.Header.Get(echo.HeaderContentType)
		if contentType == "" && req.ContentLength == 0 {
			return next(c)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || (mediaType != echo.MIMEApplicationForm && mediaType != echo.MIMEMultipartForm) {
			return errs.NewInvalidInputError(msgInvalidInput, []errs.FieldError{
				{Field: "body", Error: "must be " + echo.MIMEApplicationForm + " or " + echo.MIMEMultipartForm},
			})
		}
		return next(c)
	}
}

type PetIDRequest struct {
	PetID string `param:"petId"`

	id    int64
	maxID int64
}

func (r *PetIDRequest) Validate() error {
	id, err := parseID(r.PetID, r.maxID)
	r.id = id
	return err
}

// PetBody is the pet sent to add and update.
type PetBody struct {
	model.Pet

	maxID        int64
	invalidInput string
}

func (r *PetBody) Validate() error {
	if err := checkBodyID(r.Pet.ID, r.maxID); err != nil {
		return err
	}
	return validation.Struct(r.Pet)
}

func (r *PetBody) InvalidInputMessage() string {
	return r.invalidInput
}

type FindPetsByStatusRequest struct {
	Status []string `query:"status"`

	statuses []model.PetStatus
}

func (r *FindPetsByStatusRequest) Validate() error {
	statuses, err := model.ParsePetStatuses(joinQuery(r.Status))
	if err != nil {
		return errs.NewBadRequestError(msgInvalidStatus, true, nil, []errs.FieldError{
			{Field: "status", Error: err.Error()},
		}, nil)
	}
	r.statuses = statuses
	return nil
}

type FindPetsByTagsRequest struct {
	Tags []string `query:"tags"`

	tags []string
}

func (r *FindPetsByTagsRequest) Validate() error {
	r.tags = model.SplitCSV(joinQuery(r.Tags))
	if len(r.tags) == 0 {
		return errs.NewBadRequestError(msgInvalidTag, true, nil, []errs.FieldError{
			{Field: "tags", Error: "is required"},
		}, nil)
	}
	return nil
}

// UpdatePetWithFormRequest carries the form fields of POST /pet/{petId}.
type UpdatePetWithFormRequest struct {
	PetID  string `param:"petId"`
	Name   string `form:"name"`
	Status string `form:"status"`

	id    int64
	maxID int64
}

func (r *UpdatePetWithFormRequest) Validate() error {
	id, err := parseID(r.PetID, r.maxID)
	r.id = id
	return err
}

func (r *UpdatePetWithFormRequest) InvalidInputMessage() string {
	return msgInvalidInput
}

type OrderIDRequest struct {
	OrderID string `param:"orderId"`

	id    int64
	maxID int64
}

func (r *OrderIDRequest) Validate() error {
	id, err := parseID(r.OrderID, r.maxID)
	r.id = id
	return err
}

// OrderBody is the order sent to place and update.
type OrderBody struct {
	model.Order

	maxID        int64
	invalidInput string
}

func (r *OrderBody) Validate() error {
	if err := checkBodyID(r.Order.ID, r.maxID); err != nil {
		return err
	}
	return validation.Struct(r.Order)
}

func (r *OrderBody) InvalidInputMessage() string {
	return r.invalidInput
}

type FindOrdersByStatusRequest struct {
	Status []string `query:"status"`

	statuses []model.OrderStatus
}

func (r *FindOrdersByStatusRequest) Validate() error {
	statuses, err := model.ParseOrderStatuses(joinQuery(r.Status))
	if err != nil {
		return errs.NewBadRequestError(msgInvalidStatus, true, nil, []errs.FieldError{
			{Field: "status", Error: err.Error()},
		}, nil)
	}
	r.statuses = statuses
	return nil
}
