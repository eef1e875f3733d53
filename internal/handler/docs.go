package handler

import (
	"net/http"

	"github.com/deppfellow/petstore/internal/apidoc"
	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/labstack/echo/v4"
)

// Tags group operations in the API document.
const (
	TagPet   = "pet"
	TagOrder = "order"
)

var (
	mediaTypes = []string{echo.MIMEApplicationJSON, echo.MIMEApplicationXML}
	formTypes  = []string{echo.MIMEApplicationForm, echo.MIMEMultipartForm}
)

// Endpoints describes every pet and order route. The router registers
// exactly these routes.
func Endpoints(maxID int64) []apidoc.Endpoint {
	minID := int64(1)

	idParam := func(name, description string) apidoc.Param {
		return apidoc.Param{
			Name:        name,
			In:          apidoc.InPath,
			DataType:    "long",
			Description: description,
			Required:    true,
			Min:         &minID,
			Max:         &maxID,
		}
	}
	apiKeyParam := apidoc.Param{Name: "api_key", In: apidoc.InHeader, DataType: "string"}

	petStatuses := make([]string, 0, len(model.PetStatuses))
	for _, s := range model.PetStatuses {
		petStatuses = append(petStatuses, string(s))
	}
	orderStatuses := make([]string, 0, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		orderStatuses = append(orderStatuses, string(s))
	}

	return []apidoc.Endpoint{
		{
			Method:      http.MethodGet,
			Path:        "/pet/{petId}",
			Tag:         TagPet,
			OperationID: "getPetById",
			Summary:     "Find pet by ID",
			Description: "Returns a pet. Non-integer ids and ids outside the allowed range are rejected as invalid.",
			Produces:    mediaTypes,
			Params:      []apidoc.Param{idParam("petId", "ID of pet that needs to be fetched")},
			Returns:     "Pet",
			Responses:   map[int]string{400: msgInvalidID, 404: "Pet not found"},
		},
		{
			Method:      http.MethodDelete,
			Path:        "/pet/{petId}",
			Tag:         TagPet,
			OperationID: "deletePet",
			Summary:     "Deletes a pet",
			Produces:    mediaTypes,
			Params:      []apidoc.Param{apiKeyParam, idParam("petId", "Pet id to delete")},
			Responses:   map[int]string{400: msgInvalidID},
			APIKey:      true,
		},
		{
			Method:      http.MethodPost,
			Path:        "/pet",
			Tag:         TagPet,
			OperationID: "addPet",
			Summary:     "Add a new pet to the store",
			Consumes:    mediaTypes,
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "body", In: apidoc.InBody, DataType: "Pet", Required: true,
				Description: "Pet object that needs to be added to the store",
			}},
			Returns:   "Pet",
			Responses: map[int]string{405: msgInvalidInput},
		},
		{
			Method:      http.MethodPut,
			Path:        "/pet",
			Tag:         TagPet,
			OperationID: "updatePet",
			Summary:     "Update an existing pet",
			Consumes:    mediaTypes,
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "body", In: apidoc.InBody, DataType: "Pet", Required: true,
				Description: "Pet object that needs to be added to the store",
			}},
			Returns:   "Pet",
			Responses: map[int]string{400: msgInvalidID, 405: msgValidation},
		},
		{
			Method:      http.MethodGet,
			Path:        "/pet/findByStatus",
			Tag:         TagPet,
			OperationID: "findPetsByStatus",
			Summary:     "Finds Pets by status",
			Description: "Multiple status values can be provided with comma separated strings",
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "status", In: apidoc.InQuery, DataType: "string", Multiple: true,
				Description: "Status values that need to be considered for filter",
				Enum:        petStatuses,
				Default:     string(model.PetStatusAvailable),
			}},
			Returns:     "Pet",
			ReturnsList: true,
			Responses:   map[int]string{400: msgInvalidStatus},
		},
		{
			Method:      http.MethodGet,
			Path:        "/pet/findByTags",
			Tag:         TagPet,
			OperationID: "findPetsByTags",
			Summary:     "Finds Pets by tags",
			Description: "Multiple tags can be provided with comma separated strings. Use tag1, tag2, tag3 for testing.",
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "tags", In: apidoc.InQuery, DataType: "string", Multiple: true, Required: true,
				Description: "Tags to filter by",
			}},
			Returns:     "Pet",
			ReturnsList: true,
			Responses:   map[int]string{400: msgInvalidTag},
			Deprecated:  true,
		},
		{
			Method:      http.MethodPost,
			Path:        "/pet/{petId}",
			Tag:         TagPet,
			OperationID: "updatePetWithForm",
			Summary:     "Updates a pet in the store with form data",
			Consumes:    formTypes,
			Produces:    mediaTypes,
			Params: []apidoc.Param{
				idParam("petId", "ID of pet that needs to be updated"),
				{Name: "name", In: apidoc.InFormData, DataType: "string", Description: "Updated name of the pet"},
				{Name: "status", In: apidoc.InFormData, DataType: "string", Description: "Updated status of the pet", Enum: petStatuses},
			},
			Returns:   "ApiResponse",
			Responses: map[int]string{400: msgInvalidID, 404: "Pet not found", 405: msgInvalidInput},
		},
		{
			Method:      http.MethodGet,
			Path:        "/order/{orderId}",
			Tag:         TagOrder,
			OperationID: "getOrderById",
			Summary:     "Find order by ID",
			Description: "Returns an order. Non-integer ids and ids outside the allowed range are rejected as invalid.",
			Produces:    mediaTypes,
			Params:      []apidoc.Param{idParam("orderId", "ID of order that needs to be fetched")},
			Returns:     "Order",
			Responses:   map[int]string{400: msgInvalidID, 404: "Order not found"},
		},
		{
			Method:      http.MethodDelete,
			Path:        "/order/{orderId}",
			Tag:         TagOrder,
			OperationID: "deleteOrder",
			Summary:     "Delete purchase order by ID",
			Produces:    mediaTypes,
			Params:      []apidoc.Param{apiKeyParam, idParam("orderId", "ID of the order that needs to be deleted")},
			Responses:   map[int]string{400: msgInvalidID},
			APIKey:      true,
		},
		{
			Method:      http.MethodPost,
			Path:        "/order",
			Tag:         TagOrder,
			OperationID: "placeOrder",
			Summary:     "Place an order for a pet",
			Consumes:    mediaTypes,
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "body", In: apidoc.InBody, DataType: "Order", Required: true,
				Description: "order placed for purchasing the pet",
			}},
			Returns:   "Order",
			Responses: map[int]string{405: msgInvalidInput},
		},
		{
			Method:      http.MethodPut,
			Path:        "/order",
			Tag:         TagOrder,
			OperationID: "updateOrder",
			Summary:     "Update an existing order",
			Consumes:    mediaTypes,
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "body", In: apidoc.InBody, DataType: "Order", Required: true,
				Description: "Order that replaces the stored one",
			}},
			Returns:   "Order",
			Responses: map[int]string{400: msgInvalidID, 405: msgValidation},
		},
		{
			Method:      http.MethodGet,
			Path:        "/order/findByStatus",
			Tag:         TagOrder,
			OperationID: "findOrdersByStatus",
			Summary:     "Finds orders by status",
			Description: "Multiple status values can be provided with comma separated strings",
			Produces:    mediaTypes,
			Params: []apidoc.Param{{
				Name: "status", In: apidoc.InQuery, DataType: "string", Multiple: true,
				Description: "Status values that need to be considered for filter",
				Enum:        orderStatuses,
				Default:     string(model.OrderStatusPlaced),
			}},
			Returns:     "Order",
			ReturnsList: true,
			Responses:   map[int]string{400: msgInvalidStatus},
		},
	}
}

// Document builds the API document for cfg.
func Document(cfg config.APIConfig) (*apidoc.Document, error) {
	info := apidoc.Info{
		Title:       cfg.Title,
		Description: cfg.Description,
		Version:     cfg.Version,
	}

	return apidoc.New(info, cfg.Host, cfg.BasePath, cfg.Schemes).
		Tag(TagPet, "Everything about your Pets").
		Tag(TagOrder, "Access to Petstore orders").
		Model(model.Pet{}).
		Model(model.Order{}).
		Model(model.ApiResponse{}).
		Endpoint(Endpoints(cfg.MaxID)...).
		Build()
}
