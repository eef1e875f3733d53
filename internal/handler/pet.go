package handler

import (
	"net/http"

	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/deppfellow/petstore/internal/service"
	"github.com/labstack/echo/v4"
)

// DeprecationHeader marks responses of deprecated operations.
const DeprecationHeader = "Deprecation"

type PetHandler struct {
	Handler
	pets  *service.PetService
	maxID int64
}

func NewPetHandler(s *server.Server, pets *service.PetService) *PetHandler {
	return &PetHandler{
		Handler: NewHandler(s),
		pets:    pets,
		maxID:   s.Config.API.MaxID,
	}
}

// MaxID is the largest id accepted on pet routes.
func (h *PetHandler) MaxID() int64 {
	return h.maxID
}

func (h *PetHandler) GetPetByID() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *PetIDRequest) (model.Pet, error) {
		return h.pets.GetByID(c.Request().Context(), req.id)
	}, http.StatusOK, func() *PetIDRequest {
		return &PetIDRequest{maxID: h.maxID}
	})
}

func (h *PetHandler) DeletePet() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *PetIDRequest) error {
		return h.pets.Delete(c.Request().Context(), req.id)
	}, http.StatusOK, func() *PetIDRequest {
		return &PetIDRequest{maxID: h.maxID}
	})
}

func (h *PetHandler) AddPet() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *PetBody) (model.Pet, error) {
		return h.pets.Add(c.Request().Context(), req.Pet)
	}, http.StatusOK, func() *PetBody {
		return &PetBody{maxID: h.maxID, invalidInput: msgInvalidInput}
	})
}

func (h *PetHandler) UpdatePet() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *PetBody) (model.Pet, error) {
		return h.pets.Update(c.Request().Context(), req.Pet)
	}, http.StatusOK, func() *PetBody {
		return &PetBody{maxID: h.maxID, invalidInput: msgValidation}
	})
}

func (h *PetHandler) FindPetsByStatus() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *FindPetsByStatusRequest) (model.Pets, error) {
		return h.pets.FindByStatus(c.Request().Context(), req.statuses)
	}, http.StatusOK, func() *FindPetsByStatusRequest {
		return &FindPetsByStatusRequest{}
	})
}

// FindPetsByTags serves the deprecated tag filter and says so in the
// Deprecation header.
func (h *PetHandler) FindPetsByTags() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *FindPetsByTagsRequest) (model.Pets, error) {
		c.Response().Header().Set(DeprecationHeader, "true")
		return h.pets.FindByTags(c.Request().Context(), req.tags)
	}, http.StatusOK, func() *FindPetsByTagsRequest {
		return &FindPetsByTagsRequest{}
	})
}

// UpdatePetWithForm accepts form bodies only; see formBodyOnly.
func (h *PetHandler) UpdatePetWithForm() echo.HandlerFunc {
	return formBodyOnly(Handle(h.Handler, func(c echo.Context, req *UpdatePetWithFormRequest) (model.ApiResponse, error) {
		return h.pets.UpdateWithForm(c.Request().Context(), req.id, req.Name, req.Status)
	}, http.StatusOK, func() *UpdatePetWithFormRequest {
		return &UpdatePetWithFormRequest{maxID: h.maxID}
	}))
}
