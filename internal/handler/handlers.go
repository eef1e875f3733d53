package handler

import (
	"github.com/deppfellow/petstore/internal/repository"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/deppfellow/petstore/internal/service"
)

// Handlers groups every HTTP handler so the router takes one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Pet     *PetHandler
	Order   *OrderHandler
}

func NewHandlers(s *server.Server, services *service.Services, repos *repository.Repositories) (*Handlers, error) {
	openAPI, err := NewOpenAPIHandler(s)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Health:  NewHealthHandler(s, repos),
		OpenAPI: openAPI,
		Pet:     NewPetHandler(s, services.Pets),
		Order:   NewOrderHandler(s, services.Orders),
	}, nil
}
