package service

import (
	"github.com/deppfellow/petstore/internal/lib/job"
	"github.com/deppfellow/petstore/internal/repository"
	"github.com/deppfellow/petstore/internal/server"
)

type Services struct {
	Pets   *PetService
	Orders *OrderService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return newServices(repos, s.Auditor(), s.Config.API.MaxID), nil
}

func newServices(repos *repository.Repositories, auditor job.Auditor, maxID int64) *Services {
	return &Services{
		Pets:   NewPetService(repos.Pets, auditor, maxID),
		Orders: NewOrderService(repos.Orders, auditor, maxID),
	}
}
