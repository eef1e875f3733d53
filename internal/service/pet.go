package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/petstore/internal/errs"
	"github.com/deppfellow/petstore/internal/lib/job"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/repository"
)

// DefaultPetStatus is used by FindByStatus when no status is given.
const DefaultPetStatus = model.PetStatusAvailable

type PetService struct {
	resource[model.Pet]
}

func NewPetService(store repository.Store[model.Pet], auditor job.Auditor, maxID int64) *PetService {
	return &PetService{
		resource: resource[model.Pet]{
			kind:    "pet",
			label:   "Pet",
			store:   store,
			auditor: auditor,
			maxID:   maxID,
			withID: func(p model.Pet, id int64) model.Pet {
				p.ID = id
				return p
			},
		},
	}
}

// GetByID returns the pet or a 404 "Pet not found".
func (s *PetService) GetByID(ctx context.Context, id int64) (model.Pet, error) {
	return s.get(ctx, id)
}

func (s *PetService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, id)
}

// Add stores pet, replacing any pet with the same id.
func (s *PetService) Add(ctx context.Context, pet model.Pet) (model.Pet, error) {
	return s.save(ctx, pet, job.ActionAdd)
}

// Update behaves like Add. Unknown ids are inserted.
func (s *PetService) Update(ctx context.Context, pet model.Pet) (model.Pet, error) {
	return s.save(ctx, pet, job.ActionUpdate)
}

// FindByStatus returns pets in any of statuses, or in DefaultPetStatus when
// statuses is empty.
func (s *PetService) FindByStatus(ctx context.Context, statuses []model.PetStatus) (model.Pets, error) {
	if len(statuses) == 0 {
		statuses = []model.PetStatus{DefaultPetStatus}
	}

	pets, err := s.list(ctx, func(p model.Pet) bool {
		return p.HasStatus(statuses)
	})
	return model.Pets(pets), err
}

// FindByTags returns pets carrying any of tags.
//
// Deprecated: tag filtering is kept for existing clients; use FindByStatus.
func (s *PetService) FindByTags(ctx context.Context, tags []string) (model.Pets, error) {
	if len(tags) == 0 {
		return nil, errs.NewBadRequestError("Invalid tag value", true, nil, nil, nil)
	}

	pets, err := s.list(ctx, func(p model.Pet) bool {
		return p.HasAnyTag(tags)
	})
	return model.Pets(pets), err
}

// UpdateWithForm sets the pet's name and status when they are non-empty.
func (s *PetService) UpdateWithForm(ctx context.Context, id int64, name, status string) (model.ApiResponse, error) {
	newStatus := model.PetStatus(strings.ToLower(strings.TrimSpace(status)))
	if status != "" && !newStatus.Valid() {
		return model.ApiResponse{}, errs.NewInvalidInputError("Invalid input", []errs.FieldError{
			{Field: "status", Error: fmt.Sprintf("must be one of: %s %s %s", model.PetStatusAvailable, model.PetStatusPending, model.PetStatusSold)},
		})
	}

	name = strings.TrimSpace(name)
	fields := map[string]string{}
	if name != "" {
		fields["name"] = name
	}
	if status != "" {
		fields["status"] = string(newStatus)
	}

	_, found, err := s.store.Update(ctx, id, func(pet model.Pet) model.Pet {
		if name != "" {
			pet.Name = name
		}
		if status != "" {
			pet.Status = newStatus
		}
		return pet
	})
	if err != nil {
		return model.ApiResponse{}, fmt.Errorf("updating pet %d: %w", id, err)
	}
	if !found {
		return model.ApiResponse{}, s.notFound()
	}

	s.audit(ctx, id, job.ActionFormUpdate, fields)
	return model.NewApiResponse(200, "SUCCESS"), nil
}
