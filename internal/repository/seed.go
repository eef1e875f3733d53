package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/petstore/internal/model"
)

var (
	categoryDogs    = &model.Category{ID: 1, Name: "Dogs"}
	categoryCats    = &model.Category{ID: 2, Name: "Cats"}
	categoryRabbits = &model.Category{ID: 3, Name: "Rabbits"}
	categoryLions   = &model.Category{ID: 4, Name: "Lions"}
)

func seedPet(id int64, category *model.Category, name string, status model.PetStatus, tags ...string) model.Pet {
	pet := model.Pet{
		ID:        id,
		Category:  category,
		Name:      name,
		PhotoURLs: []string{"url1", "url2"},
		Status:    status,
	}
	for i, tag := range tags {
		pet.Tags = append(pet.Tags, model.Tag{ID: int64(i + 1), Name: tag})
	}
	return pet
}

// SeedPets are the sample pets loaded into an empty store.
func SeedPets() []model.Pet {
	return []model.Pet{
		seedPet(1, categoryCats, "Cat 1", model.PetStatusAvailable, "tag1", "tag2"),
		seedPet(2, categoryCats, "Cat 2", model.PetStatusAvailable, "tag2", "tag3"),
		seedPet(3, categoryCats, "Cat 3", model.PetStatusPending, "tag3", "tag4"),
		seedPet(4, categoryDogs, "Dog 1", model.PetStatusAvailable, "tag1", "tag2"),
		seedPet(5, categoryDogs, "Dog 2", model.PetStatusSold, "tag2", "tag3"),
		seedPet(6, categoryDogs, "Dog 3", model.PetStatusPending, "tag3", "tag4"),
		seedPet(7, categoryLions, "Lion 1", model.PetStatusAvailable, "tag1", "tag2"),
		seedPet(8, categoryLions, "Lion 2", model.PetStatusAvailable, "tag2", "tag3"),
		seedPet(9, categoryLions, "Lion 3", model.PetStatusAvailable, "tag3", "tag4"),
		seedPet(10, categoryRabbits, "Rabbit 1", model.PetStatusAvailable, "tag3", "tag4"),
	}
}

// SeedOrders are the sample orders loaded into an empty store.
func SeedOrders(now time.Time) []model.Order {
	shipDate := now.UTC().Truncate(time.Second)
	return []model.Order{
		{ID: 1, PetID: 1, Quantity: 2, ShipDate: &shipDate, Status: model.OrderStatusPlaced},
		{ID: 2, PetID: 1, Quantity: 2, ShipDate: &shipDate, Status: model.OrderStatusDelivered, Complete: true},
		{ID: 3, PetID: 2, Quantity: 2, ShipDate: &shipDate, Status: model.OrderStatusPlaced},
		{ID: 4, PetID: 2, Quantity: 2, ShipDate: &shipDate, Status: model.OrderStatusDelivered, Complete: true},
		{ID: 5, PetID: 3, Quantity: 2, ShipDate: &shipDate, Status: model.OrderStatusApproved},
	}
}

// Seed writes records into store when it holds nothing yet.
// It reports how many records were written.
func Seed[T model.Record](ctx context.Context, store Store[T], records []T) (int, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking store before seeding: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, record := range records {
		if err := store.Put(ctx, record); err != nil {
			return 0, fmt.Errorf("seeding record %d: %w", record.RecordID(), err)
		}
	}
	return len(records), nil
}
