package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/petstore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()

	_, found, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	pet := model.Pet{ID: 1, Name: "Cat 1", Status: model.PetStatusAvailable}
	require.NoError(t, store.Put(ctx, pet))

	got, found, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, pet, got)

	require.NoError(t, store.Delete(ctx, 1))
	_, found, err = store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, 1))
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()

	require.NoError(t, store.Put(ctx, model.Pet{ID: 3, Name: "before"}))
	require.NoError(t, store.Put(ctx, model.Pet{ID: 3, Name: "after"}))

	pets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "after", pets[0].Name)
}

func TestMemoryStore_ListOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Order]()

	for _, id := range []int64{5, 1, 3} {
		require.NoError(t, store.Put(ctx, model.Order{ID: id}))
	}

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, int64(3), orders[1].ID)
	assert.Equal(t, int64(5), orders[2].ID)
}

func TestMemoryStore_NextID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()

	id, err := store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, store.Put(ctx, model.Pet{ID: 40}))
	id, err = store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)

	id, err = store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = store.Put(ctx, model.Pet{ID: id, Name: "pet"})
			_, _, _ = store.Get(ctx, id)
			_, _ = store.List(ctx)
		}(int64(i))
	}
	wg.Wait()

	pets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, pets, 50)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()

	n, err := Seed(ctx, store, SeedPets())
	require.NoError(t, err)
	assert.Equal(t, len(SeedPets()), n)

	// A populated store is left alone.
	n, err = Seed(ctx, store, SeedPets())
	require.NoError(t, err)
	assert.Zero(t, n)

	orders := NewMemoryStore[model.Order]()
	n, err = Seed(ctx, orders, SeedOrders(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSeedPets_Statuses(t *testing.T) {
	for _, pet := range SeedPets() {
		assert.True(t, pet.Status.Valid(), "pet %d", pet.ID)
		assert.NotEmpty(t, pet.Tags, "pet %d", pet.ID)
	}
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()

	called := false
	_, found, err := store.Update(ctx, 1, func(p model.Pet) model.Pet {
		called = true
		return p
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, called)

	require.NoError(t, store.Put(ctx, model.Pet{ID: 1, Name: "Cat 1"}))
	updated, found, err := store.Update(ctx, 1, func(p model.Pet) model.Pet {
		p.Status = model.PetStatusSold
		return p
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Cat 1", updated.Name)
	assert.Equal(t, model.PetStatusSold, updated.Status)
}

func TestMemoryStore_UpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Pet]()
	require.NoError(t, store.Put(ctx, model.Pet{ID: 1}))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = store.Update(ctx, 1, func(p model.Pet) model.Pet {
				p.Tags = append(p.Tags, model.Tag{Name: "t"})
				return p
			})
		}()
	}
	wg.Wait()

	pet, _, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, pet.Tags, 100)
}
