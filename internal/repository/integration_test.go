//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/petstore/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the Store behaviour every backend must share.
func storeContract(t *testing.T, store Store[model.Pet]) {
	t.Helper()
	ctx := context.Background()

	id, err := store.NextID(ctx)
	require.NoError(t, err)

	pet := model.Pet{ID: id, Name: "contract", Status: model.PetStatusAvailable, Tags: []model.Tag{{ID: 1, Name: "tag1"}}}
	require.NoError(t, store.Put(ctx, pet))

	got, found, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, pet.Name, got.Name)
	assert.Equal(t, pet.Tags, got.Tags)

	updated, found, err := store.Update(ctx, id, func(p model.Pet) model.Pet {
		p.Status = model.PetStatusSold
		return p
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.PetStatusSold, updated.Status)

	_, found, err = store.Update(ctx, id+1000000, func(p model.Pet) model.Pet { return p })
	require.NoError(t, err)
	assert.False(t, found)

	next, err := store.NextID(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, id)

	pets, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, pets)

	require.NoError(t, store.Delete(ctx, id))
	_, found, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, store.Delete(ctx, id))
}

func TestPostgresStore_Contract(t *testing.T) {
	dsn := os.Getenv("PETSTORE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PETSTORE_TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	storeContract(t, NewPostgresStore[model.Pet](pool, PetsTable, nil, time.Second))
}

func TestRedisStore_Contract(t *testing.T) {
	addr := os.Getenv("PETSTORE_TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("PETSTORE_TEST_REDIS_ADDRESS not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	storeContract(t, NewRedisStore[model.Pet](client, "petstore-test", PetsTable, nil, time.Second))
}
