package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/server"
)

// Table names created by the migrations.
const (
	PetsTable   = "pets"
	OrdersTable = "orders"
)

// Repositories holds one store per record kind.
type Repositories struct {
	Backend string
	Pets    Store[model.Pet]
	Orders  Store[model.Order]
}

// NewRepositories builds the stores for the configured backend and seeds
// them when asked to.
func NewRepositories(ctx context.Context, s *server.Server) (*Repositories, error) {
	cfg := s.Config
	threshold := cfg.Observability.Logging.SlowQueryThreshold

	repos := &Repositories{Backend: cfg.Store.Backend}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		repos.Pets = NewMemoryStore[model.Pet]()
		repos.Orders = NewMemoryStore[model.Order]()

	case config.BackendPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("store backend %q needs a database connection", cfg.Store.Backend)
		}
		repos.Pets = NewPostgresStore[model.Pet](s.DB.Pool, PetsTable, s.Logger, threshold)
		repos.Orders = NewPostgresStore[model.Order](s.DB.Pool, OrdersTable, s.Logger, threshold)

	case config.BackendRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("store backend %q needs a redis client", cfg.Store.Backend)
		}
		repos.Pets = NewRedisStore[model.Pet](s.Redis, cfg.Store.KeyPrefix, PetsTable, s.Logger, threshold)
		repos.Orders = NewRedisStore[model.Order](s.Redis, cfg.Store.KeyPrefix, OrdersTable, s.Logger, threshold)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Store.Seed {
		pets, err := Seed(ctx, repos.Pets, SeedPets())
		if err != nil {
			return nil, err
		}
		orders, err := Seed(ctx, repos.Orders, SeedOrders(time.Now()))
		if err != nil {
			return nil, err
		}

		s.Logger.Info().
			Str("backend", cfg.Store.Backend).
			Int("pets", pets).
			Int("orders", orders).
			Msg("seeded stores")
	}

	return repos, nil
}

// NewMemoryRepositories returns empty in-memory stores.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Backend: config.BackendMemory,
		Pets:    NewMemoryStore[model.Pet](),
		Orders:  NewMemoryStore[model.Order](),
	}
}
