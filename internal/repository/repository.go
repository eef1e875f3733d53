// Package repository holds the stores pets and orders live in.
//
// A Store maps identifiers to records. The memory store is the default;
// PostgreSQL and Redis stores keep the same contract on shared
// infrastructure. Stores never fail a lookup with an application error:
// a missing identifier is reported through the found flag.
package repository

import (
	"context"

	"github.com/deppfellow/petstore/internal/model"
)

// Store is an identifier to record mapping.
type Store[T model.Record] interface {
	// Get returns the record for id and whether it exists.
	Get(ctx context.Context, id int64) (T, bool, error)

	// Put inserts or replaces the record keyed by its identifier.
	Put(ctx context.Context, record T) error

	// Update applies mutate to the record for id and stores the result as
	// one atomic step. It reports false, without calling mutate, when id is
	// missing. The mutated record must keep its identifier.
	Update(ctx context.Context, id int64, mutate func(T) T) (T, bool, error)

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// List returns every record ordered by ascending identifier.
	List(ctx context.Context) ([]T, error)

	// NextID reserves an identifier greater than any stored so far.
	NextID(ctx context.Context) (int64, error)

	// Ping checks the backing infrastructure is reachable.
	Ping(ctx context.Context) error
}
