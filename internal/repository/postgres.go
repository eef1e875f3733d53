package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/petstore/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// PgxPool is the subset of *pgxpool.Pool the PostgreSQL store uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps each record as a jsonb document in its own row.
// The table and its id sequence are created by the migrations.
type PostgresStore[T model.Record] struct {
	pool  PgxPool
	table string
	slow  slowLog

	getSQL    string
	lockSQL   string
	updateSQL string
	putSQL    string
	deleteSQL string
	listSQL   string
	nextSQL   string
}

// NewPostgresStore returns a store over table, which must be one of the
// tables created by the migrations.
func NewPostgresStore[T model.Record](pool PgxPool, table string, logger *zerolog.Logger, slowThreshold time.Duration) *PostgresStore[T] {
	ident := pgx.Identifier{table}.Sanitize()
	sequence := table + "_id_seq"

	return &PostgresStore[T]{
		pool:  pool,
		table: table,
		slow:  slowLog{logger: logger, threshold: slowThreshold, backend: "postgres", kind: table},

		getSQL:    fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, ident),
		lockSQL:   fmt.Sprintf(`SELECT data FROM %s WHERE id = $1 FOR UPDATE`, ident),
		updateSQL: fmt.Sprintf(`UPDATE %s SET data = $2, updated_at = now() WHERE id = $1`, ident),
		putSQL: fmt.Sprintf(`INSERT INTO %s (id, data, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, ident),
		deleteSQL: fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, ident),
		listSQL:   fmt.Sprintf(`SELECT data FROM %s ORDER BY id`, ident),
		nextSQL: fmt.Sprintf(`SELECT setval('%s', GREATEST(nextval('%s'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1))`,
			sequence, sequence, ident),
	}
}

func (s *PostgresStore[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	defer s.slow.observe("get", time.Now())

	var record T
	var data []byte
	err := s.pool.QueryRow(ctx, s.getSQL, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return record, false, nil
	}
	if err != nil {
		return record, false, fmt.Errorf("table:%s: get %d: %w", s.table, id, err)
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, false, fmt.Errorf("table:%s: decode %d: %w", s.table, id, err)
	}
	return record, true, nil
}

func (s *PostgresStore[T]) Put(ctx context.Context, record T) error {
	defer s.slow.observe("put", time.Now())

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("table:%s: encode %d: %w", s.table, record.RecordID(), err)
	}

	if _, err := s.pool.Exec(ctx, s.putSQL, record.RecordID(), data); err != nil {
		return fmt.Errorf("table:%s: put %d: %w", s.table, record.RecordID(), err)
	}
	return nil
}

// Update locks the row for the length of the transaction.
func (s *PostgresStore[T]) Update(ctx context.Context, id int64, mutate func(T) T) (T, bool, error) {
	defer s.slow.observe("update", time.Now())

	var record T
	found := false

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var data []byte
		err := tx.QueryRow(ctx, s.lockSQL, id).Scan(&data)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := json.Unmarshal(data, &record); err != nil {
			return err
		}
		record = mutate(record)

		if data, err = json.Marshal(record); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, s.updateSQL, id, data); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return record, false, fmt.Errorf("table:%s: update %d: %w", s.table, id, err)
	}
	return record, found, nil
}

func (s *PostgresStore[T]) Delete(ctx context.Context, id int64) error {
	defer s.slow.observe("delete", time.Now())

	if _, err := s.pool.Exec(ctx, s.deleteSQL, id); err != nil {
		return fmt.Errorf("table:%s: delete %d: %w", s.table, id, err)
	}
	return nil
}

func (s *PostgresStore[T]) List(ctx context.Context) ([]T, error) {
	defer s.slow.observe("list", time.Now())

	rows, err := s.pool.Query(ctx, s.listSQL)
	if err != nil {
		return nil, fmt.Errorf("table:%s: list: %w", s.table, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		var record T
		var data []byte
		if err := row.Scan(&data); err != nil {
			return record, err
		}
		return record, json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, fmt.Errorf("table:%s: list: %w", s.table, err)
	}
	return records, nil
}

func (s *PostgresStore[T]) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := s.pool.QueryRow(ctx, s.nextSQL).Scan(&id); err != nil {
		return 0, fmt.Errorf("table:%s: next id: %w", s.table, err)
	}
	return id, nil
}

func (s *PostgresStore[T]) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
