package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/petstore/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// putScript stores the document, indexes its id and bumps the id sequence
// so NextID never hands out a stored id.
//
// KEYS: record, index, sequence. ARGV: id, document.
var putScript = redis.NewScript(`
redis.call('SET', KEYS[1], ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[1], ARGV[1])
local current = tonumber(redis.call('GET', KEYS[3]) or '0')
if tonumber(ARGV[1]) > current then
	redis.call('SET', KEYS[3], ARGV[1])
end
return 1
`)

// updateRetries bounds optimistic retries when another client changes a
// record between WATCH and EXEC.
const updateRetries = 10

// RedisStore keeps each record as a JSON string under <prefix>:<kind>:<id>
// with a sorted set of ids for ordered listing.
type RedisStore[T model.Record] struct {
	client redis.UniversalClient
	prefix string
	slow   slowLog
}

// NewRedisStore returns a store namespaced under prefix:kind.
func NewRedisStore[T model.Record](client redis.UniversalClient, prefix, kind string, logger *zerolog.Logger, slowThreshold time.Duration) *RedisStore[T] {
	return &RedisStore[T]{
		client: client,
		prefix: prefix + ":" + kind,
		slow:   slowLog{logger: logger, threshold: slowThreshold, backend: "redis", kind: kind},
	}
}

func (s *RedisStore[T]) recordKey(id int64) string {
	return s.prefix + ":" + strconv.FormatInt(id, 10)
}

func (s *RedisStore[T]) indexKey() string {
	return s.prefix + ":ids"
}

func (s *RedisStore[T]) sequenceKey() string {
	return s.prefix + ":seq"
}

func (s *RedisStore[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	defer s.slow.observe("get", time.Now())

	var record T
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return record, false, nil
	}
	if err != nil {
		return record, false, fmt.Errorf("redis get %s: %w", s.recordKey(id), err)
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, false, fmt.Errorf("redis decode %s: %w", s.recordKey(id), err)
	}
	return record, true, nil
}

func (s *RedisStore[T]) Put(ctx context.Context, record T) error {
	defer s.slow.observe("put", time.Now())

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis encode %d: %w", record.RecordID(), err)
	}

	id := record.RecordID()
	keys := []string{s.recordKey(id), s.indexKey(), s.sequenceKey()}
	if err := putScript.Run(ctx, s.client, keys, id, data).Err(); err != nil {
		return fmt.Errorf("redis put %s: %w", s.recordKey(id), err)
	}
	return nil
}

// Update uses WATCH on the record key so a concurrent write aborts and
// retries the transaction.
func (s *RedisStore[T]) Update(ctx context.Context, id int64, mutate func(T) T) (T, bool, error) {
	defer s.slow.observe("update", time.Now())

	key := s.recordKey(id)
	var record T
	found := false

	txf := func(tx *redis.Tx) error {
		found = false

		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		var current T
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}
		updated := mutate(current)

		encoded, err := json.Marshal(updated)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		if err != nil {
			return err
		}

		record = updated
		found = true
		return nil
	}

	for i := 0; i < updateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return record, false, fmt.Errorf("redis update %s: %w", key, err)
		}
		return record, found, nil
	}
	return record, false, fmt.Errorf("redis update %s: too many concurrent writers", key)
}

func (s *RedisStore[T]) Delete(ctx context.Context, id int64) error {
	defer s.slow.observe("delete", time.Now())

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.recordKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", s.recordKey(id), err)
	}
	return nil
}

func (s *RedisStore[T]) List(ctx context.Context) ([]T, error) {
	defer s.slow.observe("list", time.Now())

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", s.indexKey(), err)
	}
	if len(ids) == 0 {
		return []T{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + ":" + id
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", s.indexKey(), err)
	}

	records := make([]T, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a document; deleted concurrently.
			continue
		}
		var record T
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("redis decode %s: %w", keys[i], err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *RedisStore[T]) NextID(ctx context.Context) (int64, error) {
	id, err := s.client.Incr(ctx, s.sequenceKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis next id %s: %w", s.sequenceKey(), err)
	}
	return id, nil
}

func (s *RedisStore[T]) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
