package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/petstore/internal/model"
)

// MemoryStore keeps records in a map guarded by a RWMutex.
type MemoryStore[T model.Record] struct {
	mu      sync.RWMutex
	records map[int64]T
	maxID   int64
}

var _ Store[model.Pet] = (*MemoryStore[model.Pet])(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore[T model.Record]() *MemoryStore[T] {
	return &MemoryStore[T]{
		records: make(map[int64]T),
	}
}

func (s *MemoryStore[T]) Get(_ context.Context, id int64) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	return record, ok, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.RecordID()
	s.records[id] = record
	if id > s.maxID {
		s.maxID = id
	}
	return nil
}

func (s *MemoryStore[T]) Update(_ context.Context, id int64, mutate func(T) T) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return record, false, nil
	}
	record = mutate(record)
	s.records[id] = record
	return record, true, nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]T, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordID() < records[j].RecordID()
	})
	return records, nil
}

func (s *MemoryStore[T]) NextID(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxID++
	return s.maxID, nil
}

func (s *MemoryStore[T]) Ping(context.Context) error {
	return nil
}
