package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a Store backed by a map plus insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[string]Record
	order      []string
	maxRecords int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{records: make(map[string]Record)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, rec Record) error { //nolint:gocritic // hugeParam: records are stored by value
	if rec.JobID == "" {
		return ErrMissingJobID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.JobID]; !ok {
		s.order = append(s.order, rec.JobID)
		if s.maxRecords > 0 && len(s.order) > s.maxRecords {
			delete(s.records, s.order[0])
			s.order = s.order[1:]
		}
	}
	s.records[rec.JobID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, jobID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[jobID]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	return rec, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(limit, len(s.order))
	out := make([]Record, 0, n)
	for _, id := range s.order[:n] {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
