// Package memory provides an in-memory RecordStore. It backs the test suites
// and lets the server run without MongoDB (STORE=memory) during development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

// RecordStore keeps collections as ordered slices of records guarded by a
// single mutex.
type RecordStore struct {
	mu          sync.RWMutex
	collections map[string][]domain.Record
}

func NewRecordStore() *RecordStore {
	return &RecordStore{collections: make(map[string][]domain.Record)}
}

func (s *RecordStore) List(_ context.Context, collection string, filter ports.Filter) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Record
	for _, rec := range s.collections[collection] {
		if matches(rec, filter) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *RecordStore) Get(_ context.Context, collection, id string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.collections[collection] {
		if rec.ID() == id {
			return rec.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *RecordStore) Create(_ context.Context, collection string, rec domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID() == "" {
		return nil, fmt.Errorf("create %s: record has no id", collection)
	}
	// same uniqueness the mongo store gets from its index on "id"
	for _, existing := range s.collections[collection] {
		if existing.ID() == rec.ID() {
			return nil, domain.ErrDuplicateRecord
		}
	}
	s.collections[collection] = append(s.collections[collection], rec.Clone())
	return rec, nil
}

func (s *RecordStore) Update(_ context.Context, collection, id string, rec domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.collections[collection] {
		if existing.ID() == id {
			s.collections[collection][i] = rec.Clone()
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *RecordStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.collections[collection]
	for i, existing := range records {
		if existing.ID() == id {
			s.collections[collection] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func matches(rec domain.Record, filter ports.Filter) bool {
	for k, want := range filter {
		if fmt.Sprintf("%v", rec[k]) != want {
			return false
		}
	}
	return true
}
