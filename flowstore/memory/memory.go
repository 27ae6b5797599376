// Package memory implements flowstore.Store in a process-local map,
// grounded on the teacher's store/memory checkpoint backend (same
// mutex-protected-map shape, same Save/Load/List/Delete surface).
package memory

import (
	"context"
	"sort"
	"sync"

	"flowcore/flow"
	"flowcore/flowstore"
)

// Store is an in-memory flowstore.Store, safe for concurrent use. It
// never persists beyond process lifetime; use it for tests or for a
// host that only ever needs the current session's flows.
type Store struct {
	mu      sync.RWMutex
	records map[string]*flow.FlowRecord
}

// New returns an empty in-memory Store.
func New() *Store {
	return &Store{records: make(map[string]*flow.FlowRecord)}
}

var _ flowstore.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, id string, rec *flow.FlowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[id] = &cp
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*flow.FlowRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, flowstore.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
