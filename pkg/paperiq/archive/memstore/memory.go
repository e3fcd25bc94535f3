// Package memstore is an in-memory report archive.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/paperiq/pkg/paperiq/archive"
)

// Store keeps records in a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	records map[string]archive.Record
	ids     *archive.IDs
	now     func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		records: make(map[string]archive.Record),
		ids:     archive.NewIDs(),
		now:     time.Now,
	}
}

func (s *Store) Save(_ context.Context, r archive.Record) (archive.Record, error) {
	r = archive.Prepare(r, s.ids, s.now())
	s.mu.Lock()
	s.records[r.ID] = r
	s.mu.Unlock()
	return r, nil
}

func (s *Store) Get(_ context.Context, id string) (archive.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok, nil
}

func (s *Store) List(_ context.Context, limit int) ([]archive.Summary, error) {
	s.mu.RLock()
	out := make([]archive.Summary, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Summarize())
	}
	s.mu.RUnlock()

	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if n := archive.Limit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *Store) Close() error { return nil }

var _ archive.Archive = (*Store)(nil)
