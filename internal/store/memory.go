package store

import (
	"context"
	"sync"
	"time"

	"mvp-board/internal/model"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	queries map[string]model.PublishedQuery
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		queries: make(map[string]model.PublishedQuery),
		ttl:     opts.TTL,
		now:     time.Now,
	}
}

func (s *MemoryStore) PublishQuery(_ context.Context, q model.Query) (model.PublishedQuery, error) {
	if q.Year == "" {
		return model.PublishedQuery{}, ErrYearRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, p := range s.queries {
		if expired(p, s.ttl, now) {
			delete(s.queries, id)
		}
	}
	p := model.PublishedQuery{ID: uuid.NewString(), Query: q, CreatedAt: now}
	s.queries[p.ID] = p
	return p, nil
}

func (s *MemoryStore) GetQuery(_ context.Context, id string) (model.PublishedQuery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.queries[id]
	if !ok || expired(p, s.ttl, s.now()) {
		return model.PublishedQuery{}, false
	}
	return p, true
}

func (s *MemoryStore) Close() error {
	return nil
}
