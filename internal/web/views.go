package web

import (
	"context"
	"sync"
	"time"

	"mvp-board/internal/fetcher"

	"github.com/google/uuid"
)

type viewEntry struct {
	fetcher  *fetcher.Fetcher
	lastSeen time.Time
}

// ViewRegistry keeps one Fetcher per open result page.
type ViewRegistry struct {
	ctx    context.Context
	source fetcher.Source
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	views map[string]*viewEntry
}

func NewViewRegistry(ctx context.Context, source fetcher.Source, ttl time.Duration) *ViewRegistry {
	return &ViewRegistry{
		ctx:    ctx,
		source: source,
		ttl:    ttl,
		now:    time.Now,
		views:  make(map[string]*viewEntry),
	}
}

// Create registers a new view and drops views idle for longer than the TTL.
func (r *ViewRegistry) Create() (string, *fetcher.Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	id := uuid.NewString()
	f := fetcher.New(r.ctx, r.source)
	r.views[id] = &viewEntry{fetcher: f, lastSeen: now}
	return id, f
}

func (r *ViewRegistry) Get(id string) (*fetcher.Fetcher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.views[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.ttl > 0 && now.Sub(entry.lastSeen) > r.ttl {
		entry.fetcher.Close()
		delete(r.views, id)
		return nil, false
	}
	entry.lastSeen = now
	return entry.fetcher, true
}

func (r *ViewRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.views {
		entry.fetcher.Close()
		delete(r.views, id)
	}
}

func (r *ViewRegistry) sweepLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, entry := range r.views {
		if now.Sub(entry.lastSeen) > r.ttl {
			entry.fetcher.Close()
			delete(r.views, id)
		}
	}
}
