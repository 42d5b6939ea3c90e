// Package fetcher holds the state machine of a single result view: it issues
// one scoring request per query change and commits only the outcome of the
// most recently issued query.
package fetcher

import (
	"context"
	"errors"
	"sync"

	"mvp-board/internal/model"
	"mvp-board/internal/scoring"

	"github.com/rs/zerolog"
)

var ErrInvalidQuery = errors.New("query year is required")

// Source returns the players matching q, ordered by MVP score.
type Source interface {
	Results(ctx context.Context, q model.Query) ([]model.PlayerResult, error)
}

var _ Source = (*scoring.Client)(nil)

type Fetcher struct {
	source Source
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	issued    uint64
	active    model.Query
	hasActive bool
	state     State
	changed   chan struct{}
	subs      map[int]chan State
	nextSub   int
	closed    bool

	inflight sync.WaitGroup
}

// New creates an idle Fetcher. Requests run with ctx, not with the context of
// whoever submitted the query, so a request outlives the HTTP call that
// triggered it.
func New(ctx context.Context, source Source) *Fetcher {
	ctx, cancel := context.WithCancel(ctx)
	return &Fetcher{
		source:  source,
		ctx:     ctx,
		cancel:  cancel,
		state:   Idle(),
		changed: make(chan struct{}),
		subs:    make(map[int]chan State),
	}
}

// Submit makes q the active query and returns its generation. A query equal to
// the active one does not issue another request.
func (f *Fetcher) Submit(q model.Query) (uint64, error) {
	if q.Year == "" {
		return 0, ErrInvalidQuery
	}

	f.mu.Lock()
	if f.hasActive && f.active == q {
		gen := f.issued
		f.mu.Unlock()
		return gen, nil
	}
	f.issued++
	gen := f.issued
	f.active = q
	f.hasActive = true
	f.inflight.Add(1)
	f.mu.Unlock()

	go f.run(gen, q)
	return gen, nil
}

func (f *Fetcher) run(gen uint64, q model.Query) {
	defer f.inflight.Done()
	players, err := f.source.Results(f.ctx, q)
	if err != nil {
		event := zerolog.Ctx(f.ctx).Warn().Err(err).
			Uint64("generation", gen).
			Str("year", q.Year)
		var appErr *scoring.ApplicationError
		if errors.As(err, &appErr) {
			event = event.Int("status", appErr.StatusCode)
		}
		event.Msg("scoring request failed")
	}
	st := Outcome(q, players, err)
	st.Generation = gen
	f.commit(st)
}

func (f *Fetcher) commit(st State) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || st.Generation != f.issued {
		zerolog.Ctx(f.ctx).Debug().
			Uint64("generation", st.Generation).
			Uint64("latest", f.issued).
			Msg("discarding stale scoring response")
		return false
	}
	f.state = st
	close(f.changed)
	f.changed = make(chan struct{})
	for _, ch := range f.subs {
		deliver(ch, st)
	}
	return true
}

// deliver keeps only the newest state in a subscriber's one-slot buffer.
func deliver(ch chan State, st State) {
	select {
	case ch <- st:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- st:
	default:
	}
}

// Active returns the most recently submitted query.
func (f *Fetcher) Active() (model.Query, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.hasActive
}

// State returns the last committed state.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Await blocks until a state of generation gen or newer is committed. The
// returned state may belong to a newer query than the one gen was issued for.
func (f *Fetcher) Await(ctx context.Context, gen uint64) (State, error) {
	for {
		f.mu.Lock()
		st := f.state
		changed := f.changed
		f.mu.Unlock()

		if st.Generation >= gen {
			return st, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return st, ctx.Err()
		case <-f.ctx.Done():
			return st, f.ctx.Err()
		}
	}
}

// Subscribe delivers every committed state. Slow readers only see the newest
// one. The returned func must be called to release the subscription.
func (f *Fetcher) Subscribe() (<-chan State, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan State, 1)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	id := f.nextSub
	f.nextSub++
	f.subs[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
}

// Close stops in-flight requests and ends all subscriptions.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.cancel()
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
