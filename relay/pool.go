// Package relay runs path searches off the caller's goroutine and hands the
// results back as messages.
//
// A Pool bounds how many searches run at once, collapses identical requests
// that are in flight at the same time into one search, and optionally serves
// repeated requests from a cache.Store. The search itself cannot be
// interrupted: a caller whose context ends stops waiting and gets ctx.Err(),
// while the worker finishes and its result is dropped (or cached).
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/digipath/cache"
	"github.com/katalvlaran/digipath/pathfind"
)

// Sentinel errors returned by Pool.
var (
	// ErrNilProvider indicates NewPool was given no catalog.
	ErrNilProvider = errors.New("relay: provider is nil")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("relay: invalid request")
)

// Observer receives per-search measurements.
type Observer interface {
	SearchDone(outcome string, elapsed time.Duration, popped int)
	CacheHit()
}

type nopObserver struct{}

func (nopObserver) SearchDone(string, time.Duration, int) {}
func (nopObserver) CacheHit()                             {}

// Pool serves Requests against one catalog.
type Pool struct {
	provider      pathfind.Provider
	workers       int64
	sem           *semaphore.Weighted
	flight        singleflight.Group
	store         cache.Store
	observer      Observer
	logger        *slog.Logger
	maxExpansions int
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers bounds concurrent searches (default 4; values < 1 are ignored).
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = int64(n)
		}
	}
}

// WithCache sets the result cache (default cache.Nop).
func WithCache(store cache.Store) Option {
	return func(p *Pool) {
		if store != nil {
			p.store = store
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(p *Pool) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxExpansions caps frontier pops per search; 0 means unlimited.
func WithMaxExpansions(n int) Option {
	return func(p *Pool) {
		if n >= 0 {
			p.maxExpansions = n
		}
	}
}

// NewPool creates a Pool over provider.
func NewPool(provider pathfind.Provider, opts ...Option) (*Pool, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	p := &Pool{
		provider: provider,
		workers:  4,
		store:    cache.Nop{},
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.sem = semaphore.NewWeighted(p.workers)

	return p, nil
}

// Do answers req, waiting until the result is ready or ctx ends.
//
// Not-found outcomes are successful responses. Errors are ErrInvalidRequest,
// ctx.Err() on abandonment, or a search failure.
func (p *Pool) Do(ctx context.Context, req Request) (Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := req.Validate(); err != nil {
		return Response{ID: req.ID}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	log := p.logger.With("request_id", req.ID, "origin", req.Origin, "target", req.Target)
	key := req.Key()

	// 1) Cache
	if resp, ok := p.lookup(ctx, log, key); ok {
		p.observer.CacheHit()
		resp.ID = req.ID
		resp.Cached = true
		return resp, nil
	}

	// 2) Search, shared with identical requests in flight
	ch := p.flight.DoChan(key, func() (interface{}, error) {
		return p.run(log, key, req)
	})

	select {
	case <-ctx.Done():
		log.Debug("caller stopped waiting", "error", ctx.Err())
		return Response{ID: req.ID}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Response{ID: req.ID}, r.Err
		}
		resp := r.Val.(Response)
		resp.ID = req.ID
		resp.Path = clonePath(resp.Path)
		return resp, nil
	}
}

// Submit runs Do on its own goroutine. The channel receives exactly one
// Response and is then closed; failures are reported in Response.Error.
func (p *Pool) Submit(ctx context.Context, req Request) <-chan Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	out := make(chan Response, 1)
	go func() {
		defer close(out)
		resp, err := p.Do(ctx, req)
		if err != nil {
			resp.Error = err.Error()
		}
		out <- resp
	}()

	return out
}

// run waits for a worker slot and performs the search.
func (p *Pool) run(log *slog.Logger, key string, req Request) (Response, error) {
	// The search is not cancellable, so the slot is not tied to any caller.
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		return Response{}, err
	}
	defer p.sem.Release(1)

	opts := req.options()
	if p.maxExpansions > 0 {
		opts = append(opts, pathfind.WithMaxExpansions(p.maxExpansions))
	}

	start := time.Now()
	res, err := pathfind.Search(p.provider, req.Origin, req.Target, opts...)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, pathfind.ErrOptionViolation) || errors.Is(err, pathfind.ErrEmptyEndpoint) {
			return Response{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return Response{}, err
	}

	p.observer.SearchDone(string(res.Outcome), elapsed, res.Stats.Popped)
	log.Info("search done",
		"outcome", res.Outcome,
		"cost", res.Cost,
		"steps", len(res.Path),
		"popped", res.Stats.Popped,
		"elapsed", elapsed,
	)

	resp := newResponse(res)
	p.save(log, key, resp)

	return resp, nil
}

func (p *Pool) lookup(ctx context.Context, log *slog.Logger, key string) (Response, bool) {
	data, found, err := p.store.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", "error", err)
		return Response{}, false
	}
	if !found {
		return Response{}, false
	}

	var resp Response
	if err = json.Unmarshal(data, &resp); err != nil {
		log.Warn("cache entry unreadable", "error", err)
		return Response{}, false
	}

	return resp, true
}

func (p *Pool) save(log *slog.Logger, key string, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Warn("cache encode failed", "error", err)
		return
	}
	if err = p.store.Set(context.Background(), key, data); err != nil {
		log.Warn("cache write failed", "error", err)
	}
}

// clonePath copies steps so each caller owns its response.
func clonePath(path []pathfind.Step) []pathfind.Step {
	if path == nil {
		return nil
	}
	out := make([]pathfind.Step, len(path))
	for i, st := range path {
		st.LearnedMoves = append([]string{}, st.LearnedMoves...)
		if st.Direction != nil {
			d := *st.Direction
			st.Direction = &d
		}
		if st.Requirements != nil {
			r := *st.Requirements
			r.Misc = append([]string(nil), r.Misc...)
			st.Requirements = &r
		}
		out[i] = st
	}

	return out
}
