// Package bfs provides tunable options and error definitions
// for breadth-first search over the digivolution graph.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/digipath/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start ID is absent.
	ErrStartNotFound = errors.New("bfs: start digimon not found")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Graph is the read-only view BFS needs. *core.Graph satisfies it.
type Graph interface {
	Digimon(id string) (core.Digimon, bool)
	Forward(id string) []core.Evolution
	Backward(id string) []core.Evolution
}

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks to customize BFS execution.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a digimon. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id string, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// Forward and Backward select which edge directions are followed.
	Forward  bool
	Backward bool

	// Excluded digimon are never enqueued. The start itself is not checked.
	Excluded map[string]struct{}

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a BFSOptions with sane defaults:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - both directions followed, nothing excluded
//   - no-op OnVisit.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:      context.Background(),
		OnVisit:  func(string, int) error { return nil },
		MaxDepth: 0,
		Forward:  true,
		Backward: true,
		Excluded: map[string]struct{}{},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

// WithForwardOnly follows digivolutions only.
func WithForwardOnly() Option {
	return func(o *BFSOptions) {
		o.Forward, o.Backward = true, false
	}
}

// WithBackwardOnly follows de-digivolutions only.
func WithBackwardOnly() Option {
	return func(o *BFSOptions) {
		o.Forward, o.Backward = false, true
	}
}

// WithExcluded prevents the given digimon from being enqueued.
func WithExcluded(ids ...string) Option {
	return func(o *BFSOptions) {
		for _, id := range ids {
			o.Excluded[id] = struct{}{}
		}
	}
}

// BFSResult holds the outcome of a BFS traversal:
//   - Order: digimon visited, in visit sequence.
//   - Depth: map from digimon ID to its distance (in transitions) from the start.
//   - Parent: map from digimon ID to its predecessor in the BFS tree.
type BFSResult struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string
}

// Reached reports whether id was discovered.
func (r *BFSResult) Reached(id string) bool {
	_, ok := r.Depth[id]
	return ok
}

// PathTo reconstructs the path from the start digimon to dest.
// Returns an error if dest was not reached.
func (r *BFSResult) PathTo(dest string) ([]string, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %q", dest)
	}
	// build reversed path
	path := []string{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
