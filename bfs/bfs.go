// Package bfs provides breadth-first search over the digivolution graph,
// returning transition-count distances, parent links, and visit order.
//
// BFS explores digimon in increasing distance from a start digimon,
// following digivolutions and de-digivolutions (both by default), with
// optional exclusions, depth limiting and a visit hook. Evolutions that
// point at an unknown digimon are skipped.
//
// Determinism
//
//	Forward edges are enqueued before backward edges, each in the graph's
//	insertion order, so the visit sequence is fully reproducible.
//
// Complexity (V = digimon, E = evolutions)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package bfs

import (
	"context"
	"fmt"
)

// queueItem pairs a digimon ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   Graph
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from startID,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, ctx errors on cancellation,
// or any user-supplied hook error.
func BFS(g Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Validate start digimon
	if _, ok := g.Digimon(startID); !ok {
		return nil, ErrStartNotFound
	}

	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, 64),
		visited: make(map[string]bool, 64),
		res: &BFSResult{
			Order:  make([]string, 0, 64),
			Depth:  make(map[string]int, 64),
			Parent: make(map[string]string, 64),
		},
	}

	// Seed queue with start digimon (no parent)
	w.enqueue(startID, 0, "")
	// Main loop
	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records its parent,
// and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors applies direction selection, exclusions, dangling-target
// skipping and MaxDepth, then enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}

	var targets []string
	if w.opts.Forward {
		for _, e := range w.graph.Forward(item.id) {
			targets = append(targets, e.To)
		}
	}
	if w.opts.Backward {
		for _, e := range w.graph.Backward(item.id) {
			targets = append(targets, e.To)
		}
	}

	for _, nbr := range targets {
		if w.visited[nbr] {
			continue
		}
		if _, skip := w.opts.Excluded[nbr]; skip {
			continue
		}
		if _, ok := w.graph.Digimon(nbr); !ok {
			continue
		}
		w.enqueue(nbr, nextDepth, item.id)
	}
}
