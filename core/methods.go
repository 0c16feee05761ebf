// File: methods.go
// Role: Catalog mutation (AddDigimon, AddEvolution) and read-only queries
// (Digimon, Forward, Backward, CanTeach, Learners, IDs).
//
// Determinism:
//   - IDs() returns digimon in registration order.
//   - Forward()/Backward() return edges in insertion order.
//   - Learners() returns IDs sorted lexicographically ascending.
//
// Concurrency:
//   - Every method holds g.mu (write lock for mutation, read lock for queries).
//   - Returned slices are copies; callers may keep them after the lock is released.

package core

import (
	"fmt"
	"sort"
)

// AddDigimon registers a digimon and indexes its learnable moves.
//
// Implementation:
//   - Stage 1: Validate non-empty ID (ErrEmptyDigimonID) and stage range (ErrBadStage).
//   - Stage 2: Under the write lock, reject duplicates (ErrDuplicateDigimon).
//   - Stage 3: Store a private copy and add every move to the learner index.
//
// Complexity:
//   - Time O(m) where m = len(d.Moves), Space O(m).
func (g *Graph) AddDigimon(d Digimon) error {
	if d.ID == "" {
		return ErrEmptyDigimonID
	}
	if !d.Stage.Valid() {
		return fmt.Errorf("%w: digimon %q has stage %d", ErrBadStage, d.ID, int(d.Stage))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.digimon[d.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateDigimon, d.ID)
	}

	// Copy the moves slice so later caller mutation cannot leak into the catalog.
	stored := d
	stored.Moves = append([]string(nil), d.Moves...)
	g.digimon[d.ID] = &stored
	g.order = append(g.order, d.ID)

	var move string
	for _, move = range stored.Moves {
		set, ok := g.learners[move]
		if !ok {
			set = make(map[string]struct{})
			g.learners[move] = set
		}
		set[d.ID] = struct{}{}
	}

	return nil
}

// AddEvolution registers the digivolution from→to and its mirrored
// de-digivolution to→from. Both carry the same level and requirements.
//
// Implementation:
//   - Stage 1: Validate IDs, self-evolution and level.
//   - Stage 2: Under the write lock, require that from exists; require that to
//     exists unless the graph was built WithDanglingEvolutions.
//   - Stage 3: Append the forward edge to from and the backward edge to to.
//
// Errors:
//   - ErrEmptyDigimonID, ErrSelfEvolution, ErrBadLevel, ErrDigimonNotFound.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddEvolution(from, to string, level int, req Requirements) error {
	if from == "" || to == "" {
		return ErrEmptyDigimonID
	}
	if from == to {
		return fmt.Errorf("%w: %q", ErrSelfEvolution, from)
	}
	if level < 0 {
		return fmt.Errorf("%w: %s→%s level=%d", ErrBadLevel, from, to, level)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.digimon[from]; !ok {
		return fmt.Errorf("%w: evolution source %q", ErrDigimonNotFound, from)
	}
	if _, ok := g.digimon[to]; !ok && !g.allowDangling {
		return fmt.Errorf("%w: evolution target %q", ErrDigimonNotFound, to)
	}

	req.Misc = append([]string(nil), req.Misc...)
	g.forward[from] = append(g.forward[from], Evolution{
		From:         from,
		To:           to,
		Direction:    Forward,
		Level:        level,
		Requirements: req,
	})
	g.backward[to] = append(g.backward[to], Evolution{
		From:         to,
		To:           from,
		Direction:    Backward,
		Level:        level,
		Requirements: req,
	})
	g.edges++

	return nil
}

// Digimon returns a copy of the digimon record for id.
// The second result is false if id is unknown.
//
// Complexity:
//   - Time O(1), Space O(1).
func (g *Graph) Digimon(id string) (Digimon, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	d, ok := g.digimon[id]
	if !ok {
		return Digimon{}, false
	}

	return *d, true
}

// HasDigimon reports whether id is registered (empty ID ⇒ false).
func (g *Graph) HasDigimon(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.digimon[id]

	return ok
}

// Forward returns the outgoing digivolutions of id in insertion order.
// Unknown IDs yield an empty slice.
//
// Complexity:
//   - Time O(d), Space O(d) where d is the out-degree.
func (g *Graph) Forward(id string) []Evolution {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]Evolution(nil), g.forward[id]...)
}

// Backward returns the outgoing de-digivolutions of id in insertion order.
// Unknown IDs yield an empty slice.
//
// Complexity:
//   - Time O(d), Space O(d) where d is the in-degree of the forward graph.
func (g *Graph) Backward(id string) []Evolution {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]Evolution(nil), g.backward[id]...)
}

// CanTeach reports whether digimonID can learn moveID.
//
// Complexity:
//   - Time O(1), Space O(1).
func (g *Graph) CanTeach(digimonID, moveID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.learners[moveID][digimonID]

	return ok
}

// Learners returns the IDs of every digimon that can learn moveID, sorted.
//
// Complexity:
//   - Time O(k log k), Space O(k).
func (g *Graph) Learners(moveID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.learners[moveID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// MoveIDs returns every move ID that has at least one learner, sorted.
func (g *Graph) MoveIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.learners))
	for id := range g.learners {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// IDs returns every registered digimon ID in registration order.
func (g *Graph) IDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.order...)
}

// DigimonCount returns the number of registered digimon.
func (g *Graph) DigimonCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.digimon)
}

// EvolutionCount returns the number of forward evolutions. Each one also
// contributes a backward edge.
func (g *Graph) EvolutionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}
