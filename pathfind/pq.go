package pathfind

// entry is a frontier item: a search state plus the path that reached it.
type entry struct {
	id    string  // digimon ID
	moves moveSet // required moves secured so far
	abi   int     // accumulated ABI
	cost  int     // sum of ABI thresholds taken
	steps int     // transitions taken
	seq   uint64  // insertion order, final tie-breaker
	tail  *stepNode
}

func (e *entry) info() StateInfo {
	return StateInfo{
		DigimonID: e.id,
		Secured:   e.moves.count(),
		ABI:       e.abi,
		Cost:      e.cost,
		Steps:     e.steps,
	}
}

// entryPQ is a min-heap of *entry ordered by (cost, steps, seq).
// Stale entries are never removed eagerly; dominance checks drop them when popped.
type entryPQ []*entry

// Len returns the number of items in the heap.
func (pq entryPQ) Len() int { return len(pq) }

// Less orders by cost, then fewer steps, then insertion order.
func (pq entryPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.steps != b.steps {
		return a.steps < b.steps
	}

	return a.seq < b.seq
}

// Swap swaps two elements in the heap.
func (pq entryPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type *entry.
func (pq *entryPQ) Push(x interface{}) { *pq = append(*pq, x.(*entry)) }

// Pop removes and returns the smallest element from the heap.
func (pq *entryPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
