package pathfind

import (
	"container/heap"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/bfs"
	"github.com/katalvlaran/digipath/core"
)

// Search finds the cheapest route from origin to target that secures every
// required move, honouring exclusions and ABI thresholds.
//
// Returns:
//
//   - *Result: always non-nil when err == nil. Result.Found() tells whether a
//     route exists; unknown/excluded endpoints and unreachable targets are
//     ordinary outcomes, not errors.
//   - err: ErrNilProvider, ErrEmptyEndpoint or ErrOptionViolation.
//
// Preconditions and validation (in order):
//  1. p must be non-nil (ErrNilProvider).
//  2. origin and target must be non-empty (ErrEmptyEndpoint).
//  3. options must be valid (ErrOptionViolation).
//  4. origin and target must exist and not be excluded (OutcomeInvalidEndpoint).
//  5. target and a learner of every required move must be reachable from
//     origin ignoring ABI (OutcomeUnreachable, no weighted search run).
func Search(p Provider, origin, target string, opts ...Option) (*Result, error) {
	// 1) Validate provider and endpoints
	if p == nil {
		return nil, ErrNilProvider
	}
	if origin == "" || target == "" {
		return nil, ErrEmptyEndpoint
	}

	// 2) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if err := cfg.normalizeMoves(); err != nil {
		return nil, err
	}

	// 3) Endpoints must exist and be allowed
	if !allowed(p, cfg.Excluded, origin) || !allowed(p, cfg.Excluded, target) {
		return &Result{Outcome: OutcomeInvalidEndpoint}, nil
	}

	// 4) Cheap connectivity check before the weighted search
	if !reachable(p, origin, target, cfg) {
		return &Result{Outcome: OutcomeUnreachable}, nil
	}

	// 5) Run the search
	r := &runner{
		p:       p,
		options: cfg,
		target:  target,
		full:    fullSet(len(cfg.Moves)),
		labels:  make(map[stateKey][]label, 64),
		pq:      make(entryPQ, 0, 64),
	}
	r.init(origin)
	r.process()

	return r.result(), nil
}

// allowed reports whether id exists and is not excluded.
func allowed(p Provider, excluded map[string]struct{}, id string) bool {
	if _, skip := excluded[id]; skip {
		return false
	}
	_, ok := p.Digimon(id)

	return ok
}

// reachable runs an unweighted BFS from origin and checks that the target
// and at least one learner of every required move are in reach.
func reachable(p Provider, origin, target string, cfg Options) bool {
	excluded := make([]string, 0, len(cfg.Excluded))
	for id := range cfg.Excluded {
		excluded = append(excluded, id)
	}
	res, err := bfs.BFS(p, origin, bfs.WithExcluded(excluded...))
	if err != nil || !res.Reached(target) {
		return false
	}

	for _, move := range cfg.Moves {
		taught := false
		for _, id := range res.Order {
			if p.CanTeach(id, move) {
				taught = true
				break
			}
		}
		if !taught {
			return false
		}
	}

	return true
}

// moveSet is a bitset over the sorted required moves.
type moveSet uint64

func fullSet(n int) moveSet {
	if n >= MaxMoves {
		return ^moveSet(0)
	}

	return moveSet(1)<<uint(n) - 1
}

func (s moveSet) count() int {
	n := 0
	for ; s != 0; s &= s - 1 {
		n++
	}

	return n
}

// stateKey identifies a search state for deduplication.
type stateKey struct {
	id    string
	moves moveSet
}

// label is a finalized (cost, ABI) pair for a stateKey.
type label struct {
	cost int
	abi  int
}

// stepNode links a path step to its predecessor. Each frontier entry owns
// its tail node, so annotating it never affects sibling branches.
type stepNode struct {
	parent *stepNode
	step   Step
}

// runner holds the mutable state for a single Search execution.
type runner struct {
	p       Provider
	options Options
	target  string
	full    moveSet

	labels map[stateKey][]label // finalized labels per state key
	pq     entryPQ
	seq    uint64

	best  *entry
	stats Stats
}

// init pushes the origin with the initial ABI and a single-step path.
func (r *runner) init(origin string) {
	heap.Init(&r.pq)
	r.push(&entry{
		id:  origin,
		abi: r.options.InitialABI,
		tail: &stepNode{step: Step{
			DigimonID: origin,
			ABI:       r.options.InitialABI,
		}},
	})
}

// process is the main loop: pop the cheapest entry, drop it if bounded or
// dominated, secure teachable moves, record goals, and expand the rest.
func (r *runner) process() {
	cfg := r.options
	for r.pq.Len() > 0 {
		// 1) Honour the expansion budget.
		if cfg.MaxExpansions > 0 && r.stats.Popped >= cfg.MaxExpansions {
			r.stats.Truncated = true
			return
		}

		// 2) Pop the cheapest entry.
		e := heap.Pop(&r.pq).(*entry)
		r.stats.Popped++
		cfg.OnPop(e.info())

		// 3) Branch and bound against the best route so far.
		if r.best != nil && e.cost >= r.best.cost {
			r.stats.Pruned++
			continue
		}

		// 4) Drop dominated states, finalize the rest.
		key := stateKey{id: e.id, moves: e.moves}
		if r.dominated(key, e.cost, e.abi) {
			r.stats.Dominated++
			continue
		}
		r.labels[key] = append(r.labels[key], label{cost: e.cost, abi: e.abi})

		// 5) Secure required moves taught here on this entry's own step.
		r.learn(e)

		// 6) Goal: record and stop expanding this branch.
		if e.id == r.target && e.moves == r.full {
			if r.best == nil || e.cost < r.best.cost {
				r.best = e
			}
			continue
		}

		// 7) Expand both edge directions.
		r.expand(e)
	}
}

// dominated reports whether a finalized label for key has cost ≤ cost and ABI ≥ abi.
func (r *runner) dominated(key stateKey, cost, abiValue int) bool {
	for _, l := range r.labels[key] {
		if l.cost <= cost && l.abi >= abiValue {
			return true
		}
	}

	return false
}

// learn marks every unsecured required move that e's digimon can teach.
func (r *runner) learn(e *entry) {
	var learned []string
	for i, move := range r.options.Moves {
		bit := moveSet(1) << uint(i)
		if e.moves&bit != 0 {
			continue
		}
		if r.p.CanTeach(e.id, move) {
			e.moves |= bit
			learned = append(learned, move)
		}
	}
	if len(learned) > 0 {
		e.tail.step.LearnedMoves = learned
	}
}

// expand pushes one entry per usable evolution out of e.
func (r *runner) expand(e *entry) {
	d, ok := r.p.Digimon(e.id)
	if !ok {
		// Entries are only pushed for known digimon; nothing to expand.
		return
	}

	r.relax(e, d.Stage, core.Forward, r.p.Forward(e.id))
	r.relax(e, d.Stage, core.Backward, r.p.Backward(e.id))
}

// relax applies exclusion, dangling, ABI-gate and bound checks to each
// evolution and pushes the survivors.
func (r *runner) relax(e *entry, stage core.Stage, dir core.Direction, edges []core.Evolution) {
	cfg := r.options
	for _, ev := range edges {
		if _, skip := cfg.Excluded[ev.To]; skip {
			continue
		}
		if _, ok := r.p.Digimon(ev.To); !ok {
			r.stats.Dangling++
			continue
		}

		threshold := ev.Requirements.ABI
		if threshold < 0 {
			threshold = 0
		}
		if !cfg.InformationalABI && e.abi < threshold {
			r.stats.Gated++
			continue
		}

		cost := e.cost + threshold
		if r.best != nil && cost >= r.best.cost {
			r.stats.Pruned++
			continue
		}

		next := abi.Add(e.abi, stage, dir, ev.Level)
		if r.dominated(stateKey{id: ev.To, moves: e.moves}, cost, next) {
			r.stats.Dominated++
			continue
		}

		direction := dir
		req := ev.Requirements
		r.push(&entry{
			id:    ev.To,
			moves: e.moves,
			abi:   next,
			cost:  cost,
			steps: e.steps + 1,
			tail: &stepNode{
				parent: e.tail,
				step: Step{
					DigimonID:    ev.To,
					ABI:          next,
					LevelsGained: ev.Level,
					Direction:    &direction,
					Requirements: &req,
				},
			},
		})
	}
}

// push stamps the insertion sequence and adds e to the frontier.
func (r *runner) push(e *entry) {
	e.seq = r.seq
	r.seq++
	heap.Push(&r.pq, e)
	r.stats.Pushed++
	r.options.OnPush(e.info())
}

// result converts the best entry (if any) into a Result.
func (r *runner) result() *Result {
	if r.best == nil {
		outcome := OutcomeUnreachable
		if r.stats.Truncated {
			outcome = OutcomeBudgetExhausted
		}
		return &Result{Outcome: outcome, Stats: r.stats}
	}

	return &Result{
		Outcome: OutcomeFound,
		Path:    r.best.tail.path(),
		Cost:    r.best.cost,
		Stats:   r.stats,
	}
}

// path walks parent links back to the origin and returns the steps in
// route order. LearnedMoves is never nil.
func (n *stepNode) path() []Step {
	var rev []Step
	for cur := n; cur != nil; cur = cur.parent {
		st := cur.step
		if st.LearnedMoves == nil {
			st.LearnedMoves = []string{}
		}
		rev = append(rev, st)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev
}
