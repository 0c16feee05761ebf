package pathfind

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/bfs"
	"github.com/katalvlaran/digipath/core"
)

// Sentinel errors returned by Search.
var (
	// ErrNilProvider indicates that a nil Provider was passed to Search.
	ErrNilProvider = errors.New("pathfind: provider is nil")

	// ErrEmptyEndpoint indicates that the origin or target ID is empty.
	ErrEmptyEndpoint = errors.New("pathfind: origin or target ID is empty")

	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("pathfind: invalid option supplied")
)

// MaxMoves is the largest number of distinct required moves a single search
// accepts; secured moves are tracked in a 64-bit set.
const MaxMoves = 64

// Provider is the read-only catalog view the engine consumes.
// *core.Graph satisfies it.
type Provider interface {
	bfs.Graph
	CanTeach(digimonID, moveID string) bool
}

// Outcome classifies a search result.
type Outcome string

const (
	// OutcomeFound means Path holds a route.
	OutcomeFound Outcome = "found"
	// OutcomeInvalidEndpoint means origin or target is unknown or excluded.
	OutcomeInvalidEndpoint Outcome = "invalid_endpoint"
	// OutcomeUnreachable means the search finished without meeting the goal.
	OutcomeUnreachable Outcome = "unreachable"
	// OutcomeBudgetExhausted means WithMaxExpansions stopped the search first.
	OutcomeBudgetExhausted Outcome = "budget_exhausted"
)

// Step is one digimon on a route.
type Step struct {
	// DigimonID is the digimon reached at this step.
	DigimonID string `json:"digimonId"`

	// LearnedMoves are the required moves first secured here, sorted.
	LearnedMoves []string `json:"learnedMoves"`

	// ABI accumulated on arrival, capped at abi.Max.
	ABI int `json:"abi"`

	// LevelsGained is the level of the evolution that produced this step
	// (0 on the first step).
	LevelsGained int `json:"levelsGained"`

	// Direction of the evolution that produced this step; nil on the first step.
	Direction *core.Direction `json:"direction,omitempty"`

	// Requirements of the evolution that produced this step; nil on the
	// first step. Only the ABI threshold was enforced.
	Requirements *core.Requirements `json:"requirements,omitempty"`
}

// Stats counts the work a search performed.
type Stats struct {
	Popped    int  `json:"popped"`    // entries removed from the frontier
	Pushed    int  `json:"pushed"`    // entries added to the frontier
	Pruned    int  `json:"pruned"`    // dropped by the best-cost bound
	Dominated int  `json:"dominated"` // dropped by state dominance
	Gated     int  `json:"gated"`     // evolutions skipped for lack of ABI
	Dangling  int  `json:"dangling"`  // evolutions to unknown digimon
	Truncated bool `json:"truncated"` // stopped by WithMaxExpansions
}

// Result is the outcome of Search.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Path    []Step  `json:"path,omitempty"`
	// Cost is the sum of ABI thresholds along Path.
	Cost  int   `json:"cost"`
	Stats Stats `json:"stats"`
}

// Found reports whether a route was found.
func (r *Result) Found() bool { return r != nil && r.Outcome == OutcomeFound }

// IDs returns the digimon IDs along Path.
func (r *Result) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, len(r.Path))
	for i, st := range r.Path {
		ids[i] = st.DigimonID
	}

	return ids
}

// StateInfo describes a frontier entry for hooks.
type StateInfo struct {
	DigimonID string
	Secured   int // number of required moves secured
	ABI       int
	Cost      int
	Steps     int
}

// Option configures Search.
type Option func(*Options)

// Options holds the search parameters.
//
// Moves            – required move IDs (deduplicated and sorted by Search).
// Excluded         – digimon that may not appear on the route.
// InitialABI       – ABI held at the origin, 0..abi.Max.
// InformationalABI – when true, ABI thresholds add cost but never block.
// MaxExpansions    – stop after this many pops; 0 means unlimited.
// OnPop / OnPush   – observation hooks, never nil after DefaultOptions.
type Options struct {
	Moves            []string
	Excluded         map[string]struct{}
	InitialABI       int
	InformationalABI bool
	MaxExpansions    int
	OnPop            func(StateInfo)
	OnPush           func(StateInfo)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with no required moves, no exclusions,
// zero initial ABI, ABI gating on, no expansion limit and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Excluded: map[string]struct{}{},
		OnPop:    func(StateInfo) {},
		OnPush:   func(StateInfo) {},
	}
}

// WithMoves adds required move IDs. Empty IDs are ignored.
func WithMoves(ids ...string) Option {
	return func(o *Options) {
		for _, id := range ids {
			if id != "" {
				o.Moves = append(o.Moves, id)
			}
		}
	}
}

// WithExcluded forbids the given digimon anywhere on the route.
func WithExcluded(ids ...string) Option {
	return func(o *Options) {
		for _, id := range ids {
			o.Excluded[id] = struct{}{}
		}
	}
}

// WithInitialABI sets the ABI held at the origin.
// Negative values are an ErrOptionViolation; values above abi.Max are capped.
func WithInitialABI(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: initial ABI cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.InitialABI = abi.Clamp(n)
	}
}

// WithInformationalABI makes ABI thresholds a cost only.
func WithInformationalABI() Option {
	return func(o *Options) { o.InformationalABI = true }
}

// WithMaxExpansions caps the number of frontier pops. 0 disables the cap.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithOnPop registers a hook run for every entry taken off the frontier.
func WithOnPop(fn func(StateInfo)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPop = fn
		}
	}
}

// WithOnPush registers a hook run for every entry added to the frontier.
func WithOnPush(fn func(StateInfo)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPush = fn
		}
	}
}

// normalizeMoves deduplicates and sorts the required moves in place.
func (o *Options) normalizeMoves() error {
	if len(o.Moves) == 0 {
		return nil
	}
	sort.Strings(o.Moves)
	uniq := o.Moves[:1]
	for _, m := range o.Moves[1:] {
		if m != uniq[len(uniq)-1] {
			uniq = append(uniq, m)
		}
	}
	o.Moves = uniq
	if len(o.Moves) > MaxMoves {
		return fmt.Errorf("%w: at most %d required moves (got %d)", ErrOptionViolation, MaxMoves, len(o.Moves))
	}

	return nil
}
