// Package core defines the central Graph, Digimon, and Evolution types,
// and provides thread-safe primitives for building and querying the
// digivolution catalog.
//
// The catalog is built once (usually by package dataset) and is read-only
// afterwards; all read APIs take a sync.RWMutex read lock so a single Graph
// can be shared by any number of concurrent searches.
//
// This file declares Digimon, Requirements, Evolution, Graph, GraphOption,
// sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrEmptyDigimonID   - digimon ID is the empty string.
//	ErrDigimonNotFound  - requested digimon does not exist.
//	ErrDuplicateDigimon - a digimon with the same ID was already registered.
//	ErrSelfEvolution    - an evolution from a digimon to itself.
//	ErrBadLevel         - negative evolution level.
//	ErrBadStage         - stage outside the Baby..Ultra range.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core catalog operations.
var (
	// ErrEmptyDigimonID indicates that the provided Digimon has an empty ID.
	ErrEmptyDigimonID = errors.New("core: digimon ID is empty")

	// ErrDigimonNotFound indicates an operation referenced a non-existent digimon.
	ErrDigimonNotFound = errors.New("core: digimon not found")

	// ErrDuplicateDigimon indicates AddDigimon was called twice with the same ID.
	ErrDuplicateDigimon = errors.New("core: duplicate digimon")

	// ErrSelfEvolution indicates an evolution whose source and target are equal.
	ErrSelfEvolution = errors.New("core: self-evolution not allowed")

	// ErrBadLevel indicates a negative evolution level.
	ErrBadLevel = errors.New("core: evolution level must be non-negative")

	// ErrBadStage indicates a stage value outside the known range.
	ErrBadStage = errors.New("core: unknown stage")
)

// Stats holds the base stats of a digimon. Display only.
type Stats struct {
	HP  int `json:"hp,omitempty" yaml:"hp,omitempty"`
	SP  int `json:"sp,omitempty" yaml:"sp,omitempty"`
	ATK int `json:"atk,omitempty" yaml:"atk,omitempty"`
	DEF int `json:"def,omitempty" yaml:"def,omitempty"`
	INT int `json:"int,omitempty" yaml:"int,omitempty"`
	SPD int `json:"spd,omitempty" yaml:"spd,omitempty"`
}

// Digimon represents a node in the digivolution graph.
//
// ID uniquely identifies this Digimon within its Graph.
// Moves lists the move IDs this digimon can learn; it feeds the learner index.
type Digimon struct {
	// ID is the unique identifier for this Digimon.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Stage is the growth tier used to index the ABI gain formula.
	Stage Stage `json:"stage" yaml:"stage"`

	// Type and Attribute are descriptive only.
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`

	// Moves are the move IDs learnable at this digimon.
	Moves []string `json:"moves,omitempty" yaml:"moves,omitempty"`

	// Base stats, display only.
	Stats Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Requirements is the full set of conditions nominally needed to take an
// evolution. Only ABI is consulted by the path search; everything else is
// carried through to the produced path as an annotation.
type Requirements struct {
	HP  int `json:"hp,omitempty" yaml:"hp,omitempty" mapstructure:"hp"`
	SP  int `json:"sp,omitempty" yaml:"sp,omitempty" mapstructure:"sp"`
	ATK int `json:"atk,omitempty" yaml:"atk,omitempty" mapstructure:"atk"`
	DEF int `json:"def,omitempty" yaml:"def,omitempty" mapstructure:"def"`
	INT int `json:"int,omitempty" yaml:"int,omitempty" mapstructure:"int"`
	SPD int `json:"spd,omitempty" yaml:"spd,omitempty" mapstructure:"spd"`
	CAM int `json:"cam,omitempty" yaml:"cam,omitempty" mapstructure:"cam"`

	// ABI is the minimum accumulated ABI needed for the transition.
	ABI int `json:"abi,omitempty" yaml:"abi,omitempty" mapstructure:"abi"`

	// EXP is the experience threshold.
	EXP int `json:"exp,omitempty" yaml:"exp,omitempty" mapstructure:"exp"`

	// Misc holds qualitative gates: held items, allied digimon, story flags.
	Misc []string `json:"misc,omitempty" yaml:"misc,omitempty" mapstructure:"misc"`
}

// IsZero reports whether no requirement is set.
func (r Requirements) IsZero() bool {
	return r.HP == 0 && r.SP == 0 && r.ATK == 0 && r.DEF == 0 && r.INT == 0 &&
		r.SPD == 0 && r.CAM == 0 && r.ABI == 0 && r.EXP == 0 && len(r.Misc) == 0
}

// Evolution represents a directed transition between two digimon.
//
// Forward evolutions come from the dataset; every forward From→To has a
// mirrored Backward To→From carrying the same Level and Requirements.
type Evolution struct {
	// From is the source digimon ID.
	From string `json:"from"`

	// To is the destination digimon ID.
	To string `json:"to"`

	// Direction tags the edge as digivolution or de-digivolution.
	Direction Direction `json:"direction"`

	// Level is how far the digimon must be trained for the transition.
	// It feeds the ABI gain formula; it is not a path-length unit.
	Level int `json:"level"`

	// Requirements of the transition.
	Requirements Requirements `json:"requirements"`
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithDanglingEvolutions lets AddEvolution accept a target ID that has not
// been registered. Scraped datasets occasionally reference digimon that were
// never scraped; the search engine skips such edges.
func WithDanglingEvolutions() GraphOption {
	return func(g *Graph) { g.allowDangling = true }
}

// Graph is the in-memory digivolution catalog.
//
// mu guards every map. Edge slices keep insertion order.
type Graph struct {
	mu sync.RWMutex

	// Configuration flags
	allowDangling bool // accept evolutions to unknown targets

	// Storage
	digimon  map[string]*Digimon
	order    []string                       // digimon IDs in registration order
	forward  map[string][]Evolution         // from ID → outgoing digivolutions
	backward map[string][]Evolution         // from ID → outgoing de-digivolutions
	learners map[string]map[string]struct{} // move ID → set of digimon IDs
	edges    int                            // forward evolution count
}

// NewGraph creates an empty Graph with the given options.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		digimon:  make(map[string]*Digimon),
		forward:  make(map[string][]Evolution),
		backward: make(map[string][]Evolution),
		learners: make(map[string]map[string]struct{}),
	}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}
