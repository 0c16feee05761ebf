// Package dataset loads the static digivolution dataset from a directory of
// YAML files and builds the core.Graph the search engine runs on.
//
// Layout (JSON is valid YAML, so .yaml files may hold JSON):
//
//	digimon.yaml     list of digimon records (required)
//	evolutions.yaml  map fromID → [{to, level, requirements}] (required)
//	moves.yaml       list of {id, name, type, power} (optional)
//	exp_tables.yaml  map level → stage → {nextLevel, total} (optional)
//
// Requirements are a loose map in the source data; they are decoded with
// mapstructure in weakly typed mode, so "abi: '10'" and "abi: 10" agree and a
// single misc string becomes a one-element list. Keys nobody knows about are
// kept in the Report instead of failing the load.
//
// Evolutions to digimon missing from digimon.yaml are kept (the engine skips
// them) and listed by Validate.
package dataset

import (
	"errors"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/core"
)

// File names inside a dataset directory.
const (
	DigimonFile    = "digimon.yaml"
	EvolutionsFile = "evolutions.yaml"
	MovesFile      = "moves.yaml"
	ExpTablesFile  = "exp_tables.yaml"
)

// Sentinel errors returned by Load.
var (
	// ErrMissingFile indicates a required dataset file is absent.
	ErrMissingFile = errors.New("dataset: required file missing")

	// ErrDecode indicates a dataset file could not be parsed.
	ErrDecode = errors.New("dataset: decode failed")

	// ErrInvalidRecord indicates a record that parsed but cannot be used.
	ErrInvalidRecord = errors.New("dataset: invalid record")
)

// Move is a learnable ability. Display only; the learner index lives in core.
type Move struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Power int    `json:"power,omitempty" yaml:"power,omitempty"`
}

// Dataset is a loaded dataset.
type Dataset struct {
	// Graph is the catalog; read-only once Load returns.
	Graph *core.Graph

	// Moves by ID. Empty when moves.yaml is absent.
	Moves map[string]Move

	// Exp is the EXP table used for ABI advice. Empty when exp_tables.yaml is absent.
	Exp abi.ExpTable

	// unknownKeys collects requirement keys that matched no field, as "from→to: key".
	unknownKeys []string
}

// MoveName returns the display name for id, or id itself when unknown.
func (ds *Dataset) MoveName(id string) string {
	if m, ok := ds.Moves[id]; ok && m.Name != "" {
		return m.Name
	}

	return id
}

// Report lists data-quality findings. None of them stop the engine.
type Report struct {
	// Dangling are evolutions whose target is not a known digimon.
	Dangling []core.Evolution `json:"dangling,omitempty"`

	// UnlearnableMoves are moves in moves.yaml that no digimon can learn.
	UnlearnableMoves []string `json:"unlearnableMoves,omitempty"`

	// Isolated are digimon with no evolutions in either direction.
	Isolated []string `json:"isolated,omitempty"`

	// UnknownRequirementKeys are requirement keys that were ignored.
	UnknownRequirementKeys []string `json:"unknownRequirementKeys,omitempty"`
}

// Clean reports whether there are no findings.
func (r Report) Clean() bool {
	return len(r.Dangling) == 0 && len(r.UnlearnableMoves) == 0 &&
		len(r.Isolated) == 0 && len(r.UnknownRequirementKeys) == 0
}
