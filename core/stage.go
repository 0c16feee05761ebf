// File: stage.go
// Role: Stage and Direction enums with text (de)serialisation.
//
// Determinism:
//   - ParseStage normalises case, spaces, hyphens and underscores, so
//     "In-Training", "in training" and "InTraining" map to the same value.

package core

import (
	"fmt"
	"strings"
)

// Stage is the ordered growth tier of a digimon.
type Stage int

// Stages in growth order. The zero value is Baby.
const (
	Baby Stage = iota
	InTraining
	Rookie
	Champion
	Ultimate
	Mega
	Ultra
)

// stageNames holds the canonical dataset spelling for each stage.
var stageNames = [...]string{
	Baby:       "Baby",
	InTraining: "In-Training",
	Rookie:     "Rookie",
	Champion:   "Champion",
	Ultimate:   "Ultimate",
	Mega:       "Mega",
	Ultra:      "Ultra",
}

// Stages returns every stage in ascending order.
func Stages() []Stage {
	return []Stage{Baby, InTraining, Rookie, Champion, Ultimate, Mega, Ultra}
}

// Valid reports whether s is one of the seven known stages.
func (s Stage) Valid() bool { return s >= Baby && s <= Ultra }

// String returns the canonical stage name, or "Stage(n)" for unknown values.
func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}

	return stageNames[s]
}

// ParseStage resolves a stage name. Matching ignores case and the
// separators ' ', '-' and '_'.
func ParseStage(name string) (Stage, error) {
	key := normalizeStage(name)
	for i, canonical := range stageNames {
		if normalizeStage(canonical) == key {
			return Stage(i), nil
		}
	}

	return Baby, fmt.Errorf("%w: %q", ErrBadStage, name)
}

func normalizeStage(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadStage, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}

// Direction tags an Evolution as growth or regression.
type Direction int

const (
	// Forward is a digivolution (growth).
	Forward Direction = iota
	// Backward is a de-digivolution (regression).
	Backward
)

// String returns "digivolve" or "dedigivolve".
func (d Direction) String() string {
	switch d {
	case Forward:
		return "digivolve"
	case Backward:
		return "dedigivolve"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "digivolve", "forward":
		*d = Forward
	case "dedigivolve", "de-digivolve", "backward":
		*d = Backward
	default:
		return fmt.Errorf("core: unknown direction %q", string(text))
	}

	return nil
}
