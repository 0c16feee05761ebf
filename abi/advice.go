package abi

import "github.com/katalvlaran/digipath/core"

// ExpEntry is one cell of the EXP table.
type ExpEntry struct {
	// NextLevel is the EXP needed to go from this level to the next one.
	NextLevel int `json:"nextLevel" yaml:"nextLevel" mapstructure:"nextLevel"`
	// Total is the cumulative EXP needed to reach this level.
	Total int `json:"total" yaml:"total" mapstructure:"total"`
}

// ExpTable maps level → stage → EXP entry.
type ExpTable map[int]map[core.Stage]ExpEntry

// Advice is the recommendation returned by Optimal.
type Advice struct {
	TargetLevel int            `json:"targetLevel"`
	Gain        float64        `json:"abiGain"`
	ExpRequired int            `json:"expRequired"`
	Direction   core.Direction `json:"direction"`
}

// minAdviceLevel is the lowest level the EXP table starts at.
const minAdviceLevel = 2

// Optimal picks the direction that maximises ABI gained per EXP spent for a
// digimon of the given stage at currentLevel.
//
// Implementation:
//   - Stage 1: Ultra can only de-digivolve; advise that with no EXP cost.
//   - Stage 2: Clamp the level to the first table row and fetch it; no row ⇒ zero advice.
//   - Stage 3: Score each applicable direction by gain / nextLevel EXP and keep the best.
//
// A direction whose EXP cell is zero or missing is skipped.
func Optimal(table ExpTable, stage core.Stage, currentLevel int) Advice {
	if stage == core.Ultra {
		gain, _ := Gain(stage, core.Backward, currentLevel)
		return Advice{
			TargetLevel: currentLevel,
			Gain:        gain,
			Direction:   core.Backward,
		}
	}

	level := currentLevel
	if level < minAdviceLevel {
		level = minAdviceLevel
	}
	best := Advice{TargetLevel: currentLevel, Direction: core.Forward}

	row, ok := table[level]
	if !ok {
		return best
	}
	entry, ok := row[stage]
	if !ok || entry.NextLevel <= 0 {
		return best
	}

	var bestRatio float64
	for _, dir := range []core.Direction{core.Forward, core.Backward} {
		gain, ok := Gain(stage, dir, level)
		if !ok {
			continue
		}
		ratio := gain / float64(entry.NextLevel)
		if ratio > bestRatio {
			bestRatio = ratio
			best = Advice{
				TargetLevel: level,
				Gain:        gain,
				ExpRequired: entry.NextLevel,
				Direction:   dir,
			}
		}
	}

	return best
}
