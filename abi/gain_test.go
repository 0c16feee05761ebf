package abi_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/core"
)

func TestGain_Formulas(t *testing.T) {
	tests := []struct {
		name   string
		stage  core.Stage
		dir    core.Direction
		level  int
		gain   float64
		units  int
		usable bool
	}{
		{"baby forward", core.Baby, core.Forward, 5, 1.0, 1, true},
		{"baby forward fractional", core.Baby, core.Forward, 6, 1.1, 2, true},
		{"baby backward", core.Baby, core.Backward, 5, 0, 0, false},
		{"in-training forward", core.InTraining, core.Forward, 9, 1.9, 2, true},
		{"in-training backward", core.InTraining, core.Backward, 9, 2.8, 3, true},
		{"rookie forward", core.Rookie, core.Forward, 20, 3.5, 4, true},
		{"rookie backward", core.Rookie, core.Backward, 9, 3.8, 4, true},
		{"champion forward", core.Champion, core.Forward, 30, 5, 5, true},
		{"champion backward", core.Champion, core.Backward, 20, 7, 7, true},
		{"ultimate forward", core.Ultimate, core.Forward, 36, 6.1, 7, true},
		{"ultimate backward", core.Ultimate, core.Backward, 36, 11.2, 12, true},
		{"mega forward", core.Mega, core.Forward, 50, 8, 8, true},
		{"mega backward", core.Mega, core.Backward, 50, 15, 15, true},
		{"ultra forward", core.Ultra, core.Forward, 60, 0, 0, false},
		{"ultra backward", core.Ultra, core.Backward, 51, 16.2, 17, true},
		{"level zero", core.Champion, core.Backward, 0, 3, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gain, ok := abi.Gain(tc.stage, tc.dir, tc.level)
			require.Equal(t, tc.usable, ok)
			assert.InDelta(t, tc.gain, gain, 1e-9)
			assert.Equal(t, tc.units, abi.Units(tc.stage, tc.dir, tc.level))
		})
	}
}

// TestUnits_MatchesCeil checks the integer rounding against math.Ceil over the
// whole practical level range.
func TestUnits_MatchesCeil(t *testing.T) {
	for _, stage := range core.Stages() {
		for _, dir := range []core.Direction{core.Forward, core.Backward} {
			for level := 0; level <= 99; level++ {
				gain, ok := abi.Gain(stage, dir, level)
				want := 0
				if ok {
					want = int(math.Ceil(gain))
				}
				require.Equal(t, want, abi.Units(stage, dir, level), "%s %s L%d", stage, dir, level)
			}
		}
	}
}

func TestGain_UnknownInputs(t *testing.T) {
	_, ok := abi.Gain(core.Stage(12), core.Forward, 10)
	assert.False(t, ok)
	_, ok = abi.Gain(core.Rookie, core.Direction(7), 10)
	assert.False(t, ok)
	assert.Zero(t, abi.Units(core.Stage(-1), core.Backward, 10))
}

func TestClampAndAdd(t *testing.T) {
	assert.Equal(t, 0, abi.Clamp(-4))
	assert.Equal(t, 57, abi.Clamp(57))
	assert.Equal(t, abi.Max, abi.Clamp(1000))

	assert.Equal(t, 2, abi.Add(0, core.InTraining, core.Forward, 9))
	assert.Equal(t, abi.Max, abi.Add(198, core.Mega, core.Backward, 50))
	assert.Equal(t, 10, abi.Add(10, core.Ultra, core.Forward, 50))
}
