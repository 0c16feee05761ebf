package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/digipath/core"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		in   string
		want core.Stage
	}{
		{"Baby", core.Baby},
		{"In-Training", core.InTraining},
		{"in training", core.InTraining},
		{"InTraining", core.InTraining},
		{"ROOKIE", core.Rookie},
		{" Champion ", core.Champion},
		{"Ultimate", core.Ultimate},
		{"mega", core.Mega},
		{"Ultra", core.Ultra},
	}
	for _, tc := range tests {
		got, err := core.ParseStage(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := core.ParseStage("Armor")
	require.ErrorIs(t, err, core.ErrBadStage)
}

func TestStage_Ordering(t *testing.T) {
	stages := core.Stages()
	require.Len(t, stages, 7)
	for i := 1; i < len(stages); i++ {
		assert.Less(t, stages[i-1], stages[i])
	}
	assert.Equal(t, "Stage(9)", core.Stage(9).String())
}

func TestStage_JSONText(t *testing.T) {
	var d core.Digimon
	require.NoError(t, json.Unmarshal([]byte(`{"id":"6","stage":"In-Training"}`), &d))
	assert.Equal(t, core.InTraining, d.Stage)

	out, err := json.Marshal(core.Ultimate)
	require.NoError(t, err)
	assert.JSONEq(t, `"Ultimate"`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"stage":"Armor"}`), &d))
}

func TestDirection_Text(t *testing.T) {
	assert.Equal(t, "digivolve", core.Forward.String())
	assert.Equal(t, "dedigivolve", core.Backward.String())

	var d core.Direction
	require.NoError(t, d.UnmarshalText([]byte("backward")))
	assert.Equal(t, core.Backward, d)
	require.NoError(t, d.UnmarshalText([]byte("digivolve")))
	assert.Equal(t, core.Forward, d)
	require.Error(t, d.UnmarshalText([]byte("sideways")))
}
