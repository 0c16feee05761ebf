package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/digipath/bfs"
	"github.com/katalvlaran/digipath/core"
)

// buildTree returns:
//
//	    1 (Baby)
//	    |
//	    6 (In-Training)
//	   / \
//	 17   18 (Rookie)
//	  |    |
//	 46   50 (Champion)
//	  |
//	 ghost (dangling)
func buildTree(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDanglingEvolutions())
	for _, d := range []core.Digimon{
		{ID: "1", Stage: core.Baby},
		{ID: "6", Stage: core.InTraining},
		{ID: "17", Stage: core.Rookie},
		{ID: "18", Stage: core.Rookie},
		{ID: "46", Stage: core.Champion},
		{ID: "50", Stage: core.Champion},
	} {
		require.NoError(t, g.AddDigimon(d))
	}
	for _, e := range [][2]string{{"1", "6"}, {"6", "17"}, {"6", "18"}, {"17", "46"}, {"18", "50"}, {"46", "ghost"}} {
		require.NoError(t, g.AddEvolution(e[0], e[1], 10, core.Requirements{}))
	}

	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "1")
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := buildTree(t)
	_, err = bfs.BFS(g, "missing")
	require.ErrorIs(t, err, bfs.ErrStartNotFound)

	_, err = bfs.BFS(g, "1", bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_BothDirections(t *testing.T) {
	g := buildTree(t)

	res, err := bfs.BFS(g, "46")
	require.NoError(t, err)
	assert.Equal(t, []string{"46", "17", "6", "18", "1", "50"}, res.Order)
	assert.Equal(t, 4, res.Depth["50"])
	assert.False(t, res.Reached("ghost"), "dangling targets are skipped")

	path, err := res.PathTo("50")
	require.NoError(t, err)
	assert.Equal(t, []string{"46", "17", "6", "18", "50"}, path)
}

func TestBFS_DirectionFilters(t *testing.T) {
	g := buildTree(t)

	fwd, err := bfs.BFS(g, "6", bfs.WithForwardOnly())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"6", "17", "18", "46", "50"}, fwd.Order)

	back, err := bfs.BFS(g, "46", bfs.WithBackwardOnly())
	require.NoError(t, err)
	assert.Equal(t, []string{"46", "17", "6", "1"}, back.Order)
}

func TestBFS_ExcludedAndDepth(t *testing.T) {
	g := buildTree(t)

	res, err := bfs.BFS(g, "46", bfs.WithExcluded("6"))
	require.NoError(t, err)
	assert.Equal(t, []string{"46", "17"}, res.Order)

	_, err = res.PathTo("50")
	require.Error(t, err)

	res, err = bfs.BFS(g, "1", bfs.WithMaxDepth(2))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "6", "17", "18"}, res.Order)
}

func TestBFS_OnVisitAbort(t *testing.T) {
	g := buildTree(t)
	stop := errors.New("stop")

	var seen []string
	_, err := bfs.BFS(g, "1", bfs.WithOnVisit(func(id string, depth int) error {
		seen = append(seen, id)
		if depth == 1 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"1", "6"}, seen)
}

func TestBFS_Cancelled(t *testing.T) {
	g := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bfs.BFS(g, "1", bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
