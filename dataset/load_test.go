package dataset_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/digipath/core"
	"github.com/katalvlaran/digipath/dataset"
	"github.com/katalvlaran/digipath/pathfind"
)

const catalogDir = "testdata/catalog"

func TestLoad_Catalog(t *testing.T) {
	ds, err := dataset.Load(catalogDir)
	require.NoError(t, err)

	g := ds.Graph
	assert.Equal(t, 8, g.DigimonCount())
	assert.Equal(t, 7, g.EvolutionCount())
	assert.Equal(t, []string{"1", "6", "17", "18", "46", "50", "239", "400"}, g.IDs())

	agumon, ok := g.Digimon("17")
	require.True(t, ok)
	assert.Equal(t, "Agumon", agumon.Name)
	assert.Equal(t, core.Rookie, agumon.Stage)
	assert.Equal(t, 120, agumon.Stats.ATK)

	omni, ok := g.Digimon("400")
	require.True(t, ok)
	assert.Equal(t, core.Ultra, omni.Stage)

	assert.Equal(t, []string{"17"}, g.Learners("81"))
	assert.Equal(t, "Pepper Breath", ds.MoveName("81"))
	assert.Equal(t, "777", ds.MoveName("777"))

	// Order in evolutions.yaml is kept per source.
	fwd := g.Forward("6")
	require.Len(t, fwd, 2)
	assert.Equal(t, "17", fwd[0].To)
	assert.Equal(t, "18", fwd[1].To)
}

func TestLoad_WeakRequirements(t *testing.T) {
	ds, err := dataset.Load(catalogDir)
	require.NoError(t, err)
	g := ds.Graph

	var toMetal core.Evolution
	for _, ev := range g.Forward("46") {
		if ev.To == "239" {
			toMetal = ev
		}
	}
	assert.Equal(t, 10, toMetal.Requirements.ABI, "quoted numbers are accepted")
	assert.Equal(t, 50, toMetal.Requirements.CAM)
	assert.Equal(t, []string{"Agumon ally", "Heroic Spirit"}, toMetal.Requirements.Misc)

	toGaruru := g.Forward("18")[0]
	assert.Equal(t, []string{"Gabumon Fur"}, toGaruru.Requirements.Misc, "a single string becomes a list")

	toGrey := g.Forward("17")[0]
	assert.Equal(t, 100, toGrey.Requirements.ATK)
	assert.Equal(t, 3000, toGrey.Requirements.EXP)

	// The mirrored de-digivolution carries the same requirements.
	back := g.Backward("239")
	require.Len(t, back, 1)
	assert.Equal(t, "46", back[0].To)
	assert.Equal(t, core.Backward, back[0].Direction)
	assert.Equal(t, 10, back[0].Requirements.ABI)
}

func TestLoad_ExpTable(t *testing.T) {
	ds, err := dataset.Load(catalogDir)
	require.NoError(t, err)

	require.Contains(t, ds.Exp, 20)
	assert.Equal(t, 500, ds.Exp[20][core.Champion].NextLevel)
	assert.Equal(t, 40, ds.Exp[2][core.InTraining].Total)
}

func TestLoad_Errors(t *testing.T) {
	digimon := &fstest.MapFile{Data: []byte(`- {id: "1", name: A, stage: Baby}
- {id: "2", name: B, stage: In-Training}
`)}

	for name, tc := range map[string]struct {
		fs   fstest.MapFS
		want error
	}{
		"missing digimon": {
			fs:   fstest.MapFS{dataset.EvolutionsFile: {Data: []byte("{}")}},
			want: dataset.ErrMissingFile,
		},
		"missing evolutions": {
			fs:   fstest.MapFS{dataset.DigimonFile: digimon},
			want: dataset.ErrMissingFile,
		},
		"bad yaml": {
			fs: fstest.MapFS{
				dataset.DigimonFile:    {Data: []byte("- id: [")},
				dataset.EvolutionsFile: {Data: []byte("{}")},
			},
			want: dataset.ErrDecode,
		},
		"bad stage": {
			fs: fstest.MapFS{
				dataset.DigimonFile:    {Data: []byte(`- {id: "1", stage: Adult}`)},
				dataset.EvolutionsFile: {Data: []byte("{}")},
			},
			want: dataset.ErrDecode,
		},
		"duplicate digimon": {
			fs: fstest.MapFS{
				dataset.DigimonFile:    {Data: []byte(`[{id: "1", stage: Baby}, {id: "1", stage: Baby}]`)},
				dataset.EvolutionsFile: {Data: []byte("{}")},
			},
			want: dataset.ErrInvalidRecord,
		},
		"unknown source": {
			fs: fstest.MapFS{
				dataset.DigimonFile:    digimon,
				dataset.EvolutionsFile: {Data: []byte(`{"3": [{to: "1", level: 2}]}`)},
			},
			want: dataset.ErrInvalidRecord,
		},
		"bad requirement value": {
			fs: fstest.MapFS{
				dataset.DigimonFile:    digimon,
				dataset.EvolutionsFile: {Data: []byte(`{"1": [{to: "2", level: 2, requirements: {abi: lots}}]}`)},
			},
			want: dataset.ErrDecode,
		},
		"bad exp stage": {
			fs: fstest.MapFS{
				dataset.DigimonFile:    digimon,
				dataset.EvolutionsFile: {Data: []byte("{}")},
				dataset.ExpTablesFile:  {Data: []byte(`{2: {Adult: {nextLevel: 1, total: 1}}}`)},
			},
			want: dataset.ErrInvalidRecord,
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.LoadFS(tc.fs)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoad_OptionalFilesAbsent(t *testing.T) {
	ds, err := dataset.LoadFS(fstest.MapFS{
		dataset.DigimonFile:    {Data: []byte(`[{id: "1", stage: Baby}, {id: "2", stage: In-Training}]`)},
		dataset.EvolutionsFile: {Data: []byte(`{"1": [{to: "2", level: 4}]}`)},
	})
	require.NoError(t, err)
	assert.Empty(t, ds.Moves)
	assert.Empty(t, ds.Exp)
	assert.Equal(t, 1, ds.Graph.EvolutionCount())
}

// TestLoad_SearchOnLoadedCatalog runs the ABI detour on the loaded graph.
func TestLoad_SearchOnLoadedCatalog(t *testing.T) {
	ds, err := dataset.Load(catalogDir)
	require.NoError(t, err)

	res, err := pathfind.Search(ds.Graph, "46", "239")
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, []string{"46", "17", "46", "239"}, res.IDs())
	assert.Positive(t, res.Stats.Dangling)
}
