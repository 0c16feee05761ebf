package core_test

import (
	"fmt"

	"github.com/katalvlaran/digipath/core"
)

// ExampleGraph demonstrates building a tiny catalog and reading both edge directions.
func ExampleGraph() {
	// 1) Create an empty catalog.
	g := core.NewGraph()

	// 2) Register two digimon; Agumon can learn move "81".
	_ = g.AddDigimon(core.Digimon{ID: "6", Name: "Koromon", Stage: core.InTraining})
	_ = g.AddDigimon(core.Digimon{ID: "17", Name: "Agumon", Stage: core.Rookie, Moves: []string{"81"}})

	// 3) One dataset evolution yields a forward and a backward edge.
	_ = g.AddEvolution("6", "17", 9, core.Requirements{})

	fwd := g.Forward("6")[0]
	back := g.Backward("17")[0]
	fmt.Println(fwd.From, fwd.Direction, fwd.To, fwd.Level)
	fmt.Println(back.From, back.Direction, back.To, back.Level)
	fmt.Println("Agumon teaches 81:", g.CanTeach("17", "81"))

	// Output:
	// 6 digivolve 17 9
	// 17 dedigivolve 6 9
	// Agumon teaches 81: true
}
