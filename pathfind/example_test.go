package pathfind_test

import (
	"fmt"

	"github.com/katalvlaran/digipath/core"
	"github.com/katalvlaran/digipath/pathfind"
)

// ExampleSearch shows a route that must farm ABI before the last evolution.
func ExampleSearch() {
	g := core.NewGraph()
	_ = g.AddDigimon(core.Digimon{ID: "17", Name: "Agumon", Stage: core.Rookie, Moves: []string{"81"}})
	_ = g.AddDigimon(core.Digimon{ID: "46", Name: "Greymon", Stage: core.Champion})
	_ = g.AddDigimon(core.Digimon{ID: "239", Name: "MetalGreymon", Stage: core.Ultimate})
	_ = g.AddEvolution("17", "46", 20, core.Requirements{})
	_ = g.AddEvolution("46", "239", 36, core.Requirements{ABI: 10})

	res, err := pathfind.Search(g, "46", "239", pathfind.WithMoves("81"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Outcome, "cost", res.Cost)
	for _, st := range res.Path {
		fmt.Println(st.DigimonID, st.ABI, st.LearnedMoves)
	}
	// Output:
	// found cost 10
	// 46 0 []
	// 17 7 [81]
	// 46 11 []
	// 239 17 []
}
