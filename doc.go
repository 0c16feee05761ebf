// Package digipath finds digivolution routes: given an origin and a target
// digimon it searches the transformation graph for the cheapest sequence of
// digivolutions and de-digivolutions that gets there, picking up required
// moves on the way and farming ABI when an evolution asks for more than the
// route has accumulated.
//
// What is in the box:
//
//   - A thread-safe, read-only catalog of digimon, evolutions and move learners
//   - ABI gain arithmetic and ABI-per-EXP advice
//   - Unweighted reachability (BFS) over both edge directions
//   - A uniform-cost search over (digimon, secured moves, ABI) states
//   - A worker pool that runs searches off the caller's goroutine, with an
//     optional Redis result cache
//   - An HTTP API and a command line tool
//
// Layout:
//
//	core/      - Digimon, Evolution, Requirements, Stage, Direction & the Graph catalog
//	abi/       - gain formulas, rounding, cap, EXP table advice
//	bfs/       - breadth-first reachability with exclusions and direction filters
//	pathfind/  - the route search engine
//	dataset/   - YAML dataset loader and validation report
//	relay/     - request/response messages and the bounded worker pool
//	cache/     - result cache backends (Redis, no-op)
//	httpapi/   - chi HTTP handlers
//	internal/  - logging, configuration, Prometheus metrics
//	cmd/digipath - the CLI (find, reach, abi, validate, serve, version)
//
// Quick example, Greymon needs 10 ABI to become MetalGreymon:
//
//	46 Greymon ──dedigivolve lv20──▶ 17 Agumon   (+7 ABI)
//	17 Agumon  ──digivolve lv20────▶ 46 Greymon  (+4 ABI, 11 ≥ 10)
//	46 Greymon ──digivolve lv36────▶ 239 MetalGreymon
//
//	go install github.com/katalvlaran/digipath/cmd/digipath@latest
package digipath
