// Package pathfind finds digivolution routes between two digimon.
//
// Overview:
//
//   - The search space is the augmented state (digimon, secured moves, ABI).
//     Moving along a digivolution or de-digivolution yields ABI according to
//     package abi; some evolutions need a minimum ABI before they can be taken.
//   - Search is a uniform-cost best-first search. The cost of a route is the
//     sum of the ABI thresholds of the evolutions it takes. Ties are broken by
//     fewer steps, then by discovery order, so with no thresholds on the way
//     the result is a fewest-transitions route.
//   - Required moves are secured at the first step on the route whose digimon
//     can teach them; that step records them in LearnedMoves.
//
// State deduplication:
//
//   - Two states share a key when they sit on the same digimon with the same
//     set of secured moves. A popped state is dropped when an earlier state with
//     the same key was finalized at a cost no higher and an ABI no lower
//     (Pareto dominance). ABI is capped at 200, which keeps the number of
//     labels per key finite even on zero-cost cycles that farm ABI.
//
// ABI gating:
//
//   - By default an evolution whose ABI threshold exceeds the ABI held at that
//     point is not taken, and the search detours to farm ABI instead.
//     WithInformationalABI() turns the threshold into a pure cost.
//   - Every other requirement (stats, EXP, items, allies) is copied onto the
//     produced step but never enforced.
//
// Outcomes (never errors):
//
//   - OutcomeFound:           a route was found.
//   - OutcomeInvalidEndpoint: origin or target unknown or excluded.
//   - OutcomeUnreachable:     no route satisfies the goal.
//   - OutcomeBudgetExhausted: WithMaxExpansions hit before any route was found.
//
// Errors (sentinel) are reserved for misuse:
//
//   - ErrNilProvider, ErrEmptyEndpoint, ErrOptionViolation.
//
// Complexity:
//
//   - States: O(V · 2^k · 201) in the worst case, k = number of required moves.
//   - Each pop/push costs O(log N) on the heap.
//   - Memory is per call; nothing survives a Search.
//
// Example usage:
//
//	res, err := pathfind.Search(g, "6", "17", pathfind.WithMoves("81"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Found() {
//	    for _, st := range res.Path {
//	        fmt.Println(st.DigimonID, st.LearnedMoves, st.ABI)
//	    }
//	}
package pathfind
