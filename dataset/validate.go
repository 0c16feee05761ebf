package dataset

import "sort"

// Validate inspects ds and lists data-quality findings.
//
// Complexity: O(V + E + M log M).
func Validate(ds *Dataset) Report {
	var rep Report
	if ds == nil || ds.Graph == nil {
		return rep
	}
	g := ds.Graph

	for _, id := range g.IDs() {
		fwd, back := g.Forward(id), g.Backward(id)
		if len(fwd) == 0 && len(back) == 0 {
			rep.Isolated = append(rep.Isolated, id)
		}
		for _, ev := range fwd {
			if !g.HasDigimon(ev.To) {
				rep.Dangling = append(rep.Dangling, ev)
			}
		}
	}

	for id := range ds.Moves {
		if len(g.Learners(id)) == 0 {
			rep.UnlearnableMoves = append(rep.UnlearnableMoves, id)
		}
	}
	sort.Strings(rep.UnlearnableMoves)

	rep.UnknownRequirementKeys = append([]string(nil), ds.unknownKeys...)

	return rep
}
