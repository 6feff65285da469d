package structural

import (
	"gs2dc/internal/graph"
	"gs2dc/internal/region"
)

// edgeLabels enumerates every label ConnectRegions can carry, for reducers
// that need to carry a successor's outgoing edges over to its merged-in
// predecessor without caring which label each one had.
var edgeLabels = []graph.EdgeLabel{graph.LabelNone, graph.LabelBranch, graph.LabelFallthrough}

// linearReduce folds R --> S into R when R is Linear, S is R's only
// successor, R is S's only predecessor, and S is itself Linear or Tail:
// R's statements are extended with S's, R inherits S's type, and S's
// outgoing edges become R's.
func linearReduce(regions *region.Set, id region.ID) (bool, error) {
	r, err := regions.GetRegion(id)
	if err != nil || r.Type != region.Linear {
		return false, nil
	}

	succs := regions.Successors(id)
	if len(succs) != 1 {
		return false, nil
	}
	s := succs[0]
	if s == id {
		return false, nil
	}
	if preds := regions.Predecessors(s); len(preds) != 1 || preds[0] != id {
		return false, nil
	}

	sRegion, err := regions.GetRegion(s)
	if err != nil {
		return false, nil
	}
	if sRegion.Type != region.Linear && sRegion.Type != region.Tail {
		return false, nil
	}

	r.Nodes = append(r.Nodes, sRegion.Nodes...)
	r.Type = sRegion.Type
	r.JumpExpression = sRegion.JumpExpression
	r.OriginatingOpcode = sRegion.OriginatingOpcode

	for _, label := range edgeLabels {
		for _, t := range regions.SuccessorsWithLabel(s, label) {
			regions.ConnectRegions(id, t, label)
		}
	}
	regions.RemoveRegion(s)
	return true, nil
}
