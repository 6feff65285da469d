package structural

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/graph"
	"gs2dc/internal/region"
)

// tailMergeReduce closes off a ControlFlow region whose branch and/or
// fallthrough arm is itself a Tail region (a return with nothing after
// it) that nothing else flows into. Both-tail folds R to a Tail region
// holding `if (cond) {fallthrough} else {branch}`; a single-tail fold
// keeps the live arm as R's sole successor and leaves R Linear so a later
// pass can merge it onward.
func tailMergeReduce(regions *region.Set, id region.ID) (bool, error) {
	r, err := regions.GetRegion(id)
	if err != nil || r.Type != region.ControlFlow {
		return false, nil
	}

	branchSuccs := regions.SuccessorsWithLabel(id, graph.LabelBranch)
	fallSuccs := regions.SuccessorsWithLabel(id, graph.LabelFallthrough)
	if len(branchSuccs) != 1 || len(fallSuccs) != 1 {
		return false, nil
	}
	branch, fall := branchSuccs[0], fallSuccs[0]

	branchRegion, err := regions.GetRegion(branch)
	if err != nil {
		return false, nil
	}
	fallRegion, err := regions.GetRegion(fall)
	if err != nil {
		return false, nil
	}

	isSoleTail := func(regionID region.ID, rr *region.Region) bool {
		if rr.Type != region.Tail {
			return false
		}
		preds := regions.Predecessors(regionID)
		return len(preds) == 1 && preds[0] == id
	}

	branchIsTail := isSoleTail(branch, branchRegion)
	fallIsTail := isSoleTail(fall, fallRegion)

	switch {
	case branchIsTail && fallIsTail:
		r.Push(ast.NewControlFlow(ast.If, r.JumpExpression, ast.NewBlock(fallRegion.Nodes)))
		r.Push(ast.NewControlFlow(ast.Else, nil, ast.NewBlock(branchRegion.Nodes)))
		regions.RemoveRegion(fall)
		regions.RemoveRegion(branch)
		r.Type = region.Tail
		r.JumpExpression = nil
		return true, nil

	case fallIsTail:
		r.Push(ast.NewControlFlow(ast.If, r.JumpExpression, ast.NewBlock(fallRegion.Nodes)))
		regions.RemoveRegion(fall)
		r.Type = region.Linear
		r.JumpExpression = nil
		return true, nil

	case branchIsTail:
		r.Push(ast.NewControlFlow(ast.If, r.JumpExpression, ast.NewBlock(branchRegion.Nodes)))
		regions.RemoveRegion(branch)
		r.Type = region.Linear
		r.JumpExpression = nil
		return true, nil
	}

	return false, nil
}
