package structural

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/graph"
	"gs2dc/internal/region"
)

// linearSuccessorOf returns x's unique successor, or x itself if x has zero
// or more than one successor (x is "terminal in this pattern" either way:
// a zero-successor region can't merge anywhere, and a multi-successor one
// is itself an unreduced branch that repeated linear folding hasn't
// collapsed yet).
func linearSuccessorOf(regions *region.Set, x region.ID) region.ID {
	succs := regions.Successors(x)
	if len(succs) == 1 {
		return succs[0]
	}
	return x
}

// acyclicConditionalReduce recognizes the three acyclic shapes a
// ControlFlow region with exactly one Branch and one Fallthrough successor
// can take, in priority order: then-only, else-only, if/else.
func acyclicConditionalReduce(regions *region.Set, id region.ID) (bool, error) {
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

	// Then-only: the branch path rejoins directly at the fallthrough
	// region, so the fallthrough region's statements are the if-body and
	// the branch region is what the whole thing flows into next.
	if linearSuccessorOf(regions, branch) == fall {
		fallRegion, err := regions.GetRegion(fall)
		if err != nil {
			return false, err
		}
		r.Push(ast.NewControlFlow(ast.If, r.JumpExpression, ast.NewBlock(fallRegion.Nodes)))
		regions.RemoveRegion(fall)
		r.Type = region.Linear
		r.JumpExpression = nil
		return true, nil
	}

	// Else-only: mirror image. The fallthrough path rejoins directly at
	// the branch region, so the branch region's statements are the
	// if-body and the fallthrough region is what it flows into next.
	if linearSuccessorOf(regions, fall) == branch {
		branchRegion, err := regions.GetRegion(branch)
		if err != nil {
			return false, err
		}
		r.Push(ast.NewControlFlow(ast.If, r.JumpExpression, ast.NewBlock(branchRegion.Nodes)))
		regions.RemoveRegion(branch)
		r.Type = region.Linear
		r.JumpExpression = nil
		return true, nil
	}

	// If/else: both paths rejoin at a common region M distinct from
	// either arm.
	branchLS := linearSuccessorOf(regions, branch)
	fallLS := linearSuccessorOf(regions, fall)
	if branchLS == fallLS && branchLS != branch && branchLS != fall {
		m := branchLS
		fallRegion, err := regions.GetRegion(fall)
		if err != nil {
			return false, err
		}
		branchRegion, err := regions.GetRegion(branch)
		if err != nil {
			return false, err
		}
		r.Push(ast.NewControlFlow(ast.If, r.JumpExpression, ast.NewBlock(fallRegion.Nodes)))
		r.Push(ast.NewControlFlow(ast.Else, nil, ast.NewBlock(branchRegion.Nodes)))
		regions.RemoveRegion(fall)
		regions.RemoveRegion(branch)
		regions.ConnectRegions(id, m, graph.LabelBranch)
		r.Type = region.Linear
		r.JumpExpression = nil
		return true, nil
	}

	return false, nil
}
