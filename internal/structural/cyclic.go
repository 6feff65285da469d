package structural

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/opcode"
	"gs2dc/internal/region"
)

// cyclicDoWhileReduce recognizes a ControlFlow region with a self-loop: the
// region's own body repeats for as long as its condition holds, so it folds
// to a single DoWhile statement wrapping the body that was there before. A
// region whose only successor is itself (an infinite loop) is rejected with
// a StructureAnalysisError.
func cyclicDoWhileReduce(regions *region.Set, id region.ID) (bool, error) {
	r, err := regions.GetRegion(id)
	if err != nil || r.Type != region.ControlFlow {
		return false, nil
	}

	succs := regions.Successors(id)
	selfLoop := false
	for _, s := range succs {
		if s == id {
			selfLoop = true
			break
		}
	}
	if !selfLoop {
		return false, nil
	}
	if len(succs) == 1 {
		return false, gs2err.NewStructureAnalysisError(gs2err.SubOther, "control-flow region loops only to itself")
	}

	doWhile := ast.NewControlFlow(ast.DoWhile, r.JumpExpression, ast.NewBlock(r.Nodes))
	r.Nodes = []ast.Node{doWhile}
	r.Type = region.Linear
	r.JumpExpression = nil
	regions.RemoveEdge(id, id)
	return true, nil
}

// cyclicWhileReduce recognizes a ControlFlow region R with a successor S
// whose own only successor and only predecessor are both R: S's body
// executes for as long as R's condition holds, then control returns to R.
// A With-originated R yields a With node; any other originating opcode,
// ForEach included, yields a plain While.
func cyclicWhileReduce(regions *region.Set, id region.ID) (bool, error) {
	r, err := regions.GetRegion(id)
	if err != nil || r.Type != region.ControlFlow {
		return false, nil
	}

	for _, s := range regions.Successors(id) {
		succs := regions.Successors(s)
		preds := regions.Predecessors(s)
		if len(succs) != 1 || succs[0] != id || len(preds) != 1 || preds[0] != id {
			continue
		}

		sRegion, err := regions.GetRegion(s)
		if err != nil {
			return false, err
		}

		kind := ast.While
		if r.OriginatingOpcode != nil && *r.OriginatingOpcode == opcode.With {
			kind = ast.With
		}

		r.Push(ast.NewControlFlow(kind, r.JumpExpression, ast.NewBlock(sRegion.Nodes)))
		regions.RemoveRegion(s)
		r.Type = region.Linear
		r.JumpExpression = nil
		return true, nil
	}

	return false, nil
}
