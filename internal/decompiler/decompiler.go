// Package decompiler is the per-function driver of §4: it wires the block
// CFG (internal/function) through per-block symbolic execution
// (internal/decompctx, internal/handlers) into a region graph
// (internal/region), reduces that graph structurally (internal/structural),
// and wraps the surviving region in an ast.Function ready for
// internal/emitter.
package decompiler

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/function"
	"gs2dc/internal/handlers"
	"gs2dc/internal/loader"
	"gs2dc/internal/region"
	"gs2dc/internal/structural"
)

// DecompileFunction runs the full pipeline for one function and returns its
// recovered AST.
func DecompileFunction(fn *function.Function, opts structural.Options) (*ast.Function, error) {
	regions, blockToRegion := buildRegionSet(fn)
	ctx := decompctx.New(fn.ID.String())

	var params []ast.Assignable
	for _, blockID := range fn.GetReversePostOrder() {
		regionID := blockToRegion[blockID]
		ctx.StartBlockProcessing(blockID, regionID.String())

		block, ok := fn.GetBasicBlockByID(blockID)
		if !ok {
			continue
		}
		r, err := regions.GetRegion(regionID)
		if err != nil {
			return nil, err
		}

		for _, instr := range block.Instructions {
			processed, err := handlers.Dispatch(ctx, instr)
			if err != nil {
				return nil, err
			}
			applyProcessed(r, processed, instr, &params)
		}
	}

	if err := structural.Reduce(regions, opts); err != nil {
		return nil, err
	}

	entry, err := regions.GetEntryRegion()
	if err != nil {
		return nil, err
	}
	final, err := regions.GetRegion(entry)
	if err != nil {
		return nil, err
	}

	return ast.NewFunction(fn.ID.Name, fn.ID.HasName, params, ast.NewBlock(final.Nodes)), nil
}

// applyProcessed folds one handler's result into the region r is building,
// per §4.F: a statement-producing result is appended, a jump condition
// upgrades r to ControlFlow, and a captured parameter list replaces params
// wholesale (EndParams fires once per function, at most). A Return
// statement additionally marks r as a Tail region: nothing a caller of this
// function does afterward can continue past it, which is exactly what
// structural analysis's tail-merge reducer expects of a function's exit
// paths (see DESIGN.md).
func applyProcessed(r *region.Region, p decompctx.ProcessedInstruction, instr loader.Instruction, params *[]ast.Assignable) {
	if p.NodeToPushIntoRegion != nil {
		r.Push(p.NodeToPushIntoRegion)
		if _, ok := p.NodeToPushIntoRegion.(*ast.Return); ok {
			r.Type = region.Tail
		}
	}
	if p.JumpCondition != nil {
		r.JumpExpression = p.JumpCondition
		r.Type = region.ControlFlow
		op := instr.Opcode
		r.OriginatingOpcode = &op
	}
	if p.FunctionParameters != nil {
		*params = p.FunctionParameters
	}
}
