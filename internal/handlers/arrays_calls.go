package handlers

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

func reverseExpressions(es []ast.Expression) []ast.Expression {
	out := make([]ast.Expression, len(es))
	for i, e := range es {
		out[len(es)-1-i] = e
	}
	return out
}

func registerArrayAndCallHandlers(d map[opcode.Opcode]Handler) {
	d[opcode.PushArray] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		ctx.OpenBuildingArray()
		return decompctx.ProcessedInstruction{}, nil
	}

	d[opcode.EndArray] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		elements, err := ctx.CloseBuildingArray(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		ctx.PushOneNode(ast.NewArray(reverseExpressions(elements)), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}

	d[opcode.EndParams] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		elements, err := ctx.CloseBuildingArray(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		params := make([]ast.Assignable, 0, len(elements))
		for _, e := range reverseExpressions(elements) {
			a, ok := e.(ast.Assignable)
			if !ok {
				return decompctx.ProcessedInstruction{}, gs2err.NewInvalidNodeType(errCtx(ctx, instr), "Assignable", "Expression")
			}
			params = append(params, a)
		}
		return decompctx.ProcessedInstruction{FunctionParameters: params}, nil
	}

	d[opcode.Call] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		elements, err := ctx.CloseBuildingArray(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		if len(elements) == 0 {
			return decompctx.ProcessedInstruction{}, gs2err.NewCannotPopNode(errCtx(ctx, instr))
		}
		// Popping one at a time (LIFO) reaches the first element pushed
		// into the array last; that final pop is the callee (see S5). The
		// rest, already in push order once the callee is excluded, are
		// the arguments.
		callee := elements[0]
		args := elements[1:]

		calleeAssignable, ok := callee.(ast.Assignable)
		if !ok {
			return decompctx.ProcessedInstruction{}, gs2err.NewInvalidNodeType(errCtx(ctx, instr), "Assignable", "Expression")
		}

		call := ast.NewFunctionCall(calleeAssignable, args)
		ssaName := ctx.NextSSA("fn_call")
		ident := ast.NewIdentifier(ssaName)
		ctx.PushOneNode(ident, instr.Opcode.String())
		return decompctx.ProcessedInstruction{NodeToPushIntoRegion: ast.NewAssignment(ident, call)}, nil
	}
}
