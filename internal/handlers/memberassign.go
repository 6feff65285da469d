package handlers

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

func registerMemberAndAssignHandlers(d map[opcode.Opcode]Handler) {
	d[opcode.AccessMember] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		rhsNode, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		// A member name pushed with PushString arrives as a string literal;
		// it names the member, so it becomes an identifier.
		var rhs ast.Assignable
		switch v := rhsNode.(type) {
		case *ast.LiteralString:
			rhs = ast.NewIdentifier(v.Value)
		case ast.Assignable:
			rhs = v
		default:
			return decompctx.ProcessedInstruction{}, gs2err.NewInvalidNodeType(errCtx(ctx, instr), "Assignable", "Expression")
		}
		lhs, err := ctx.PopAssignable(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		node, err := ast.NewMemberAccess(lhs, rhs)
		if err != nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewAstNodeError(errCtx(ctx, instr), err)
		}
		ctx.PushOneNode(node, instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}

	d[opcode.Assign] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		value, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		target, err := ctx.PopAssignable(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		return decompctx.ProcessedInstruction{
			NodeToPushIntoRegion: ast.NewAssignment(target, value),
		}, nil
	}
}
