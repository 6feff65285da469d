package handlers

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

// registerOperatorHandlers wires every binary- and unary-operator opcode
// except ShortCircuitAnd/ShortCircuitOr, which branching.go claims instead
// (they open structured control flow, per §4.G).
func registerOperatorHandlers(d map[opcode.Opcode]Handler) {
	binary := []opcode.Opcode{
		opcode.Add, opcode.Subtract, opcode.Multiply, opcode.Divide, opcode.Modulo,
		opcode.BitwiseAnd, opcode.BitwiseOr, opcode.BitwiseXor,
		opcode.Equal, opcode.NotEqual, opcode.LessThan, opcode.GreaterThan,
		opcode.LessThanOrEqual, opcode.GreaterThanOrEqual,
		opcode.ShiftLeft, opcode.ShiftRight, opcode.In, opcode.Join, opcode.Power,
	}
	for _, op := range binary {
		d[op] = binaryOperatorHandler(op)
	}

	unary := []opcode.Opcode{opcode.LogicalNot, opcode.BitwiseInvert, opcode.UnarySubtract}
	for _, op := range unary {
		d[op] = unaryOperatorHandler(op)
	}
}

func binaryOperatorHandler(op opcode.Opcode) Handler {
	return func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		rhs, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		lhs, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		node, err := ast.NewBinOp(lhs, rhs, op)
		if err != nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewAstNodeError(errCtx(ctx, instr), err)
		}
		ctx.PushOneNode(node, instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
}

func unaryOperatorHandler(op opcode.Opcode) Handler {
	return func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		operand, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		node, err := ast.NewUnaryOp(operand, op)
		if err != nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewAstNodeError(errCtx(ctx, instr), err)
		}
		ctx.PushOneNode(node, instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
}
