package handlers

import (
	"gs2dc/internal/decompctx"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

// registerNopHandlers wires the opcodes §4.G documents as having no effect
// on the execution-frame stack or the region. ConvertToString and
// ConvertToVariable are not named in §4.G; they are coercion opcodes with
// the same "no AST effect" shape as ConvertToFloat/ConvertToObject, so they
// are folded into the same family here (see DESIGN.md).
func registerNopHandlers(d map[opcode.Opcode]Handler) {
	nop := func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		return decompctx.ProcessedInstruction{}, nil
	}
	for _, op := range []opcode.Opcode{
		opcode.ConvertToFloat, opcode.ConvertToObject, opcode.FunctionStart,
		opcode.IncreaseLoopCounter, opcode.ConvertToString, opcode.ConvertToVariable,
	} {
		d[op] = nop
	}
}

// registerCopyAndPopHandlers wires Copy (duplicate the top expression) and
// Pop (drop the top expression).
func registerCopyAndPopHandlers(d map[opcode.Opcode]Handler) {
	d[opcode.Copy] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		top, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		ctx.PushOneNode(top, instr.Opcode.String())
		ctx.PushOneNode(top, instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}

	d[opcode.Pop] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		_, err := ctx.PopExpression(instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, err
	}

	d[opcode.Swap] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		top, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		below, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		ctx.PushOneNode(top, instr.Opcode.String())
		ctx.PushOneNode(below, instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
}
