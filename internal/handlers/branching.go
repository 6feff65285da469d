package handlers

import (
	"gs2dc/internal/decompctx"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

// registerBranchingHandlers wires the opcodes that open structured control
// flow. ShortCircuitAnd/ShortCircuitOr appear in §6's binary-operator
// symbol table too, but as *handlers* they are branch openers, not binary
// operators: the condition they pop becomes the region's jump expression,
// and structural analysis reduces that region like any other ControlFlow
// region. No && / || BinOp node is built from them.
func registerBranchingHandlers(d map[opcode.Opcode]Handler) {
	d[opcode.Jmp] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		return decompctx.ProcessedInstruction{}, nil
	}

	conditional := func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		cond, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		return decompctx.ProcessedInstruction{JumpCondition: cond}, nil
	}
	for _, op := range []opcode.Opcode{
		opcode.Jeq, opcode.Jne, opcode.With, opcode.ShortCircuitAnd, opcode.ShortCircuitOr,
	} {
		d[op] = conditional
	}

	// ForEach also opens a fall-through structured region (§3's
	// has_fall_through), iterating the popped collection.
	d[opcode.ForEach] = conditional

	// ShortCircuitEnd/WithEnd close the structured region opened by the
	// corresponding opener; they carry no further stack effect themselves.
	noop := func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		return decompctx.ProcessedInstruction{}, nil
	}
	d[opcode.ShortCircuitEnd] = noop
	d[opcode.WithEnd] = noop
}
