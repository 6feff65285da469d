package handlers

import (
	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

func registerReturnHandler(d map[opcode.Opcode]Handler) {
	d[opcode.Ret] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		value, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		return decompctx.ProcessedInstruction{NodeToPushIntoRegion: ast.NewReturn(value)}, nil
	}
}

func registerRegisterHandlers(d map[opcode.Opcode]Handler) {
	d[opcode.SetRegister] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		if instr.Operand == nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewInstructionMustHaveOperand(errCtx(ctx, instr))
		}
		id := int(instr.Operand.Int())

		value, err := ctx.PopExpression(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}

		var result decompctx.ProcessedInstruction
		if assignable, ok := value.(ast.Assignable); ok {
			ctx.SetRegister(id, assignable)
		} else {
			ssaName := ctx.NextSSA("set_register")
			ident := ast.NewIdentifier(ssaName)
			ctx.SetRegister(id, ident)
			result.NodeToPushIntoRegion = ast.NewAssignment(ident, value)
		}
		ctx.PushOneNode(value, instr.Opcode.String())
		return result, nil
	}

	d[opcode.GetRegister] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		if instr.Operand == nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewInstructionMustHaveOperand(errCtx(ctx, instr))
		}
		id := int(instr.Operand.Int())
		value, err := ctx.GetRegister(id, instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		ctx.PushOneNode(value, instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}

	// MarkRegisterVariable carries no observable AST effect beyond
	// flagging a register as variable-backed for the original VM; the
	// decompiler has no separate variable-vs-temporary representation.
	d[opcode.MarkRegisterVariable] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		return decompctx.ProcessedInstruction{}, nil
	}
}
