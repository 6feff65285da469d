package handlers

import (
	"strings"

	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

func pushIdentifier(name string) Handler {
	return func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		ctx.PushOneNode(ast.NewIdentifier(name), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
}

func registerIdentifierAndLiteralHandlers(d map[opcode.Opcode]Handler) {
	for op, name := range map[opcode.Opcode]string{
		opcode.Player:  "player",
		opcode.PlayerO: "playero",
		opcode.Temp:    "temp",
		opcode.Level:   "level",
		opcode.This:    "this",
		opcode.ThisO:   "thiso",
		opcode.Params:  "params",
	} {
		d[op] = pushIdentifier(name)
	}

	d[opcode.PushVariable] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		if instr.Operand == nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewInstructionMustHaveOperand(errCtx(ctx, instr))
		}
		ctx.PushOneNode(ast.NewIdentifier(instr.Operand.Text()), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}

	// Pi is grouped with the literal producers in §4.G but renders as the
	// bare keyword "pi" rather than a quoted or numeric literal; an
	// Identifier node produces identical output.
	d[opcode.Pi] = pushIdentifier("pi")

	d[opcode.PushString] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		if instr.Operand == nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewInstructionMustHaveOperand(errCtx(ctx, instr))
		}
		ctx.PushOneNode(ast.NewLiteralString(instr.Operand.Text()), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}

	d[opcode.PushNumber] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		if instr.Operand == nil {
			return decompctx.ProcessedInstruction{}, gs2err.NewInstructionMustHaveOperand(errCtx(ctx, instr))
		}
		switch instr.Operand.Kind() {
		case opcode.KindFloat:
			ctx.PushOneNode(ast.NewLiteralFloat(instr.Operand.Text()), instr.Opcode.String())
		default:
			ctx.PushOneNode(ast.NewLiteralNumber(instr.Operand.Int()), instr.Opcode.String())
		}
		return decompctx.ProcessedInstruction{}, nil
	}

	d[opcode.PushTrue] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		ctx.PushOneNode(ast.NewLiteralBool(true), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
	d[opcode.PushFalse] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		ctx.PushOneNode(ast.NewLiteralBool(false), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
	d[opcode.PushNull] = func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		ctx.PushOneNode(ast.NewLiteralNull(), instr.Opcode.String())
		return decompctx.ProcessedInstruction{}, nil
	}
}

func errCtx(ctx *decompctx.Context, instr loader.Instruction) gs2err.ErrorContext {
	return gs2err.ErrorContext{FunctionName: ctx.FunctionName, Opcode: instr.Opcode.String()}
}

func lowerOpcodeName(op opcode.Opcode) string {
	return strings.ToLower(op.String())
}
