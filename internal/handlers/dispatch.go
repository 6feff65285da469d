// Package handlers implements one opcode handler (or small family) per
// §4.G: each consumes operands from the active block's execution-frame
// stack and produces expressions, statements, function-parameter lists, or
// jump expressions. Dispatch is a single immutable lookup map built once,
// mirroring §5's "opcode-handler dispatch map...an immutable lookup
// initialized on first use" and the teacher's own dispatch-table-over-a-
// switch style in internal/vm.
package handlers

import (
	"gs2dc/internal/decompctx"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

// Handler processes one instruction against ctx, returning whatever the
// driver (internal/decompiler) must additionally apply at the region
// level: an emitted statement, a jump condition, or a captured parameter
// list. Handlers push and pop the per-block value stack directly through
// ctx; that part of §4.F's contract never needs to round-trip through the
// driver.
type Handler func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error)

var dispatch map[opcode.Opcode]Handler

func init() {
	dispatch = make(map[opcode.Opcode]Handler)
	registerIdentifierAndLiteralHandlers(dispatch)
	registerOperatorHandlers(dispatch)
	registerNopHandlers(dispatch)
	registerMemberAndAssignHandlers(dispatch)
	registerReturnHandler(dispatch)
	registerRegisterHandlers(dispatch)
	registerCopyAndPopHandlers(dispatch)
	registerBuiltinHandlers(dispatch)
	registerArrayAndCallHandlers(dispatch)
	registerBranchingHandlers(dispatch)
}

// Dispatch looks up the handler for instr.Opcode, failing UnimplementedOpcode
// if none is registered.
func Dispatch(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
	h, ok := dispatch[instr.Opcode]
	if !ok {
		return decompctx.ProcessedInstruction{}, gs2err.NewUnimplementedOpcode(gs2err.ErrorContext{
			FunctionName: ctx.FunctionName,
			Opcode:       instr.Opcode.String(),
		})
	}
	return h(ctx, instr)
}
