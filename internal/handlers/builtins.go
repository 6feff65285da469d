package handlers

import (
	"strings"

	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

// builtinArity documents, per opcode, how many expressions the handler
// pops to build its call's argument list. The corpus this was distilled
// from leaves exact arities to the original handler implementations; this
// table records the judgment calls made for each (see DESIGN.md).
var builtinArity = map[opcode.Opcode]int{
	opcode.Char:           1,
	opcode.Int:            1,
	opcode.Random:         1,
	opcode.Abs:            1,
	opcode.Sin:            1,
	opcode.Cos:            1,
	opcode.ArcTan:         1,
	opcode.MakeVar:        1,
	opcode.GetTranslation: 1,
	opcode.Sleep:          1,
	opcode.WaitFor:        1,
	opcode.Min:            2,
	opcode.Max:            2,
	opcode.VecX:           2,
	opcode.VecY:           2,
	opcode.GetAngle:       2,
	opcode.GetDir:         2,
	opcode.Format:         2,
}

// builtinRename overrides the default lowercased-opcode-name callee for a
// handful of builtins whose source-level name differs.
var builtinRename = map[opcode.Opcode]string{
	opcode.ArcTan: "atan",
	opcode.VecX:   "vecx",
	opcode.VecY:   "vecy",
}

func registerBuiltinHandlers(d map[opcode.Opcode]Handler) {
	for op, arity := range builtinArity {
		d[op] = globalBuiltinHandler(op, arity)
	}

	objMethodArity := map[opcode.Opcode]int{
		opcode.ObjTrim:           0,
		opcode.ObjLength:         0,
		opcode.ObjPos:            1,
		opcode.ObjCharAt:         1,
		opcode.ObjSubstring:      2,
		opcode.ObjStarts:         1,
		opcode.ObjEnds:           1,
		opcode.ObjTokenize:       1,
		opcode.ObjPositions:      1,
		opcode.ObjSize:           0,
		opcode.ObjSubArray:       2,
		opcode.ObjAddString:      1,
		opcode.ObjDeleteString:   2,
		opcode.ObjRemoveString:   1,
		opcode.ObjReplaceString:  2,
		opcode.ObjInsertString:   2,
		opcode.ObjClear:         0,
	}
	for op, arity := range objMethodArity {
		d[op] = objMethodHandler(op, arity)
	}
}

func builtinCalleeName(op opcode.Opcode) string {
	if name, ok := builtinRename[op]; ok {
		return name
	}
	return lowerOpcodeName(op)
}

func globalBuiltinHandler(op opcode.Opcode, arity int) Handler {
	return func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		args := make([]ast.Expression, arity)
		for i := arity - 1; i >= 0; i-- {
			a, err := ctx.PopExpression(instr.Opcode.String())
			if err != nil {
				return decompctx.ProcessedInstruction{}, err
			}
			args[i] = a
		}
		callee := ast.NewIdentifier(builtinCalleeName(op))
		call := ast.NewFunctionCall(callee, args)
		ssaName := ctx.NextSSA("builtin_fn_call")
		ident := ast.NewIdentifier(ssaName)
		ctx.PushOneNode(ident, instr.Opcode.String())
		return decompctx.ProcessedInstruction{NodeToPushIntoRegion: ast.NewAssignment(ident, call)}, nil
	}
}

// objMethodName strips the "Obj" prefix and lowercases, e.g. ObjCharAt ->
// "charat".
func objMethodName(op opcode.Opcode) string {
	return strings.ToLower(strings.TrimPrefix(op.String(), "Obj"))
}

func objMethodHandler(op opcode.Opcode, arity int) Handler {
	return func(ctx *decompctx.Context, instr loader.Instruction) (decompctx.ProcessedInstruction, error) {
		args := make([]ast.Expression, arity)
		for i := arity - 1; i >= 0; i-- {
			a, err := ctx.PopExpression(instr.Opcode.String())
			if err != nil {
				return decompctx.ProcessedInstruction{}, err
			}
			args[i] = a
		}
		receiver, err := ctx.PopAssignable(instr.Opcode.String())
		if err != nil {
			return decompctx.ProcessedInstruction{}, err
		}
		method, _ := ast.NewMemberAccess(receiver, ast.NewIdentifier(objMethodName(op)))
		call := ast.NewFunctionCall(method, args)
		ssaName := ctx.NextSSA("builtin_fn_call")
		ident := ast.NewIdentifier(ssaName)
		ctx.PushOneNode(ident, instr.Opcode.String())
		return decompctx.ProcessedInstruction{NodeToPushIntoRegion: ast.NewAssignment(ident, call)}, nil
	}
}
