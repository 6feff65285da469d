package decompctx

import "gs2dc/internal/ast"

// ProcessedInstruction is the result an opcode handler produces for one
// instruction; the driver in internal/decompiler consumes each populated
// field per §4.F.
type ProcessedInstruction struct {
	// SSAID is not set by any handler, and the driver does not read it:
	// handlers that leave an SSA identifier on the stack push it through
	// the Context themselves.
	SSAID string

	// NodeToPushIntoRegion, if non-nil, is appended to the active region's
	// statement list.
	NodeToPushIntoRegion ast.Node

	// FunctionParameters, if non-nil, is recorded as the enclosing
	// function's parameter list (EndParams).
	FunctionParameters []ast.Assignable

	// JumpCondition, if non-nil, is installed as the active region's jump
	// expression and upgrades it to a ControlFlow region.
	JumpCondition ast.Expression
}
