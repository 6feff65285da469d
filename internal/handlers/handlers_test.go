package handlers

import (
	"testing"

	"gs2dc/internal/ast"
	"gs2dc/internal/decompctx"
	"gs2dc/internal/function"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
)

func newCtx() *decompctx.Context {
	ctx := decompctx.New("main")
	ctx.StartBlockProcessing(function.BasicBlockID(0), "R_0")
	return ctx
}

func numOperand(n int32) *opcode.Operand {
	o := opcode.Number(n)
	return &o
}

// TestReturnHandlerPopsValue covers S2: a Ret handler pops the top
// expression and produces an ast.Return statement for the region.
func TestReturnHandlerPopsValue(t *testing.T) {
	ctx := newCtx()
	ctx.PushOneNode(ast.NewLiteralNumber(7), "PushNumber")

	out, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.Ret, Address: 0})
	if err != nil {
		t.Fatalf("Dispatch(Ret): %v", err)
	}
	ret, ok := out.NodeToPushIntoRegion.(*ast.Return)
	if !ok {
		t.Fatalf("NodeToPushIntoRegion = %T, want *ast.Return", out.NodeToPushIntoRegion)
	}
	num, ok := ret.Value.(*ast.LiteralNumber)
	if !ok || num.Value != 7 {
		t.Fatalf("Return.Value = %v, want literal 7", ret.Value)
	}
}

func TestReturnHandlerFailsOnEmptyStack(t *testing.T) {
	ctx := newCtx()
	if _, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.Ret, Address: 0}); err == nil {
		t.Fatal("expected an error popping Ret's value from an empty stack")
	}
}

func TestConditionalJumpProducesJumpCondition(t *testing.T) {
	ctx := newCtx()
	ctx.PushOneNode(ast.NewLiteralBool(true), "PushTrue")

	out, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.Jne, Address: 0, Operand: numOperand(5)})
	if err != nil {
		t.Fatalf("Dispatch(Jne): %v", err)
	}
	if out.JumpCondition == nil {
		t.Fatal("Jne handler must populate JumpCondition")
	}
	if out.NodeToPushIntoRegion != nil {
		t.Fatal("Jne handler must not push a statement node directly")
	}
}

// TestCallHandlerTreatsFirstArrayElementAsCallee covers S5: Call closes
// the building array opened by PushArray and treats the first pushed
// element (the callee, pushed before its arguments) as the callee.
func TestCallHandlerTreatsFirstArrayElementAsCallee(t *testing.T) {
	ctx := newCtx()
	if _, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.PushArray, Address: 0}); err != nil {
		t.Fatalf("Dispatch(PushArray): %v", err)
	}
	ctx.PushOneNode(ast.NewIdentifier("doStuff"), "PushVariable")
	ctx.PushOneNode(ast.NewLiteralNumber(1), "PushNumber")
	ctx.PushOneNode(ast.NewLiteralNumber(2), "PushNumber")

	out, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.Call, Address: 1})
	if err != nil {
		t.Fatalf("Dispatch(Call): %v", err)
	}
	assign, ok := out.NodeToPushIntoRegion.(*ast.Assignment)
	if !ok {
		t.Fatalf("NodeToPushIntoRegion = %T, want *ast.Assignment", out.NodeToPushIntoRegion)
	}
	call, ok := assign.RHS.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("Assignment.RHS = %T, want *ast.FunctionCall", assign.RHS)
	}
	callee, ok := call.Callee.(*ast.Identifier)
	if !ok || callee.Name != "doStuff" {
		t.Fatalf("FunctionCall.Callee = %v, want identifier doStuff", call.Callee)
	}
	if len(call.Args) != 2 {
		t.Fatalf("FunctionCall.Args = %v, want 2 elements", call.Args)
	}
}

func TestSetAndGetRegisterRoundTrip(t *testing.T) {
	ctx := newCtx()
	ctx.PushOneNode(ast.NewIdentifier("x"), "PushVariable")
	if _, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.SetRegister, Address: 0, Operand: numOperand(0)}); err != nil {
		t.Fatalf("Dispatch(SetRegister): %v", err)
	}

	out, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.GetRegister, Address: 1, Operand: numOperand(0)})
	if err != nil {
		t.Fatalf("Dispatch(GetRegister): %v", err)
	}
	_ = out
	got, err := ctx.PopOneNode("GetRegister")
	if err != nil {
		t.Fatalf("PopOneNode after GetRegister: %v", err)
	}
	ident, ok := got.(*ast.Identifier)
	if !ok || ident.Name != "x" {
		t.Fatalf("GetRegister pushed %v, want identifier x", got)
	}
}

func TestDispatchFailsForUnregisteredOpcode(t *testing.T) {
	ctx := newCtx()
	if _, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.Exp, Address: 0}); err == nil {
		t.Fatal("expected UnimplementedOpcode for Exp, which has no registered handler")
	}
}

func TestAssignHandlerBuildsAssignment(t *testing.T) {
	ctx := newCtx()
	ctx.PushOneNode(ast.NewIdentifier("x"), "PushVariable")
	ctx.PushOneNode(ast.NewLiteralNumber(5), "PushNumber")

	out, err := Dispatch(ctx, loader.Instruction{Opcode: opcode.Assign, Address: 0})
	if err != nil {
		t.Fatalf("Dispatch(Assign): %v", err)
	}
	assign, ok := out.NodeToPushIntoRegion.(*ast.Assignment)
	if !ok {
		t.Fatalf("NodeToPushIntoRegion = %T, want *ast.Assignment", out.NodeToPushIntoRegion)
	}
	lhs, ok := assign.LHS.(*ast.Identifier)
	if !ok || lhs.Name != "x" {
		t.Fatalf("Assignment.LHS = %v, want identifier x", assign.LHS)
	}
}
