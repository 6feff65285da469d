package decompiler

import (
	"strings"
	"testing"

	"gs2dc/internal/emitter"
	"gs2dc/internal/function"
	"gs2dc/internal/loader"
	"gs2dc/internal/opcode"
	"gs2dc/internal/structural"
)

// buildIfElseFunction hand-builds a three-block function mirroring
// spec.md's S3 scenario: a conditional jump whose fallthrough arm returns 2
// and whose branch target returns 1.
func buildIfElseFunction(t *testing.T) *function.Function {
	t.Helper()
	fn := function.New(function.ID{Name: "f", HasName: true, Address: 0})

	entry, _ := fn.GetBasicBlockByID(fn.EntryBlock())
	entry.Instructions = []loader.Instruction{
		{Opcode: opcode.PushTrue, Address: 0},
		{Opcode: opcode.Jne, Address: 1, Operand: numberOperand(5)},
	}

	bBlock, err := fn.CreateBlock(function.Normal, 2)
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	bBlock.Instructions = []loader.Instruction{
		{Opcode: opcode.PushNumber, Address: 2, Operand: numberOperand(2)},
		{Opcode: opcode.Ret, Address: 3},
	}

	cBlock, err := fn.CreateBlock(function.Normal, 5)
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	cBlock.Instructions = []loader.Instruction{
		{Opcode: opcode.PushNumber, Address: 5, Operand: numberOperand(1)},
		{Opcode: opcode.Ret, Address: 6},
	}

	fn.AddEdge(fn.EntryBlock(), bBlock.ID)
	fn.AddEdge(fn.EntryBlock(), cBlock.ID)

	return fn
}

func numberOperand(n int32) *opcode.Operand {
	op := opcode.Number(n)
	return &op
}

func TestDecompileFunctionIfElse(t *testing.T) {
	fn := buildIfElseFunction(t)

	result, err := DecompileFunction(fn, structural.DefaultOptions())
	if err != nil {
		t.Fatalf("DecompileFunction: %v", err)
	}

	out := emitter.New(emitter.DefaultContext()).EmitFunction(result)
	for _, want := range []string{"function f()", "if (", "return 2;", "else", "return 1;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}
